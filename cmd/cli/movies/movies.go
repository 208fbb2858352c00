package movies

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/crucial707/movies-api/cmd/cli/client"
	"github.com/crucial707/movies-api/cmd/cli/config"
	"github.com/crucial707/movies-api/cmd/cli/output"
	"github.com/spf13/cobra"
)

// movie mirrors the API's movie JSON.
type movie struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	ReleaseDate string   `json:"releaseDate"`
	Genre       string   `json:"genre"`
	Actors      []string `json:"actors"`
}

// ==========================
// Init Movies
// ==========================
func InitMovies(rootCmd *cobra.Command) {
	moviesCmd := &cobra.Command{
		Use:   "movies",
		Short: "List and manage movies",
	}

	moviesCmd.AddCommand(
		listMoviesCmd(),
		getMovieCmd(),
		addMovieCmd(),
		updateMovieCmd(),
		deleteMovieCmd(),
	)

	rootCmd.AddCommand(moviesCmd)
}

func renderMovies(cmd *cobra.Command, movies []movie) {
	rows := make([][]interface{}, 0, len(movies))
	for _, m := range movies {
		rows = append(rows, []interface{}{m.ID, m.Title, m.ReleaseDate, m.Genre, strings.Join(m.Actors, ", ")})
	}
	output.RenderTable(cmd.OutOrStdout(), []string{"ID", "Title", "Released", "Genre", "Actors"}, rows)
}

// ==========================
// LIST
// ==========================
func listMoviesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List movies",
		RunE: func(cmd *cobra.Command, args []string) error {
			var movies []movie
			if err := client.Call("GET", "/movies", "", nil, &movies); err != nil {
				return err
			}
			if asJSON {
				return output.RenderJSON(cmd.OutOrStdout(), movies)
			}
			renderMovies(cmd, movies)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

// ==========================
// GET
// ==========================
func getMovieCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <title>",
		Short: "Show one movie by title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var m movie
			if err := client.Call("GET", "/movies?title="+url.QueryEscape(args[0]), "", nil, &m); err != nil {
				return err
			}
			renderMovies(cmd, []movie{m})
			return nil
		},
	}
}

// ==========================
// ADD
// ==========================
func addMovieCmd() *cobra.Command {
	var m movie

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a movie (at least three actors)",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := config.LoadToken()
			if err != nil {
				return err
			}

			var created movie
			if err := client.Call("POST", "/movies", token, m, &created); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Movie %q added (id %s).\n", created.Title, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&m.Title, "title", "", "Movie title")
	cmd.Flags().StringVar(&m.ReleaseDate, "release-date", "", "Release date")
	cmd.Flags().StringVar(&m.Genre, "genre", "", "Genre")
	cmd.Flags().StringArrayVar(&m.Actors, "actor", nil, "Actor name (repeat for each actor)")
	return cmd
}

// ==========================
// UPDATE
// ==========================
func updateMovieCmd() *cobra.Command {
	var title, releaseDate, genre string
	var actors []string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of a movie by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := config.LoadToken()
			if err != nil {
				return err
			}

			payload := map[string]interface{}{"id": args[0]}
			flags := cmd.Flags()
			if flags.Changed("title") {
				payload["title"] = title
			}
			if flags.Changed("release-date") {
				payload["releaseDate"] = releaseDate
			}
			if flags.Changed("genre") {
				payload["genre"] = genre
			}
			if flags.Changed("actor") {
				payload["actors"] = actors
			}
			if len(payload) == 1 {
				return fmt.Errorf("nothing to update: pass at least one of --title, --release-date, --genre, --actor")
			}

			var updated movie
			if err := client.Call("PUT", "/movies", token, payload, &updated); err != nil {
				return err
			}
			renderMovies(cmd, []movie{updated})
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&releaseDate, "release-date", "", "New release date")
	cmd.Flags().StringVar(&genre, "genre", "", "New genre")
	cmd.Flags().StringArrayVar(&actors, "actor", nil, "Replacement actor list (repeat for each actor)")
	return cmd
}

// ==========================
// DELETE
// ==========================
func deleteMovieCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <title>",
		Short: "Delete a movie by title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := config.LoadToken()
			if err != nil {
				return err
			}

			if err := client.Call("DELETE", "/movies", token, map[string]string{"title": args[0]}, nil); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Movie %q deleted.\n", args[0])
			return nil
		},
	}
}
