package main

import (
	"fmt"
	"os"

	"github.com/crucial707/movies-api/cmd/cli/auth"
	"github.com/crucial707/movies-api/cmd/cli/movies"
	"github.com/crucial707/movies-api/cmd/cli/root"
)

func main() {
	rootCmd := root.GetRoot()
	auth.InitAuth(rootCmd)
	movies.InitMovies(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
