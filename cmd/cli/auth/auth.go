package auth

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/crucial707/movies-api/cmd/cli/client"
	"github.com/crucial707/movies-api/cmd/cli/config"
	"github.com/spf13/cobra"
)

// InitAuth registers signup, signin and logout on the root command.
func InitAuth(rootCmd *cobra.Command) {
	rootCmd.AddCommand(signupCmd(), signinCmd(), logoutCmd())
}

// ==========================
// Signup
// ==========================
func signupCmd() *cobra.Command {
	var name, username, password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" {
				return fmt.Errorf("--username is required")
			}
			if name == "" {
				name = username
			}
			if password == "" {
				var err error
				if password, err = prompt(cmd, "Password: "); err != nil {
					return err
				}
			}

			var user struct {
				ID       string `json:"id"`
				Username string `json:"username"`
			}
			payload := map[string]string{"name": name, "username": username, "password": password}
			if err := client.Call("POST", "/signup", "", payload, &user); err != nil {
				return fmt.Errorf("signup failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "User %s created (id %s). You can now sign in.\n", user.Username, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (defaults to the username)")
	cmd.Flags().StringVar(&username, "username", "", "Username to register")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	return cmd
}

// ==========================
// Signin
// ==========================
func signinCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in and store the token locally",
		Long:  "Authenticate with the Movies API and store the JWT for subsequent commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" {
				return fmt.Errorf("--username is required")
			}
			if password == "" {
				var err error
				if password, err = prompt(cmd, "Password: "); err != nil {
					return err
				}
			}

			var out struct {
				Token string `json:"token"`
			}
			payload := map[string]string{"username": username, "password": password}
			if err := client.Call("POST", "/signin", "", payload, &out); err != nil {
				return fmt.Errorf("signin failed: %w", err)
			}
			if out.Token == "" {
				return fmt.Errorf("signin succeeded but no token returned")
			}

			if err := config.SaveToken(out.Token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Signin successful. Token stored locally.")
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username to authenticate as")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	return cmd
}

// ==========================
// Logout
// ==========================
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the locally stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := config.ClearToken()
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintln(cmd.OutOrStdout(), "No user signed in.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out successfully.")
			return nil
		},
	}
}

func prompt(cmd *cobra.Command, label string) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), label)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
