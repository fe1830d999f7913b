package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	Long: `Log out: clear the stored session and remove its API key from the
OS keyring. Connection profiles are kept.`,
	Args: cobra.NoArgs,
	RunE: runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(_ *cobra.Command, _ []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	if !app.Auth.IsLoggedIn() {
		_, _ = fmt.Fprintln(os.Stdout, "Not logged in.")
		return nil
	}

	if err := app.Logout(); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	_, _ = fmt.Fprintln(os.Stdout, "Logged out.")

	return nil
}
