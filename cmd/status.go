package cmd

import (
	"fmt"
	"os"

	"github.com/inovacc/odoocli/internal/cli"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the session and active profile",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	st := app.Status()

	if jsonOutput() {
		return printJSON(st)
	}

	if st.LoggedIn {
		_, _ = fmt.Fprintln(os.Stdout, cli.OK(fmt.Sprintf("logged in as %s", st.Username)))
		_, _ = fmt.Fprintf(os.Stdout, "URL:      %s\n", st.URL)
		_, _ = fmt.Fprintf(os.Stdout, "Database: %s\n", st.Database)
	} else {
		_, _ = fmt.Fprintln(os.Stdout, "Not logged in.")
	}

	_, _ = fmt.Fprintf(os.Stdout, "Profile:  %s (%s)\n", st.ActiveProfile, orDash(st.ProfileURL))
	_, _ = fmt.Fprintln(os.Stdout, cli.Muted("State: "+st.StorePath))

	return nil
}
