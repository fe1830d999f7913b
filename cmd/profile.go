package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/inovacc/odoocli/internal/state"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage connection profiles",
	Long: `Manage the three connection profiles.

Each profile holds a name and a server URL. The active profile's URL is used
by login when --url is not given.

Available Commands:
  list         List the profiles
  use          Set the active profile
  set-url      Change a profile's URL
  rename       Change a profile's name
  import       Load profiles from an odoorpc rc file

Examples:
  odoocli profile list
  odoocli profile set-url 2 https://staging.example.com
  odoocli profile use 2
  odoocli profile import ~/.odoorpcrc`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var profileListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List the profiles",
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE:    runProfileList,
}

var profileUseCmd = &cobra.Command{
	Use:   "use <id>",
	Short: "Set the active profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileUse,
}

var profileSetURLCmd = &cobra.Command{
	Use:   "set-url <id> <url>",
	Short: "Change a profile's URL",
	Args:  cobra.ExactArgs(2),
	RunE:  runProfileSetURL,
}

var profileRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Change a profile's name",
	Args:  cobra.ExactArgs(2),
	RunE:  runProfileRename,
}

var profileImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Load profiles from an odoorpc rc file",
	Long: `Load up to three sections of an odoorpc rc file into profiles 1 to 3.

Each section becomes a profile named after the section, with the URL built
from host, protocol (jsonrpc or jsonrpc+ssl) and port. Passwords in the file
are ignored.`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileImport,
}

func init() {
	rootCmd.AddCommand(profileCmd)

	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileUseCmd)
	profileCmd.AddCommand(profileSetURLCmd)
	profileCmd.AddCommand(profileRenameCmd)
	profileCmd.AddCommand(profileImportCmd)
}

func profileError(id string, err error) error {
	if errors.Is(err, state.ErrProfileNotFound) {
		return fmt.Errorf("profile '%s' not found (ids are 1, 2 and 3)", id)
	}

	return err
}

func runProfileList(_ *cobra.Command, _ []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	cfg := app.Profiles.Snapshot()

	if jsonOutput() {
		return printJSON(cfg)
	}

	w := newTable("ID", "NAME", "URL", "ACTIVE")

	for _, p := range cfg.Profiles {
		active := ""
		if p.ID == cfg.ActiveProfileID {
			active = "*"
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, orDash(p.URL), active)
	}

	return flushTable(w)
}

func runProfileUse(_ *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	id := args[0]

	if app.Profiles.ActiveProfileID() == id {
		_, _ = fmt.Fprintf(os.Stdout, "Profile '%s' is already active.\n", id)
		return nil
	}

	if err := app.Profiles.SetActiveProfile(id); err != nil {
		return profileError(id, err)
	}

	p, _ := app.Profiles.ActiveProfile()
	_, _ = fmt.Fprintf(os.Stdout, "Switched to profile %s: %s (%s)\n", p.ID, p.Name, orDash(p.URL))

	return nil
}

func runProfileSetURL(_ *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	if err := app.Profiles.SetProfileURL(args[0], args[1]); err != nil {
		return profileError(args[0], err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Profile %s URL set to %s\n", args[0], args[1])

	return nil
}

func runProfileRename(_ *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	if err := app.Profiles.SetProfileName(args[0], args[1]); err != nil {
		return profileError(args[0], err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Profile %s renamed to %s\n", args[0], args[1])

	return nil
}

func runProfileImport(_ *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	imported, err := app.ImportProfiles(args[0])
	if err != nil {
		return err
	}

	if len(imported) == 0 {
		printEmptyResult("sections", "The file has no server sections.")
		return nil
	}

	if jsonOutput() {
		return printJSON(imported)
	}

	w := newTable("ID", "NAME", "URL", "DATABASE")

	for i, p := range imported {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, p.Name, p.URL, orDash(p.Database))
	}

	return flushTable(w)
}
