package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/odoocli/internal/cli"
	"github.com/spf13/cobra"
)

var menuActions = map[string]func(*cobra.Command, []string) error{
	cli.ActionPartners:   runPartners,
	cli.ActionInventory:  runInventory,
	cli.ActionSales:      runSalesList,
	cli.ActionInvoices:   runInvoicesList,
	cli.ActionDeliveries: runDeliveriesList,
	cli.ActionStatus:     runStatus,
	cli.ActionLogin:      runLogin,
	cli.ActionLogout:     runLogout,
	cli.ActionDoctor:     runDoctor,
}

// runMenu shows the tab launcher until the user exits. Errors from a tab are
// printed and the menu is shown again.
func runMenu(cmd *cobra.Command, _ []string) error {
	for {
		app, err := getApp()
		if err != nil {
			return err
		}

		u := app.Auth.User()

		title := "odoocli"
		if u != nil {
			title = fmt.Sprintf("odoocli - %s@%s", u.Username, u.Database)
		}

		finalModel, err := tea.NewProgram(cli.NewMenu(title, cli.TabItems(u != nil))).Run()
		if err != nil {
			return err
		}

		choice := finalModel.(cli.MenuModel).GetChoice()
		if choice == "" || choice == cli.ActionExit {
			return nil
		}

		run, ok := menuActions[choice]
		if !ok {
			return fmt.Errorf("unknown menu action %q", choice)
		}

		if err := run(cmd, nil); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

		_, _ = fmt.Fprintln(os.Stdout, "\nPress Enter to continue...")

		if _, err := readLine(); err != nil {
			return nil
		}
	}
}
