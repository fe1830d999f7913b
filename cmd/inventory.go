package cmd

import (
	"fmt"
	"os"

	"github.com/inovacc/odoocli/internal/cli"
	"github.com/inovacc/odoocli/internal/core"
	"github.com/inovacc/odoocli/internal/model"
	"github.com/spf13/cobra"
)

const suggestionCount = 3

var inventorySearch string

var inventoryCmd = &cobra.Command{
	Use:     "inventory",
	Aliases: []string{"inventario"},
	Short:   "List saleable products",
	Long: `List saleable products with price and quantity on hand.

--search filters by name or internal reference, ignoring case. When nothing
matches, the closest products are suggested.

Examples:
  odoocli inventory
  odoocli inventory --search desk`,
	Args: cobra.NoArgs,
	RunE: runInventory,
}

func init() {
	rootCmd.AddCommand(inventoryCmd)

	inventoryCmd.Flags().StringVarP(&inventorySearch, "search", "s", "", "Filter by name or internal reference")
}

func runInventory(cmd *cobra.Command, _ []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	all, err := core.ListProducts(cmd.Context(), app.Gateway)
	if err != nil {
		return err
	}

	products := core.FilterProducts(all, inventorySearch)

	if jsonOutput() {
		return printJSON(products)
	}

	if len(products) == 0 {
		printEmptyResult("products", "")

		if suggestions := core.SuggestProducts(all, inventorySearch, suggestionCount); len(suggestions) > 0 {
			_, _ = fmt.Fprintln(os.Stdout, cli.Muted("\nDid you mean:"))
			return printProducts(suggestions)
		}

		return nil
	}

	return printProducts(products)
}

func printProducts(products []model.Product) error {
	w := newTable("ID", "REF", "NAME", "PRICE", "ON HAND", "UOM")
	for _, p := range products {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%g\t%s\n",
			p.ID,
			orDash(p.DefaultCode.String()),
			truncateString(p.DisplayName, 50),
			money(p.ListPrice),
			p.QtyAvailable,
			orDash(p.UomID.Name),
		)
	}

	return flushTable(w)
}
