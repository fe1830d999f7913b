package cmd

import (
	"fmt"

	"github.com/inovacc/odoocli/internal/core"
	"github.com/spf13/cobra"
)

var (
	deliveriesLimit int
	deliveriesView  string
)

var deliveriesCmd = &cobra.Command{
	Use:     "deliveries",
	Aliases: []string{"distribucion"},
	Short:   "Stock moves ready to deliver",
	Long: `List stock moves in the assigned state.

--view client keeps the server order; --view product groups moves by product
name.

Examples:
  odoocli deliveries
  odoocli deliveries list --view product
  odoocli deliveries lines 31`,
	Args: cobra.NoArgs,
	RunE: runDeliveriesList,
}

var deliveriesListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List assigned moves",
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE:    runDeliveriesList,
}

var deliveriesLinesCmd = &cobra.Command{
	Use:   "lines <move-id>",
	Short: "Show the detailed operations of a move",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeliveriesLines,
}

func init() {
	rootCmd.AddCommand(deliveriesCmd)

	deliveriesCmd.AddCommand(deliveriesListCmd)
	deliveriesCmd.AddCommand(deliveriesLinesCmd)

	deliveriesCmd.PersistentFlags().IntVar(&deliveriesLimit, "limit", core.DefaultMoveLimit, "Number of moves to list")
	deliveriesCmd.PersistentFlags().StringVar(&deliveriesView, "view", string(core.ViewByClient), "Order by client or product")
}

func runDeliveriesList(cmd *cobra.Command, _ []string) error {
	view, err := core.ParseView(deliveriesView)
	if err != nil {
		return err
	}

	app, err := getApp()
	if err != nil {
		return err
	}

	moves, err := core.AssignedMoves(cmd.Context(), app.Gateway, deliveriesLimit)
	if err != nil {
		return err
	}

	moves = core.SortMoves(moves, view)

	if jsonOutput() {
		return printJSON(moves)
	}

	if len(moves) == 0 {
		printEmptyResult("moves ready to deliver", "")
		return nil
	}

	w := newTable("ID", "REFERENCE", "CUSTOMER", "PRODUCT", "QTY", "UOM", "ORIGIN", "DEADLINE")
	for _, m := range moves {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%g\t%s\t%s\t%s\n",
			m.ID,
			orDash(m.Reference.String()),
			truncateString(orDash(m.PartnerID.Name), 30),
			truncateString(orDash(m.ProductID.Name), 30),
			m.ProductUomQty,
			orDash(m.ProductUom.Name),
			orDash(m.Origin.String()),
			orDash(m.DateDeadline.String()),
		)
	}

	return flushTable(w)
}

func runDeliveriesLines(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	app, err := getApp()
	if err != nil {
		return err
	}

	lines, err := core.MoveLines(cmd.Context(), app.Gateway, id)
	if err != nil {
		return err
	}

	if jsonOutput() {
		return printJSON(lines)
	}

	if len(lines) == 0 {
		printEmptyResult("move lines", "")
		return nil
	}

	w := newTable("PRODUCT", "QTY", "UOM", "LOT", "FROM", "TO")
	for _, l := range lines {
		_, _ = fmt.Fprintf(w, "%s\t%g\t%s\t%s\t%s\t%s\n",
			orDash(l.ProductID.Name),
			l.Quantity,
			orDash(l.ProductUomID.Name),
			orDash(l.LotID.Name),
			orDash(l.LocationID.Name),
			orDash(l.LocationDestID.Name),
		)
	}

	return flushTable(w)
}
