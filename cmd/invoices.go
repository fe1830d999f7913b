package cmd

import (
	"fmt"
	"os"

	"github.com/inovacc/odoocli/internal/core"
	"github.com/spf13/cobra"
)

var invoicesLimit int

var invoicesCmd = &cobra.Command{
	Use:     "invoices",
	Aliases: []string{"cobranzas"},
	Short:   "Outstanding customer invoices",
	Long: `List posted customer invoices that are not fully paid, with the
amount still due.

Examples:
  odoocli invoices
  odoocli invoices lines 9`,
	Args: cobra.NoArgs,
	RunE: runInvoicesList,
}

var invoicesListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List outstanding invoices",
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE:    runInvoicesList,
}

var invoicesLinesCmd = &cobra.Command{
	Use:   "lines <invoice-id>",
	Short: "Show the product lines of an invoice",
	Args:  cobra.ExactArgs(1),
	RunE:  runInvoicesLines,
}

func init() {
	rootCmd.AddCommand(invoicesCmd)

	invoicesCmd.AddCommand(invoicesListCmd)
	invoicesCmd.AddCommand(invoicesLinesCmd)

	invoicesCmd.PersistentFlags().IntVar(&invoicesLimit, "limit", core.DefaultInvoiceLimit, "Number of invoices to list")
}

func runInvoicesList(cmd *cobra.Command, _ []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	invoices, err := core.OutstandingInvoices(cmd.Context(), app.Gateway, invoicesLimit)
	if err != nil {
		return err
	}

	if jsonOutput() {
		return printJSON(invoices)
	}

	if len(invoices) == 0 {
		printEmptyResult("outstanding invoices", "")
		return nil
	}

	w := newTable("ID", "NUMBER", "CUSTOMER", "DATE", "DUE", "TOTAL", "RESIDUAL")
	for _, inv := range invoices {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			inv.ID,
			inv.Name,
			truncateString(orDash(inv.PartnerID.Name), 30),
			orDash(inv.InvoiceDate.String()),
			orDash(inv.InvoiceDateDue.String()),
			money(inv.AmountTotal),
			money(inv.AmountResidual),
		)
	}

	if err := flushTable(w); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "\nTotal due: %s over %d invoice(s)\n", money(core.Residual(invoices)), len(invoices))

	return nil
}

func runInvoicesLines(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	app, err := getApp()
	if err != nil {
		return err
	}

	lines, err := core.InvoiceLines(cmd.Context(), app.Gateway, id)
	if err != nil {
		return err
	}

	if jsonOutput() {
		return printJSON(lines)
	}

	if len(lines) == 0 {
		printEmptyResult("invoice lines", "")
		return nil
	}

	w := newTable("PRODUCT", "DESCRIPTION", "QTY", "UOM", "PRICE", "SUBTOTAL")
	for _, l := range lines {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%g\t%s\t%s\t%s\n",
			orDash(l.ProductID.Name),
			truncateString(orDash(l.Name.String()), 40),
			l.Quantity,
			orDash(l.ProductUomID.Name),
			money(l.PriceUnit),
			money(l.PriceSubtotal),
		)
	}

	return flushTable(w)
}
