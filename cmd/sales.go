package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/inovacc/odoocli/internal/core"
	"github.com/inovacc/odoocli/internal/model"
	"github.com/spf13/cobra"
)

var (
	salesLimit        int
	salesWithLines    bool
	quotePartner      int64
	quoteLines        []string
	quoteConfirm      bool
	confirmSkipPrompt bool
)

var salesCmd = &cobra.Command{
	Use:     "sales",
	Aliases: []string{"ventas"},
	Short:   "Sale orders and quotations",
	Long: `Work with sale orders.

Without a subcommand the latest orders are listed.

Available Commands:
  list         List the latest sale orders with their lines
  customers    Find customers by name
  products     Find saleable products by name
  quote        Create a draft quotation
  confirm      Confirm a quotation

Examples:
  odoocli sales
  odoocli sales customers acme
  odoocli sales quote --partner 7 --line 5:2 --line 9:1:99.90
  odoocli sales confirm 42`,
	Args: cobra.NoArgs,
	RunE: runSalesList,
}

var salesListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List the latest sale orders",
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE:    runSalesList,
}

var salesCustomersCmd = &cobra.Command{
	Use:   "customers <query>",
	Short: "Find customers by name",
	Args:  cobra.ExactArgs(1),
	RunE:  runSalesCustomers,
}

var salesProductsCmd = &cobra.Command{
	Use:   "products <query>",
	Short: "Find saleable products by name",
	Args:  cobra.ExactArgs(1),
	RunE:  runSalesProducts,
}

var salesQuoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Create a draft quotation",
	Long: `Create a draft quotation for a customer.

Each --line is product:qty[:price]. Lines for the same product are merged.
Without a price Odoo applies the pricelist.`,
	Args: cobra.NoArgs,
	RunE: runSalesQuote,
}

var salesConfirmCmd = &cobra.Command{
	Use:   "confirm <id>",
	Short: "Confirm a quotation",
	Args:  cobra.ExactArgs(1),
	RunE:  runSalesConfirm,
}

func init() {
	rootCmd.AddCommand(salesCmd)

	salesCmd.AddCommand(salesListCmd)
	salesCmd.AddCommand(salesCustomersCmd)
	salesCmd.AddCommand(salesProductsCmd)
	salesCmd.AddCommand(salesQuoteCmd)
	salesCmd.AddCommand(salesConfirmCmd)

	salesCmd.PersistentFlags().IntVar(&salesLimit, "limit", core.DefaultOrderLimit, "Number of orders to list")
	salesCmd.Flags().BoolVar(&salesWithLines, "lines", false, "Show order lines")
	salesListCmd.Flags().BoolVar(&salesWithLines, "lines", false, "Show order lines")

	salesQuoteCmd.Flags().Int64Var(&quotePartner, "partner", 0, "Customer id")
	salesQuoteCmd.Flags().StringArrayVar(&quoteLines, "line", nil, "Order line product:qty[:price] (repeatable)")
	salesQuoteCmd.Flags().BoolVar(&quoteConfirm, "confirm", false, "Confirm the quotation after creating it")

	salesConfirmCmd.Flags().BoolVarP(&confirmSkipPrompt, "yes", "y", false, "Skip confirmation prompt")
}

func runSalesList(cmd *cobra.Command, _ []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	orders, err := core.ListOrders(cmd.Context(), app.Gateway, salesLimit)
	if err != nil {
		return err
	}

	if jsonOutput() {
		return printJSON(orders)
	}

	if len(orders) == 0 {
		printEmptyResult("sale orders", "Create one with: odoocli sales quote --partner <id> --line <product>:<qty>")
		return nil
	}

	w := newTable("ID", "NUMBER", "CUSTOMER", "DATE", "STATE", "TOTAL", "LINES")
	for _, o := range orders {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%d\n",
			o.ID, o.Name, truncateString(orDash(o.PartnerID.Name), 30), orDash(o.DateOrder.String()),
			o.State, money(o.AmountTotal), len(o.Lines))
	}

	if err := flushTable(w); err != nil {
		return err
	}

	if salesWithLines {
		for _, o := range orders {
			printOrderLines(o)
		}
	}

	return nil
}

func printOrderLines(o model.SaleOrder) {
	if len(o.Lines) == 0 {
		return
	}

	_, _ = fmt.Fprintf(os.Stdout, "\n%s\n", o.Name)

	w := newTable("  PRODUCT", "QTY", "PRICE", "SUBTOTAL")
	for _, l := range o.Lines {
		_, _ = fmt.Fprintf(w, "  %s\t%g\t%s\t%s\n",
			truncateString(l.ProductID.Name, 40), l.ProductUomQty, money(l.PriceUnit), money(l.PriceSubtotal))
	}

	_ = flushTable(w)
}

func runSalesCustomers(cmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	customers, err := core.SearchCustomers(cmd.Context(), app.Gateway, args[0])
	if err != nil {
		return err
	}

	if jsonOutput() {
		return printJSON(customers)
	}

	if len(customers) == 0 {
		printEmptyResult("customers", "")
		return nil
	}

	w := newTable("ID", "NAME")
	for _, c := range customers {
		_, _ = fmt.Fprintf(w, "%d\t%s\n", c.ID, c.DisplayName)
	}

	return flushTable(w)
}

func runSalesProducts(cmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	products, err := core.SearchSaleableProducts(cmd.Context(), app.Gateway, args[0])
	if err != nil {
		return err
	}

	if jsonOutput() {
		return printJSON(products)
	}

	if len(products) == 0 {
		printEmptyResult("products", "")
		return nil
	}

	w := newTable("ID", "NAME", "PRICE")
	for _, p := range products {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\n", p.ID, p.DisplayName, money(p.ListPrice))
	}

	return flushTable(w)
}

func buildQuotation(partner int64, lines []string) (core.Quotation, error) {
	q := core.Quotation{PartnerID: partner}

	for _, raw := range lines {
		line, err := parseQuotationLine(raw)
		if err != nil {
			return core.Quotation{}, err
		}

		q.Add(line)
	}

	return q, q.Validate()
}

func runSalesQuote(cmd *cobra.Command, _ []string) error {
	q, err := buildQuotation(quotePartner, quoteLines)
	if err != nil {
		return err
	}

	app, err := getApp()
	if err != nil {
		return err
	}

	id, err := core.CreateQuotation(cmd.Context(), app.Gateway, q, time.Now())
	if err != nil {
		return fmt.Errorf("failed to create quotation: %w", err)
	}

	if quoteConfirm {
		if err := core.ConfirmOrder(cmd.Context(), app.Gateway, id); err != nil {
			return fmt.Errorf("quotation %d created but not confirmed: %w", id, err)
		}
	}

	if jsonOutput() {
		return printJSON(map[string]any{"id": id, "confirmed": quoteConfirm})
	}

	state := "created"
	if quoteConfirm {
		state = "created and confirmed"
	}

	_, _ = fmt.Fprintf(os.Stdout, "Quotation %d %s: %s\n", id, state, describeQuotation(q))

	return nil
}

func runSalesConfirm(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if !confirmSkipPrompt && !promptConfirm(fmt.Sprintf("Confirm sale order %d? [y/N]: ", id)) {
		_, _ = fmt.Fprintln(os.Stdout, "Cancelled.")
		return nil
	}

	app, err := getApp()
	if err != nil {
		return err
	}

	if err := core.ConfirmOrder(cmd.Context(), app.Gateway, id); err != nil {
		return fmt.Errorf("failed to confirm order %d: %w", id, err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Sale order %d confirmed.\n", id)

	return nil
}

// describeQuotation renders a quotation as "product x qty" pairs.
func describeQuotation(q core.Quotation) string {
	parts := make([]string, 0, len(q.Lines))
	for _, l := range q.Lines {
		parts = append(parts, fmt.Sprintf("%d x %g", l.ProductID, l.Quantity))
	}

	return strings.Join(parts, ", ")
}
