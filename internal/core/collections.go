package core

import (
	"context"

	"github.com/inovacc/odoocli/internal/model"
	"github.com/inovacc/odoocli/internal/odoo"
)

// DefaultInvoiceLimit is the number of invoices shown by the collections tab.
const DefaultInvoiceLimit = 50

var (
	invoiceFields = []string{
		"name", "partner_id", "invoice_date", "invoice_date_due",
		"amount_total", "amount_residual", "invoice_line_ids",
	}
	invoiceLineFields = []string{
		"product_id", "quantity", "price_unit", "price_subtotal",
		"debit", "credit", "name", "product_uom_id",
	}
)

// OutstandingInvoices reads posted customer invoices that are not fully paid.
func OutstandingInvoices(ctx context.Context, gw odoo.Caller, limit int) ([]model.Invoice, error) {
	return odoo.SearchRead[model.Invoice](ctx, gw, "account.move", odoo.Params{
		Domain: odoo.Domain{
			odoo.Cond("move_type", "=", "out_invoice"),
			odoo.Cond("state", "=", "posted"),
			odoo.Cond("payment_state", "in", []string{"not_paid", "partial"}),
		},
		Fields: invoiceFields,
		Limit:  limit,
	})
}

// InvoiceLines reads the product lines of one invoice, without section and note rows.
func InvoiceLines(ctx context.Context, gw odoo.Caller, moveID int64) ([]model.InvoiceLine, error) {
	return odoo.SearchRead[model.InvoiceLine](ctx, gw, "account.move.line", odoo.Params{
		Domain: odoo.Domain{
			odoo.Cond("move_id", "=", moveID),
			odoo.Cond("display_type", "not in", []string{"line_section", "line_note"}),
		},
		Fields: invoiceLineFields,
	})
}

// Residual sums the amount still due over invoices.
func Residual(invoices []model.Invoice) float64 {
	var total float64
	for _, inv := range invoices {
		total += inv.AmountResidual
	}

	return total
}
