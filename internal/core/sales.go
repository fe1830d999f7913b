package core

import (
	"context"
	"time"

	"github.com/inovacc/odoocli/internal/model"
	"github.com/inovacc/odoocli/internal/odoo"
)

const (
	// DefaultOrderLimit is the number of orders shown by the sales tab
	DefaultOrderLimit = 20

	// SearchLimit bounds customer and product lookups while building a quotation
	SearchLimit = 5

	// OdooDateTime is the layout Odoo expects for datetime fields
	OdooDateTime = "2006-01-02 15:04:05"
)

var (
	orderFields     = []string{"name", "display_name", "partner_id", "date_order", "state", "amount_total", "order_line"}
	orderLineFields = []string{"product_id", "product_uom_qty", "price_unit", "price_subtotal"}
)

// ListOrders reads the latest sale orders and attaches their lines with one
// extra call. The second call is skipped when no order has lines.
func ListOrders(ctx context.Context, gw odoo.Caller, limit int) ([]model.SaleOrder, error) {
	orders, err := odoo.SearchRead[model.SaleOrder](ctx, gw, "sale.order", odoo.Params{
		Fields: orderFields,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	var lineIDs []int64
	for _, o := range orders {
		lineIDs = append(lineIDs, o.OrderLine...)
	}

	if len(lineIDs) == 0 {
		return orders, nil
	}

	lines, err := odoo.SearchRead[model.SaleOrderLine](ctx, gw, "sale.order.line", odoo.Params{
		Domain: odoo.Domain{odoo.Cond("id", "in", lineIDs)},
		Fields: orderLineFields,
	})
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]model.SaleOrderLine, len(lines))
	for _, l := range lines {
		byID[l.ID] = l
	}

	for i := range orders {
		for _, id := range orders[i].OrderLine {
			if l, ok := byID[id]; ok {
				orders[i].Lines = append(orders[i].Lines, l)
			}
		}
	}

	return orders, nil
}

// SearchCustomers finds customers whose name matches query.
func SearchCustomers(ctx context.Context, gw odoo.Caller, query string) ([]model.Partner, error) {
	return odoo.SearchRead[model.Partner](ctx, gw, "res.partner", odoo.Params{
		Domain: odoo.Domain{
			odoo.Cond("name", "ilike", query),
			odoo.Cond("customer_rank", ">", 0),
		},
		Fields: []string{"display_name"},
		Limit:  SearchLimit,
	})
}

// SearchSaleableProducts finds saleable products whose name matches query.
func SearchSaleableProducts(ctx context.Context, gw odoo.Caller, query string) ([]model.Product, error) {
	return odoo.SearchRead[model.Product](ctx, gw, "product.product", odoo.Params{
		Domain: odoo.Domain{
			odoo.Cond("name", "ilike", query),
			odoo.Cond("sale_ok", "=", true),
		},
		Fields: []string{"display_name", "list_price"},
		Limit:  SearchLimit,
	})
}

// QuotationLine is one product on a quotation. Without HasPrice the line is
// sent with no price_unit and Odoo computes it from the pricelist.
type QuotationLine struct {
	ProductID int64
	Quantity  float64
	PriceUnit float64
	HasPrice  bool
}

// Quotation is a draft sale order being assembled.
type Quotation struct {
	PartnerID int64
	Lines     []QuotationLine
}

// Add appends line, or adds its quantity to an existing line for the same
// product. The first explicit price given for a product is kept.
func (q *Quotation) Add(line QuotationLine) {
	for i := range q.Lines {
		if q.Lines[i].ProductID == line.ProductID {
			q.Lines[i].Quantity += line.Quantity

			if !q.Lines[i].HasPrice && line.HasPrice {
				q.Lines[i].PriceUnit = line.PriceUnit
				q.Lines[i].HasPrice = true
			}

			return
		}
	}

	q.Lines = append(q.Lines, line)
}

// Validate checks the quotation can be sent.
func (q Quotation) Validate() error {
	if q.PartnerID == 0 {
		return ErrNoPartner
	}

	if len(q.Lines) == 0 {
		return ErrNoLines
	}

	for i, l := range q.Lines {
		if l.ProductID == 0 {
			return &LineError{Index: i, Reason: "missing product"}
		}

		if l.Quantity < 1 {
			return &LineError{Index: i, Reason: "quantity must be at least 1"}
		}
	}

	return nil
}

// Vals returns the sale.order create values, with order lines as
// (0, 0, values) create commands.
func (q Quotation) Vals(now time.Time) map[string]any {
	lines := make([]any, 0, len(q.Lines))
	for _, l := range q.Lines {
		vals := map[string]any{
			"product_id":      l.ProductID,
			"product_uom_qty": l.Quantity,
		}
		if l.HasPrice {
			vals["price_unit"] = l.PriceUnit
		}

		lines = append(lines, []any{0, 0, vals})
	}

	return map[string]any{
		"partner_id": q.PartnerID,
		"order_line": lines,
		"date_order": now.UTC().Format(OdooDateTime),
		"state":      "draft",
	}
}

// CreateQuotation creates a draft sale order and returns its id.
func CreateQuotation(ctx context.Context, gw odoo.Caller, q Quotation, now time.Time) (int64, error) {
	if err := q.Validate(); err != nil {
		return 0, err
	}

	res, err := gw.Call(ctx, "sale.order", "create", odoo.Params{
		ValsList: []map[string]any{q.Vals(now)},
	})
	if err != nil {
		return 0, err
	}

	id, ok := ExtractID(res)
	if !ok {
		return 0, &UnexpectedResponseError{Operation: "sale.order create", Value: res}
	}

	return id, nil
}

// ExtractID reads a record id from a create reply: an array (first element's
// id, or the element itself), an object with "id", or a bare number.
func ExtractID(v any) (int64, bool) {
	switch t := v.(type) {
	case []any:
		if len(t) == 0 {
			return 0, false
		}

		return ExtractID(t[0])
	case map[string]any:
		return ExtractID(t["id"])
	case float64:
		if t <= 0 || t != float64(int64(t)) {
			return 0, false
		}

		return int64(t), true
	default:
		return 0, false
	}
}

// ConfirmOrder turns a quotation into a sale order.
func ConfirmOrder(ctx context.Context, gw odoo.Caller, id int64) error {
	_, err := gw.Call(ctx, "sale.order", "action_confirm", odoo.Params{IDs: []int64{id}})
	return err
}
