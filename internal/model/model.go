package model

// Partner is a res.partner record.
type Partner struct {
	ID          int64     `json:"id"`
	Name        OptString `json:"name,omitempty"`
	DisplayName OptString `json:"display_name,omitempty"`
	Email       OptString `json:"email,omitempty"`
	Phone       OptString `json:"phone,omitempty"`
	City        OptString `json:"city,omitempty"`
	Lang        OptString `json:"lang,omitempty"`

	PropertyAccountReceivableID Many2One `json:"property_account_receivable_id"`
	PropertyAccountPayableID    Many2One `json:"property_account_payable_id"`
}

// Product is a product.product record.
type Product struct {
	ID           int64     `json:"id"`
	DisplayName  string    `json:"display_name"`
	ListPrice    float64   `json:"list_price"`
	QtyAvailable float64   `json:"qty_available"`
	DefaultCode  OptString `json:"default_code"`
	UomID        Many2One  `json:"uom_id"`
}

// SaleOrder is a sale.order record. Lines is filled client-side from OrderLine.
type SaleOrder struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	DisplayName string          `json:"display_name"`
	PartnerID   Many2One        `json:"partner_id"`
	DateOrder   OptString       `json:"date_order"`
	State       string          `json:"state"`
	AmountTotal float64         `json:"amount_total"`
	OrderLine   []int64         `json:"order_line"`
	Lines       []SaleOrderLine `json:"lines,omitempty"`
}

// SaleOrderLine is a sale.order.line record.
type SaleOrderLine struct {
	ID            int64    `json:"id"`
	ProductID     Many2One `json:"product_id"`
	ProductUomQty float64  `json:"product_uom_qty"`
	PriceUnit     float64  `json:"price_unit"`
	PriceSubtotal float64  `json:"price_subtotal"`
}

// Invoice is an account.move record of type out_invoice.
type Invoice struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	PartnerID      Many2One  `json:"partner_id"`
	InvoiceDate    OptString `json:"invoice_date"`
	InvoiceDateDue OptString `json:"invoice_date_due"`
	AmountTotal    float64   `json:"amount_total"`
	AmountResidual float64   `json:"amount_residual"`
	InvoiceLineIDs []int64   `json:"invoice_line_ids"`
}

// InvoiceLine is an account.move.line record.
type InvoiceLine struct {
	ID            int64     `json:"id"`
	Name          OptString `json:"name"`
	ProductID     Many2One  `json:"product_id"`
	Quantity      float64   `json:"quantity"`
	PriceUnit     float64   `json:"price_unit"`
	PriceSubtotal float64   `json:"price_subtotal"`
	Debit         float64   `json:"debit"`
	Credit        float64   `json:"credit"`
	ProductUomID  Many2One  `json:"product_uom_id"`
}

// StockMove is a stock.move record.
type StockMove struct {
	ID            int64     `json:"id"`
	Reference     OptString `json:"reference"`
	ProductID     Many2One  `json:"product_id"`
	ProductUomQty float64   `json:"product_uom_qty"`
	ProductUom    Many2One  `json:"product_uom"`
	State         string    `json:"state"`
	Origin        OptString `json:"origin"`
	PartnerID     Many2One  `json:"partner_id"`
	Date          OptString `json:"date"`
	DateDeadline  OptString `json:"date_deadline"`
	MoveLineIDs   []int64   `json:"move_line_ids"`
}

// StockMoveLine is a stock.move.line record.
type StockMoveLine struct {
	ID             int64    `json:"id"`
	ProductID      Many2One `json:"product_id"`
	Quantity       float64  `json:"quantity"`
	ProductUomID   Many2One `json:"product_uom_id"`
	LotID          Many2One `json:"lot_id"`
	LocationID     Many2One `json:"location_id"`
	LocationDestID Many2One `json:"location_dest_id"`
}

// User is a res.users record.
type User struct {
	ID          int64     `json:"id"`
	DisplayName OptString `json:"display_name"`
	Email       OptString `json:"email"`
}
