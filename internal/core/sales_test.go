package core

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/inovacc/odoocli/internal/model"
	"github.com/inovacc/odoocli/internal/odoo/odootest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListOrders_AttachesLines(t *testing.T) {
	srv := odootest.NewServer(t)
	srv.Handle("sale.order", "search_read", http.StatusOK, `[
		{"id":1,"name":"S001","display_name":"S001","partner_id":[7,"Acme"],"date_order":"2026-10-01 10:00:00","state":"draft","amount_total":30,"order_line":[11,12]},
		{"id":2,"name":"S002","display_name":"S002","partner_id":false,"date_order":false,"state":"sale","amount_total":0,"order_line":[]}
	]`)
	srv.Handle("sale.order.line", "search_read", http.StatusOK, `[
		{"id":12,"product_id":[5,"Chair"],"product_uom_qty":1,"price_unit":10,"price_subtotal":10},
		{"id":11,"product_id":[6,"Desk"],"product_uom_qty":2,"price_unit":10,"price_subtotal":20}
	]`)

	orders, err := ListOrders(context.Background(), gatewayFor(srv), DefaultOrderLimit)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	want := []model.SaleOrderLine{
		{ID: 11, ProductID: model.Many2One{ID: 6, Name: "Desk"}, ProductUomQty: 2, PriceUnit: 10, PriceSubtotal: 20},
		{ID: 12, ProductID: model.Many2One{ID: 5, Name: "Chair"}, ProductUomQty: 1, PriceUnit: 10, PriceSubtotal: 10},
	}
	if diff := cmp.Diff(want, orders[0].Lines); diff != "" {
		t.Errorf("order lines mismatch (-want +got):\n%s", diff)
	}

	assert.Empty(t, orders[1].Lines)
	assert.False(t, orders[1].PartnerID.Set())

	orderReq := srv.RequestsFor("sale.order", "search_read")
	require.Len(t, orderReq, 1)
	assert.Equal(t, float64(20), orderReq[0].Body["limit"])

	lineReq := srv.RequestsFor("sale.order.line", "search_read")
	require.Len(t, lineReq, 1)
	assert.Equal(t, []any{[]any{"id", "in", []any{float64(11), float64(12)}}}, lineReq[0].Body["domain"])
}

func TestListOrders_SkipsLineCallWithoutLines(t *testing.T) {
	srv := odootest.NewServer(t)
	srv.Handle("sale.order", "search_read", http.StatusOK, `[{"id":1,"name":"S001","order_line":[]}]`)

	orders, err := ListOrders(context.Background(), gatewayFor(srv), 20)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Empty(t, srv.RequestsFor("sale.order.line", "search_read"))
}

func TestSearchCustomersAndProducts(t *testing.T) {
	srv := odootest.NewServer(t)
	srv.Handle("res.partner", "search_read", http.StatusOK, `[{"id":7,"display_name":"Acme"}]`)
	srv.Handle("product.product", "search_read", http.StatusOK, `[{"id":5,"display_name":"Chair","list_price":25}]`)

	gw := gatewayFor(srv)

	customers, err := SearchCustomers(context.Background(), gw, "ac")
	require.NoError(t, err)
	assert.Equal(t, "Acme", customers[0].DisplayName.String())

	products, err := SearchSaleableProducts(context.Background(), gw, "cha")
	require.NoError(t, err)
	assert.Equal(t, 25.0, products[0].ListPrice)

	cReq := srv.RequestsFor("res.partner", "search_read")[0].Body
	assert.Equal(t, []any{
		[]any{"name", "ilike", "ac"},
		[]any{"customer_rank", ">", float64(0)},
	}, cReq["domain"])
	assert.Equal(t, float64(5), cReq["limit"])

	pReq := srv.RequestsFor("product.product", "search_read")[0].Body
	assert.Equal(t, []any{
		[]any{"name", "ilike", "cha"},
		[]any{"sale_ok", "=", true},
	}, pReq["domain"])
	assert.Equal(t, []any{"display_name", "list_price"}, pReq["fields"])
}

func TestQuotation_Validate(t *testing.T) {
	tests := []struct {
		name    string
		q       Quotation
		wantErr error
	}{
		{"no partner", Quotation{Lines: []QuotationLine{{ProductID: 1, Quantity: 1}}}, ErrNoPartner},
		{"no lines", Quotation{PartnerID: 7}, ErrNoLines},
		{"ok", Quotation{PartnerID: 7, Lines: []QuotationLine{{ProductID: 1, Quantity: 1}}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.q.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	err := Quotation{PartnerID: 7, Lines: []QuotationLine{{ProductID: 1, Quantity: 0}}}.Validate()

	var lineErr *LineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, 0, lineErr.Index)
	assert.Equal(t, "line 1: quantity must be at least 1", err.Error())
}

func TestQuotation_AddMergesSameProduct(t *testing.T) {
	var q Quotation
	q.Add(QuotationLine{ProductID: 5, Quantity: 1, PriceUnit: 10, HasPrice: true})
	q.Add(QuotationLine{ProductID: 6, Quantity: 1})
	q.Add(QuotationLine{ProductID: 5, Quantity: 2, PriceUnit: 99, HasPrice: true})
	q.Add(QuotationLine{ProductID: 6, Quantity: 1, PriceUnit: 3, HasPrice: true})

	want := []QuotationLine{
		{ProductID: 5, Quantity: 3, PriceUnit: 10, HasPrice: true},
		{ProductID: 6, Quantity: 2, PriceUnit: 3, HasPrice: true},
	}
	assert.Equal(t, want, q.Lines)
}

func TestCreateQuotation(t *testing.T) {
	srv := odootest.NewServer(t)
	srv.Handle("sale.order", "create", http.StatusOK, `[42]`)

	now := time.Date(2026, 10, 19, 14, 5, 9, 0, time.UTC)
	q := Quotation{PartnerID: 7, Lines: []QuotationLine{{ProductID: 5, Quantity: 2, PriceUnit: 12.5, HasPrice: true}}}

	id, err := CreateQuotation(context.Background(), gatewayFor(srv), q, now)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	reqs := srv.RequestsFor("sale.order", "create")
	require.Len(t, reqs, 1)

	want := map[string]any{
		"vals_list": []any{map[string]any{
			"partner_id": float64(7),
			"order_line": []any{[]any{float64(0), float64(0), map[string]any{
				"product_id":      float64(5),
				"product_uom_qty": float64(2),
				"price_unit":      12.5,
			}}},
			"date_order": "2026-10-19 14:05:09",
			"state":      "draft",
		}},
	}
	if diff := cmp.Diff(want, reqs[0].Body); diff != "" {
		t.Errorf("create body mismatch (-want +got):\n%s", diff)
	}
}

func TestQuotation_ValsOmitsMissingPrice(t *testing.T) {
	q := Quotation{PartnerID: 7, Lines: []QuotationLine{
		{ProductID: 5, Quantity: 2},
		{ProductID: 6, Quantity: 1, HasPrice: true},
	}}

	lines := q.Vals(time.Now())["order_line"].([]any)
	require.Len(t, lines, 2)

	first := lines[0].([]any)[2].(map[string]any)
	assert.NotContains(t, first, "price_unit")
	assert.Equal(t, int64(5), first["product_id"])

	second := lines[1].([]any)[2].(map[string]any)
	assert.Equal(t, 0.0, second["price_unit"], "an explicit zero price is sent")
}

func TestCreateQuotation_InvalidSendsNothing(t *testing.T) {
	srv := odootest.NewServer(t)

	_, err := CreateQuotation(context.Background(), gatewayFor(srv), Quotation{}, time.Now())
	require.ErrorIs(t, err, ErrNoPartner)
	assert.Empty(t, srv.Requests())
}

func TestCreateQuotation_UnexpectedReply(t *testing.T) {
	srv := odootest.NewServer(t)
	srv.Handle("sale.order", "create", http.StatusOK, `"ok"`)

	q := Quotation{PartnerID: 1, Lines: []QuotationLine{{ProductID: 1, Quantity: 1}}}

	_, err := CreateQuotation(context.Background(), gatewayFor(srv), q, time.Now())

	var unexpected *UnexpectedResponseError
	require.ErrorAs(t, err, &unexpected)
}

func TestExtractID(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		want   int64
		wantOK bool
	}{
		{"array of ids", []any{float64(42)}, 42, true},
		{"array of objects", []any{map[string]any{"id": float64(43)}}, 43, true},
		{"object", map[string]any{"id": float64(44)}, 44, true},
		{"number", float64(45), 45, true},
		{"empty array", []any{}, 0, false},
		{"string", "45", 0, false},
		{"fraction", 4.5, 0, false},
		{"nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractID(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ExtractID(%v) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestConfirmOrder(t *testing.T) {
	srv := odootest.NewServer(t)
	srv.Handle("sale.order", "action_confirm", http.StatusOK, `true`)

	require.NoError(t, ConfirmOrder(context.Background(), gatewayFor(srv), 42))

	reqs := srv.RequestsFor("sale.order", "action_confirm")
	require.Len(t, reqs, 1)
	assert.Equal(t, map[string]any{"ids": []any{float64(42)}}, reqs[0].Body)
}

func TestConfirmOrder_PropagatesServerError(t *testing.T) {
	srv := odootest.NewServer(t)
	srv.Handle("sale.order", "action_confirm", http.StatusUnprocessableEntity, `{"message":"already confirmed"}`)

	err := ConfirmOrder(context.Background(), gatewayFor(srv), 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}
