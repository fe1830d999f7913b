package core

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/inovacc/odoocli/internal/model"
	"github.com/inovacc/odoocli/internal/odoo"
)

// DefaultMoveLimit is the number of stock moves shown by the distribution tab.
const DefaultMoveLimit = 100

var (
	moveFields = []string{
		"reference", "product_id", "product_uom_qty", "product_uom", "state",
		"origin", "partner_id", "date", "date_deadline", "move_line_ids",
	}
	moveLineFields = []string{
		"product_id", "quantity", "product_uom_id", "lot_id", "location_id", "location_dest_id",
	}
)

// View selects how the distribution tab orders moves.
type View string

const (
	ViewByClient  View = "client"
	ViewByProduct View = "product"
)

// ParseView accepts "client" or "product".
func ParseView(s string) (View, error) {
	switch View(strings.ToLower(strings.TrimSpace(s))) {
	case "", ViewByClient:
		return ViewByClient, nil
	case ViewByProduct:
		return ViewByProduct, nil
	default:
		return "", fmt.Errorf("unknown view %q (want client or product)", s)
	}
}

// AssignedMoves reads stock moves that are ready to deliver.
func AssignedMoves(ctx context.Context, gw odoo.Caller, limit int) ([]model.StockMove, error) {
	return odoo.SearchRead[model.StockMove](ctx, gw, "stock.move", odoo.Params{
		Domain: odoo.Domain{odoo.Cond("state", "=", "assigned")},
		Fields: moveFields,
		Limit:  limit,
	})
}

// MoveLines reads the detailed operations of one move.
func MoveLines(ctx context.Context, gw odoo.Caller, moveID int64) ([]model.StockMoveLine, error) {
	return odoo.SearchRead[model.StockMoveLine](ctx, gw, "stock.move.line", odoo.Params{
		Domain: odoo.Domain{odoo.Cond("move_id", "=", moveID)},
		Fields: moveLineFields,
	})
}

// SortMoves returns moves ordered for view. The client view keeps server
// order; the product view is a stable sort by product name. The input is not modified.
func SortMoves(moves []model.StockMove, view View) []model.StockMove {
	out := slices.Clone(moves)

	if view == ViewByProduct {
		slices.SortStableFunc(out, func(a, b model.StockMove) int {
			return strings.Compare(a.ProductID.Name, b.ProductID.Name)
		})
	}

	return out
}
