package core

import (
	"context"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/inovacc/odoocli/internal/model"
	"github.com/inovacc/odoocli/internal/odoo"
)

var productFields = []string{"display_name", "list_price", "qty_available", "default_code", "uom_id"}

// ListProducts reads every saleable product.
func ListProducts(ctx context.Context, gw odoo.Caller) ([]model.Product, error) {
	return odoo.SearchRead[model.Product](ctx, gw, "product.product", odoo.Params{
		Domain: odoo.Domain{odoo.Cond("sale_ok", "=", true)},
		Fields: productFields,
	})
}

// FilterProducts keeps products whose name or internal reference contains
// query, ignoring case. An empty query keeps everything.
func FilterProducts(products []model.Product, query string) []model.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return products
	}

	out := make([]model.Product, 0, len(products))

	for _, p := range products {
		if strings.Contains(strings.ToLower(p.DisplayName), q) ||
			strings.Contains(strings.ToLower(p.DefaultCode.String()), q) {
			out = append(out, p)
		}
	}

	return out
}

// SuggestProducts returns up to n products closest to query by edit distance
// on name or internal reference. Used when FilterProducts finds nothing.
func SuggestProducts(products []model.Product, query string, n int) []model.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || n <= 0 {
		return nil
	}

	type scored struct {
		p    model.Product
		dist int
	}

	ranked := make([]scored, 0, len(products))

	for _, p := range products {
		d := levenshtein.ComputeDistance(q, strings.ToLower(p.DisplayName))

		if code := p.DefaultCode.String(); code != "" {
			d = min(d, levenshtein.ComputeDistance(q, strings.ToLower(code)))
		}

		ranked = append(ranked, scored{p: p, dist: d})
	}

	slices.SortStableFunc(ranked, func(a, b scored) int {
		return a.dist - b.dist
	})

	out := make([]model.Product, 0, min(n, len(ranked)))
	for _, s := range ranked[:min(n, len(ranked))] {
		out = append(out, s.p)
	}

	return out
}
