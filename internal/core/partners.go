package core

import (
	"context"

	"github.com/inovacc/odoocli/internal/model"
	"github.com/inovacc/odoocli/internal/odoo"
	"github.com/inovacc/odoocli/internal/state"
)

// PartnerStoreLimit is the number of partners loaded by the partner list store.
const PartnerStoreLimit = 100

var (
	partnerStoreFields = []string{"name", "email", "phone", "city"}
	partnerTabFields   = []string{
		"display_name", "email", "phone", "lang",
		"property_account_receivable_id", "property_account_payable_id",
	}
)

// NewPartnerStore returns a list store backed by res.partner search_read.
func NewPartnerStore(gw odoo.Caller, opts ...state.ListOption) *state.ListStore[model.Partner] {
	return state.NewListStore(func(ctx context.Context) ([]model.Partner, error) {
		return odoo.SearchRead[model.Partner](ctx, gw, "res.partner", odoo.Params{
			Fields: partnerStoreFields,
			Limit:  PartnerStoreLimit,
		})
	}, opts...)
}

// ListPartners reads every partner with their receivable and payable accounts.
func ListPartners(ctx context.Context, gw odoo.Caller) ([]model.Partner, error) {
	return odoo.SearchRead[model.Partner](ctx, gw, "res.partner", odoo.Params{
		Fields: partnerTabFields,
	})
}
