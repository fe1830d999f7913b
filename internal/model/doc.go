// Package model defines the data structures shared by odoocli packages.
//
// # Session and profiles
//
// [Session] is the authenticated connection owned by the auth store.
// [AuthRecord] is its persisted form, where the API key is replaced by a
// sealed credential blob. [ConnectionConfig] holds the three connection slots
// and the active slot id:
//
//	type ConnectionConfig struct {
//	    Profiles        []ConnectionProfile // always "1", "2", "3" by default
//	    ActiveProfileID string
//	}
//
// # Odoo records
//
// Entity types ([Partner], [Product], [SaleOrder], [Invoice], [StockMove] and
// their line types) mirror the fields requested by the tabs. Odoo encodes unset
// relational and text fields as false, so those fields use [Many2One] and
// [OptString].
package model
