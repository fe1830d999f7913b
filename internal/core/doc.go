// Package core provides the business logic behind the odoocli tabs.
//
// Functions in this package return errors instead of printing and take the
// gateway as an [odoo.Caller], so they can be driven by the CLI, the menu or
// tests alike.
//
// # App
//
// [App] is built once by the root command and owns the persistent store, the
// credential sealer, the auth and config stores and the gateway:
//
//	app, err := core.NewApp(core.Options{Config: cfg, Logger: log})
//	defer app.Close()
//	orders, err := core.ListOrders(ctx, app.Gateway, core.DefaultOrderLimit)
//
// # Tabs
//
//   - Partners: [ListPartners], [NewPartnerStore]
//   - Inventory: [ListProducts], [FilterProducts], [SuggestProducts]
//   - Sales: [ListOrders], [SearchCustomers], [SearchSaleableProducts],
//     [CreateQuotation], [ConfirmOrder]
//   - Collections: [OutstandingInvoices], [InvoiceLines]
//   - Distribution: [AssignedMoves], [MoveLines], [SortMoves]
package core
