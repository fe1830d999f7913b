// Package state holds the retained client-side stores: the auth session,
// the connection profiles and fetched entity lists.
//
// Every store guards its fields with a mutex and persists through a narrow
// repository interface satisfied by store.Store.
package state
