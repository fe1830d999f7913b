// Package store persists the two client-side state blobs, "auth-storage"
// and "config-storage".
//
// The [Store] interface is implemented by a BoltDB backend ([Bolt], the
// default) and a SQLite backend ([SQLiteWrapper]). Both keep each blob as a
// JSON document under its key, so a missing key reads as nil without error:
//
//	st, err := store.Open(store.BackendBolt, "")
//	cfg, err := st.GetConnectionConfig() // nil, nil on first run
//
// Entity data fetched from Odoo is never stored.
package store
