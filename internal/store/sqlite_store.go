package store

import (
	"context"

	"github.com/inovacc/odoocli/internal/model"
	"github.com/inovacc/odoocli/internal/store/sqlite"
)

// SQLiteWrapper wraps the sqlite.Store to implement the Store interface.
type SQLiteWrapper struct {
	store *sqlite.Store
	path  string
}

// NewSQLite opens or creates a SQLite database at path.
func NewSQLite(path string) (*SQLiteWrapper, error) {
	s, err := sqlite.New(context.Background(), path)
	if err != nil {
		return nil, err
	}

	return &SQLiteWrapper{store: s, path: path}, nil
}

func (w *SQLiteWrapper) Ping() error {
	return w.store.Ping(context.Background())
}

func (w *SQLiteWrapper) Close() error {
	return w.store.Close()
}

func (w *SQLiteWrapper) Path() string {
	return w.path
}

func (w *SQLiteWrapper) get(key string) ([]byte, error) {
	return w.store.Get(context.Background(), key)
}

func (w *SQLiteWrapper) put(key string, value []byte) error {
	return w.store.Put(context.Background(), key, value)
}

func (w *SQLiteWrapper) GetAuth() (*model.AuthRecord, error) {
	return getJSON[model.AuthRecord](w, KeyAuth)
}

func (w *SQLiteWrapper) SaveAuth(rec *model.AuthRecord) error {
	return putJSON(w, KeyAuth, rec)
}

func (w *SQLiteWrapper) GetConnectionConfig() (*model.ConnectionConfig, error) {
	return getJSON[model.ConnectionConfig](w, KeyConfig)
}

func (w *SQLiteWrapper) SaveConnectionConfig(cfg *model.ConnectionConfig) error {
	return putJSON(w, KeyConfig, cfg)
}
