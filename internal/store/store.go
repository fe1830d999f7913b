package store

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/inovacc/odoocli/internal/application"
	"github.com/inovacc/odoocli/internal/model"
)

// Blob keys.
const (
	KeyAuth   = "auth-storage"
	KeyConfig = "config-storage"
)

// Backends accepted by Open.
const (
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
)

// Store defines the persistence operations used by the state stores.
type Store interface {
	Ping() error
	Close() error

	// Path is the database file location.
	Path() string

	GetAuth() (*model.AuthRecord, error)
	SaveAuth(rec *model.AuthRecord) error

	GetConnectionConfig() (*model.ConnectionConfig, error)
	SaveConnectionConfig(cfg *model.ConnectionConfig) error
}

// blobs is the raw key/value surface both backends provide.
type blobs interface {
	get(key string) ([]byte, error)
	put(key string, value []byte) error
}

func getJSON[T any](b blobs, key string) (*T, error) {
	data, err := b.get(key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}

	if data == nil {
		return nil, nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}

	return &v, nil
}

func putJSON(b blobs, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	if err := b.put(key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}

	return nil
}

// DefaultPath returns the database file for backend in the application directory.
func DefaultPath(backend string) (string, error) {
	dir, err := application.GetApplicationDirectory()
	if err != nil {
		return "", err
	}

	name := application.AppName + ".bolt"
	if backend == BackendSQLite {
		name = application.AppName + ".db"
	}

	return filepath.Join(dir, name), nil
}

// Open opens the backend at path. An empty path uses DefaultPath.
func Open(backend, path string) (Store, error) {
	if backend == "" {
		backend = BackendBolt
	}

	if path == "" {
		p, err := DefaultPath(backend)
		if err != nil {
			return nil, err
		}

		path = p
	}

	switch backend {
	case BackendBolt:
		return NewBolt(path)
	case BackendSQLite:
		return NewSQLite(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
