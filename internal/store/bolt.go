package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/inovacc/odoocli/internal/model"
	"go.etcd.io/bbolt"
)

const boltBucketState = "state" // key: blob key -> JSON document

// Bolt is the BoltDB backend.
type Bolt struct {
	storage *bbolt.DB
	path    string
}

// NewBolt opens or creates a Bolt database at path.
func NewBolt(path string) (*Bolt, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	instance, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	if err := instance.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucketState))
		return err
	}); err != nil {
		_ = instance.Close()

		return nil, err
	}

	return &Bolt{storage: instance, path: path}, nil
}

// Close closes the database.
func (b *Bolt) Close() error {
	return b.storage.Close()
}

func (b *Bolt) Ping() error {
	return b.storage.View(func(tx *bbolt.Tx) error {
		if tx.Bucket([]byte(boltBucketState)) == nil {
			return fmt.Errorf("bucket %q missing", boltBucketState)
		}

		return nil
	})
}

func (b *Bolt) Path() string {
	return b.path
}

func (b *Bolt) get(key string) ([]byte, error) {
	var out []byte

	err := b.storage.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket([]byte(boltBucketState)).Get([]byte(key)); v != nil {
			// bbolt values are only valid inside the transaction
			out = append([]byte(nil), v...)
		}

		return nil
	})

	return out, err
}

func (b *Bolt) put(key string, value []byte) error {
	return b.storage.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketState)).Put([]byte(key), value)
	})
}

func (b *Bolt) GetAuth() (*model.AuthRecord, error) {
	return getJSON[model.AuthRecord](b, KeyAuth)
}

func (b *Bolt) SaveAuth(rec *model.AuthRecord) error {
	return putJSON(b, KeyAuth, rec)
}

func (b *Bolt) GetConnectionConfig() (*model.ConnectionConfig, error) {
	return getJSON[model.ConnectionConfig](b, KeyConfig)
}

func (b *Bolt) SaveConnectionConfig(cfg *model.ConnectionConfig) error {
	return putJSON(b, KeyConfig, cfg)
}
