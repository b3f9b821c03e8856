package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/samvad-hq/cryptonews-reader/internal/domain"
	bolt "go.etcd.io/bbolt"
)

const prefsBucket = "prefs"

// boltStore implements a Store backed by BoltDB.
type boltStore struct {
	db *bolt.DB
}

// openBolt initializes a BoltDB-backed Store.
func openBolt(path string) (Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(prefsBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	return &boltStore{db: db}, nil
}

// Close closes the BoltDB store.
func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// LoadSaved reads the saved id list. Corrupt values decode to an empty set.
func (b *boltStore) LoadSaved() (domain.SavedIDs, error) {
	if b == nil || b.db == nil {
		return domain.NewSavedIDs(), nil
	}

	var raw []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(prefsBucket))
		if bucket == nil {
			return fmt.Errorf("prefs bucket missing")
		}
		// Get's slice is only valid inside the transaction.
		if v := bucket.Get([]byte(SavedIDsKey)); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return domain.NewSavedIDs(), err
	}
	return decodeSaved(raw), nil
}

// SaveSaved rewrites the full saved id list.
func (b *boltStore) SaveSaved(ids domain.SavedIDs) error {
	if b == nil || b.db == nil {
		return nil
	}

	raw, err := encodeSaved(ids)
	if err != nil {
		return fmt.Errorf("encode saved ids: %w", err)
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(prefsBucket))
		if bucket == nil {
			return fmt.Errorf("prefs bucket missing")
		}
		return bucket.Put([]byte(SavedIDsKey), raw)
	})
}
