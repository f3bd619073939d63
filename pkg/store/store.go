// Package store keeps the evaluation history in a bbolt database.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
	"src.smolcalc.dev/pkg/logutil"
	"src.smolcalc.dev/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[store] ")

// DBStore is the permanent storage backend.
type DBStore interface {
	storedefs.Store
	Close() error
}

type dbStore struct {
	db *bolt.DB
}

// Functions run when a database is opened, keyed by description.
var initDB = map[string]func(*bolt.Tx) error{}

// NewStore creates a new Store from the given file, creating its directory
// if needed.
func NewStore(dbname string) (DBStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbname), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(dbname, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dbname, err)
	}
	return NewStoreFromDB(db)
}

// NewStoreFromDB creates a new Store from a bolt DB.
func NewStoreFromDB(db *bolt.DB) (DBStore, error) {
	logger.Println("initializing store")
	err := db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				return fmt.Errorf("failed to %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &dbStore{db}, nil
}

// Close waits for all outstanding operations to finish, and closes the
// database.
func (s *dbStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
