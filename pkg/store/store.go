// Package store keeps the command history in an embedded database, either
// bbolt or SQLite.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/elves/edline/pkg/logutil"
	"github.com/elves/edline/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[store] ")

// DBStore is the permanent storage backend for command history.
type DBStore interface {
	storedefs.Store
	Close() error
}

// Names of the database engines accepted by Open.
const (
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
)

// Open opens the named backend on the file at path, creating the file and its
// parent directory as needed.
func Open(backend, path string) (DBStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}
	switch backend {
	case BackendBolt:
		return NewBoltStore(path)
	case BackendSQLite:
		return NewSQLiteStore(path)
	}
	return nil, fmt.Errorf("unknown history backend %q", backend)
}
