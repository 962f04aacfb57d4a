// Package store persists a path's tag blob in per-file metadata.
//
// A Store is a key/value attribute store keyed by path: each (path, key)
// pair holds one opaque value that is read and replaced whole. The default
// backend uses filesystem extended attributes; a SQLite sidecar database
// serves filesystems and platforms without user xattrs.
package store

import (
	"fmt"
)

// Backend names accepted by Open.
const (
	BackendXattr  = "xattr"
	BackendSQLite = "sqlite"
)

// Backends lists the valid backend names.
func Backends() []string {
	return []string{BackendXattr, BackendSQLite}
}

// Open returns the named backend. dbPath is only used by the SQLite backend.
func Open(backend, dbPath string) (Store, error) {
	switch backend {
	case "", BackendXattr:
		s, err := NewXattr()
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendSQLite:
		s, err := OpenSQLite(dbPath)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q (valid: %v)", backend, Backends())
	}
}
