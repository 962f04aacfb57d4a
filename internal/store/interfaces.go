// interfaces.go defines the attribute store abstraction.
//
// Reader and Writer are split so read-only operations (list, match) can
// depend on the narrower interface.

package store

import (
	"context"
	"errors"
)

var (
	// ErrNoAttribute indicates the path exists but has no value for the key.
	// Callers treat it as an empty tag set, not a failure.
	ErrNoAttribute = errors.New("attribute not found")
	// ErrUnsupported indicates the platform or filesystem cannot hold
	// extended attributes.
	ErrUnsupported = errors.New("extended attributes not supported")
)

// Reader reads attribute values.
type Reader interface {
	// Get returns the whole value stored under key for path, or
	// ErrNoAttribute when there is none.
	Get(ctx context.Context, path, key string) ([]byte, error)
}

// Writer replaces or removes attribute values. Each call is all-or-nothing.
type Writer interface {
	// Set replaces the value stored under key for path.
	Set(ctx context.Context, path, key string, value []byte) error

	// Delete removes key from path. Returns ErrNoAttribute when key was
	// not set.
	Delete(ctx context.Context, path, key string) error
}

// Store combines Reader and Writer with lifecycle management.
type Store interface {
	Reader
	Writer
	Close() error
}
