//go:build !linux && !darwin

package store

import "context"

// XattrStore is unavailable on this platform. Use the sqlite backend.
type XattrStore struct{}

var _ Store = (*XattrStore)(nil)

// NewXattr always fails on this platform.
func NewXattr() (*XattrStore, error) {
	return nil, ErrUnsupported
}

// Get always fails on this platform.
func (s *XattrStore) Get(context.Context, string, string) ([]byte, error) {
	return nil, ErrUnsupported
}

// Set always fails on this platform.
func (s *XattrStore) Set(context.Context, string, string, []byte) error {
	return ErrUnsupported
}

// Delete always fails on this platform.
func (s *XattrStore) Delete(context.Context, string, string) error {
	return ErrUnsupported
}

// Close is a no-op.
func (s *XattrStore) Close() error { return nil }
