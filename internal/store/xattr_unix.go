//go:build linux || darwin

// xattr_unix.go stores attributes as filesystem extended attributes.
//
// Calls follow symlinks, so tagging a link tags its target.

package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"golang.org/x/sys/unix"
)

// XattrStore implements Store on top of extended attributes.
type XattrStore struct{}

var _ Store = (*XattrStore)(nil)

// NewXattr returns an extended attribute store.
func NewXattr() (*XattrStore, error) {
	return &XattrStore{}, nil
}

// Get reads the attribute, sizing the buffer from the kernel first.
func (s *XattrStore) Get(_ context.Context, path, key string) ([]byte, error) {
	for {
		size, err := unix.Getxattr(path, key, nil)
		if err != nil {
			return nil, xattrError("getxattr", path, err)
		}
		if size == 0 {
			return []byte{}, nil
		}

		buf := make([]byte, size)
		n, err := unix.Getxattr(path, key, buf)
		if errors.Is(err, unix.ERANGE) {
			// Value grew between the two calls.
			continue
		}
		if err != nil {
			return nil, xattrError("getxattr", path, err)
		}
		return buf[:n], nil
	}
}

// Set replaces the attribute value in a single call.
func (s *XattrStore) Set(_ context.Context, path, key string, value []byte) error {
	if err := unix.Setxattr(path, key, value, 0); err != nil {
		return xattrError("setxattr", path, err)
	}
	return nil
}

// Delete removes the attribute.
func (s *XattrStore) Delete(_ context.Context, path, key string) error {
	if err := unix.Removexattr(path, key); err != nil {
		return xattrError("removexattr", path, err)
	}
	return nil
}

// Close is a no-op; extended attributes hold no resources.
func (s *XattrStore) Close() error { return nil }

// xattrError maps errno values onto the package sentinels. Everything else
// becomes a *fs.PathError so errors.Is(err, fs.ErrNotExist) keeps working.
func xattrError(op, path string, err error) error {
	switch {
	case errors.Is(err, errNoAttr):
		return fmt.Errorf("%s %s: %w", op, path, ErrNoAttribute)
	case errors.Is(err, unix.ENOTSUP):
		return fmt.Errorf("%s %s: %w", op, path, ErrUnsupported)
	}
	return &fs.PathError{Op: op, Path: path, Err: err}
}
