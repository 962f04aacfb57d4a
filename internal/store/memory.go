// memory.go provides an in-process Store for tests.

package store

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// MemoryStore implements Store with a map. Paths are used verbatim and need
// not exist on disk.
type MemoryStore struct {
	mu     sync.Mutex
	values map[memKey][]byte
	fail   map[string]error
}

type memKey struct {
	path, key string
}

var _ Store = (*MemoryStore)(nil)

// NewMemory returns an empty MemoryStore.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		values: make(map[memKey][]byte),
		fail:   make(map[string]error),
	}
}

// Fail makes every operation on path return err.
func (s *MemoryStore) Fail(path string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[path] = err
}

// Get returns a copy of the stored value.
func (s *MemoryStore) Get(_ context.Context, path, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail[path]; err != nil {
		return nil, err
	}
	v, ok := s.values[memKey{path, key}]
	if !ok {
		return nil, fmt.Errorf("get %s: %w", path, ErrNoAttribute)
	}
	return slices.Clone(v), nil
}

// Set stores a copy of value.
func (s *MemoryStore) Set(_ context.Context, path, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail[path]; err != nil {
		return err
	}
	if value == nil {
		value = []byte{}
	}
	s.values[memKey{path, key}] = slices.Clone(value)
	return nil
}

// Delete removes the value.
func (s *MemoryStore) Delete(_ context.Context, path, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail[path]; err != nil {
		return err
	}
	k := memKey{path, key}
	if _, ok := s.values[k]; !ok {
		return fmt.Errorf("delete %s: %w", path, ErrNoAttribute)
	}
	delete(s.values, k)
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
