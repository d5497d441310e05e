// Package storage holds the client's durable state: the session file the
// cookie jar persists into, and a small sqlite cache of the signed-in user.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store is a durable string key-value store backed by a single JSON file.
// Every mutation rewrites the file, and the load-modify-save sequence is
// guarded by a mutex so concurrent requests cannot interleave their writes.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a store persisting at dir/name. The directory is created
// on first save, not here.
func NewStore(dir, name string) *Store {
	return &Store{path: filepath.Join(dir, name)}
}

// Get returns the value stored under key, or "" if nothing is stored.
func (s *Store) Get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return ""
	}
	return values[key]
}

// Put stores value under key, overwriting any previous value.
func (s *Store) Put(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		values = map[string]string{}
	}
	values[key] = value
	return s.save(values)
}

// Delete removes the value stored under key. Deleting an absent key is a
// no-op.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return nil
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return s.save(values)
}

func (s *Store) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("corrupt store file %s: %w", s.path, err)
	}
	return values, nil
}

func (s *Store) save(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	return nil
}
