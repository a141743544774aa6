package storage

import (
	"encoding/json"
	"fmt"
	"sync"
)

// memStore implements Store in memory. Used by tests and by callers that opt
// out of persistence. Values round-trip through JSON so behaviour matches the
// file-backed store.
type memStore struct {
	mu     sync.Mutex
	values map[string][]byte
}

// NewMemStore returns an in-memory store.
func NewMemStore() Store {
	return &memStore{values: make(map[string][]byte)}
}

func (s *memStore) Get(key string, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.values[key]
	if !ok {
		return ErrNotFound
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode state for %s: %w", key, err)
	}
	return nil
}

func (s *memStore) Put(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode state for %s: %w", key, err)
	}
	s.values[key] = data
	return nil
}

func (s *memStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}
