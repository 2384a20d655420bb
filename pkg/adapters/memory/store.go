// Package memory implements ports.RecordStore in process memory.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/mosaic/pkg/domain"
)

// Store keeps record sets in a map. Safe for concurrent use. Entries live
// until deleted or process end; there is no eviction.
type Store struct {
	data map[string][]domain.Record
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string][]domain.Record),
	}
}

// Get retrieves the records for a key. The result is a copy so callers
// can't mutate store state by reference.
func (s *Store) Get(ctx context.Context, key string) ([]domain.Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return domain.CloneRecords(records), true, nil
}

// Set stores a copy of the records for a key.
func (s *Store) Set(ctx context.Context, key string, records []domain.Record) error {
	copied := domain.CloneRecords(records)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = copied
	return nil
}

// Delete removes the entry for a key.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Keys lists present keys.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for key := range s.data {
		keys = append(keys, key)
	}
	return keys, nil
}
