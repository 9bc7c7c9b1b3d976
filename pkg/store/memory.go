package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory archive for tests and single-process
// use. Safe for concurrent access.
type MemoryStore struct {
	mu   sync.RWMutex
	recs map[string]Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{recs: make(map[string]Record)}
}

// Put inserts or replaces the record for its utterance ID.
func (s *MemoryStore) Put(ctx context.Context, rec Record) error {
	if rec.StoredAt.IsZero() {
		rec.StoredAt = time.Now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs[rec.UtteranceID] = rec
	return nil
}

// Get retrieves a record by utterance ID.
func (s *MemoryStore) Get(ctx context.Context, utteranceID string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.recs[utteranceID]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

// List returns all archived utterance IDs, sorted ascending.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.recs))
	for id := range s.recs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
