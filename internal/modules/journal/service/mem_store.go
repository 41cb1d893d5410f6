package service

import (
	"context"
	"sync"
)

// MemStore is the no-database deployment: a bounded in-memory ring, oldest
// entries dropped first.
type MemStore struct {
	mu      sync.RWMutex
	entries []Entry
	cap     int
}

func NewMemStore(capacity int) *MemStore {
	if capacity <= 0 {
		capacity = 1000
	}
	return &MemStore{cap: capacity}
}

func (s *MemStore) Record(_ context.Context, entries []Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, entries...)
	if over := len(s.entries) - s.cap; over > 0 {
		s.entries = s.entries[over:]
	}
	return nil
}

func (s *MemStore) Recent(_ context.Context, instrument string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, 0, limit)
	for i := len(s.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if s.entries[i].Instrument == instrument {
			out = append(out, s.entries[i])
		}
	}
	return out, nil
}
