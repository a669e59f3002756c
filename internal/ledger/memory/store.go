// Package memory implements an in-process ledger store used by tests
// and as a throwaway dev backend.
package memory

import (
	"context"
	"fmt"
	"sync"

	"outlay/internal/core"
	"outlay/internal/ledger"
)

type Store struct {
	mu    sync.Mutex
	items []core.Record
}

var _ ledger.Store = (*Store)(nil)

func New() *Store {
	return &Store{}
}

// Append stores the record and returns a synthetic reference.
func (s *Store) Append(_ context.Context, r core.Record) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, r)
	return fmt.Sprintf("mem:%d", len(s.items)), nil
}

// LoadAll returns a copy of the ledger in insertion order.
func (s *Store) LoadAll(_ context.Context) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Record, len(s.items))
	copy(out, s.items)
	return out, nil
}
