package wallet

import (
	"context"
	"sync"
)

// FlagStore persists the "previously connected" flag per client, the analogue of the
// browser's local storage entry.
type FlagStore interface {
	IsSet(ctx context.Context, clientID string) (bool, error)
	Set(ctx context.Context, clientID string) error
	Clear(ctx context.Context, clientID string) error
}

// MemoryFlagStore keeps flags in process memory.
type MemoryFlagStore struct {
	mu    sync.RWMutex
	flags map[string]struct{}
}

// NewMemoryFlagStore returns an empty store.
func NewMemoryFlagStore() *MemoryFlagStore {
	return &MemoryFlagStore{flags: make(map[string]struct{})}
}

func (s *MemoryFlagStore) IsSet(_ context.Context, clientID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.flags[clientID]
	return ok, nil
}

func (s *MemoryFlagStore) Set(_ context.Context, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags[clientID] = struct{}{}
	return nil
}

func (s *MemoryFlagStore) Clear(_ context.Context, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.flags, clientID)
	return nil
}
