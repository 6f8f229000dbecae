// Package storage provides snapshot persistence implementations.
package storage

import (
	"context"
	"sync"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
)

// Compile-time interface check.
var _ domain.SnapshotStore = (*MemoryStore)(nil)

// MemoryStore keeps the snapshot in process memory. Safe for concurrent access.
type MemoryStore struct {
	mu    sync.RWMutex
	data  []byte
	saved bool
	saves int
	log   *logger.Logger
}

// NewMemoryStore creates an empty in-memory snapshot store.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{log: log}
}

// Load returns a copy of the last saved snapshot.
func (s *MemoryStore) Load(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.saved {
		s.log.Debug("memory snapshot: nothing saved yet")
		return nil, domain.ErrNoSnapshot
	}
	return append([]byte(nil), s.data...), nil
}

// Save replaces the snapshot.
func (s *MemoryStore) Save(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = append([]byte(nil), data...)
	s.saved = true
	s.saves++
	s.log.Debug("memory snapshot saved (%d bytes)", len(data))
	return nil
}

// Saves returns how many times Save has been called.
func (s *MemoryStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

// Close is a no-op; it lets MemoryStore satisfy Adapter.
func (s *MemoryStore) Close() error { return nil }
