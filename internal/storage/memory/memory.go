package memory

import (
	"context"
	"sync"

	"github.com/meditrack/meditrack/internal/storage"
)

// Store is an in-memory blob store. It backs tests and the "memory"
// storage backend, where state lives only for the process lifetime.
type Store struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func New() *Store {
	return &Store{blobs: make(map[string][]byte)}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blob, ok := s.blobs[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := make([]byte, len(blob))
	copy(out, blob)
	return out, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob := make([]byte, len(value))
	copy(blob, value)
	s.blobs[key] = blob
	return nil
}
