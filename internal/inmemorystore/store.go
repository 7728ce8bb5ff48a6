// Package inmemorystore provides an ephemeral, thread-safe, in-memory
// implementation of the trackstore.Store interface.
//
// It backs tests and CLI sessions started without a store path. Nothing
// survives the process.
package inmemorystore

import (
	"context"
	"sync"

	"github.com/specialistvlad/robotrack/internal/trackstore"
)

// Store is an in-memory implementation of trackstore.Store using sync.Map.
type Store struct {
	tracks sync.Map // Key: store key, Value: [][]bool
}

// New creates a new, empty in-memory track store.
func New() *Store {
	return &Store{}
}

// Get retrieves a copy of the matrix stored under key.
func (s *Store) Get(ctx context.Context, key string) ([][]bool, bool, error) {
	v, ok := s.tracks.Load(key)
	if !ok {
		return nil, false, nil
	}
	return trackstore.Clone(v.([][]bool)), true, nil
}

// Set stores a copy of matrix under key.
func (s *Store) Set(ctx context.Context, key string, matrix [][]bool) error {
	s.tracks.Store(key, trackstore.Clone(matrix))
	return nil
}

var _ trackstore.Store = (*Store)(nil)
