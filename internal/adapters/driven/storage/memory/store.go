// Package memory provides in-memory implementations of the storage driven
// ports. Used in service tests where a real SQLite database is unnecessary.
package memory

import (
	"sync"

	"github.com/cortex-kb/cortex/internal/core/domain"
	"github.com/cortex-kb/cortex/internal/core/ports/driven"
)

// Store is an in-memory counterpart of the SQLite store. Items and chunks
// share one lock so that item deletion cascades to chunks atomically.
type Store struct {
	mu     sync.RWMutex
	items  map[string]domain.Item
	seq    map[string]int64
	chunks map[string][]domain.Chunk
	nextID int64
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		items:  make(map[string]domain.Item),
		seq:    make(map[string]int64),
		chunks: make(map[string][]domain.Chunk),
	}
}

// ItemStore returns an ItemStore interface backed by this store.
func (s *Store) ItemStore() driven.ItemStore {
	return &itemStore{store: s}
}

// ChunkStore returns a ChunkStore interface backed by this store.
func (s *Store) ChunkStore() driven.ChunkStore {
	return &chunkStore{store: s}
}
