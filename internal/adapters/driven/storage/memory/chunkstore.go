package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/cortex-kb/cortex/internal/core/domain"
	"github.com/cortex-kb/cortex/internal/core/ports/driven"
)

// Ensure chunkStore implements the interface.
var _ driven.ChunkStore = (*chunkStore)(nil)

// chunkStore is the in-memory implementation of driven.ChunkStore.
type chunkStore struct {
	store *Store
}

// CreateBatch stores chunks with fresh IDs and one shared timestamp.
// Chunks referencing a missing item are rejected, mirroring the foreign
// key constraint of the SQLite store.
func (s *chunkStore) CreateBatch(_ context.Context, chunks []domain.NewChunk) ([]domain.Chunk, error) {
	if len(chunks) == 0 {
		return []domain.Chunk{}, nil
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	now := time.Now().UTC().Truncate(time.Microsecond)
	created := make([]domain.Chunk, 0, len(chunks))
	for _, chunk := range chunks {
		if _, ok := s.store.items[chunk.ItemID]; !ok {
			return nil, fmt.Errorf("inserting chunk: item %s does not exist", chunk.ItemID)
		}
		created = append(created, domain.Chunk{
			ID:         uuid.New().String(),
			ItemID:     chunk.ItemID,
			ChunkIndex: chunk.ChunkIndex,
			Content:    chunk.Content,
			TokenCount: chunk.TokenCount,
			CreatedAt:  now,
		})
	}

	for _, chunk := range created {
		s.store.chunks[chunk.ItemID] = append(s.store.chunks[chunk.ItemID], chunk)
	}
	return created, nil
}

// ListByItem returns an item's chunks ordered by chunk index.
func (s *chunkStore) ListByItem(_ context.Context, itemID string) ([]domain.Chunk, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	stored := s.store.chunks[itemID]
	chunks := make([]domain.Chunk, len(stored))
	copy(chunks, stored)
	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].ChunkIndex < chunks[j].ChunkIndex
	})
	return chunks, nil
}

// DeleteByItem removes all chunks for an item and returns the count removed.
func (s *chunkStore) DeleteByItem(_ context.Context, itemID string) (int, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	removed := len(s.store.chunks[itemID])
	delete(s.store.chunks, itemID)
	return removed, nil
}

// CountByItem returns the number of chunks stored for an item.
func (s *chunkStore) CountByItem(_ context.Context, itemID string) (int, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	return len(s.store.chunks[itemID]), nil
}
