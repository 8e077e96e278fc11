package driven

import (
	"context"

	"github.com/cortex-kb/cortex/internal/core/domain"
)

// ChunkStore persists chunks. Chunks are created in batches, never updated,
// and removed per-item or by cascade when the owning item is deleted.
type ChunkStore interface {
	// CreateBatch persists the given chunks with fresh IDs and one shared
	// creation timestamp. An empty batch is a no-op returning an empty
	// slice.
	CreateBatch(ctx context.Context, chunks []domain.NewChunk) ([]domain.Chunk, error)

	// ListByItem returns an item's chunks ordered by chunk index.
	ListByItem(ctx context.Context, itemID string) ([]domain.Chunk, error)

	// DeleteByItem removes all chunks for an item and returns the count
	// removed, 0 when there were none.
	DeleteByItem(ctx context.Context, itemID string) (int, error)

	// CountByItem returns the number of chunks stored for an item.
	CountByItem(ctx context.Context, itemID string) (int, error)
}
