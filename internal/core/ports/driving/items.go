package driving

import (
	"context"

	"github.com/cortex-kb/cortex/internal/core/domain"
)

// ItemService manages items and their chunks. Unlike the stores beneath
// it, absence here is an error: lookups on unknown IDs fail with
// domain.ErrNotFound so boundary adapters can map them uniformly.
type ItemService interface {
	// Create stores a new item in the pending state.
	Create(ctx context.Context, item domain.NewItem) (*domain.Item, error)

	// Get retrieves an item by ID.
	Get(ctx context.Context, id string) (*domain.Item, error)

	// List returns one page of items, newest first, together with the
	// total item count. Offset and limit arrive already validated by the
	// boundary.
	List(ctx context.Context, offset, limit int) (*domain.ItemPage, error)

	// Update applies a partial update and returns the updated item.
	Update(ctx context.Context, id string, patch domain.ItemPatch) (*domain.Item, error)

	// Delete removes an item and its chunks.
	Delete(ctx context.Context, id string) error

	// SetStatus moves an item to the given lifecycle state. Fails with
	// domain.ErrInvalidInput for unknown states.
	SetStatus(ctx context.Context, id string, status domain.ProcessingStatus) error

	// ListByStatus returns all items in the given lifecycle state,
	// newest first.
	ListByStatus(ctx context.Context, status domain.ProcessingStatus) ([]domain.Item, error)

	// Chunks returns an item's chunks ordered by chunk index. Fails with
	// domain.ErrNotFound when the item does not exist.
	Chunks(ctx context.Context, itemID string) ([]domain.Chunk, error)

	// AddChunks stores a batch of chunks for existing items.
	AddChunks(ctx context.Context, chunks []domain.NewChunk) ([]domain.Chunk, error)
}
