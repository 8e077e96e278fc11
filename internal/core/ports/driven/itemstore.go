package driven

import (
	"context"

	"github.com/cortex-kb/cortex/internal/core/domain"
)

// ItemStore persists items.
// Backed by SQLite for metadata storage.
type ItemStore interface {
	// Create persists a new item with a generated ID, pending status, and
	// matching creation/update timestamps, then returns the stored record.
	Create(ctx context.Context, item domain.NewItem) (*domain.Item, error)

	// Get retrieves an item by ID. Absence is a normal outcome and is
	// reported as (nil, nil), not an error.
	Get(ctx context.Context, id string) (*domain.Item, error)

	// List returns items ordered by creation time, newest first.
	// Ties within one timestamp tick have store-defined relative order.
	List(ctx context.Context, offset, limit int) ([]domain.Item, error)

	// Update applies the non-nil patch fields and refreshes the update
	// timestamp. Returns domain.ErrNotFound when the item does not exist.
	Update(ctx context.Context, id string, patch domain.ItemPatch) (*domain.Item, error)

	// Delete removes an item and, by cascade, its chunks. Reports whether
	// a row was removed.
	Delete(ctx context.Context, id string) (bool, error)

	// Count returns the total number of items.
	Count(ctx context.Context) (int, error)

	// ListByStatus returns items in the given lifecycle state, newest first.
	ListByStatus(ctx context.Context, status domain.ProcessingStatus) ([]domain.Item, error)

	// UpdateStatus sets the lifecycle state and refreshes the update
	// timestamp. Returns domain.ErrNotFound when the item does not exist.
	UpdateStatus(ctx context.Context, id string, status domain.ProcessingStatus) error
}
