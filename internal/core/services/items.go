package services

import (
	"context"
	"fmt"

	"github.com/cortex-kb/cortex/internal/core/domain"
	"github.com/cortex-kb/cortex/internal/core/ports/driven"
	"github.com/cortex-kb/cortex/internal/core/ports/driving"
)

// Ensure ItemService implements the interface.
var _ driving.ItemService = (*ItemService)(nil)

// ItemService manages items and their chunks. The stores beneath it treat
// absence as a normal outcome; this service converts absence into
// domain.ErrNotFound so boundary adapters map it uniformly.
type ItemService struct {
	itemStore  driven.ItemStore
	chunkStore driven.ChunkStore
}

// NewItemService creates a new item service.
func NewItemService(itemStore driven.ItemStore, chunkStore driven.ChunkStore) *ItemService {
	return &ItemService{
		itemStore:  itemStore,
		chunkStore: chunkStore,
	}
}

// Create stores a new item in the pending state.
func (s *ItemService) Create(ctx context.Context, item domain.NewItem) (*domain.Item, error) {
	return s.itemStore.Create(ctx, item)
}

// Get retrieves an item by ID.
func (s *ItemService) Get(ctx context.Context, id string) (*domain.Item, error) {
	item, err := s.itemStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// List returns one page of items, newest first, with the total count.
func (s *ItemService) List(ctx context.Context, offset, limit int) (*domain.ItemPage, error) {
	items, err := s.itemStore.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.itemStore.Count(ctx)
	if err != nil {
		return nil, err
	}
	// Empty pages serialize as [] rather than null.
	if items == nil {
		items = []domain.Item{}
	}
	return &domain.ItemPage{
		Items:  items,
		Total:  total,
		Offset: offset,
		Limit:  limit,
	}, nil
}

// Update applies a partial update and returns the updated item.
func (s *ItemService) Update(ctx context.Context, id string, patch domain.ItemPatch) (*domain.Item, error) {
	return s.itemStore.Update(ctx, id, patch)
}

// Delete removes an item and its chunks.
func (s *ItemService) Delete(ctx context.Context, id string) error {
	deleted, err := s.itemStore.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

// SetStatus moves an item to the given lifecycle state.
func (s *ItemService) SetStatus(ctx context.Context, id string, status domain.ProcessingStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid processing status %q: %w", status, domain.ErrInvalidInput)
	}
	return s.itemStore.UpdateStatus(ctx, id, status)
}

// ListByStatus returns all items in the given lifecycle state, newest first.
func (s *ItemService) ListByStatus(ctx context.Context, status domain.ProcessingStatus) ([]domain.Item, error) {
	return s.itemStore.ListByStatus(ctx, status)
}

// Chunks returns an item's chunks ordered by chunk index.
func (s *ItemService) Chunks(ctx context.Context, itemID string) ([]domain.Chunk, error) {
	// Verify item exists
	item, err := s.itemStore.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return s.chunkStore.ListByItem(ctx, itemID)
}

// AddChunks stores a batch of chunks for existing items.
func (s *ItemService) AddChunks(ctx context.Context, chunks []domain.NewChunk) ([]domain.Chunk, error) {
	if len(chunks) == 0 {
		return []domain.Chunk{}, nil
	}
	// Verify every referenced item exists before writing anything
	seen := make(map[string]bool, 1)
	for _, chunk := range chunks {
		if seen[chunk.ItemID] {
			continue
		}
		seen[chunk.ItemID] = true
		item, err := s.itemStore.Get(ctx, chunk.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, fmt.Errorf("item %s: %w", chunk.ItemID, domain.ErrNotFound)
		}
	}
	return s.chunkStore.CreateBatch(ctx, chunks)
}
