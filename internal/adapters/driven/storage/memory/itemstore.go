package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/cortex-kb/cortex/internal/core/domain"
	"github.com/cortex-kb/cortex/internal/core/ports/driven"
)

// Ensure itemStore implements the interface.
var _ driven.ItemStore = (*itemStore)(nil)

// itemStore is the in-memory implementation of driven.ItemStore.
type itemStore struct {
	store *Store
}

// Create stores a new item with a generated ID and pending status.
func (s *itemStore) Create(_ context.Context, item domain.NewItem) (*domain.Item, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	// Truncate to microseconds to match SQLite timestamp precision
	now := time.Now().UTC().Truncate(time.Microsecond)
	created := domain.Item{
		ID:               uuid.New().String(),
		Title:            item.Title,
		Content:          item.Content,
		ContentType:      item.ContentType,
		SourceURL:        item.SourceURL,
		CreatedAt:        now,
		UpdatedAt:        now,
		ProcessingStatus: domain.StatusPending,
		Metadata:         item.Metadata,
	}

	s.store.nextID++
	s.store.items[created.ID] = created
	s.store.seq[created.ID] = s.store.nextID
	return &created, nil
}

// Get retrieves an item by ID.
// Returns nil and no error if the item does not exist.
func (s *itemStore) Get(_ context.Context, id string) (*domain.Item, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	item, ok := s.store.items[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

// List returns items ordered by creation time, newest first. Ties fall back
// to insertion order, latest insert first.
func (s *itemStore) List(_ context.Context, offset, limit int) ([]domain.Item, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	items := s.sortedLocked()
	if offset >= len(items) {
		return []domain.Item{}, nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end], nil
}

// sortedLocked snapshots all items newest first. Callers hold the lock.
func (s *itemStore) sortedLocked() []domain.Item {
	items := make([]domain.Item, 0, len(s.store.items))
	for _, item := range s.store.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return s.store.seq[items[i].ID] > s.store.seq[items[j].ID]
	})
	return items
}

// Update applies the non-nil patch fields and refreshes UpdatedAt.
func (s *itemStore) Update(_ context.Context, id string, patch domain.ItemPatch) (*domain.Item, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	item, ok := s.store.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	if patch.Title != nil {
		item.Title = *patch.Title
	}
	if patch.Content != nil {
		item.Content = *patch.Content
	}
	if patch.SourceURL != nil {
		item.SourceURL = patch.SourceURL
	}
	if patch.Metadata != nil {
		item.Metadata = patch.Metadata
	}
	item.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)

	s.store.items[id] = item
	return &item, nil
}

// Delete removes an item and its chunks.
func (s *itemStore) Delete(_ context.Context, id string) (bool, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, ok := s.store.items[id]; !ok {
		return false, nil
	}
	delete(s.store.items, id)
	delete(s.store.seq, id)
	delete(s.store.chunks, id)
	return true, nil
}

// Count returns the total number of items.
func (s *itemStore) Count(_ context.Context) (int, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	return len(s.store.items), nil
}

// ListByStatus returns items in the given lifecycle state, newest first.
func (s *itemStore) ListByStatus(_ context.Context, status domain.ProcessingStatus) ([]domain.Item, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	all := s.sortedLocked()
	matched := make([]domain.Item, 0, len(all))
	for _, item := range all {
		if item.ProcessingStatus == status {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

// UpdateStatus sets the lifecycle state and refreshes UpdatedAt.
func (s *itemStore) UpdateStatus(_ context.Context, id string, status domain.ProcessingStatus) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	item, ok := s.store.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	item.ProcessingStatus = status
	item.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
	s.store.items[id] = item
	return nil
}
