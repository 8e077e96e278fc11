package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cortex-kb/cortex/internal/core/domain"
	"github.com/cortex-kb/cortex/internal/core/ports/driven"
)

// itemStore implements driven.ItemStore.
type itemStore struct {
	store *Store
}

var _ driven.ItemStore = (*itemStore)(nil)

// Create persists a new item and returns the stored record.
// ID, timestamps, and the pending status are assigned here.
func (s *itemStore) Create(ctx context.Context, item domain.NewItem) (*domain.Item, error) {
	metadata, err := marshalMetadata(item.Metadata)
	if err != nil {
		return nil, fmt.Errorf("encoding item metadata: %w", err)
	}

	id := uuid.New().String()
	now := formatTime(time.Now())

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO items (id, title, content, content_type, source_url, created_at, updated_at, processing_status, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, item.Title, item.Content, string(item.ContentType),
		nullableString(item.SourceURL), now, now,
		string(domain.StatusPending), metadata)
	if err != nil {
		return nil, fmt.Errorf("inserting item: %w", err)
	}

	created, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, &domain.DatabaseError{Op: "create item", Err: sql.ErrNoRows}
	}
	return created, nil
}

// Get retrieves an item by ID.
// Returns nil and no error if the item does not exist.
func (s *itemStore) Get(ctx context.Context, id string) (*domain.Item, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, title, content, content_type, source_url, created_at, updated_at, processing_status, metadata
		FROM items WHERE id = ?
	`, id)

	item, err := scanItem(row)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil // Per interface: return nil and no error if not found
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// List returns items ordered by creation time, newest first. The rowid
// tiebreak keeps the order stable when timestamps collide within one tick.
func (s *itemStore) List(ctx context.Context, offset, limit int) ([]domain.Item, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, title, content, content_type, source_url, created_at, updated_at, processing_status, metadata
		FROM items
		ORDER BY created_at DESC, rowid DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item //nolint:prealloc // size unknown from query
	for rows.Next() {
		item, err := scanItemRows(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}

	return items, nil
}

// Update applies the non-nil patch fields and refreshes updated_at.
// Returns domain.ErrNotFound when the item does not exist.
func (s *itemStore) Update(ctx context.Context, id string, patch domain.ItemPatch) (*domain.Item, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}

	sets := []string{"updated_at = ?"}
	args := []interface{}{formatTime(time.Now())}

	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *patch.Content)
	}
	if patch.SourceURL != nil {
		sets = append(sets, "source_url = ?")
		args = append(args, *patch.SourceURL)
	}
	if patch.Metadata != nil {
		metadata, err := marshalMetadata(patch.Metadata)
		if err != nil {
			return nil, fmt.Errorf("encoding item metadata: %w", err)
		}
		sets = append(sets, "metadata = ?")
		args = append(args, metadata)
	}

	args = append(args, id)
	query := "UPDATE items SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := s.store.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("updating item: %w", err)
	}

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, &domain.DatabaseError{Op: "update item", Err: sql.ErrNoRows}
	}
	return updated, nil
}

// Delete removes an item. Chunks follow by cascade.
// Reports whether a row was removed.
func (s *itemStore) Delete(ctx context.Context, id string) (bool, error) {
	result, err := s.store.db.ExecContext(ctx, "DELETE FROM items WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("deleting item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("counting deleted items: %w", err)
	}
	return affected > 0, nil
}

// Count returns the total number of items.
func (s *itemStore) Count(ctx context.Context) (int, error) {
	var count int
	row := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM items")
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting items: %w", err)
	}
	return count, nil
}

// ListByStatus returns items in the given lifecycle state, newest first.
func (s *itemStore) ListByStatus(ctx context.Context, status domain.ProcessingStatus) ([]domain.Item, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, title, content, content_type, source_url, created_at, updated_at, processing_status, metadata
		FROM items
		WHERE processing_status = ?
		ORDER BY created_at DESC, rowid DESC
	`, string(status))
	if err != nil {
		return nil, fmt.Errorf("querying items by status: %w", err)
	}
	defer rows.Close()

	var items []domain.Item //nolint:prealloc // size unknown from query
	for rows.Next() {
		item, err := scanItemRows(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items by status: %w", err)
	}

	return items, nil
}

// UpdateStatus sets the lifecycle state and refreshes updated_at.
// Returns domain.ErrNotFound when the item does not exist.
func (s *itemStore) UpdateStatus(ctx context.Context, id string, status domain.ProcessingStatus) error {
	result, err := s.store.db.ExecContext(ctx, `
		UPDATE items SET processing_status = ?, updated_at = ? WHERE id = ?
	`, string(status), formatTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("updating item status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("counting updated items: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ==================== Helper Functions ====================

// scanItem scans a single item row.
func scanItem(row *sql.Row) (*domain.Item, error) {
	var item domain.Item
	var contentType, status, createdAt, updatedAt string
	var sourceURL, metadata sql.NullString

	if err := row.Scan(&item.ID, &item.Title, &item.Content, &contentType,
		&sourceURL, &createdAt, &updatedAt, &status, &metadata); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning item: %w", err)
	}

	return buildItem(&item, contentType, status, createdAt, updatedAt, sourceURL, metadata)
}

// scanItemRows scans an item from *sql.Rows.
func scanItemRows(rows *sql.Rows) (*domain.Item, error) {
	var item domain.Item
	var contentType, status, createdAt, updatedAt string
	var sourceURL, metadata sql.NullString

	if err := rows.Scan(&item.ID, &item.Title, &item.Content, &contentType,
		&sourceURL, &createdAt, &updatedAt, &status, &metadata); err != nil {
		return nil, fmt.Errorf("scanning item: %w", err)
	}

	return buildItem(&item, contentType, status, createdAt, updatedAt, sourceURL, metadata)
}

// buildItem converts scanned columns into their domain representations.
func buildItem(item *domain.Item, contentType, status, createdAt, updatedAt string,
	sourceURL, metadata sql.NullString) (*domain.Item, error) {
	item.ContentType = domain.ContentType(contentType)
	item.ProcessingStatus = domain.ProcessingStatus(status)

	var err error
	if item.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing item created_at: %w", err)
	}
	if item.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing item updated_at: %w", err)
	}

	if sourceURL.Valid {
		item.SourceURL = &sourceURL.String
	}

	if metadata.Valid && metadata.String != "" && metadata.String != jsonNull {
		if err := json.Unmarshal([]byte(metadata.String), &item.Metadata); err != nil {
			return nil, fmt.Errorf("decoding item metadata: %w", err)
		}
	}

	return item, nil
}

// marshalMetadata serializes metadata to JSON text, or nil for an absent map.
func marshalMetadata(m map[string]any) (interface{}, error) {
	if m == nil {
		return nil, nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// nullableString returns nil for a nil pointer, otherwise the value.
func nullableString(p *string) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
