package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cortex-kb/cortex/internal/core/domain"
	"github.com/cortex-kb/cortex/internal/core/ports/driven"
)

// chunkStore implements driven.ChunkStore.
type chunkStore struct {
	store *Store
}

var _ driven.ChunkStore = (*chunkStore)(nil)

// CreateBatch stores chunks in a single transaction. Every chunk receives a
// fresh ID and all of them share one creation timestamp.
func (s *chunkStore) CreateBatch(ctx context.Context, chunks []domain.NewChunk) ([]domain.Chunk, error) {
	if len(chunks) == 0 {
		return []domain.Chunk{}, nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, item_id, chunk_index, content, token_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	stamp := formatTime(now)
	createdAt, err := parseTime(stamp)
	if err != nil {
		return nil, fmt.Errorf("parsing chunk created_at: %w", err)
	}

	created := make([]domain.Chunk, 0, len(chunks))
	for _, chunk := range chunks {
		id := uuid.New().String()
		if _, err := stmt.ExecContext(ctx, id, chunk.ItemID, chunk.ChunkIndex,
			chunk.Content, nullableInt(chunk.TokenCount), stamp); err != nil {
			return nil, fmt.Errorf("inserting chunk: %w", err)
		}

		created = append(created, domain.Chunk{
			ID:         id,
			ItemID:     chunk.ItemID,
			ChunkIndex: chunk.ChunkIndex,
			Content:    chunk.Content,
			TokenCount: chunk.TokenCount,
			CreatedAt:  createdAt,
		})
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return created, nil
}

// ListByItem returns an item's chunks ordered by chunk index.
func (s *chunkStore) ListByItem(ctx context.Context, itemID string) ([]domain.Chunk, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, item_id, chunk_index, content, token_count, created_at
		FROM chunks
		WHERE item_id = ?
		ORDER BY chunk_index
	`, itemID)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		chunk, err := scanChunkRows(rows)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, *chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	return chunks, nil
}

// DeleteByItem removes all chunks for an item and returns the count removed.
func (s *chunkStore) DeleteByItem(ctx context.Context, itemID string) (int, error) {
	result, err := s.store.db.ExecContext(ctx, "DELETE FROM chunks WHERE item_id = ?", itemID)
	if err != nil {
		return 0, fmt.Errorf("deleting chunks: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted chunks: %w", err)
	}
	return int(affected), nil
}

// CountByItem returns the number of chunks stored for an item.
func (s *chunkStore) CountByItem(ctx context.Context, itemID string) (int, error) {
	var count int
	row := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks WHERE item_id = ?", itemID)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return count, nil
}

// ==================== Helper Functions ====================

// scanChunkRows scans a chunk from *sql.Rows.
func scanChunkRows(rows *sql.Rows) (*domain.Chunk, error) {
	var chunk domain.Chunk
	var tokenCount sql.NullInt64
	var createdAt string

	if err := rows.Scan(&chunk.ID, &chunk.ItemID, &chunk.ChunkIndex,
		&chunk.Content, &tokenCount, &createdAt); err != nil {
		return nil, fmt.Errorf("scanning chunk: %w", err)
	}

	if tokenCount.Valid {
		n := int(tokenCount.Int64)
		chunk.TokenCount = &n
	}

	var err error
	if chunk.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing chunk created_at: %w", err)
	}

	return &chunk, nil
}

// nullableInt returns nil for a nil pointer, otherwise the value.
func nullableInt(p *int) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
