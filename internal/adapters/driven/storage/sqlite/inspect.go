package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cortex-kb/cortex/internal/core/domain"
	"github.com/cortex-kb/cortex/internal/core/ports/driven"
)

// Inspector reports on an existing database file without creating it.
// Unlike NewStore, it opens nothing until Inspect is called and leaves a
// missing file missing.
type Inspector struct {
	path string
}

var _ driven.StoreInspector = (*Inspector)(nil)

// NewInspector creates an inspector for the database at path.
// If path is empty, defaults to ~/.cortex/cortex.db.
func NewInspector(path string) (*Inspector, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, ".cortex", "cortex.db")
	}
	return &Inspector{path: path}, nil
}

// Inspect returns version, table, and row-count information for the
// database file. Returns domain.ErrStorageUnavailable when the file does
// not exist.
func (i *Inspector) Inspect(ctx context.Context) (*domain.StoreStatus, error) {
	if _, err := os.Stat(i.path); os.IsNotExist(err) {
		return nil, domain.ErrStorageUnavailable
	}

	db, err := sql.Open("sqlite", i.path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	status := &domain.StoreStatus{}

	row := db.QueryRowContext(ctx, "SELECT sqlite_version()")
	if err := row.Scan(&status.SQLiteVersion); err != nil {
		return nil, fmt.Errorf("reading sqlite version: %w", err)
	}

	// vec_version() exists only when the sqlite-vec extension is loaded.
	// Absence is reported as an empty string, not an error.
	var vecVersion string
	if err := db.QueryRowContext(ctx, "SELECT vec_version()").Scan(&vecVersion); err == nil {
		status.VecVersion = vecVersion
	}

	rows, err := db.QueryContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	defer rows.Close()

	var tables []string //nolint:prealloc // size unknown from query
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tables: %w", err)
	}
	status.Tables = tables

	// Counts are best-effort: a file that predates the schema still gets a
	// status report with zero counts.
	_ = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM items").Scan(&status.ItemCount)
	_ = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&status.ChunkCount)

	return status, nil
}
