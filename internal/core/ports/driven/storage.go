package driven

import (
	"context"

	"github.com/cortex-kb/cortex/internal/core/domain"
)

// StorageHealth exposes the liveness probe of the storage layer.
type StorageHealth interface {
	// Ping verifies the store answers a trivial query.
	Ping(ctx context.Context) error
}

// StoreInspector verifies an existing database file and reports on it.
// Verification is distinct from initialization: a missing file fails with
// domain.ErrStorageUnavailable instead of being created.
type StoreInspector interface {
	// Inspect returns version, table, and row-count information.
	Inspect(ctx context.Context) (*domain.StoreStatus, error)
}
