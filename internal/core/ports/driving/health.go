package driving

import (
	"context"

	"github.com/cortex-kb/cortex/internal/core/domain"
)

// HealthService aggregates independent component probes into one verdict.
type HealthService interface {
	// Report runs every registered check and combines the results.
	// It always produces a report; failures are captured per component.
	Report(ctx context.Context) domain.HealthReport
}

// StatusService reports on the database file backing the store.
type StatusService interface {
	// Status verifies the database and returns version, table, and count
	// information. Fails with domain.ErrStorageUnavailable when the file
	// does not exist.
	Status(ctx context.Context) (*domain.StoreStatus, error)
}
