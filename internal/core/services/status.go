package services

import (
	"context"

	"github.com/cortex-kb/cortex/internal/core/domain"
	"github.com/cortex-kb/cortex/internal/core/ports/driven"
	"github.com/cortex-kb/cortex/internal/core/ports/driving"
)

// Ensure StatusService implements the interface.
var _ driving.StatusService = (*StatusService)(nil)

// StatusService reports on the database file backing the store.
type StatusService struct {
	inspector driven.StoreInspector
}

// NewStatusService creates a new status service.
func NewStatusService(inspector driven.StoreInspector) *StatusService {
	return &StatusService{inspector: inspector}
}

// Status verifies the database and returns version, table, and count
// information.
func (s *StatusService) Status(ctx context.Context) (*domain.StoreStatus, error) {
	return s.inspector.Inspect(ctx)
}
