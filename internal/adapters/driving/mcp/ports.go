package mcp

import (
	"github.com/cortex-kb/cortex/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Items manages knowledge base items and their chunks.
	Items driving.ItemService

	// Status reports on the database file backing the store.
	Status driving.StatusService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Items == nil {
		return ErrMissingItemService
	}
	// Status is optional; the db resource answers not-found without it.
	return nil
}
