// Package tui provides a terminal status dashboard for cortex.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/cortex-kb/cortex/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the dashboard.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Health aggregates component health probes.
	Health driving.HealthService

	// Status inspects the database file.
	Status driving.StatusService

	// Provider reports on the inference provider. Optional; the models
	// panel shows a placeholder without it.
	Provider driving.ProviderService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(health driving.HealthService, status driving.StatusService, provider driving.ProviderService) *Ports {
	return &Ports{
		Health:   health,
		Status:   status,
		Provider: provider,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Health == nil {
		return ErrMissingHealthService
	}
	if p.Status == nil {
		return ErrMissingStatusService
	}
	return nil
}
