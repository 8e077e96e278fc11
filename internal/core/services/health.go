package services

import (
	"context"
	"fmt"
	"time"

	"github.com/cortex-kb/cortex/internal/core/domain"
	"github.com/cortex-kb/cortex/internal/core/ports/driven"
	"github.com/cortex-kb/cortex/internal/core/ports/driving"
)

// Ensure HealthService implements the interface.
var _ driving.HealthService = (*HealthService)(nil)

// Check probes one component and reports its verdict.
type Check func(ctx context.Context) domain.ComponentCheck

// HealthService aggregates independent component checks into one verdict.
// It holds no state between reports; every call re-runs every check.
type HealthService struct {
	version string
	checks  map[string]Check
}

// NewHealthService creates a health service reporting the given version.
func NewHealthService(version string) *HealthService {
	return &HealthService{
		version: version,
		checks:  make(map[string]Check),
	}
}

// Register adds a named component check. Registering the same name twice
// replaces the earlier check.
func (s *HealthService) Register(name string, check Check) {
	s.checks[name] = check
}

// Report runs every registered check and combines the results.
func (s *HealthService) Report(ctx context.Context) domain.HealthReport {
	checks := make(map[string]domain.ComponentCheck, len(s.checks))
	healthy := 0
	for name, check := range s.checks {
		result := check(ctx)
		checks[name] = result
		if result.Status == domain.HealthHealthy {
			healthy++
		}
	}

	status := domain.HealthHealthy
	switch {
	case len(checks) == 0 || healthy == len(checks):
		status = domain.HealthHealthy
	case healthy == 0:
		status = domain.HealthUnhealthy
	default:
		status = domain.HealthDegraded
	}

	return domain.HealthReport{
		Status:    status,
		Version:   s.version,
		Timestamp: time.Now().UTC(),
		Checks:    checks,
	}
}

// DatabaseCheck probes the store with a trivial query and reports latency.
func DatabaseCheck(store driven.StorageHealth) Check {
	return func(ctx context.Context) domain.ComponentCheck {
		start := time.Now()
		if err := store.Ping(ctx); err != nil {
			return domain.ComponentCheck{
				Status: domain.HealthUnhealthy,
				Error:  err.Error(),
			}
		}
		latency := time.Since(start).Milliseconds()
		return domain.ComponentCheck{
			Status:        domain.HealthHealthy,
			LatencyMillis: &latency,
		}
	}
}

// ProviderCheck probes the inference provider's availability.
func ProviderCheck(provider driven.InferenceProvider) Check {
	return func(ctx context.Context) domain.ComponentCheck {
		start := time.Now()
		if !provider.IsAvailable(ctx) {
			return domain.ComponentCheck{
				Status: domain.HealthUnhealthy,
				Error:  fmt.Sprintf("ollama not reachable at %s", provider.BaseURL()),
			}
		}
		latency := time.Since(start).Milliseconds()
		return domain.ComponentCheck{
			Status:        domain.HealthHealthy,
			LatencyMillis: &latency,
		}
	}
}
