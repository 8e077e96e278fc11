package domain

import "time"

// Health states for the aggregate and for individual components.
const (
	HealthHealthy   = "healthy"
	HealthDegraded  = "degraded"
	HealthUnhealthy = "unhealthy"
)

// ComponentCheck is the verdict of one health probe.
type ComponentCheck struct {
	// Status is "healthy" or "unhealthy".
	Status string

	// LatencyMillis is how long the probe took, when it completed.
	LatencyMillis *int64

	// Error is the failure text for an unhealthy component.
	Error string
}

// HealthReport aggregates independent component checks into one verdict.
type HealthReport struct {
	// Status is "healthy" when all components pass, "degraded" when some
	// pass, "unhealthy" when none do.
	Status string

	// Version is the running backend version.
	Version string

	// Timestamp is when the checks ran (UTC).
	Timestamp time.Time

	// Checks maps component name to its verdict.
	Checks map[string]ComponentCheck
}

// Healthy reports whether every component passed.
func (r HealthReport) Healthy() bool {
	return r.Status == HealthHealthy
}
