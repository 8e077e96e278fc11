// Package messages defines the message types passed between TUI components.
package messages

import (
	"github.com/cortex-kb/cortex/internal/core/domain"
)

// StatusLoaded carries one completed dashboard poll.
type StatusLoaded struct {
	Health   domain.HealthReport
	Provider *domain.ProviderReport
	Store    *domain.StoreStatus
	StoreErr error
}

// RefreshTick fires when the next scheduled poll is due.
type RefreshTick struct{}

// ErrorOccurred reports a general error.
type ErrorOccurred struct {
	Err error
}
