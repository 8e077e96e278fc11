// Package services implements the driving port interfaces.
// Services contain the core business logic for items, chunks, health
// aggregation, and provider access, orchestrating calls to driven
// ports (adapters).
//
// Services are pure Go with no CGO or external dependencies.
package services
