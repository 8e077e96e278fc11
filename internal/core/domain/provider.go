package domain

import "time"

// ModelInfo describes one model available on the inference provider.
type ModelInfo struct {
	// Name is the model identifier, e.g. "nomic-embed-text".
	Name string

	// Size is the on-disk model size in bytes, when reported.
	Size *int64

	// ModifiedAt is when the model was last updated, when reported and
	// parseable. A malformed timestamp from the provider leaves this nil.
	ModifiedAt *time.Time

	// Digest is the provider's content digest for the model, when reported.
	Digest *string
}

// ChatMessage is one turn in a chat conversation.
type ChatMessage struct {
	// Role is "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// Chat roles understood by the provider.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ProviderReport is the outcome of probing the inference provider for its
// model listing. It always describes the outcome; probing never fails at
// the transport level.
type ProviderReport struct {
	// Status is "healthy" when the listing succeeded (even with zero
	// models), "unavailable" otherwise.
	Status string

	// BaseURL is the provider endpoint that was probed.
	BaseURL string

	// Models holds the available model names; nil when unavailable.
	Models []string

	// Error is the failure text when unavailable.
	Error string

	// LatencyMillis is the probe round-trip time, when it completed.
	LatencyMillis *float64
}

// ProviderReport status values.
const (
	ProviderHealthy     = "healthy"
	ProviderUnavailable = "unavailable"
)
