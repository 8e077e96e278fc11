package driving

import (
	"context"

	"github.com/cortex-kb/cortex/internal/core/domain"
)

// ProviderService exposes the inference provider to boundary adapters.
type ProviderService interface {
	// Report probes the provider's model listing and describes the
	// outcome. It never fails; an unreachable provider yields an
	// unavailable report.
	Report(ctx context.Context) domain.ProviderReport

	// Models returns the provider's pulled models.
	Models(ctx context.Context) ([]domain.ModelInfo, error)

	// Embed generates an embedding vector for one text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch embeds texts sequentially, preserving order; the first
	// failure aborts.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Chat generates a completion for the conversation.
	Chat(ctx context.Context, messages []domain.ChatMessage, system string) (string, error)

	// StreamChat opens a streaming completion; see
	// driven.InferenceProvider for channel semantics.
	StreamChat(ctx context.Context, messages []domain.ChatMessage, system string) (<-chan string, <-chan error)
}
