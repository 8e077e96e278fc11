package driven

import (
	"context"

	"github.com/cortex-kb/cortex/internal/core/domain"
)

// InferenceProvider is a thin client for the external local-inference HTTP
// service (Ollama). It offers embedding, chat, and streaming chat plus a
// lightweight availability probe. Calls carry no retry policy; a failure
// surfaces immediately.
type InferenceProvider interface {
	// IsAvailable probes the provider under a short deadline. Any
	// connection failure or timeout yields false; it never returns an
	// error.
	IsAvailable(ctx context.Context) bool

	// ListModels returns the models the provider has pulled. Fails with
	// domain.ErrProviderUnreachable or *domain.TimeoutError on network
	// trouble. Malformed per-model timestamps are tolerated.
	ListModels(ctx context.Context) ([]domain.ModelInfo, error)

	// Embed generates a vector embedding for one text using the
	// configured embedding model.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch embeds each text with a sequential Embed call, preserving
	// input order. The first failure aborts the batch and propagates.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Chat generates a completion for the conversation using the
	// configured chat model. A non-empty system prompt is applied to
	// the whole conversation.
	Chat(ctx context.Context, messages []domain.ChatMessage, system string) (string, error)

	// StreamChat opens a streaming completion. Content fragments arrive on
	// the first channel, which closes when the stream ends; at most one
	// error arrives on the second. Cancelling ctx closes the underlying
	// connection.
	StreamChat(ctx context.Context, messages []domain.ChatMessage, system string) (<-chan string, <-chan error)

	// BaseURL returns the provider endpoint.
	BaseURL() string

	// EmbedModel returns the configured embedding model name.
	EmbedModel() string

	// ChatModel returns the configured chat model name.
	ChatModel() string
}
