package services

import (
	"context"
	"time"

	"github.com/cortex-kb/cortex/internal/core/domain"
	"github.com/cortex-kb/cortex/internal/core/ports/driven"
	"github.com/cortex-kb/cortex/internal/core/ports/driving"
)

// Ensure ProviderService implements the interface.
var _ driving.ProviderService = (*ProviderService)(nil)

// ProviderService exposes the inference provider to boundary adapters.
type ProviderService struct {
	provider driven.InferenceProvider
}

// NewProviderService creates a new provider service.
func NewProviderService(provider driven.InferenceProvider) *ProviderService {
	return &ProviderService{provider: provider}
}

// Report probes the provider's model listing and describes the outcome.
// An unreachable provider yields an unavailable report, never an error.
func (s *ProviderService) Report(ctx context.Context) domain.ProviderReport {
	start := time.Now()
	models, err := s.provider.ListModels(ctx)
	if err != nil {
		return domain.ProviderReport{
			Status:  domain.ProviderUnavailable,
			BaseURL: s.provider.BaseURL(),
			Error:   err.Error(),
		}
	}

	latency := time.Since(start).Seconds() * 1000
	names := make([]string, 0, len(models))
	for _, model := range models {
		names = append(names, model.Name)
	}
	return domain.ProviderReport{
		Status:        domain.ProviderHealthy,
		BaseURL:       s.provider.BaseURL(),
		Models:        names,
		LatencyMillis: &latency,
	}
}

// Models returns the provider's pulled models.
func (s *ProviderService) Models(ctx context.Context) ([]domain.ModelInfo, error) {
	return s.provider.ListModels(ctx)
}

// Embed generates an embedding vector for one text.
func (s *ProviderService) Embed(ctx context.Context, text string) ([]float32, error) {
	return s.provider.Embed(ctx, text)
}

// EmbedBatch embeds texts sequentially, preserving order.
func (s *ProviderService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return s.provider.EmbedBatch(ctx, texts)
}

// Chat generates a completion for the conversation.
func (s *ProviderService) Chat(ctx context.Context, messages []domain.ChatMessage, system string) (string, error) {
	return s.provider.Chat(ctx, messages, system)
}

// StreamChat opens a streaming completion.
func (s *ProviderService) StreamChat(ctx context.Context, messages []domain.ChatMessage, system string) (<-chan string, <-chan error) {
	return s.provider.StreamChat(ctx, messages, system)
}
