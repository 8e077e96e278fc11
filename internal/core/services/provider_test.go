package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cortex-kb/cortex/internal/core/domain"
)

// --- Mock implementations ---

// mockProvider implements driven.InferenceProvider for testing.
type mockProvider struct {
	available bool
	models    []domain.ModelInfo
	listErr   error
	embedding []float32
	embedErr  error
	chatReply string
	chatErr   error
	fragments []string
	baseURL   string
}

func (m *mockProvider) IsAvailable(_ context.Context) bool {
	return m.available
}

func (m *mockProvider) ListModels(_ context.Context) ([]domain.ModelInfo, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.models, nil
}

func (m *mockProvider) Embed(_ context.Context, _ string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.embedding, nil
}

func (m *mockProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for i, text := range texts {
		vector, err := m.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embed text %d: %w", i, err)
		}
		vectors = append(vectors, vector)
	}
	return vectors, nil
}

func (m *mockProvider) Chat(_ context.Context, _ []domain.ChatMessage, _ string) (string, error) {
	if m.chatErr != nil {
		return "", m.chatErr
	}
	return m.chatReply, nil
}

func (m *mockProvider) StreamChat(_ context.Context, _ []domain.ChatMessage, _ string) (<-chan string, <-chan error) {
	content := make(chan string, len(m.fragments))
	errs := make(chan error, 1)
	for _, fragment := range m.fragments {
		content <- fragment
	}
	close(content)
	return content, errs
}

func (m *mockProvider) BaseURL() string {
	return m.baseURL
}

func (m *mockProvider) EmbedModel() string {
	return "mock-embed"
}

func (m *mockProvider) ChatModel() string {
	return "mock-chat"
}

// --- Tests ---

func TestNewProviderService(t *testing.T) {
	service := NewProviderService(&mockProvider{})

	require.NotNil(t, service)
	assert.NotNil(t, service.provider)
}

func TestProviderService_Report_Healthy(t *testing.T) {
	provider := &mockProvider{
		baseURL: "http://localhost:11434",
		models: []domain.ModelInfo{
			{Name: "nomic-embed-text"},
			{Name: "llama3.2:3b"},
		},
	}
	service := NewProviderService(provider)

	report := service.Report(context.Background())

	assert.Equal(t, domain.ProviderHealthy, report.Status)
	assert.Equal(t, "http://localhost:11434", report.BaseURL)
	assert.Equal(t, []string{"nomic-embed-text", "llama3.2:3b"}, report.Models)
	assert.Empty(t, report.Error)
	require.NotNil(t, report.LatencyMillis)
	assert.GreaterOrEqual(t, *report.LatencyMillis, 0.0)
}

func TestProviderService_Report_EmptyModels(t *testing.T) {
	provider := &mockProvider{baseURL: "http://localhost:11434"}
	service := NewProviderService(provider)

	report := service.Report(context.Background())

	// No pulled models is still a working provider
	assert.Equal(t, domain.ProviderHealthy, report.Status)
	require.NotNil(t, report.Models)
	assert.Empty(t, report.Models)
}

func TestProviderService_Report_Unavailable(t *testing.T) {
	provider := &mockProvider{
		baseURL: "http://localhost:11434",
		listErr: fmt.Errorf("%w at http://localhost:11434: connection refused", domain.ErrProviderUnreachable),
	}
	service := NewProviderService(provider)

	report := service.Report(context.Background())

	assert.Equal(t, domain.ProviderUnavailable, report.Status)
	assert.Equal(t, "http://localhost:11434", report.BaseURL)
	assert.Contains(t, report.Error, "unreachable")
	assert.Nil(t, report.Models)
	assert.Nil(t, report.LatencyMillis)
}

func TestProviderService_Models(t *testing.T) {
	provider := &mockProvider{
		models: []domain.ModelInfo{{Name: "llama3.2:3b"}},
	}
	service := NewProviderService(provider)

	models, err := service.Models(context.Background())

	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, "llama3.2:3b", models[0].Name)
}

func TestProviderService_Models_Error(t *testing.T) {
	provider := &mockProvider{listErr: domain.ErrProviderUnreachable}
	service := NewProviderService(provider)

	models, err := service.Models(context.Background())

	assert.ErrorIs(t, err, domain.ErrProviderUnreachable)
	assert.Nil(t, models)
}

func TestProviderService_Embed(t *testing.T) {
	provider := &mockProvider{embedding: []float32{0.1, 0.2, 0.3}}
	service := NewProviderService(provider)

	vector, err := service.Embed(context.Background(), "some text")

	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vector)
}

func TestProviderService_EmbedBatch(t *testing.T) {
	provider := &mockProvider{embedding: []float32{0.5}}
	service := NewProviderService(provider)

	vectors, err := service.EmbedBatch(context.Background(), []string{"one", "two"})

	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, []float32{0.5}, vectors[0])
}

func TestProviderService_Chat(t *testing.T) {
	provider := &mockProvider{chatReply: "Hello there."}
	service := NewProviderService(provider)

	reply, err := service.Chat(context.Background(), []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "Hi"},
	}, "")

	require.NoError(t, err)
	assert.Equal(t, "Hello there.", reply)
}

func TestProviderService_StreamChat(t *testing.T) {
	provider := &mockProvider{fragments: []string{"Hel", "lo"}}
	service := NewProviderService(provider)

	content, errs := service.StreamChat(context.Background(), []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "Hi"},
	}, "")

	var got string
	for fragment := range content {
		got += fragment
	}
	assert.Equal(t, "Hello", got)
	select {
	case err := <-errs:
		t.Fatalf("unexpected stream error: %v", err)
	default:
	}
}
