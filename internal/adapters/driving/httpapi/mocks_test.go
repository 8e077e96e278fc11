package httpapi

import (
	"context"
	"net/http"

	"github.com/cortex-kb/cortex/internal/adapters/driven/storage/memory"
	"github.com/cortex-kb/cortex/internal/core/domain"
	"github.com/cortex-kb/cortex/internal/core/services"
)

// mockHealthService is a mock implementation of driving.HealthService.
type mockHealthService struct {
	report domain.HealthReport
}

func (m *mockHealthService) Report(_ context.Context) domain.HealthReport {
	return m.report
}

// mockProviderService is a mock implementation of driving.ProviderService.
type mockProviderService struct {
	report domain.ProviderReport
	models []domain.ModelInfo
	err    error
}

func (m *mockProviderService) Report(_ context.Context) domain.ProviderReport {
	return m.report
}

func (m *mockProviderService) Models(_ context.Context) ([]domain.ModelInfo, error) {
	return m.models, m.err
}

func (m *mockProviderService) Embed(_ context.Context, _ string) ([]float32, error) {
	return nil, m.err
}

func (m *mockProviderService) EmbedBatch(_ context.Context, _ []string) ([][]float32, error) {
	return nil, m.err
}

func (m *mockProviderService) Chat(_ context.Context, _ []domain.ChatMessage, _ string) (string, error) {
	return "", m.err
}

func (m *mockProviderService) StreamChat(_ context.Context, _ []domain.ChatMessage, _ string) (<-chan string, <-chan error) {
	fragments := make(chan string)
	close(fragments)
	errs := make(chan error)
	close(errs)
	return fragments, errs
}

// mockStatusService is a mock implementation of driving.StatusService.
type mockStatusService struct {
	status *domain.StoreStatus
	err    error
}

func (m *mockStatusService) Status(_ context.Context) (*domain.StoreStatus, error) {
	return m.status, m.err
}

// newItemRouter builds the route tree over a real item service backed by
// the given in-memory store. Health, provider, and status routes are
// served from zero-value mocks.
func newItemRouter(store *memory.Store) http.Handler {
	items := services.NewItemService(store.ItemStore(), store.ChunkStore())
	handler := NewHandler(items, &mockHealthService{}, &mockProviderService{}, &mockStatusService{})
	return NewRouter(handler)
}

// newMockRouter builds the route tree over the given mocks, with item
// routes backed by an empty in-memory store.
func newMockRouter(health *mockHealthService, provider *mockProviderService, status *mockStatusService) http.Handler {
	store := memory.NewStore()
	items := services.NewItemService(store.ItemStore(), store.ChunkStore())
	return NewRouter(NewHandler(items, health, provider, status))
}
