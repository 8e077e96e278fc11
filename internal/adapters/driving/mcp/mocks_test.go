package mcp

import (
	"context"

	"github.com/cortex-kb/cortex/internal/core/domain"
)

// mockItemService is a mock implementation of driving.ItemService.
type mockItemService struct {
	item   *domain.Item
	items  []domain.Item
	page   *domain.ItemPage
	chunks []domain.Chunk
	err    error

	gotOffset int
	gotLimit  int
}

func (m *mockItemService) Create(_ context.Context, _ domain.NewItem) (*domain.Item, error) {
	return m.item, m.err
}

func (m *mockItemService) Get(_ context.Context, _ string) (*domain.Item, error) {
	return m.item, m.err
}

func (m *mockItemService) List(_ context.Context, offset, limit int) (*domain.ItemPage, error) {
	m.gotOffset = offset
	m.gotLimit = limit
	return m.page, m.err
}

func (m *mockItemService) Update(_ context.Context, _ string, _ domain.ItemPatch) (*domain.Item, error) {
	return m.item, m.err
}

func (m *mockItemService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockItemService) SetStatus(_ context.Context, _ string, _ domain.ProcessingStatus) error {
	return m.err
}

func (m *mockItemService) ListByStatus(_ context.Context, _ domain.ProcessingStatus) ([]domain.Item, error) {
	return m.items, m.err
}

func (m *mockItemService) Chunks(_ context.Context, _ string) ([]domain.Chunk, error) {
	return m.chunks, m.err
}

func (m *mockItemService) AddChunks(_ context.Context, _ []domain.NewChunk) ([]domain.Chunk, error) {
	return m.chunks, m.err
}

// mockStatusService is a mock implementation of driving.StatusService.
type mockStatusService struct {
	status *domain.StoreStatus
	err    error
}

func (m *mockStatusService) Status(_ context.Context) (*domain.StoreStatus, error) {
	return m.status, m.err
}
