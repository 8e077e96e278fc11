package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cortex-kb/cortex/internal/core/domain"
)

func testItem(id, title string) *domain.Item {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	return &domain.Item{
		ID:               id,
		Title:            title,
		Content:          "content of " + title,
		ContentType:      domain.ContentTypeNote,
		CreatedAt:        now,
		UpdatedAt:        now,
		ProcessingStatus: domain.StatusPending,
	}
}

func TestServer_handleCreateItem(t *testing.T) {
	ctx := context.Background()

	t.Run("creates item", func(t *testing.T) {
		url := "https://example.com/article"
		created := testItem("item-1", "Saved article")
		created.ContentType = domain.ContentTypeWebpage
		created.SourceURL = &url

		mockItems := &mockItemService{item: created}
		server, err := NewServer(&Ports{Items: mockItems})
		require.NoError(t, err)

		input := CreateItemInput{
			Title:       "Saved article",
			Content:     "body",
			ContentType: "webpage",
			SourceURL:   url,
		}
		_, output, err := server.handleCreateItem(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "item-1", output.Item.ID)
		assert.Equal(t, "Saved article", output.Item.Title)
		assert.Equal(t, "webpage", output.Item.ContentType)
		assert.Equal(t, url, output.Item.SourceURL)
		assert.Equal(t, "pending", output.Item.ProcessingStatus)
	})

	t.Run("missing title returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{Items: &mockItemService{}})
		require.NoError(t, err)

		input := CreateItemInput{Title: "  ", Content: "body", ContentType: "note"}
		_, _, err = server.handleCreateItem(ctx, nil, input)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "title is required")
	})

	t.Run("missing content type returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{Items: &mockItemService{}})
		require.NoError(t, err)

		input := CreateItemInput{Title: "untitled", Content: "body"}
		_, _, err = server.handleCreateItem(ctx, nil, input)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "content_type is required")
	})
}

func TestServer_handleGetItem(t *testing.T) {
	ctx := context.Background()

	t.Run("returns item with content", func(t *testing.T) {
		mockItems := &mockItemService{item: testItem("item-7", "Notes")}
		server, err := NewServer(&Ports{Items: mockItems})
		require.NoError(t, err)

		_, output, err := server.handleGetItem(ctx, nil, GetItemInput{ItemID: "item-7"})

		require.NoError(t, err)
		assert.Equal(t, "item-7", output.Item.ID)
		assert.Equal(t, "content of Notes", output.Item.Content)
	})

	t.Run("unknown item returns not found text", func(t *testing.T) {
		mockItems := &mockItemService{err: domain.ErrNotFound}
		server, err := NewServer(&Ports{Items: mockItems})
		require.NoError(t, err)

		_, _, err = server.handleGetItem(ctx, nil, GetItemInput{ItemID: "ghost-1"})

		require.Error(t, err)
		assert.Equal(t, "Item not found: ghost-1", err.Error())
	})
}

func TestServer_handleListItems(t *testing.T) {
	ctx := context.Background()

	t.Run("returns page without filter", func(t *testing.T) {
		mockItems := &mockItemService{page: &domain.ItemPage{
			Items:  []domain.Item{*testItem("item-2", "newer"), *testItem("item-1", "older")},
			Total:  5,
			Offset: 0,
			Limit:  20,
		}}
		server, err := NewServer(&Ports{Items: mockItems})
		require.NoError(t, err)

		_, output, err := server.handleListItems(ctx, nil, ListItemsInput{})

		require.NoError(t, err)
		require.Len(t, output.Items, 2)
		assert.Equal(t, "newer", output.Items[0].Title)
		assert.Equal(t, 5, output.Total)
		assert.Equal(t, 20, output.Limit)
	})

	t.Run("clamps pagination before calling the service", func(t *testing.T) {
		mockItems := &mockItemService{page: &domain.ItemPage{}}
		server, err := NewServer(&Ports{Items: mockItems})
		require.NoError(t, err)

		_, _, err = server.handleListItems(ctx, nil, ListItemsInput{Offset: -3, Limit: 500})

		require.NoError(t, err)
		assert.Equal(t, 0, mockItems.gotOffset)
		assert.Equal(t, 100, mockItems.gotLimit)
	})

	t.Run("filters by status with pagination", func(t *testing.T) {
		mockItems := &mockItemService{items: []domain.Item{
			*testItem("item-3", "third"),
			*testItem("item-2", "second"),
			*testItem("item-1", "first"),
		}}
		server, err := NewServer(&Ports{Items: mockItems})
		require.NoError(t, err)

		input := ListItemsInput{Status: "completed", Offset: 1, Limit: 1}
		_, output, err := server.handleListItems(ctx, nil, input)

		require.NoError(t, err)
		require.Len(t, output.Items, 1)
		assert.Equal(t, "item-2", output.Items[0].ID)
		assert.Equal(t, 3, output.Total)
		assert.Equal(t, 1, output.Offset)
		assert.Equal(t, 1, output.Limit)
	})

	t.Run("offset beyond filtered list returns empty page", func(t *testing.T) {
		mockItems := &mockItemService{items: []domain.Item{*testItem("item-1", "only")}}
		server, err := NewServer(&Ports{Items: mockItems})
		require.NoError(t, err)

		input := ListItemsInput{Status: "pending", Offset: 10}
		_, output, err := server.handleListItems(ctx, nil, input)

		require.NoError(t, err)
		assert.Empty(t, output.Items)
		assert.Equal(t, 1, output.Total)
	})

	t.Run("invalid status returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{Items: &mockItemService{}})
		require.NoError(t, err)

		_, _, err = server.handleListItems(ctx, nil, ListItemsInput{Status: "archived"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), `invalid processing status "archived"`)
	})
}

func TestServer_handleUpdateItemStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("updates status and returns item", func(t *testing.T) {
		updated := testItem("item-4", "processed")
		updated.ProcessingStatus = domain.StatusCompleted

		mockItems := &mockItemService{item: updated}
		server, err := NewServer(&Ports{Items: mockItems})
		require.NoError(t, err)

		input := UpdateItemStatusInput{ItemID: "item-4", Status: "completed"}
		_, output, err := server.handleUpdateItemStatus(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "completed", output.Item.ProcessingStatus)
	})

	t.Run("unknown item returns not found text", func(t *testing.T) {
		mockItems := &mockItemService{err: domain.ErrNotFound}
		server, err := NewServer(&Ports{Items: mockItems})
		require.NoError(t, err)

		input := UpdateItemStatusInput{ItemID: "ghost-2", Status: "completed"}
		_, _, err = server.handleUpdateItemStatus(ctx, nil, input)

		require.Error(t, err)
		assert.Equal(t, "Item not found: ghost-2", err.Error())
	})

	t.Run("invalid status passes the service error through", func(t *testing.T) {
		mockItems := &mockItemService{err: domain.ErrInvalidInput}
		server, err := NewServer(&Ports{Items: mockItems})
		require.NoError(t, err)

		input := UpdateItemStatusInput{ItemID: "item-4", Status: "archived"}
		_, _, err = server.handleUpdateItemStatus(ctx, nil, input)

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestServer_handleDeleteItem(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes item", func(t *testing.T) {
		server, err := NewServer(&Ports{Items: &mockItemService{}})
		require.NoError(t, err)

		_, output, err := server.handleDeleteItem(ctx, nil, DeleteItemInput{ItemID: "item-5"})

		require.NoError(t, err)
		assert.True(t, output.Deleted)
		assert.Equal(t, "item-5", output.ItemID)
	})

	t.Run("unknown item returns not found text", func(t *testing.T) {
		mockItems := &mockItemService{err: domain.ErrNotFound}
		server, err := NewServer(&Ports{Items: mockItems})
		require.NoError(t, err)

		_, _, err = server.handleDeleteItem(ctx, nil, DeleteItemInput{ItemID: "ghost-3"})

		require.Error(t, err)
		assert.Equal(t, "Item not found: ghost-3", err.Error())
	})
}

func TestServer_handleGetItemChunks(t *testing.T) {
	ctx := context.Background()

	t.Run("returns chunks in order", func(t *testing.T) {
		tokens := 42
		mockItems := &mockItemService{chunks: []domain.Chunk{
			{ID: "chunk-1", ItemID: "item-6", ChunkIndex: 0, Content: "first part", TokenCount: &tokens},
			{ID: "chunk-2", ItemID: "item-6", ChunkIndex: 1, Content: "second part"},
		}}
		server, err := NewServer(&Ports{Items: mockItems})
		require.NoError(t, err)

		_, output, err := server.handleGetItemChunks(ctx, nil, GetItemChunksInput{ItemID: "item-6"})

		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
		require.Len(t, output.Chunks, 2)
		assert.Equal(t, 0, output.Chunks[0].ChunkIndex)
		require.NotNil(t, output.Chunks[0].TokenCount)
		assert.Equal(t, 42, *output.Chunks[0].TokenCount)
		assert.Nil(t, output.Chunks[1].TokenCount)
	})

	t.Run("unknown item returns not found text", func(t *testing.T) {
		mockItems := &mockItemService{err: domain.ErrNotFound}
		server, err := NewServer(&Ports{Items: mockItems})
		require.NoError(t, err)

		_, _, err = server.handleGetItemChunks(ctx, nil, GetItemChunksInput{ItemID: "ghost-4"})

		require.Error(t, err)
		assert.Equal(t, "Item not found: ghost-4", err.Error())
	})
}
