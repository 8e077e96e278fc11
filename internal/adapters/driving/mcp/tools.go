package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/cortex-kb/cortex/internal/core/domain"
)

// ItemOutput is the full wire form of an item, including its content.
type ItemOutput struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	Content          string         `json:"content"`
	ContentType      string         `json:"content_type"`
	SourceURL        string         `json:"source_url,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	ProcessingStatus string         `json:"processing_status"`
	Metadata         map[string]any `json:"metadata,omitempty"`
}

// ItemSummaryOutput is the listing form of an item, without its content.
type ItemSummaryOutput struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	ContentType      string    `json:"content_type"`
	SourceURL        string    `json:"source_url,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	ProcessingStatus string    `json:"processing_status"`
}

// ChunkOutput is the wire form of a stored chunk.
type ChunkOutput struct {
	ID         string    `json:"id"`
	ItemID     string    `json:"item_id"`
	ChunkIndex int       `json:"chunk_index"`
	Content    string    `json:"content"`
	TokenCount *int      `json:"token_count,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateItemInput is the input schema for the create_item tool.
type CreateItemInput struct {
	Title       string         `json:"title" jsonschema:"the item title"`
	Content     string         `json:"content" jsonschema:"the full text content to store"`
	ContentType string         `json:"content_type" jsonschema:"content classification, typically webpage, note, or file"`
	SourceURL   string         `json:"source_url,omitempty" jsonschema:"original URL for captured content"`
	Metadata    map[string]any `json:"metadata,omitempty" jsonschema:"arbitrary key-value metadata"`
}

// CreateItemOutput is the output schema for the create_item tool.
type CreateItemOutput struct {
	Item ItemOutput `json:"item"`
}

// GetItemInput is the input schema for the get_item tool.
type GetItemInput struct {
	ItemID string `json:"item_id" jsonschema:"the item identifier"`
}

// GetItemOutput is the output schema for the get_item tool.
type GetItemOutput struct {
	Item ItemOutput `json:"item"`
}

// ListItemsInput is the input schema for the list_items tool.
type ListItemsInput struct {
	Status string `json:"status,omitempty" jsonschema:"filter by processing status: pending, processing, completed, or failed"`
	Offset int    `json:"offset,omitempty" jsonschema:"number of items to skip (default 0)"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of items to return (default 20, max 100)"`
}

// ListItemsOutput is the output schema for the list_items tool.
type ListItemsOutput struct {
	Items  []ItemSummaryOutput `json:"items"`
	Total  int                 `json:"total"`
	Offset int                 `json:"offset"`
	Limit  int                 `json:"limit"`
}

// UpdateItemStatusInput is the input schema for the update_item_status tool.
type UpdateItemStatusInput struct {
	ItemID string `json:"item_id" jsonschema:"the item identifier"`
	Status string `json:"status" jsonschema:"the new processing status: pending, processing, completed, or failed"`
}

// UpdateItemStatusOutput is the output schema for the update_item_status tool.
type UpdateItemStatusOutput struct {
	Item ItemOutput `json:"item"`
}

// DeleteItemInput is the input schema for the delete_item tool.
type DeleteItemInput struct {
	ItemID string `json:"item_id" jsonschema:"the item identifier"`
}

// DeleteItemOutput is the output schema for the delete_item tool.
type DeleteItemOutput struct {
	Deleted bool   `json:"deleted"`
	ItemID  string `json:"item_id"`
}

// GetItemChunksInput is the input schema for the get_item_chunks tool.
type GetItemChunksInput struct {
	ItemID string `json:"item_id" jsonschema:"the item identifier"`
}

// GetItemChunksOutput is the output schema for the get_item_chunks tool.
type GetItemChunksOutput struct {
	Chunks []ChunkOutput `json:"chunks"`
	Count  int           `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "create_item",
		Description: "Save a new item into the knowledge base",
	}, s.handleCreateItem)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_item",
		Description: "Fetch a single item with its full content",
	}, s.handleGetItem)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_items",
		Description: "List knowledge base items, newest first, optionally filtered by processing status",
	}, s.handleListItems)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update_item_status",
		Description: "Move an item to a new processing status",
	}, s.handleUpdateItemStatus)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_item",
		Description: "Delete an item and all of its chunks",
	}, s.handleDeleteItem)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_item_chunks",
		Description: "Fetch the stored chunks of an item in order",
	}, s.handleGetItemChunks)
}

// handleCreateItem handles the create_item tool invocation.
func (s *Server) handleCreateItem(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreateItemInput,
) (*mcp.CallToolResult, CreateItemOutput, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, CreateItemOutput{}, errors.New("title is required")
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, CreateItemOutput{}, errors.New("content is required")
	}
	if strings.TrimSpace(input.ContentType) == "" {
		return nil, CreateItemOutput{}, errors.New("content_type is required")
	}

	var sourceURL *string
	if input.SourceURL != "" {
		sourceURL = &input.SourceURL
	}

	item, err := s.ports.Items.Create(ctx, domain.NewItem{
		Title:       input.Title,
		Content:     input.Content,
		ContentType: domain.ContentType(input.ContentType),
		SourceURL:   sourceURL,
		Metadata:    input.Metadata,
	})
	if err != nil {
		return nil, CreateItemOutput{}, err
	}

	return nil, CreateItemOutput{Item: toItemOutput(*item)}, nil
}

// handleGetItem handles the get_item tool invocation.
func (s *Server) handleGetItem(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetItemInput,
) (*mcp.CallToolResult, GetItemOutput, error) {
	item, err := s.ports.Items.Get(ctx, input.ItemID)
	if err != nil {
		return nil, GetItemOutput{}, itemError(input.ItemID, err)
	}

	return nil, GetItemOutput{Item: toItemOutput(*item)}, nil
}

// handleListItems handles the list_items tool invocation.
func (s *Server) handleListItems(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListItemsInput,
) (*mcp.CallToolResult, ListItemsOutput, error) {
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	if input.Status != "" {
		return s.listItemsByStatus(ctx, input.Status, offset, limit)
	}

	page, err := s.ports.Items.List(ctx, offset, limit)
	if err != nil {
		return nil, ListItemsOutput{}, err
	}

	output := ListItemsOutput{
		Items:  make([]ItemSummaryOutput, len(page.Items)),
		Total:  page.Total,
		Offset: page.Offset,
		Limit:  page.Limit,
	}
	for i := range page.Items {
		output.Items[i] = toItemSummaryOutput(page.Items[i])
	}

	return nil, output, nil
}

// listItemsByStatus pages through the items in one lifecycle state.
func (s *Server) listItemsByStatus(
	ctx context.Context,
	rawStatus string,
	offset, limit int,
) (*mcp.CallToolResult, ListItemsOutput, error) {
	status := domain.ProcessingStatus(rawStatus)
	if !status.IsValid() {
		return nil, ListItemsOutput{}, fmt.Errorf("invalid processing status %q", rawStatus)
	}

	items, err := s.ports.Items.ListByStatus(ctx, status)
	if err != nil {
		return nil, ListItemsOutput{}, err
	}

	total := len(items)
	if offset < len(items) {
		items = items[offset:]
	} else {
		items = nil
	}
	if len(items) > limit {
		items = items[:limit]
	}

	output := ListItemsOutput{
		Items:  make([]ItemSummaryOutput, len(items)),
		Total:  total,
		Offset: offset,
		Limit:  limit,
	}
	for i := range items {
		output.Items[i] = toItemSummaryOutput(items[i])
	}

	return nil, output, nil
}

// handleUpdateItemStatus handles the update_item_status tool invocation.
func (s *Server) handleUpdateItemStatus(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UpdateItemStatusInput,
) (*mcp.CallToolResult, UpdateItemStatusOutput, error) {
	err := s.ports.Items.SetStatus(ctx, input.ItemID, domain.ProcessingStatus(input.Status))
	if err != nil {
		return nil, UpdateItemStatusOutput{}, itemError(input.ItemID, err)
	}

	item, err := s.ports.Items.Get(ctx, input.ItemID)
	if err != nil {
		return nil, UpdateItemStatusOutput{}, itemError(input.ItemID, err)
	}

	return nil, UpdateItemStatusOutput{Item: toItemOutput(*item)}, nil
}

// handleDeleteItem handles the delete_item tool invocation.
func (s *Server) handleDeleteItem(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DeleteItemInput,
) (*mcp.CallToolResult, DeleteItemOutput, error) {
	if err := s.ports.Items.Delete(ctx, input.ItemID); err != nil {
		return nil, DeleteItemOutput{}, itemError(input.ItemID, err)
	}

	return nil, DeleteItemOutput{Deleted: true, ItemID: input.ItemID}, nil
}

// handleGetItemChunks handles the get_item_chunks tool invocation.
func (s *Server) handleGetItemChunks(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetItemChunksInput,
) (*mcp.CallToolResult, GetItemChunksOutput, error) {
	chunks, err := s.ports.Items.Chunks(ctx, input.ItemID)
	if err != nil {
		return nil, GetItemChunksOutput{}, itemError(input.ItemID, err)
	}

	output := GetItemChunksOutput{
		Chunks: make([]ChunkOutput, len(chunks)),
		Count:  len(chunks),
	}
	for i := range chunks {
		output.Chunks[i] = ChunkOutput{
			ID:         chunks[i].ID,
			ItemID:     chunks[i].ItemID,
			ChunkIndex: chunks[i].ChunkIndex,
			Content:    chunks[i].Content,
			TokenCount: chunks[i].TokenCount,
			CreatedAt:  chunks[i].CreatedAt,
		}
	}

	return nil, output, nil
}

func toItemOutput(item domain.Item) ItemOutput {
	out := ItemOutput{
		ID:               item.ID,
		Title:            item.Title,
		Content:          item.Content,
		ContentType:      string(item.ContentType),
		CreatedAt:        item.CreatedAt,
		UpdatedAt:        item.UpdatedAt,
		ProcessingStatus: string(item.ProcessingStatus),
		Metadata:         item.Metadata,
	}
	if item.SourceURL != nil {
		out.SourceURL = *item.SourceURL
	}
	return out
}

func toItemSummaryOutput(item domain.Item) ItemSummaryOutput {
	out := ItemSummaryOutput{
		ID:               item.ID,
		Title:            item.Title,
		ContentType:      string(item.ContentType),
		CreatedAt:        item.CreatedAt,
		UpdatedAt:        item.UpdatedAt,
		ProcessingStatus: string(item.ProcessingStatus),
	}
	if item.SourceURL != nil {
		out.SourceURL = *item.SourceURL
	}
	return out
}

// itemError rewrites a lookup failure into the same text the HTTP API
// uses, so assistants see one phrasing everywhere.
func itemError(id string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("Item not found: %s", id)
	}
	return err
}
