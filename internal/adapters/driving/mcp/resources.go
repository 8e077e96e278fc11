package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for Cortex resources.
	uriScheme = "cortex://"

	// resourceListLimit caps the item listing resource. Resources take no
	// parameters, so the listing always shows the newest items.
	resourceListLimit = 100
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing items.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "items",
		Name:        "items",
		Description: "The newest items in the knowledge base",
		MIMEType:    "application/json",
	}, s.handleItemsResource)

	// Template for item content.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "items/{itemId}",
		Name:        "item-content",
		Description: "Content of a specific item",
		MIMEType:    "text/plain",
	}, s.handleItemContentResource)

	// Template for item chunks.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "items/{itemId}/chunks",
		Name:        "item-chunks",
		Description: "Stored chunks of a specific item, in order",
		MIMEType:    "application/json",
	}, s.handleItemChunksResource)

	// Static resource for database status.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "db/status",
		Name:        "db-status",
		Description: "SQLite database version, tables, and row counts",
		MIMEType:    "application/json",
	}, s.handleDBStatusResource)
}

// handleItemsResource returns the newest items as a JSON listing.
func (s *Server) handleItemsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	page, err := s.ports.Items.List(ctx, 0, resourceListLimit)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}

	infos := make([]ItemSummaryOutput, len(page.Items))
	for i := range page.Items {
		infos[i] = toItemSummaryOutput(page.Items[i])
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling items: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleItemContentResource returns the content of a specific item.
func (s *Server) handleItemContentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract itemId from URI: cortex://items/{itemId}
	itemID := extractItemID(req.Params.URI)
	if itemID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	item, err := s.ports.Items.Get(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("getting item content: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     item.Content,
		}},
	}, nil
}

// handleItemChunksResource returns the chunks of a specific item.
func (s *Server) handleItemChunksResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract itemId from URI: cortex://items/{itemId}/chunks
	itemID := extractChunksItemID(req.Params.URI)
	if itemID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	chunks, err := s.ports.Items.Chunks(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("listing chunks: %w", err)
	}

	// Build simplified chunk list.
	type chunkInfo struct {
		ID         string `json:"id"`
		ChunkIndex int    `json:"chunk_index"`
		Content    string `json:"content"`
	}

	infos := make([]chunkInfo, len(chunks))
	for i := range chunks {
		infos[i] = chunkInfo{
			ID:         chunks[i].ID,
			ChunkIndex: chunks[i].ChunkIndex,
			Content:    chunks[i].Content,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling chunks: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleDBStatusResource returns the database status report.
func (s *Server) handleDBStatusResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Status == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	status, err := s.ports.Status.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("inspecting database: %w", err)
	}

	type statusInfo struct {
		SQLiteVersion string   `json:"sqlite_version"`
		VecVersion    string   `json:"vec_version"`
		Tables        []string `json:"tables"`
		ItemCount     int      `json:"item_count"`
		ChunkCount    int      `json:"chunk_count"`
	}

	data, err := json.MarshalIndent(statusInfo{
		SQLiteVersion: status.SQLiteVersion,
		VecVersion:    status.VecVersion,
		Tables:        status.Tables,
		ItemCount:     status.ItemCount,
		ChunkCount:    status.ChunkCount,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling status: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractItemID extracts the item ID from a URI like cortex://items/{itemId}.
func extractItemID(uri string) string {
	const prefix = uriScheme + "items/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}

// extractChunksItemID extracts the item ID from a URI like cortex://items/{itemId}/chunks.
func extractChunksItemID(uri string) string {
	const prefix = uriScheme + "items/"
	const suffix = "/chunks"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}
