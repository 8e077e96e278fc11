// Package mcp provides an MCP (Model Context Protocol) server adapter for
// Cortex. It lets AI assistants read and manage the local knowledge base.
package mcp

import "errors"

// ErrMissingItemService is returned when the item service is not provided.
var ErrMissingItemService = errors.New("mcp: item service is required")
