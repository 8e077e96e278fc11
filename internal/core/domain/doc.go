// Package domain defines the core business entities for Cortex.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Item: A top-level content record (note, web page, file)
//   - Chunk: A content segment belonging to an item
//   - ModelInfo / ChatMessage: Inference provider values
//   - HealthReport / StoreStatus: Operational reports
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
