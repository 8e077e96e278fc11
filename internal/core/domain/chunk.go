package domain

import "time"

// Chunk is a content segment belonging to exactly one item, produced for
// future embedding and search. Chunks are immutable once created; they
// disappear with their item (cascade delete) or via explicit per-item
// deletion.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// ItemID links to the owning Item.
	ItemID string

	// ChunkIndex is the ordinal position within the item, starting at 0.
	ChunkIndex int

	// Content is the text content of this segment.
	Content string

	// TokenCount is the token length of Content, when computed.
	TokenCount *int

	// CreatedAt is when the chunk was stored (UTC). All chunks written
	// in one batch share the same instant.
	CreatedAt time.Time
}

// NewChunk carries the caller-supplied fields for batch chunk creation.
// IDs and the shared creation timestamp are assigned by the store.
type NewChunk struct {
	ItemID     string
	ChunkIndex int
	Content    string
	TokenCount *int
}
