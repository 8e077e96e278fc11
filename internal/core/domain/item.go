package domain

import "time"

// ContentType classifies what kind of content an item holds.
type ContentType string

// Known content types. The column is free-form text, so unknown
// values are stored as-is rather than rejected.
const (
	ContentTypeWebpage ContentType = "webpage"
	ContentTypeNote    ContentType = "note"
	ContentTypeFile    ContentType = "file"
)

// ProcessingStatus tracks an item through its processing lifecycle.
// Transitions happen only via explicit status updates, never by this
// backend's own automation.
type ProcessingStatus string

// Processing lifecycle states.
const (
	StatusPending    ProcessingStatus = "pending"
	StatusProcessing ProcessingStatus = "processing"
	StatusCompleted  ProcessingStatus = "completed"
	StatusFailed     ProcessingStatus = "failed"
)

// IsValid reports whether the status is one of the four lifecycle states.
func (s ProcessingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Item is a top-level content record: a note, a captured web page, or a
// file tracked by the knowledge base.
type Item struct {
	// ID is the unique identifier, generated at creation and immutable.
	ID string

	// Title is the human-readable title.
	Title string

	// Content is the full text content.
	Content string

	// ContentType classifies the content (webpage, note, file).
	ContentType ContentType

	// SourceURL is the original location for captured content, when known.
	SourceURL *string

	// CreatedAt is when the item was created (UTC).
	CreatedAt time.Time

	// UpdatedAt is when the item was last modified (UTC).
	// Always >= CreatedAt.
	UpdatedAt time.Time

	// ProcessingStatus is the current lifecycle state.
	ProcessingStatus ProcessingStatus

	// Metadata contains arbitrary key-value pairs, serialized to JSON
	// text in storage.
	Metadata map[string]any
}

// NewItem carries the caller-supplied fields for item creation.
// ID, timestamps, and processing status are assigned by the store.
type NewItem struct {
	Title       string
	Content     string
	ContentType ContentType
	SourceURL   *string
	Metadata    map[string]any
}

// ItemPatch is a partial update. Nil fields are left untouched;
// UpdatedAt is refreshed regardless.
type ItemPatch struct {
	Title     *string
	Content   *string
	SourceURL *string
	Metadata  map[string]any
}

// IsEmpty reports whether the patch carries no field changes.
// An empty patch still bumps UpdatedAt.
func (p ItemPatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.SourceURL == nil && p.Metadata == nil
}

// ItemPage is one page of a paginated item listing.
type ItemPage struct {
	// Items holds the page contents, newest first.
	Items []Item

	// Total is the count of all items in the store, not just this page.
	Total int

	// Offset and Limit echo the pagination window that produced the page.
	Offset int
	Limit  int
}
