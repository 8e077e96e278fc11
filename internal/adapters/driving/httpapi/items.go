package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cortex-kb/cortex/internal/core/domain"
)

// Pagination bounds for GET /api/items.
const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type createItemRequest struct {
	Title       string         `json:"title"`
	Content     string         `json:"content"`
	ContentType string         `json:"content_type"`
	SourceURL   *string        `json:"source_url"`
	Metadata    map[string]any `json:"metadata"`
}

type updateItemRequest struct {
	Title     *string        `json:"title"`
	Content   *string        `json:"content"`
	SourceURL *string        `json:"source_url"`
	Metadata  map[string]any `json:"metadata"`
}

// itemResponse is the wire shape of an item. Nullable fields stay in the
// body as explicit nulls, matching what the desktop app parses.
type itemResponse struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	Content          string         `json:"content"`
	ContentType      string         `json:"content_type"`
	SourceURL        *string        `json:"source_url"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	ProcessingStatus string         `json:"processing_status"`
	Metadata         map[string]any `json:"metadata"`
}

type listItemsResponse struct {
	Items  []itemResponse `json:"items"`
	Total  int            `json:"total"`
	Offset int            `json:"offset"`
	Limit  int            `json:"limit"`
}

func toItemResponse(item domain.Item) itemResponse {
	return itemResponse{
		ID:               item.ID,
		Title:            item.Title,
		Content:          item.Content,
		ContentType:      string(item.ContentType),
		SourceURL:        item.SourceURL,
		CreatedAt:        item.CreatedAt,
		UpdatedAt:        item.UpdatedAt,
		ProcessingStatus: string(item.ProcessingStatus),
		Metadata:         item.Metadata,
	}
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, errTagValidation, "Invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusUnprocessableEntity, errTagValidation, "title is required")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusUnprocessableEntity, errTagValidation, "content is required")
		return
	}
	if strings.TrimSpace(req.ContentType) == "" {
		writeError(w, http.StatusUnprocessableEntity, errTagValidation, "content_type is required")
		return
	}

	item, err := h.items.Create(r.Context(), domain.NewItem{
		Title:       req.Title,
		Content:     req.Content,
		ContentType: domain.ContentType(req.ContentType),
		SourceURL:   req.SourceURL,
		Metadata:    req.Metadata,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toItemResponse(*item))
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	offset, err := queryInt(r, "offset", 0)
	if err != nil || offset < 0 {
		writeError(w, http.StatusUnprocessableEntity, errTagValidation, "offset must be a non-negative integer")
		return
	}
	limit, err := queryInt(r, "limit", defaultPageLimit)
	if err != nil || limit < 1 || limit > maxPageLimit {
		writeError(w, http.StatusUnprocessableEntity, errTagValidation, "limit must be an integer between 1 and 100")
		return
	}

	page, err := h.items.List(r.Context(), offset, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	items := make([]itemResponse, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, toItemResponse(item))
	}
	writeJSON(w, http.StatusOK, listItemsResponse{
		Items:  items,
		Total:  page.Total,
		Offset: page.Offset,
		Limit:  page.Limit,
	})
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	item, err := h.items.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, errTagItemNotFound, "Item not found: "+id)
			return
		}
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(*item))
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, errTagValidation, "Invalid JSON body")
		return
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		writeError(w, http.StatusUnprocessableEntity, errTagValidation, "title cannot be blank")
		return
	}
	if req.Content != nil && strings.TrimSpace(*req.Content) == "" {
		writeError(w, http.StatusUnprocessableEntity, errTagValidation, "content cannot be blank")
		return
	}

	item, err := h.items.Update(r.Context(), id, domain.ItemPatch{
		Title:     req.Title,
		Content:   req.Content,
		SourceURL: req.SourceURL,
		Metadata:  req.Metadata,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, errTagItemNotFound, "Item not found: "+id)
			return
		}
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(*item))
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.items.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, errTagItemNotFound, "Item not found: "+id)
			return
		}
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
