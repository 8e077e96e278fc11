package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cortex-kb/cortex/internal/core/domain"
	"github.com/cortex-kb/cortex/internal/logger"
)

// Machine-readable error tags the desktop app switches on.
const (
	errTagValidation   = "validation_error"
	errTagItemNotFound = "item_not_found"
	errTagDBNotInit    = "database_not_initialized"
	errTagDatabase     = "database_error"
	errTagInternal     = "internal_error"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, tag, message string) {
	writeJSON(w, status, errorResponse{Error: tag, Message: message})
}

// writeDomainError maps service failures onto the wire contract. Handlers
// catch the cases that need request context (like the item ID) first.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, errTagItemNotFound, "Item not found")
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusUnprocessableEntity, errTagValidation, err.Error())
	case errors.Is(err, domain.ErrStorageUnavailable):
		writeError(w, http.StatusNotFound, errTagDBNotInit, "Database not initialized")
	case domain.IsDatabaseError(err):
		logger.Error("database failure: %v", err)
		writeError(w, http.StatusInternalServerError, errTagDatabase, "Database error")
	default:
		logger.Error("unhandled error: %v", err)
		writeError(w, http.StatusInternalServerError, errTagInternal, "Internal server error")
	}
}
