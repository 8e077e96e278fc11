package httpapi

import (
	"errors"
	"net/http"

	"github.com/cortex-kb/cortex/internal/core/domain"
)

type storeStatusResponse struct {
	SQLiteVersion string   `json:"sqlite_version"`
	VecVersion    string   `json:"vec_version"`
	Tables        []string `json:"tables"`
	ItemCount     int      `json:"item_count"`
	ChunkCount    int      `json:"chunk_count"`
}

// getDBStatus reports storage internals for the desktop app's debug view.
func (h *Handler) getDBStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.status.Status(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrStorageUnavailable) {
			writeError(w, http.StatusNotFound, errTagDBNotInit, "Database not initialized")
			return
		}
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, storeStatusResponse{
		SQLiteVersion: status.SQLiteVersion,
		VecVersion:    status.VecVersion,
		Tables:        status.Tables,
		ItemCount:     status.ItemCount,
		ChunkCount:    status.ChunkCount,
	})
}
