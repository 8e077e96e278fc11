package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cortex-kb/cortex/internal/core/domain"
)

func TestGetDBStatus(t *testing.T) {
	status := &mockStatusService{status: &domain.StoreStatus{
		SQLiteVersion: "3.46.0",
		VecVersion:    "",
		Tables:        []string{"chunks", "items", "schema_migrations"},
		ItemCount:     3,
		ChunkCount:    12,
	}}
	router := newMockRouter(&mockHealthService{}, &mockProviderService{}, status)

	rec := doJSON(t, router, http.MethodGet, "/api/db/status", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var body storeStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "3.46.0", body.SQLiteVersion)
	assert.Equal(t, "", body.VecVersion)
	assert.Equal(t, []string{"chunks", "items", "schema_migrations"}, body.Tables)
	assert.Equal(t, 3, body.ItemCount)
	assert.Equal(t, 12, body.ChunkCount)
}

func TestGetDBStatus_NotInitialized(t *testing.T) {
	status := &mockStatusService{
		err: fmt.Errorf("checking %s: %w", "/tmp/missing.db", domain.ErrStorageUnavailable),
	}
	router := newMockRouter(&mockHealthService{}, &mockProviderService{}, status)

	rec := doJSON(t, router, http.MethodGet, "/api/db/status", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "database_not_initialized", body.Error)
	assert.Equal(t, "Database not initialized", body.Message)
}

func TestGetDBStatus_StorageFailure(t *testing.T) {
	status := &mockStatusService{
		err: &domain.DatabaseError{Op: "inspect", Err: fmt.Errorf("disk I/O error")},
	}
	router := newMockRouter(&mockHealthService{}, &mockProviderService{}, status)

	rec := doJSON(t, router, http.MethodGet, "/api/db/status", nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "database_error", body.Error)
}
