package httpapi

import (
	"net/http"
	"time"
)

type componentCheckResponse struct {
	Status        string  `json:"status"`
	LatencyMillis *int64  `json:"latency_ms"`
	Error         *string `json:"error"`
}

type healthResponse struct {
	Status    string                            `json:"status"`
	Version   string                            `json:"version"`
	Timestamp time.Time                         `json:"timestamp"`
	Checks    map[string]componentCheckResponse `json:"checks"`
}

type providerReportResponse struct {
	Status        string   `json:"status"`
	BaseURL       string   `json:"base_url"`
	Models        []string `json:"models"`
	Error         *string  `json:"error"`
	LatencyMillis *float64 `json:"latency_ms"`
}

// getHealth reports aggregate component health. 200 only when every check
// passes; degraded and unhealthy both answer 503 with the same body.
func (h *Handler) getHealth(w http.ResponseWriter, r *http.Request) {
	report := h.health.Report(r.Context())

	checks := make(map[string]componentCheckResponse, len(report.Checks))
	for name, check := range report.Checks {
		checks[name] = componentCheckResponse{
			Status:        check.Status,
			LatencyMillis: check.LatencyMillis,
			Error:         nullableString(check.Error),
		}
	}

	status := http.StatusOK
	if !report.Healthy() {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, healthResponse{
		Status:    report.Status,
		Version:   report.Version,
		Timestamp: report.Timestamp,
		Checks:    checks,
	})
}

// getOllamaHealth reports the provider probe. Always 200; an unreachable
// provider is a payload state, not a transport failure.
func (h *Handler) getOllamaHealth(w http.ResponseWriter, r *http.Request) {
	report := h.provider.Report(r.Context())

	writeJSON(w, http.StatusOK, providerReportResponse{
		Status:        report.Status,
		BaseURL:       report.BaseURL,
		Models:        report.Models,
		Error:         nullableString(report.Error),
		LatencyMillis: report.LatencyMillis,
	})
}

// nullableString maps the empty string to an explicit JSON null. The
// desktop app's parsers expect absent values as null, not "".
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
