package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/bjw5035/family-photo-service/internal/web/monitor"
)

// GetRequestLogsHandler returns recent audit entries
// GET /admin/requests
func GetRequestLogsHandler(audit *monitor.AuditLog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
				limit = l
			}
		}
		since := 0
		if sinceStr := r.URL.Query().Get("since"); sinceStr != "" {
			if s, err := strconv.Atoi(sinceStr); err == nil && s > 0 {
				since = s
			}
		}

		logs := audit.Recent(limit, since)

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"logs":  logs,
			"count": len(logs),
		})
	}
}

// GetRequestStatsHandler returns aggregated request statistics
// GET /admin/stats
func GetRequestStatsHandler(audit *monitor.AuditLog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, audit.Stats())
	}
}

// ClearRequestLogsHandler removes all audit entries
// DELETE /admin/requests
func ClearRequestLogsHandler(audit *monitor.AuditLog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := audit.Clear(); err != nil {
			writeDetail(w, http.StatusInternalServerError, "failed to clear request logs")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// GetAuditStatusHandler reports whether audit recording is on
// GET /admin/audit
func GetAuditStatusHandler(audit *monitor.AuditLog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"enabled": audit.IsEnabled(),
		})
	}
}

// ToggleAuditHandler enables or disables audit recording
// POST /admin/audit
func ToggleAuditHandler(audit *monitor.AuditLog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Enabled *bool `json:"enabled"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Enabled == nil {
			writeDetail(w, http.StatusBadRequest, "invalid request body")
			return
		}

		audit.SetEnabled(*req.Enabled)

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"enabled": audit.IsEnabled(),
		})
	}
}
