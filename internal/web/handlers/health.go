// Package handlers implements the HTTP endpoints of the photo service.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/bjw5035/family-photo-service/internal/version"
)

// HealthzHandler answers container and load balancer health checks.
// GET /healthz
func HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	}
}

// VersionHandler returns version information as JSON
// GET /version
func VersionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"version":    version.Version,
			"commit":     version.Commit,
			"build_time": version.BuildTime,
		})
	}
}
