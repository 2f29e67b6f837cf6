// Package web assembles the HTTP router for the photo service.
package web

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/bjw5035/family-photo-service/internal/metrics"
	"github.com/bjw5035/family-photo-service/internal/storage"
	"github.com/bjw5035/family-photo-service/internal/web/handlers"
	"github.com/bjw5035/family-photo-service/internal/web/middleware"
	"github.com/bjw5035/family-photo-service/internal/web/monitor"
)

// Deps carries the shared state the routes are built around.
type Deps struct {
	Store  *storage.Store
	Audit  *monitor.AuditLog
	APIKey string
	Logger *slog.Logger
}

// NewRouter builds the service router.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.Logger))
	r.Use(chimiddleware.Recoverer)

	// ============================================
	// Public Routes (No Auth Required)
	// ============================================

	r.Get("/healthz", metrics.Instrument("healthz", handlers.HealthzHandler()))
	r.Get("/version", handlers.VersionHandler())
	r.Handle("/metrics", metrics.Handler())

	// ============================================
	// Protected Routes (API Key Required)
	// ============================================

	r.Group(func(r chi.Router) {
		// Audit runs before auth; rejected requests are recorded too.
		r.Use(d.Audit.Middleware())
		r.Use(middleware.APIKeyAuth(d.APIKey))

		r.Post("/echo", metrics.Instrument("echo", handlers.EchoHandler(d.Logger)))
		r.Post("/upload", metrics.Instrument("upload", handlers.UploadHandler(d.Store, d.Logger)))
		r.Get("/files", metrics.Instrument("files", handlers.FilesHandler(d.Store)))
		r.Get("/download/{filename}", metrics.Instrument("download", handlers.DownloadHandler(d.Store)))
		r.Get("/calendar/{year}/{month}", metrics.Instrument("calendar", handlers.CalendarHandler(d.Store)))

		// Audit administration
		r.Route("/admin", func(r chi.Router) {
			r.Get("/requests", handlers.GetRequestLogsHandler(d.Audit))
			r.Delete("/requests", handlers.ClearRequestLogsHandler(d.Audit))
			r.Get("/stats", handlers.GetRequestStatsHandler(d.Audit))
			r.Get("/audit", handlers.GetAuditStatusHandler(d.Audit))
			r.Post("/audit", handlers.ToggleAuditHandler(d.Audit))
		})
	})

	return r
}
