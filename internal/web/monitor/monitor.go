// Package monitor records served HTTP requests for the admin audit
// endpoints, keeping a small in-memory window alongside the durable
// request_logs table.
package monitor

import (
	"bytes"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bjw5035/family-photo-service/internal/db/models"
	"github.com/bjw5035/family-photo-service/internal/logging"
	"github.com/bjw5035/family-photo-service/internal/util"
)

const (
	// MaxMemoryLogs limits the in-memory log cache
	MaxMemoryLogs = 100
	// MaxErrorBodyLen limits how much of an error response body is kept
	MaxErrorBodyLen = 1024
	// DefaultRecentLimit is used when a query asks for no particular limit
	DefaultRecentLimit = 100
)

// AuditLog manages request logging and statistics
type AuditLog struct {
	db      *gorm.DB
	logger  *slog.Logger
	enabled atomic.Bool

	// In-memory cache for recent logs (thread-safe)
	recentLogs []models.RequestLog
	logsMu     sync.RWMutex

	// In-memory stats (updated atomically)
	totalRequests atomic.Int64
	successCount  atomic.Int64
	errorCount    atomic.Int64
}

// New creates an AuditLog backed by database, recording only while
// enabled.
func New(database *gorm.DB, logger *slog.Logger, enabled bool) *AuditLog {
	a := &AuditLog{
		db:         database,
		logger:     logger,
		recentLogs: make([]models.RequestLog, 0, MaxMemoryLogs),
	}

	if err := database.AutoMigrate(&models.RequestLog{}); err != nil {
		logger.Error("failed to migrate request_logs table", "error", err)
	}

	a.loadStatsFromDB()
	a.enabled.Store(enabled)

	return a
}

// SetEnabled enables or disables request logging
func (a *AuditLog) SetEnabled(enabled bool) {
	a.enabled.Store(enabled)
	a.logger.Info("audit logging toggled", "enabled", enabled)
}

// IsEnabled returns whether logging is enabled
func (a *AuditLog) IsEnabled() bool {
	return a.enabled.Load()
}

// Record logs a served request (async, non-blocking)
func (a *AuditLog) Record(entry models.RequestLog) {
	if !a.IsEnabled() {
		return
	}

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp == 0 {
		entry.Timestamp = time.Now().UnixMilli()
	}
	if entry.Status == 0 {
		entry.Status = http.StatusOK
	}
	entry.UserAgent = util.TruncateField(entry.UserAgent)
	entry.Error = util.TruncateField(entry.Error)

	// Update in-memory stats
	a.totalRequests.Add(1)
	if entry.Status >= 200 && entry.Status < 400 {
		a.successCount.Add(1)
	} else {
		a.errorCount.Add(1)
	}

	// Add to in-memory cache
	a.logsMu.Lock()
	a.recentLogs = append([]models.RequestLog{entry}, a.recentLogs...)
	if len(a.recentLogs) > MaxMemoryLogs {
		a.recentLogs = a.recentLogs[:MaxMemoryLogs]
	}
	a.logsMu.Unlock()

	// Async save to DB
	go func(entry models.RequestLog) {
		if err := a.db.Create(&entry).Error; err != nil {
			a.logger.Error("failed to save request log", "error", err)
		}
	}(entry)
}

// Recent returns recent request logs with an optional time filter
func (a *AuditLog) Recent(limit int, sinceMinutes int) []models.RequestLog {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	var logs []models.RequestLog
	query := a.db.Order("timestamp DESC").Limit(limit)

	if sinceMinutes > 0 {
		sinceTime := time.Now().Add(-time.Duration(sinceMinutes) * time.Minute).UnixMilli()
		query = query.Where("timestamp >= ?", sinceTime)
	}

	if err := query.Find(&logs).Error; err != nil {
		a.logger.Error("failed to query request logs", "error", err)
		// Fallback to memory
		a.logsMu.RLock()
		defer a.logsMu.RUnlock()
		if limit > len(a.recentLogs) {
			limit = len(a.recentLogs)
		}
		return a.recentLogs[:limit]
	}
	return logs
}

// Stats returns aggregated request statistics
func (a *AuditLog) Stats() models.RequestStats {
	return models.RequestStats{
		TotalRequests: a.totalRequests.Load(),
		SuccessCount:  a.successCount.Load(),
		ErrorCount:    a.errorCount.Load(),
	}
}

// Clear removes all logs from memory and database
func (a *AuditLog) Clear() error {
	a.logsMu.Lock()
	a.recentLogs = a.recentLogs[:0]
	a.logsMu.Unlock()

	a.totalRequests.Store(0)
	a.successCount.Store(0)
	a.errorCount.Store(0)

	if err := a.db.Exec("DELETE FROM request_logs").Error; err != nil {
		a.logger.Error("failed to clear request logs", "error", err)
		return err
	}

	a.logger.Info("request logs cleared")
	return nil
}

// Middleware records every request passing through it. Error response
// bodies are captured (bounded) so the audit trail shows why a request
// failed.
func (a *AuditLog) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			body := newBoundedBuffer(MaxErrorBodyLen)
			ww.Tee(body)

			next.ServeHTTP(ww, r)

			entry := models.RequestLog{
				RequestID:  logging.RequestIDFrom(r.Context()),
				Method:     r.Method,
				Path:       r.URL.Path,
				Status:     ww.Status(),
				DurationMS: time.Since(start).Milliseconds(),
				RemoteAddr: r.RemoteAddr,
				UserAgent:  r.UserAgent(),
			}
			if ww.Status() >= 400 {
				entry.Error = body.String()
			}
			a.Record(entry)
		})
	}
}

func (a *AuditLog) loadStatsFromDB() {
	var total, success, errors int64

	a.db.Model(&models.RequestLog{}).Count(&total)
	a.db.Model(&models.RequestLog{}).Where("status >= 200 AND status < 400").Count(&success)
	a.db.Model(&models.RequestLog{}).Where("status < 200 OR status >= 400").Count(&errors)

	a.totalRequests.Store(total)
	a.successCount.Store(success)
	a.errorCount.Store(errors)

	a.logger.Info("loaded audit stats", "total", total, "success", success, "errors", errors)
}

// boundedBuffer keeps the first max bytes written to it and counts the
// rest, so response teeing never grows without limit.
type boundedBuffer struct {
	buf   bytes.Buffer
	max   int
	total int
}

func newBoundedBuffer(max int) *boundedBuffer {
	return &boundedBuffer{max: max}
}

func (b *boundedBuffer) Write(p []byte) (int, error) {
	b.total += len(p)
	if remain := b.max - b.buf.Len(); remain > 0 {
		if len(p) > remain {
			b.buf.Write(p[:remain])
		} else {
			b.buf.Write(p)
		}
	}
	return len(p), nil
}

func (b *boundedBuffer) String() string {
	if b.total > b.max {
		return b.buf.String() + "...[truncated]"
	}
	return b.buf.String()
}
