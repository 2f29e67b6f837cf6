package storage

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bjw5035/family-photo-service/internal/db"
	"github.com/bjw5035/family-photo-service/internal/db/models"
	"github.com/bjw5035/family-photo-service/internal/metrics"
)

// ScanSummary reports the outcome of one sweep over the data directory.
type ScanSummary struct {
	Files   int64
	Bytes   int64
	Indexed int
	Pruned  int64
}

// Scan sweeps the data directory once: files the index has not seen, or
// whose size or mtime changed, get their EXIF date re-parsed; records for
// files that disappeared are pruned. EXIF parsing runs on up to
// concurrency goroutines while database writes stay on the calling
// goroutine, since SQLite handles concurrent writers poorly.
func (s *Store) Scan(ctx context.Context, concurrency int) (ScanSummary, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return ScanSummary{}, fmt.Errorf("failed to read data directory: %w", err)
	}

	var summary ScanSummary
	present := make(map[string]struct{}, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var mu sync.Mutex
	var fresh []models.PhotoRecord

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}

		name := entry.Name()
		present[name] = struct{}{}
		summary.Files++
		summary.Bytes += fi.Size()

		size, mod := fi.Size(), fi.ModTime().UnixMilli()
		if _, ok := db.LookupTakenDate(s.db, name, size, mod); ok {
			continue
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec := models.PhotoRecord{
				Filename:  name,
				SizeBytes: size,
				ModTime:   mod,
				MimeType:  mime.TypeByExtension(filepath.Ext(name)),
				TakenDate: ExifTakenDate(filepath.Join(s.dir, name)),
				Scanned:   true,
			}
			mu.Lock()
			fresh = append(fresh, rec)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return summary, err
	}

	for _, rec := range fresh {
		if err := db.UpsertPhoto(s.db, rec); err != nil {
			return summary, fmt.Errorf("failed to index %s: %w", rec.Filename, err)
		}
	}
	summary.Indexed = len(fresh)

	pruned, err := db.PruneMissing(s.db, present)
	if err != nil {
		return summary, err
	}
	summary.Pruned = pruned

	return summary, nil
}

// RunScanner sweeps the data directory immediately and then every
// interval until ctx is cancelled, keeping the index and the storage
// gauges fresh.
func (s *Store) RunScanner(ctx context.Context, interval time.Duration, concurrency int, logger *slog.Logger) {
	s.scanOnce(ctx, concurrency, logger)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.scanOnce(ctx, concurrency, logger)
		}
	}
}

func (s *Store) scanOnce(ctx context.Context, concurrency int, logger *slog.Logger) {
	summary, err := s.Scan(ctx, concurrency)
	if err != nil {
		if ctx.Err() == nil {
			logger.Error("scan failed", "error", err)
		}
		return
	}

	metrics.StorageFiles.Set(float64(summary.Files))
	metrics.StorageBytes.Set(float64(summary.Bytes))
	logger.Info("scan complete",
		"files", summary.Files,
		"bytes", summary.Bytes,
		"indexed", summary.Indexed,
		"pruned", summary.Pruned)
}
