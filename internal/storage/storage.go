// Package storage manages the photo data directory: saving uploads,
// listing and resolving stored files, and keeping the EXIF date index
// in sync with what is actually on disk.
package storage

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/bjw5035/family-photo-service/internal/db"
	"github.com/bjw5035/family-photo-service/internal/db/models"
)

// ErrInvalidName reports a filename that is empty or would escape the
// data directory.
var ErrInvalidName = errors.New("invalid filename")

// FileInfo describes one stored file as returned by the listing endpoint.
type FileInfo struct {
	Filename   string    `json:"filename"`
	SizeBytes  int64     `json:"size_bytes"`
	UploadedAt time.Time `json:"uploaded_at"`
	TakenDate  *string   `json:"taken_date"`
}

// Store is a flat directory of uploaded files backed by a metadata index.
// Files placed in the directory out of band are picked up on listing and
// by the background scanner.
type Store struct {
	dir string
	db  *gorm.DB
}

// New opens the data directory at dir, creating it if needed. database
// holds the photo index; with a nil database dates are parsed from EXIF
// on every lookup instead of being cached.
func New(dir string, database *gorm.DB) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dir: dir, db: database}, nil
}

// Save writes content under the upload's base filename, renaming to
// stem_1.ext, stem_2.ext and so on when the name is already taken.
// It returns the filename actually used.
func (s *Store) Save(filename string, content []byte, mimeType string) (string, error) {
	name := sanitizeName(filename)
	if name == "" {
		return "", ErrInvalidName
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	target := name
	for i := 1; s.exists(target); i++ {
		target = fmt.Sprintf("%s_%d%s", stem, i, ext)
	}

	fullPath := filepath.Join(s.dir, target)
	if err := os.WriteFile(fullPath, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	// Warm the index so the follow-up date lookup does not re-read the file.
	if fi, err := os.Stat(fullPath); err == nil {
		s.indexFile(target, fi, mimeType)
	}

	return target, nil
}

// Path resolves filename to its location in the data directory. The name
// must be a plain base name; anything with a path separator is rejected.
func (s *Store) Path(filename string) (string, error) {
	if filename == "" || filename == "." || filename == ".." ||
		strings.ContainsAny(filename, "/\\") {
		return "", ErrInvalidName
	}
	return filepath.Join(s.dir, filename), nil
}

// List returns every regular file in the data directory, newest first.
func (s *Store) List(ctx context.Context) ([]FileInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	files := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Filename:   entry.Name(),
			SizeBytes:  fi.Size(),
			UploadedAt: fi.ModTime().UTC(),
			TakenDate:  s.takenDate(entry.Name(), fi),
		})
	}

	sort.SliceStable(files, func(i, j int) bool {
		return files[i].UploadedAt.After(files[j].UploadedAt)
	})
	return files, nil
}

// TakenDate returns the capture date for a stored file, or nil when the
// file is missing or carries no usable EXIF date.
func (s *Store) TakenDate(filename string) *string {
	fullPath, err := s.Path(filename)
	if err != nil {
		return nil
	}
	fi, err := os.Stat(fullPath)
	if err != nil || fi.IsDir() {
		return nil
	}
	return s.takenDate(filename, fi)
}

// takenDate resolves the capture date through the index, parsing EXIF
// and recording the result on a miss.
func (s *Store) takenDate(name string, fi os.FileInfo) *string {
	size, mod := fi.Size(), fi.ModTime().UnixMilli()
	if date, ok := db.LookupTakenDate(s.db, name, size, mod); ok {
		if date == "" {
			return nil
		}
		return &date
	}

	date := ExifTakenDate(filepath.Join(s.dir, name))
	s.recordIndex(models.PhotoRecord{
		Filename:  name,
		SizeBytes: size,
		ModTime:   mod,
		MimeType:  mime.TypeByExtension(filepath.Ext(name)),
		TakenDate: date,
		Scanned:   true,
	})
	if date == "" {
		return nil
	}
	return &date
}

// indexFile records a freshly saved upload, preferring the client-supplied
// content type over the extension-derived one.
func (s *Store) indexFile(name string, fi os.FileInfo, mimeType string) {
	if mimeType == "" {
		mimeType = mime.TypeByExtension(filepath.Ext(name))
	}
	s.recordIndex(models.PhotoRecord{
		Filename:  name,
		SizeBytes: fi.Size(),
		ModTime:   fi.ModTime().UnixMilli(),
		MimeType:  mimeType,
		TakenDate: ExifTakenDate(filepath.Join(s.dir, name)),
		Scanned:   true,
	})
}

// recordIndex is a best-effort index write; files remain served straight
// from disk when the database is unavailable.
func (s *Store) recordIndex(rec models.PhotoRecord) {
	if s.db == nil {
		return
	}
	_ = db.UpsertPhoto(s.db, rec)
}

func (s *Store) exists(name string) bool {
	_, err := os.Stat(filepath.Join(s.dir, name))
	return err == nil
}

// sanitizeName strips any directory components from an upload's filename,
// normalizing Windows separators first.
func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == ".." || name == "/" {
		return ""
	}
	return name
}
