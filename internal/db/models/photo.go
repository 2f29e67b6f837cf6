package models

import "time"

// PhotoRecord is the indexed metadata for one file in the data directory.
// It doubles as the EXIF cache: SizeBytes and ModTime form the cache key,
// so an overwritten file gets re-scanned while unchanged files skip EXIF
// parsing entirely.
type PhotoRecord struct {
	ID        string    `gorm:"primaryKey" json:"id"` // UUID
	Filename  string    `gorm:"uniqueIndex" json:"filename"`
	SizeBytes int64     `json:"size_bytes"`
	ModTime   int64     `json:"mod_time"` // unix milliseconds of the file mtime at scan time
	MimeType  string    `json:"mime_type,omitempty"`
	TakenDate string    `json:"taken_date,omitempty"` // YYYY-MM-DD from EXIF, empty when absent
	Scanned   bool      `gorm:"default:false" json:"scanned"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
