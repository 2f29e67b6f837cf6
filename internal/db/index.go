package db

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bjw5035/family-photo-service/internal/db/models"
)

// LookupTakenDate returns the cached EXIF date for filename if the index
// holds a scanned record whose size and mtime still match the file on disk.
func LookupTakenDate(database *gorm.DB, filename string, sizeBytes, modTime int64) (string, bool) {
	if database == nil {
		return "", false
	}
	var rec models.PhotoRecord
	err := database.Where("filename = ? AND size_bytes = ? AND mod_time = ? AND scanned = ?",
		filename, sizeBytes, modTime, true).First(&rec).Error
	if err != nil {
		return "", false
	}
	return rec.TakenDate, true
}

// UpsertPhoto inserts or refreshes the index record for rec.Filename.
func UpsertPhoto(database *gorm.DB, rec models.PhotoRecord) error {
	if database == nil {
		return errors.New("database not initialized")
	}

	var existing models.PhotoRecord
	err := database.Where("filename = ?", rec.Filename).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if rec.ID == "" {
			rec.ID = uuid.New().String()
		}
		return database.Create(&rec).Error
	}
	if err != nil {
		return err
	}

	return database.Model(&existing).Updates(map[string]interface{}{
		"size_bytes": rec.SizeBytes,
		"mod_time":   rec.ModTime,
		"mime_type":  rec.MimeType,
		"taken_date": rec.TakenDate,
		"scanned":    rec.Scanned,
	}).Error
}

// PruneMissing deletes index records for files no longer present on disk.
// present maps filenames that currently exist in the data directory.
func PruneMissing(database *gorm.DB, present map[string]struct{}) (int64, error) {
	if database == nil {
		return 0, errors.New("database not initialized")
	}

	var all []models.PhotoRecord
	if err := database.Select("id", "filename").Find(&all).Error; err != nil {
		return 0, err
	}

	var stale []string
	for _, rec := range all {
		if _, ok := present[rec.Filename]; !ok {
			stale = append(stale, rec.ID)
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}

	result := database.Where("id IN ?", stale).Delete(&models.PhotoRecord{})
	return result.RowsAffected, result.Error
}
