package db

import (
	"fmt"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bjw5035/family-photo-service/internal/db/models"
)

// InitDB opens (creating if needed) the SQLite database at dbPath and
// migrates the photo index and request log tables.
func InitDB(dbPath string) (*gorm.DB, error) {
	absPath, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database path: %w", err)
	}

	// gorm's default logger writes plain text to stdout; keep it silent so
	// the process emits JSON logs only.
	database, err := gorm.Open(sqlite.Open(absPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite permits a single writer; one pooled connection keeps the
	// async audit saves and the scanner from hitting SQLITE_BUSY.
	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := database.AutoMigrate(&models.PhotoRecord{}, &models.RequestLog{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return database, nil
}
