package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/codyseavey/sneaker-tracker/internal/models"
)

// Initialize opens the sqlite database at dbPath and migrates the state table.
func Initialize(dbPath string, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	log.Info("Database connected successfully", zap.String("path", dbPath))

	// Auto-migrate the schema
	if err := db.AutoMigrate(&models.StateRecord{}); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	log.Debug("Database migration completed")
	return db, nil
}
