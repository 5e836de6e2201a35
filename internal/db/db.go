package db

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pos-bridge-backend/config"
	"pos-bridge-backend/internal/model"
)

// Init opens the preference database and runs migrations.
func Init(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	gormDB, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", cfg.Path, err)
	}

	log.Println("Running database migrations...")
	if err := gormDB.AutoMigrate(&model.LastPrinter{}); err != nil {
		return nil, fmt.Errorf("automigrate failed: %w", err)
	}

	return gormDB, nil
}
