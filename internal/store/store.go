package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"pos-bridge-backend/internal/model"
)

// lastPrinterID is the fixed primary key of the single preference row.
const lastPrinterID int64 = 1

// Store defines the interface for all persistence operations.
type Store interface {
	DB() *gorm.DB
	SaveLastPrinter(ctx context.Context, address, name string) error
	GetLastPrinter(ctx context.Context) (*model.LastPrinter, error)
	ClearLastPrinter(ctx context.Context) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying handle for callers that need direct access.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// SaveLastPrinter overwrites the remembered printer. Each successful
// connect supersedes the previous record.
func (s *gormStore) SaveLastPrinter(ctx context.Context, address, name string) error {
	record := model.LastPrinter{
		ID:      lastPrinterID,
		Address: address,
		Name:    name,
	}
	if err := s.db.WithContext(ctx).Save(&record).Error; err != nil {
		return fmt.Errorf("failed to save last printer: %w", err)
	}
	return nil
}

// GetLastPrinter returns the remembered printer, or (nil, nil) when none
// has been saved yet.
func (s *gormStore) GetLastPrinter(ctx context.Context) (*model.LastPrinter, error) {
	var record model.LastPrinter
	err := s.db.WithContext(ctx).First(&record, lastPrinterID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load last printer: %w", err)
	}
	return &record, nil
}

// ClearLastPrinter forgets the remembered printer. A manual disconnect does
// NOT call this; it exists for the explicit forget operation only.
func (s *gormStore) ClearLastPrinter(ctx context.Context) error {
	err := s.db.WithContext(ctx).Delete(&model.LastPrinter{}, lastPrinterID).Error
	if err != nil {
		return fmt.Errorf("failed to clear last printer: %w", err)
	}
	return nil
}
