package database

import (
	"fmt"
	"reflect"

	"cryptotron-backend/config"
	"cryptotron-backend/models"
)

var (
	ErrInvalidBatchSize = fmt.Errorf("batch size must be positive")
	ErrInvalidData      = fmt.Errorf("invalid data, expected slice")
)

// AutoMigrate creates or updates the schema for every model.
func AutoMigrate() error {
	return config.DB.AutoMigrate(
		&models.User{},
		&models.Holding{},
		&models.PriceSnapshot{},
	)
}

// CreateInBatches inserts a slice of records in chunks inside one transaction.
// Used by the price snapshot job to avoid one INSERT per row.
func CreateInBatches(data interface{}, batchSize int) error {
	if batchSize <= 0 {
		return ErrInvalidBatchSize
	}

	slice := reflect.ValueOf(data)
	if slice.Kind() != reflect.Slice {
		return ErrInvalidData
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if tx.Error != nil {
		return tx.Error
	}

	total := slice.Len()
	for i := 0; i < total; i += batchSize {
		end := i + batchSize
		if end > total {
			end = total
		}

		chunk := slice.Slice(i, end).Interface()
		if err := tx.Create(chunk).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("batch insert failed: %w", err)
		}
	}

	return tx.Commit().Error
}
