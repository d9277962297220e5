// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Executor
// model (actors and groups).
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-process-chat/internal/domain"
)

// CreateExecutor inserts a new executor row with a UUID primary key and UTC
// timestamp. Name uniqueness is enforced by the schema; violations propagate
// as raw DB errors for the service layer to translate.
func CreateExecutor(ctx context.Context, db *gorm.DB, e *domain.Executor) (*domain.Executor, error) {
	e.ID = uuid.NewString()
	e.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

// GetExecutor fetches an executor by ID, or ErrNotFound if missing.
func GetExecutor(ctx context.Context, db *gorm.DB, id string) (*domain.Executor, error) {
	var e domain.Executor
	if err := db.WithContext(ctx).Where("id = ?", id).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// GetExecutorByName fetches an executor by its unique name.
func GetExecutorByName(ctx context.Context, db *gorm.DB, name string) (*domain.Executor, error) {
	var e domain.Executor
	if err := db.WithContext(ctx).Where("name = ?", name).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// SetExecutorActive flips the active flag on an actor. Returns ErrNotFound
// when the identifier is unknown.
func SetExecutorActive(ctx context.Context, db *gorm.DB, id string, active bool) error {
	res := db.WithContext(ctx).
		Model(&domain.Executor{}).
		Where("id = ?", id).
		Update("active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
