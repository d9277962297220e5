// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Deployment
// and Process models: just enough process scaffolding for chat rooms to have
// an identity and a display name. The workflow engine proper lives elsewhere.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-process-chat/internal/domain"
)

// CreateDeployment inserts a deployment (process definition) row.
func CreateDeployment(ctx context.Context, db *gorm.DB, name string, version int) (*domain.Deployment, error) {
	d := &domain.Deployment{
		Name:      name,
		Version:   version,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(d).Error; err != nil {
		return nil, err
	}
	return d, nil
}

// CreateProcess starts a process instance from a deployment. The deployment
// must exist; the FK constraint rejects unknown identifiers.
func CreateProcess(ctx context.Context, db *gorm.DB, deploymentID int64) (*domain.Process, error) {
	p := &domain.Process{
		DeploymentID: deploymentID,
		CreatedAt:    time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// GetProcess fetches a process with its deployment preloaded, or ErrNotFound.
func GetProcess(ctx context.Context, db *gorm.DB, id int64) (*domain.Process, error) {
	var p domain.Process
	err := db.WithContext(ctx).
		Preload("Deployment").
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ProcessExists reports whether a process row exists without loading it.
func ProcessExists(ctx context.Context, db *gorm.DB, id int64) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Process{}).
		Where("id = ?", id).
		Count(&n).Error
	return n > 0, err
}
