// Package services – ProcessService
//
// Minimal process scaffolding: deployments give chat rooms their display
// names and processes give them their identity. The workflow engine that
// actually executes processes is a separate system; this service only
// maintains the records the chat subsystem joins against.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-process-chat/internal/domain"
	"github.com/tbourn/go-process-chat/internal/repo"
)

// ProcessService manages deployments and process instances.
type ProcessService struct {
	DB *gorm.DB
}

// NewProcessService constructs a ProcessService.
func NewProcessService(db *gorm.DB) *ProcessService {
	return &ProcessService{DB: db}
}

// Deploy records a process definition. The name is required because it is
// the display name of every room scoped to a process started from it.
// Version defaults to 1 when non-positive.
func (s *ProcessService) Deploy(ctx context.Context, name string, version int) (*domain.Deployment, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrDeploymentNameRequired
	}
	if version <= 0 {
		version = 1
	}
	return repo.CreateDeployment(ctx, s.DB, name, version)
}

// Start creates a process instance from an existing deployment.
func (s *ProcessService) Start(ctx context.Context, deploymentID int64) (*domain.Process, error) {
	var d domain.Deployment
	err := s.DB.WithContext(ctx).Where("id = ?", deploymentID).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDeploymentNotFound
	}
	if err != nil {
		return nil, err
	}
	return repo.CreateProcess(ctx, s.DB, deploymentID)
}

// Get fetches a process with its deployment preloaded.
func (s *ProcessService) Get(ctx context.Context, id int64) (*domain.Process, error) {
	p, err := repo.GetProcess(ctx, s.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProcessNotFound
	}
	return p, err
}
