// Package services – ExecutorService
//
// This file implements the ExecutorService, which manages the registry of
// executors (actors and groups). It validates kinds and names, derives a
// display name when none is given, and coordinates repository operations for
// registering, fetching, and deactivating executors.
//
// Service-level errors (e.g., ErrExecutorNotFound) are returned for
// predictable cases so handlers can map them to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-process-chat/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ExecutorRepo defines the repository contract required by ExecutorService.
// Implementations are responsible for persistence of executor records.
type ExecutorRepo interface {
	// CreateExecutor inserts a new executor row.
	CreateExecutor(ctx context.Context, db *gorm.DB, e *domain.Executor) (*domain.Executor, error)

	// GetExecutor fetches an executor by ID.
	GetExecutor(ctx context.Context, db *gorm.DB, id string) (*domain.Executor, error)

	// GetExecutorByName fetches an executor by its unique name.
	GetExecutorByName(ctx context.Context, db *gorm.DB, name string) (*domain.Executor, error)

	// SetExecutorActive flips the active flag on an executor.
	SetExecutorActive(ctx context.Context, db *gorm.DB, id string, active bool) error
}

// RegisterExecutorInput carries the caller-supplied attributes for a new
// executor. Actor-only fields are ignored for groups.
type RegisterExecutorInput struct {
	Name     string
	FullName string
	Kind     string
	Code     *int64
	Email    string
	Phone    string
}

// ExecutorService provides executor registry operations: registering actors
// and groups, lookups, and deactivation.
type ExecutorService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the executor repository used by this service.
	Repo ExecutorRepo

	// NameCaser title-cases derived display names.
	NameCaser cases.Caser
}

// NewExecutorService constructs an ExecutorService with an English title caser.
func NewExecutorService(db *gorm.DB, r ExecutorRepo) *ExecutorService {
	return &ExecutorService{
		DB:        db,
		Repo:      r,
		NameCaser: cases.Title(language.English),
	}
}

// Register validates and persists a new executor. Kind must be "actor" or
// "group"; the name is required and unique. When no full name is provided,
// one is derived by title-casing the name ("release.manager" → "Release
// Manager"). Actors start active; groups carry no actor-only attributes.
func (s *ExecutorService) Register(ctx context.Context, in RegisterExecutorInput) (*domain.Executor, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	kind := strings.ToLower(strings.TrimSpace(in.Kind))
	if kind != domain.KindActor && kind != domain.KindGroup {
		return nil, ErrInvalidKind
	}

	if _, err := s.Repo.GetExecutorByName(ctx, s.DB, name); err == nil {
		return nil, ErrNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	e := &domain.Executor{
		Name:     name,
		FullName: strings.TrimSpace(in.FullName),
		Kind:     kind,
	}
	if e.FullName == "" {
		e.FullName = s.displayName(name)
	}
	if kind == domain.KindActor {
		e.Code = in.Code
		e.Active = true
		e.Email = strings.TrimSpace(in.Email)
		e.Phone = strings.TrimSpace(in.Phone)
	}
	return s.Repo.CreateExecutor(ctx, s.DB, e)
}

// Get fetches an executor by identifier.
func (s *ExecutorService) Get(ctx context.Context, id string) (*domain.Executor, error) {
	e, err := s.Repo.GetExecutor(ctx, s.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrExecutorNotFound
	}
	return e, err
}

// Deactivate clears the active flag on an executor. Deactivated actors keep
// their ledger entries; they simply stop being eligible participants.
func (s *ExecutorService) Deactivate(ctx context.Context, id string) error {
	err := s.Repo.SetExecutorActive(ctx, s.DB, id, false)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrExecutorNotFound
	}
	return err
}

// displayName derives a human-readable full name from a login-style name by
// replacing common separators with spaces and title-casing the words.
func (s *ExecutorService) displayName(name string) string {
	cleaned := strings.NewReplacer(".", " ", "_", " ", "-", " ").Replace(name)
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	if cleaned == "" {
		return name
	}
	return s.NameCaser.String(cleaned)
}
