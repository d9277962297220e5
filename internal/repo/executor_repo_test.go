package repo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-process-chat/internal/domain"
)

func newExecRepoDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("exec_repo_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := db.AutoMigrate(&domain.Executor{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestCreateExecutor_AssignsIDAndTimestamp(t *testing.T) {
	db := newExecRepoDB(t)
	ctx := context.Background()

	code := int64(7)
	e, err := CreateExecutor(ctx, db, &domain.Executor{
		Name:     "jdoe",
		FullName: "J Doe",
		Kind:     domain.KindActor,
		Code:     &code,
		Active:   true,
	})
	if err != nil {
		t.Fatalf("CreateExecutor: %v", err)
	}
	if e.ID == "" || len(e.ID) != 36 {
		t.Fatalf("expected UUID id, got %q", e.ID)
	}
	if e.CreatedAt.IsZero() {
		t.Fatalf("CreatedAt not set: %+v", e)
	}
	if !e.IsActor() {
		t.Fatalf("expected actor kind: %+v", e)
	}

	got, err := GetExecutor(ctx, db, e.ID)
	if err != nil {
		t.Fatalf("GetExecutor: %v", err)
	}
	if got.Name != "jdoe" || got.Code == nil || *got.Code != 7 {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}
}

func TestCreateExecutor_NameUnique(t *testing.T) {
	db := newExecRepoDB(t)
	ctx := context.Background()

	if _, err := CreateExecutor(ctx, db, &domain.Executor{Name: "ops", FullName: "Ops", Kind: domain.KindGroup}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := CreateExecutor(ctx, db, &domain.Executor{Name: "ops", FullName: "Ops Again", Kind: domain.KindGroup}); err == nil {
		t.Fatalf("expected unique violation for duplicate name")
	}
}

func TestGetExecutorByName(t *testing.T) {
	db := newExecRepoDB(t)
	ctx := context.Background()

	e, err := CreateExecutor(ctx, db, &domain.Executor{Name: "qa-team", FullName: "QA Team", Kind: domain.KindGroup})
	if err != nil {
		t.Fatalf("CreateExecutor: %v", err)
	}

	got, err := GetExecutorByName(ctx, db, "qa-team")
	if err != nil {
		t.Fatalf("GetExecutorByName: %v", err)
	}
	if got.ID != e.ID {
		t.Fatalf("wrong executor: %+v", got)
	}

	if _, err := GetExecutorByName(ctx, db, "missing"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestSetExecutorActive(t *testing.T) {
	db := newExecRepoDB(t)
	ctx := context.Background()

	e, err := CreateExecutor(ctx, db, &domain.Executor{Name: "jdoe", FullName: "J Doe", Kind: domain.KindActor, Active: true})
	if err != nil {
		t.Fatalf("CreateExecutor: %v", err)
	}
	if err := SetExecutorActive(ctx, db, e.ID, false); err != nil {
		t.Fatalf("SetExecutorActive: %v", err)
	}
	got, err := GetExecutor(ctx, db, e.ID)
	if err != nil || got.Active {
		t.Fatalf("expected deactivated executor, got %+v err=%v", got, err)
	}

	if err := SetExecutorActive(ctx, db, "no-such-id", false); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}
