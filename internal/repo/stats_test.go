package repo

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-process-chat/internal/domain"
)

func newStatsDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("stats_%d.db", time.Now().UnixNano()))
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
	if err := db.AutoMigrate(
		&domain.Deployment{},
		&domain.Process{},
		&domain.ChatMessage{},
		&domain.ChatMessageRecipient{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestMessagesStats_EmptyThenPopulated(t *testing.T) {
	db := newStatsDB(t)
	ctx := context.Background()
	pid := seedProcess(t, db, "orders")

	count, maxTS, err := MessagesStats(ctx, db, "b", pid)
	if err != nil {
		t.Fatalf("MessagesStats empty: %v", err)
	}
	if count != 0 || maxTS != nil {
		t.Fatalf("expected zero stats, got count=%d maxTS=%v", count, maxTS)
	}

	m1 := sendTo(t, db, pid, "a", "one", "b")
	_ = sendTo(t, db, pid, "a", "two", "b")

	count, maxTS, err = MessagesStats(ctx, db, "b", pid)
	if err != nil {
		t.Fatalf("MessagesStats: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected count=2, got %d", count)
	}
	if maxTS == nil || maxTS.Before(m1.UpdatedAt) {
		t.Fatalf("maxTS should be the latest UpdatedAt, got %v", maxTS)
	}
}

func TestRoomsStats_TracksReads(t *testing.T) {
	db := newStatsDB(t)
	ctx := context.Background()
	pid := seedProcess(t, db, "orders")

	total, read, err := RoomsStats(ctx, db, "b")
	if err != nil || total != 0 || read != 0 {
		t.Fatalf("expected zero stats, got total=%d read=%d err=%v", total, read, err)
	}

	m1 := sendTo(t, db, pid, "a", "one", "b")
	_ = sendTo(t, db, pid, "a", "two", "b")

	total, read, err = RoomsStats(ctx, db, "b")
	if err != nil || total != 2 || read != 0 {
		t.Fatalf("expected total=2 read=0, got total=%d read=%d err=%v", total, read, err)
	}

	if _, err := MarkReadBefore(db, "b", m1.ID+1, time.Now().UTC()); err != nil {
		t.Fatalf("MarkReadBefore: %v", err)
	}
	total, read, err = RoomsStats(ctx, db, "b")
	if err != nil || total != 2 || read != 1 {
		t.Fatalf("expected total=2 read=1, got total=%d read=%d err=%v", total, read, err)
	}
}
