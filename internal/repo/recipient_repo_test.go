package repo

import (
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

func newLedgerDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("ledger_%d.db", time.Now().UnixNano()))
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
		&domain.Executor{},
		&domain.Deployment{},
		&domain.Process{},
		&domain.ChatMessage{},
		&domain.ChatMessageRecipient{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// sendTo persists one message plus its fan-out rows.
func sendTo(t *testing.T, db *gorm.DB, pid int64, author string, content string, recipients ...string) *domain.ChatMessage {
	t.Helper()
	msg, err := CreateMessage(db, pid, author, content)
	if err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	if _, err := CreateRecipients(db, msg.ID, recipients); err != nil {
		t.Fatalf("CreateRecipients: %v", err)
	}
	return msg
}

func TestCreateRecipients_FanOutStartsUnread(t *testing.T) {
	db := newLedgerDB(t)
	pid := seedProcess(t, db, "orders")

	msg := sendTo(t, db, pid, "a", "hello", "a", "b", "c")

	var rows []domain.ChatMessageRecipient
	if err := db.Where("message_id = ?", msg.ID).Find(&rows).Error; err != nil {
		t.Fatalf("find rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 ledger rows, got %d", len(rows))
	}
	for _, r := range rows {
		if r.ReadAt != nil {
			t.Fatalf("new entry must start unread: %+v", r)
		}
		if r.IsRead() {
			t.Fatalf("IsRead must be false for %+v", r)
		}
	}
}

func TestCreateRecipients_EmptySetIsNoop(t *testing.T) {
	db := newLedgerDB(t)

	rows, err := CreateRecipients(db, 1, nil)
	if err != nil || rows != nil {
		t.Fatalf("expected no-op for empty set, got rows=%v err=%v", rows, err)
	}
}

func TestCreateRecipients_DuplicatePairRejected(t *testing.T) {
	db := newLedgerDB(t)
	pid := seedProcess(t, db, "orders")
	msg := sendTo(t, db, pid, "a", "hello", "b")

	_, err := CreateRecipients(db, msg.ID, []string{"b"})
	if !errors.Is(err, ErrDuplicateRecipient) {
		t.Fatalf("expected ErrDuplicateRecipient, got %v", err)
	}
}

func TestMarkReadBefore_BoundaryIsExclusive(t *testing.T) {
	db := newLedgerDB(t)
	pid := seedProcess(t, db, "orders")

	m1 := sendTo(t, db, pid, "a", "one", "b")
	m2 := sendTo(t, db, pid, "a", "two", "b")
	m3 := sendTo(t, db, pid, "a", "three", "b")

	// boundary m3: m1 and m2 become read, m3 stays unread
	n, err := MarkReadBefore(db, "b", m3.ID, time.Now().UTC())
	if err != nil {
		t.Fatalf("MarkReadBefore: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 rows marked, got %d", n)
	}

	for _, tc := range []struct {
		msgID int64
		read  bool
	}{
		{m1.ID, true},
		{m2.ID, true},
		{m3.ID, false},
	} {
		// fresh struct per lookup: a populated primary key would otherwise
		// leak into the next query's WHERE clause
		var r domain.ChatMessageRecipient
		if err := db.Where("message_id = ? AND executor_id = ?", tc.msgID, "b").First(&r).Error; err != nil {
			t.Fatalf("find entry for msg %d: %v", tc.msgID, err)
		}
		if r.IsRead() != tc.read {
			t.Fatalf("msg %d: expected read=%v, got %+v", tc.msgID, tc.read, r)
		}
	}
}

func TestMarkReadBefore_IdempotentReplay(t *testing.T) {
	db := newLedgerDB(t)
	pid := seedProcess(t, db, "orders")

	m1 := sendTo(t, db, pid, "a", "one", "b")
	boundary := m1.ID + 1

	first := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	n, err := MarkReadBefore(db, "b", boundary, first)
	if err != nil || n != 1 {
		t.Fatalf("first mark: n=%d err=%v", n, err)
	}

	// replay with a later timestamp: nothing changes, original ReadAt kept
	n, err = MarkReadBefore(db, "b", boundary, first.Add(time.Hour))
	if err != nil || n != 0 {
		t.Fatalf("replay should be a no-op: n=%d err=%v", n, err)
	}

	var r domain.ChatMessageRecipient
	if err := db.Where("message_id = ? AND executor_id = ?", m1.ID, "b").First(&r).Error; err != nil {
		t.Fatalf("find entry: %v", err)
	}
	if r.ReadAt == nil || !r.ReadAt.Equal(first) {
		t.Fatalf("ReadAt must keep its first value, got %v", r.ReadAt)
	}
}

func TestMarkReadBefore_ScopedToExecutor(t *testing.T) {
	db := newLedgerDB(t)
	pid := seedProcess(t, db, "orders")

	m1 := sendTo(t, db, pid, "a", "one", "b", "c")

	n, err := MarkReadBefore(db, "b", m1.ID+1, time.Now().UTC())
	if err != nil || n != 1 {
		t.Fatalf("mark for b: n=%d err=%v", n, err)
	}

	// c's entry must be untouched
	var r domain.ChatMessageRecipient
	if err := db.Where("message_id = ? AND executor_id = ?", m1.ID, "c").First(&r).Error; err != nil {
		t.Fatalf("find c entry: %v", err)
	}
	if r.IsRead() {
		t.Fatalf("other executor's entry must stay unread: %+v", r)
	}
}

func TestListMessagesFor_VisibilityAndOrder(t *testing.T) {
	db := newLedgerDB(t)
	pid := seedProcess(t, db, "orders")

	m1 := sendTo(t, db, pid, "a", "one", "b")
	_ = sendTo(t, db, pid, "a", "hidden", "c") // not addressed to b
	m3 := sendTo(t, db, pid, "a", "three", "b")

	msgs, err := ListMessagesFor(db, "b", pid)
	if err != nil {
		t.Fatalf("ListMessagesFor: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 visible messages, got %d", len(msgs))
	}
	// newest first; same-second timestamps fall back to id order
	if msgs[0].ID != m3.ID || msgs[1].ID != m1.ID {
		t.Fatalf("wrong order: got ids %d, %d", msgs[0].ID, msgs[1].ID)
	}
}

func TestListRooms_GroupsPerProcessWithUnreadCounts(t *testing.T) {
	db := newLedgerDB(t)
	pOrders := seedProcess(t, db, "orders")
	pBilling := seedProcess(t, db, "billing")

	m1 := sendTo(t, db, pOrders, "a", "one", "b")
	_ = sendTo(t, db, pOrders, "a", "two", "b")
	_ = sendTo(t, db, pBilling, "a", "bill", "b")

	// read one of the two orders messages
	if _, err := MarkReadBefore(db, "b", m1.ID+1, time.Now().UTC()); err != nil {
		t.Fatalf("MarkReadBefore: %v", err)
	}

	rooms, err := ListRooms(db, "b")
	if err != nil {
		t.Fatalf("ListRooms: %v", err)
	}
	if len(rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %+v", rooms)
	}
	// ordered by process id ascending
	if rooms[0].ProcessID != pOrders || rooms[0].ProcessName != "orders" || rooms[0].UnreadCount != 1 {
		t.Fatalf("orders room wrong: %+v", rooms[0])
	}
	if rooms[1].ProcessID != pBilling || rooms[1].ProcessName != "billing" || rooms[1].UnreadCount != 1 {
		t.Fatalf("billing room wrong: %+v", rooms[1])
	}
}

func TestListRooms_NoEntriesNoRooms(t *testing.T) {
	db := newLedgerDB(t)

	rooms, err := ListRooms(db, "nobody")
	if err != nil {
		t.Fatalf("ListRooms: %v", err)
	}
	if len(rooms) != 0 {
		t.Fatalf("expected no rooms, got %+v", rooms)
	}
}

func TestCountUnread_TracksMarkRead(t *testing.T) {
	db := newLedgerDB(t)
	pid := seedProcess(t, db, "orders")

	m1 := sendTo(t, db, pid, "a", "one", "b")
	m2 := sendTo(t, db, pid, "a", "two", "b")

	n, err := CountUnread(db, "b", pid)
	if err != nil || n != 2 {
		t.Fatalf("expected 2 unread, got n=%d err=%v", n, err)
	}

	if _, err := MarkReadBefore(db, "b", m2.ID, time.Now().UTC()); err != nil {
		t.Fatalf("MarkReadBefore: %v", err)
	}
	n, err = CountUnread(db, "b", pid)
	if err != nil || n != 1 {
		t.Fatalf("expected 1 unread after marking below %d, got n=%d err=%v", m1.ID+1, n, err)
	}
}

func TestDeleteRecipientsForMessage_RemovesOnlyThatMessage(t *testing.T) {
	db := newLedgerDB(t)
	pid := seedProcess(t, db, "orders")

	m1 := sendTo(t, db, pid, "a", "one", "b", "c")
	m2 := sendTo(t, db, pid, "a", "two", "b")

	if err := DeleteRecipientsForMessage(db, m1.ID); err != nil {
		t.Fatalf("DeleteRecipientsForMessage: %v", err)
	}

	var n int64
	if err := db.Model(&domain.ChatMessageRecipient{}).Where("message_id = ?", m1.ID).Count(&n).Error; err != nil {
		t.Fatalf("count m1 rows: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 rows for m1, got %d", n)
	}
	if err := db.Model(&domain.ChatMessageRecipient{}).Where("message_id = ?", m2.ID).Count(&n).Error; err != nil {
		t.Fatalf("count m2 rows: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected m2 rows untouched, got %d", n)
	}
}
