// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// ChatMessageRecipient model: the per-recipient read ledger.
//
// The ledger holds one row per (message, executor) pair. Rows are created in
// bulk together with their message and removed in bulk before it; they carry
// the read state for room listings and unread counts.
package repo

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-process-chat/internal/domain"
)

// ErrDuplicateRecipient indicates an attempt to insert a second ledger row
// for a (message, executor) pair. The service layer performs a single
// deduplicated fan-out, so hitting this is a caller bug and is surfaced
// rather than silently deduped.
var ErrDuplicateRecipient = errors.New("recipient entry already exists")

// CreateRecipients inserts one ledger row per executor for the given message
// as a single multi-row INSERT, so the fan-out is all-or-nothing at the
// statement level even before transaction semantics apply. Rows start unread
// (ReadAt nil). A unique-constraint violation is returned as
// ErrDuplicateRecipient.
func CreateRecipients(db *gorm.DB, messageID int64, executorIDs []string) ([]domain.ChatMessageRecipient, error) {
	if len(executorIDs) == 0 {
		return nil, nil
	}
	now := time.Now().UTC()
	rows := make([]domain.ChatMessageRecipient, 0, len(executorIDs))
	for _, id := range executorIDs {
		rows = append(rows, domain.ChatMessageRecipient{
			MessageID:  messageID,
			ExecutorID: id,
			CreatedAt:  now,
		})
	}
	if err := db.Create(&rows).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateRecipient
		}
		return nil, err
	}
	return rows, nil
}

// MarkReadBefore sets ReadAt = now on every unread ledger row belonging to
// executorID whose message identifier is strictly below beforeMessageID.
// The message sequence is assigned in creation order, so the identifier
// comparison is an explicit ordering, not a heuristic.
//
// The operation is a single set-based UPDATE and is idempotent: already-read
// rows are excluded by the read_at IS NULL predicate, so replaying with the
// same or a smaller boundary changes nothing. It returns the number of rows
// transitioned to read.
func MarkReadBefore(db *gorm.DB, executorID string, beforeMessageID int64, now time.Time) (int64, error) {
	res := db.Model(&domain.ChatMessageRecipient{}).
		Where("executor_id = ? AND message_id < ? AND read_at IS NULL", executorID, beforeMessageID).
		Update("read_at", now)
	return res.RowsAffected, res.Error
}

// ListMessagesFor returns the messages visible to executorID within a
// process, newest first (CreatedAt DESC, then ID DESC for same-timestamp
// determinism). Visibility means the executor has a ledger row for the
// message.
func ListMessagesFor(db *gorm.DB, executorID string, processID int64) ([]domain.ChatMessage, error) {
	var out []domain.ChatMessage
	err := db.Model(&domain.ChatMessage{}).
		Joins("JOIN chat_message_recipients r ON r.message_id = chat_messages.id").
		Where("r.executor_id = ? AND chat_messages.process_id = ?", executorID, processID).
		Order("chat_messages.created_at DESC, chat_messages.id DESC").
		Find(&out).Error
	return out, err
}

// ListRooms returns one summary per process in which executorID holds at
// least one ledger row. The unread count is COUNT(*) - COUNT(read_at):
// COUNT over a nullable column skips NULLs, so the difference is exactly the
// number of unread rows. The aggregate is grouped per process, never
// computed globally.
func ListRooms(db *gorm.DB, executorID string) ([]domain.ChatRoom, error) {
	var out []domain.ChatRoom
	err := db.Model(&domain.ChatMessageRecipient{}).
		Select("p.id AS process_id, d.name AS process_name, COUNT(*) - COUNT(chat_message_recipients.read_at) AS unread_count").
		Joins("JOIN chat_messages m ON m.id = chat_message_recipients.message_id").
		Joins("JOIN processes p ON p.id = m.process_id").
		Joins("JOIN deployments d ON d.id = p.deployment_id").
		Where("chat_message_recipients.executor_id = ?", executorID).
		Group("p.id, d.name").
		Order("p.id ASC").
		Scan(&out).Error
	return out, err
}

// CountUnread returns the number of unread ledger rows for executorID within
// a single process. Used by room ETags and tests; ListRooms computes the
// same figure per process in one query.
func CountUnread(db *gorm.DB, executorID string, processID int64) (int64, error) {
	var n int64
	err := db.Model(&domain.ChatMessageRecipient{}).
		Joins("JOIN chat_messages m ON m.id = chat_message_recipients.message_id").
		Where("chat_message_recipients.executor_id = ? AND m.process_id = ? AND chat_message_recipients.read_at IS NULL", executorID, processID).
		Count(&n).Error
	return n, err
}

// DeleteRecipientsForMessage removes every ledger row referencing messageID.
// It must run before (and in the same transaction as) deleting the message
// itself so no row ever references a missing message.
func DeleteRecipientsForMessage(db *gorm.DB, messageID int64) error {
	return db.Where("message_id = ?", messageID).
		Delete(&domain.ChatMessageRecipient{}).Error
}

// isUniqueViolation detects SQLite unique-constraint failures.
// glebarez/sqlite often returns plain-text errors for UNIQUE violations.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint failed") ||
		strings.Contains(low, "constraint failed: unique")
}
