// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate/statistics queries used
// primarily for conditional responses (e.g., ETag generation) in the HTTP
// layer. Each function is context-aware and safe to call from services or
// handlers.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-process-chat/internal/domain"
)

// MessagesStats returns aggregate metadata for the messages visible to an
// executor within a process: the number of ledger rows and the greatest
// UpdatedAt among the referenced messages.
//
// When the executor sees no messages in the process, the returned count is 0
// and maxUpdatedAt is nil.
//
// Return values:
//   - count:        ledger rows for (executorID, processID)
//   - maxUpdatedAt: pointer to the greatest message UpdatedAt, or nil if no rows
//   - err:          database error, if any
func MessagesStats(ctx context.Context, db *gorm.DB, executorID string, processID int64) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).
		Model(&domain.ChatMessageRecipient{}).
		Joins("JOIN chat_messages m ON m.id = chat_message_recipients.message_id").
		Where("chat_message_recipients.executor_id = ? AND m.process_id = ?", executorID, processID)

	// Count
	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("m.updated_at").Order("m.updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}

// RoomsStats returns aggregate metadata for an executor's room listing: the
// total number of ledger rows across all processes and how many of them are
// read. Any send, mark-read, or delete touching the executor changes at
// least one of the two figures, which is what makes the pair a sound ETag
// input.
//
// Return values:
//   - total: ledger rows for executorID across all processes
//   - read:  rows among those with a non-null read_at
//   - err:   database error, if any
func RoomsStats(ctx context.Context, db *gorm.DB, executorID string) (total, read int64, err error) {
	q := db.WithContext(ctx).
		Model(&domain.ChatMessageRecipient{}).
		Where("executor_id = ?", executorID)

	if err = q.Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if total == 0 {
		return 0, 0, nil
	}
	err = db.WithContext(ctx).
		Model(&domain.ChatMessageRecipient{}).
		Where("executor_id = ? AND read_at IS NOT NULL", executorID).
		Count(&read).Error
	return total, read, err
}
