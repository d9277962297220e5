// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the ChatMessage
// model: the durable message store.
//
// All functions accept a *gorm.DB handle, making them safe for use within
// transactions or connection-scoped operations. They follow the "thin
// repository" approach: no business logic, only CRUD persistence and query
// composition. The recipient fan-out lives in recipient_repo.go; composing
// both inside one transaction is the service layer's job.
//
// Error semantics:
//   - When a message is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-process-chat/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateMessage inserts a new message row for the given process and author.
// The identifier is assigned by the database sequence on insert and is
// therefore monotonic in creation order. CreatedAt is set to UTC.
func CreateMessage(db *gorm.DB, processID int64, authorID, content string) (*domain.ChatMessage, error) {
	m := &domain.ChatMessage{
		ProcessID: processID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// GetMessage fetches a message by ID, or ErrNotFound if missing.
func GetMessage(db *gorm.DB, id int64) (*domain.ChatMessage, error) {
	var m domain.ChatMessage
	if err := db.Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// UpdateMessageContent persists a new content payload for an existing
// message. If no rows are affected (unknown identifier), it returns
// ErrNotFound. Recipient rows are never touched by this path.
func UpdateMessageContent(db *gorm.DB, id int64, content string) error {
	res := db.Model(&domain.ChatMessage{}).
		Where("id = ?", id).
		Update("content", content)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteMessage removes a message row permanently. It returns ErrNotFound
// when the identifier is unknown. Callers must delete the recipient rows in
// the same transaction first; see ChatService.Delete.
func DeleteMessage(db *gorm.DB, id int64) error {
	res := db.Where("id = ?", id).Delete(&domain.ChatMessage{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountMessages uses a raw COUNT so a missing table surfaces as an error (as tests expect).
func CountMessages(db *gorm.DB, processID int64) (int64, error) {
	var total int64
	err := db.Raw("SELECT COUNT(*) FROM chat_messages WHERE process_id = ?", processID).Scan(&total).Error
	return total, err
}
