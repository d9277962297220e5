// Package services – ChatService
//
// This file implements ChatService, the application-level component that owns
// the lifecycle of chat messages and their recipient ledger. It is the only
// entry point that creates or deletes a message: sending fans the message out
// to a deduplicated recipient set (always including the author) inside one
// transaction, and deletion removes the ledger rows and the message in one
// transaction, so neither a message without ledger rows nor an orphaned
// ledger row is ever observable.
//
// Read state moves exclusively through MarkRead, a set-based one-way update.
// Room summaries and message listings are live queries over the ledger.
//
// Observability: all public methods are OpenTelemetry-instrumented; spans
// include process/executor identifiers where applicable.
package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/tbourn/go-process-chat/internal/domain"
	"github.com/tbourn/go-process-chat/internal/repo"
	"github.com/tbourn/go-process-chat/internal/search"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ChatService coordinates message persistence, recipient fan-out, read
// tracking, and room aggregation for process chat rooms.
type ChatService struct {
	DB *gorm.DB

	// MaxContentRunes caps message bodies by rune length; 0 disables the cap.
	MaxContentRunes int
}

// NewChatService constructs a ChatService with a sane default content cap.
func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{
		DB:              db,
		MaxContentRunes: 4000,
	}
}

// Send validates the content, verifies the process, dedupes the recipient
// set (always adding the author), and persists the message plus one ledger
// row per recipient in a single transaction. Partial fan-out is never
// visible to other transactions; any failure rolls everything back.
func (s *ChatService) Send(ctx context.Context, actorID string, processID int64, content string, recipientIDs []string) (*domain.ChatMessage, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "Send",
		trace.WithAttributes(
			attribute.Int64("process.id", processID),
			attribute.String("actor.id", actorID),
			attribute.Int("recipients", len(recipientIDs)),
		),
	)
	defer span.End()

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if s.MaxContentRunes > 0 && utf8.RuneCountInString(content) > s.MaxContentRunes {
		return nil, ErrTooLong
	}

	exists, err := repo.ProcessExists(ctx, s.DB, processID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrProcessNotFound
	}

	// The author must always be able to see their own message in room
	// listings, so they join the recipient set unconditionally.
	recipients := dedupeWith(recipientIDs, actorID)

	var msg *domain.ChatMessage
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := repo.CreateMessage(tx, processID, actorID, content)
		if err != nil {
			return err
		}
		if _, err := repo.CreateRecipients(tx, m.ID, recipients); err != nil {
			return err
		}
		msg = m
		return nil
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateRecipient) {
			return nil, ErrDuplicateRecipient
		}
		return nil, err
	}
	return msg, nil
}

// MarkRead transitions every unread ledger entry of actorID with a message
// identifier below beforeMessageID to read. Entries at or above the boundary
// and entries of other executors are never touched. Replays are no-ops.
// It returns the number of entries transitioned.
func (s *ChatService) MarkRead(ctx context.Context, actorID string, beforeMessageID int64) (int64, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "MarkRead",
		trace.WithAttributes(
			attribute.String("actor.id", actorID),
			attribute.Int64("before.message.id", beforeMessageID),
		),
	)
	defer span.End()

	if beforeMessageID <= 0 {
		return 0, ErrInvalidBoundary
	}
	return repo.MarkReadBefore(s.DB.WithContext(ctx), actorID, beforeMessageID, time.Now().UTC())
}

// ListMessages returns the messages visible to actorID within processID,
// newest first. The process must exist.
func (s *ChatService) ListMessages(ctx context.Context, actorID string, processID int64) ([]domain.ChatMessage, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "ListMessages",
		trace.WithAttributes(
			attribute.Int64("process.id", processID),
			attribute.String("actor.id", actorID),
		),
	)
	defer span.End()

	exists, err := repo.ProcessExists(ctx, s.DB, processID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrProcessNotFound
	}
	return repo.ListMessagesFor(s.DB.WithContext(ctx), actorID, processID)
}

// ListRooms returns one summary (process id, process display name, unread
// count) per process in which actorID has at least one ledger entry. An
// executor with no entries gets an empty slice, not an error.
func (s *ChatService) ListRooms(ctx context.Context, actorID string) ([]domain.ChatRoom, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "ListRooms",
		trace.WithAttributes(attribute.String("actor.id", actorID)),
	)
	defer span.End()

	rooms, err := repo.ListRooms(s.DB.WithContext(ctx), actorID)
	if err != nil {
		return nil, err
	}
	if rooms == nil {
		rooms = []domain.ChatRoom{}
	}
	return rooms, nil
}

// UpdateContent replaces the body of an existing message. It validates the
// new content the same way Send does and never touches the recipient ledger;
// read state moves only through MarkRead.
func (s *ChatService) UpdateContent(ctx context.Context, messageID int64, content string) error {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "UpdateContent",
		trace.WithAttributes(attribute.Int64("message.id", messageID)),
	)
	defer span.End()

	content = strings.TrimSpace(content)
	if content == "" {
		return ErrEmptyContent
	}
	if s.MaxContentRunes > 0 && utf8.RuneCountInString(content) > s.MaxContentRunes {
		return ErrTooLong
	}

	err := repo.UpdateMessageContent(s.DB.WithContext(ctx), messageID, content)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrMessageNotFound
	}
	return err
}

// Get fetches a single message by identifier.
func (s *ChatService) Get(ctx context.Context, messageID int64) (*domain.ChatMessage, error) {
	m, err := repo.GetMessage(s.DB.WithContext(ctx), messageID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMessageNotFound
	}
	return m, err
}

// Delete removes every ledger entry for the message and then the message
// itself, in one transaction. At no externally observable point does the
// message exist without its entries or an entry without its message.
func (s *ChatService) Delete(ctx context.Context, messageID int64) error {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "Delete",
		trace.WithAttributes(attribute.Int64("message.id", messageID)),
	)
	defer span.End()

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.DeleteRecipientsForMessage(tx, messageID); err != nil {
			return err
		}
		return repo.DeleteMessage(tx, messageID)
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrMessageNotFound
	}
	return err
}

// MessageMatch pairs a message with its search score.
type MessageMatch struct {
	Message domain.ChatMessage `json:"message"`
	Score   float64            `json:"score"`
}

// SearchMessages ranks the messages visible to actorID within processID
// against the query and returns up to k matches, best first. The index is a
// per-call snapshot, so results reflect the ledger at query time.
func (s *ChatService) SearchMessages(ctx context.Context, actorID string, processID int64, query string, k int) ([]MessageMatch, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "SearchMessages",
		trace.WithAttributes(
			attribute.Int64("process.id", processID),
			attribute.String("actor.id", actorID),
		),
	)
	defer span.End()

	query = strings.TrimSpace(query)
	if query == "" {
		return []MessageMatch{}, nil
	}

	msgs, err := s.ListMessages(ctx, actorID, processID)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]domain.ChatMessage, len(msgs))
	entries := make([]search.Entry, 0, len(msgs))
	for _, m := range msgs {
		byID[m.ID] = m
		entries = append(entries, search.Entry{ID: m.ID, Text: m.Content})
	}

	idx := search.NewIndex(entries)
	results := idx.TopK(query, k)
	out := make([]MessageMatch, 0, len(results))
	for _, r := range results {
		if m, ok := byID[r.ID]; ok {
			out = append(out, MessageMatch{Message: m, Score: r.Score})
		}
	}
	return out, nil
}

// dedupeWith returns ids with duplicates and empty strings removed, with
// must guaranteed to be present. Input order is preserved; must is appended
// when missing from the input.
func dedupeWith(ids []string, must string) []string {
	seen := make(map[string]struct{}, len(ids)+1)
	out := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	if _, ok := seen[must]; !ok && must != "" {
		out = append(out, must)
	}
	return out
}
