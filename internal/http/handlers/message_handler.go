// Message HTTP handlers.
//
// This file exposes REST endpoints for process chat messages:
//   - POST   /processes/{id}/messages  (send a message to a recipient set)
//   - GET    /processes/{id}/messages  (list messages visible to the caller)
//   - POST   /messages/read            (mark everything below a boundary read)
//   - PUT    /messages/{id}/content    (replace a message body)
//   - DELETE /messages/{id}            (remove message + recipient entries)
//
// Handlers are transport-thin:
//   - validate & normalize inputs (including newline and length constraints)
//   - delegate to application services (ChatService)
//   - implement conditional responses (ETag) and idempotency semantics
//
// Idempotency:
// If the client supplies an Idempotency-Key header and a previous successful
// result exists for (actor, process, key), the handler returns that recorded
// message and sets `Idempotency-Replayed: true`.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tbourn/go-process-chat/internal/domain"
	"github.com/tbourn/go-process-chat/internal/http/middleware"
	"github.com/tbourn/go-process-chat/internal/repo"
	"github.com/tbourn/go-process-chat/internal/services"
	"github.com/tbourn/go-process-chat/internal/sysutil"
	"github.com/tbourn/go-process-chat/internal/utils"
)

//
// Service contracts (context-aware)
//

// ChatService defines chat message operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ChatService interface {
	// Send persists a message and its recipient fan-out atomically.
	Send(ctx context.Context, actorID string, processID int64, content string, recipientIDs []string) (*domain.ChatMessage, error)
	// MarkRead marks the caller's entries below the boundary as read.
	MarkRead(ctx context.Context, actorID string, beforeMessageID int64) (int64, error)
	// ListMessages returns messages visible to the caller in a process, newest first.
	ListMessages(ctx context.Context, actorID string, processID int64) ([]domain.ChatMessage, error)
	// ListRooms returns per-process chat summaries for the caller.
	ListRooms(ctx context.Context, actorID string) ([]domain.ChatRoom, error)
	// UpdateContent replaces a message body.
	UpdateContent(ctx context.Context, messageID int64, content string) error
	// Get fetches a single message.
	Get(ctx context.Context, messageID int64) (*domain.ChatMessage, error)
	// Delete removes a message and all its recipient entries.
	Delete(ctx context.Context, messageID int64) error
	// SearchMessages ranks the caller's visible messages against a query.
	SearchMessages(ctx context.Context, actorID string, processID int64, query string, k int) ([]services.MessageMatch, error)
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for messages, rooms, executors, and
// processes. It depends on abstract service interfaces to keep transport
// concerns separate from business logic.
type Handlers struct {
	chatSvc ChatService
	execSvc ExecutorService
	procSvc ProcessService

	// db is used only for cheap read paths owned by the transport layer:
	// ETag statistics and idempotency records.
	db *gorm.DB

	// idempotencyTTL bounds how long a recorded send result can be replayed.
	idempotencyTTL time.Duration
}

// New constructs and returns a Handlers instance bound to the given services.
func New(chatSvc ChatService, execSvc ExecutorService, procSvc ProcessService, db *gorm.DB, idempotencyTTL time.Duration) *Handlers {
	return &Handlers{
		chatSvc:        chatSvc,
		execSvc:        execSvc,
		procSvc:        procSvc,
		db:             db,
		idempotencyTTL: idempotencyTTL,
	}
}

// actorID resolves the calling actor: the context value set by upstream
// middleware first, then the X-Actor-ID header, and finally the development
// fallback "demo-actor". It never touches c.Request if it's nil.
func actorID(c *gin.Context) string {
	var fromCtx, fromHeader string
	if v, ok := c.Get("actorID"); ok {
		fromCtx, _ = v.(string)
	}
	if c != nil && c.Request != nil {
		fromHeader = strings.TrimSpace(c.GetHeader("X-Actor-ID"))
	}
	return sysutil.FirstNonEmpty(fromCtx, fromHeader, "demo-actor")
}

// pathID parses a positive int64 path parameter; ok is false otherwise.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

//
// DTOs
//

// SendMessageRequest is the JSON payload for posting a message into a
// process chat room.
//
// Content is normalized by the handler (line endings and excessive blank
// lines) before being passed to the service layer, which also enforces a
// maximum rune count. Recipients may omit the sender; the service adds the
// author to the recipient set unconditionally.
type SendMessageRequest struct {
	// Content is the message body. It must be non-empty.
	Content string `json:"content" binding:"required,min=1" example:"Build 512 is ready for sign-off"`
	// Recipients are executor IDs the message is addressed to.
	Recipients []string `json:"recipients" example:"7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab"`
}

// SendMessageResponse is the JSON envelope for a newly created message.
type SendMessageResponse struct {
	// Message is the persisted chat message, including its assigned sequence id.
	Message *domain.ChatMessage `json:"message"`
}

// MarkReadRequest is the JSON payload for the bulk read-marking operation.
type MarkReadRequest struct {
	// BeforeMessageID is the exclusive upper bound: every unread entry of the
	// caller with a message id strictly below it becomes read.
	BeforeMessageID int64 `json:"before_message_id" binding:"required,min=1" example:"42"`
}

// MarkReadResponse reports how many entries a mark-read call transitioned.
type MarkReadResponse struct {
	Marked int64 `json:"marked"`
}

// UpdateMessageRequest is the JSON payload for replacing a message body.
type UpdateMessageRequest struct {
	Content string `json:"content" binding:"required,min=1" example:"Build 512 is ready (edited)"`
}

// ListMessagesResponse contains the messages visible to the caller in one
// process chat room, newest first.
type ListMessagesResponse struct {
	Messages []domain.ChatMessage `json:"messages"`
}

//
// Helpers
//

// nlCollapseRE collapses runs of 3+ newlines to two, preserving paragraphs.
var nlCollapseRE = regexp.MustCompile(`\n{3,}`)

// sanitizeContent normalizes message text for consistent downstream behavior:
//   - converts CRLF/CR to LF,
//   - collapses runs of 3+ LFs to exactly two (paragraph separation),
//   - trims surrounding whitespace.
func sanitizeContent(raw string) string {
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = nlCollapseRE.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

//
// Handlers
//

// SendMessage godoc
// @ID          sendMessage
// @Summary     Send a message into a process chat room
// @Description Persists the message and one recipient entry per addressee (author always included) atomically.
// @Description Supports idempotency via the Idempotency-Key header (same key → same result).
// @Tags        Messages
// @Accept      json
// @Produce     json
//
// @Param       X-Actor-ID       header  string  true  "Calling actor ID"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries (UUID recommended)"
// @Param       id               path    int     true  "Process ID"
// @Param       body             body    handlers.SendMessageRequest  true  "Message payload"
//
// @Success     201  {object}  handlers.SendMessageResponse  "Persisted message"
// @Failure     400  {object}  handlers.ErrorResponse        "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse        "Process not found"
// @Failure     409  {object}  handlers.ErrorResponse        "Recipient entry already exists"
// @Failure     500  {object}  handlers.ErrorResponse        "Internal error"
// @Router      /processes/{id}/messages [post]
func (h *Handlers) SendMessage(c *gin.Context) {
	ctx := c.Request.Context()
	processID, okID := pathID(c, "id")
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "process id must be a positive integer")
		return
	}
	aid := actorID(c)

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	content := sanitizeContent(req.Content)
	if content == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "content required")
		return
	}

	// Idempotent replay: return the previously recorded message.
	if key, hasKey := middleware.GetIdempotencyKey(c); hasKey {
		if rec, err := repo.GetIdempotency(ctx, h.db, aid, processID, key, time.Now().UTC()); err == nil && rec != nil {
			if msg, err := h.chatSvc.Get(ctx, rec.MessageID); err == nil {
				c.Header("Idempotency-Replayed", "true")
				middleware.CountMessageSent(true)
				ok(c, rec.Status, SendMessageResponse{Message: msg})
				return
			}
		}
	}

	msg, err := h.chatSvc.Send(ctx, aid, processID, content, req.Recipients)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProcessNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "process not found")
		case errors.Is(err, services.ErrEmptyContent), errors.Is(err, services.ErrTooLong):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		case errors.Is(err, services.ErrDuplicateRecipient):
			fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeSendFailed, err.Error())
		}
		return
	}

	// Record the result for replays; a failure here must not fail the send.
	if key, hasKey := middleware.GetIdempotencyKey(c); hasKey {
		if _, err := repo.CreateIdempotency(ctx, h.db, aid, processID, key, msg.ID, http.StatusCreated, h.idempotencyTTL); err != nil && !errors.Is(err, repo.ErrDuplicate) {
			middleware.LoggerFrom(c).Warn().Err(err).Msg("record idempotency")
		}
	}

	middleware.CountMessageSent(false)
	ok(c, http.StatusCreated, SendMessageResponse{Message: msg})
}

// ListMessages godoc
// @ID          listMessages
// @Summary     List messages visible to the caller in a process
// @Description Returns the messages the caller is a recipient of, newest first. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Messages
// @Produce     json
//
// @Param       X-Actor-ID     header  string  true  "Calling actor ID"
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"
// @Param       id             path    int     true  "Process ID"
//
// @Success     200  {object} handlers.ListMessagesResponse
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Process not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /processes/{id}/messages [get]
func (h *Handlers) ListMessages(c *gin.Context) {
	ctx := c.Request.Context()
	processID, okID := pathID(c, "id")
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "process id must be a positive integer")
		return
	}
	aid := actorID(c)

	// ETag pre-check (best effort).
	if count, maxTS, err := repo.MessagesStats(ctx, h.db, aid, processID); err == nil {
		var ts int64
		if maxTS != nil {
			ts = maxTS.Unix()
		}
		etag := fmt.Sprintf(`W/"messages:%s:%d:%d:%d"`, aid, processID, count, ts)
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	msgs, err := h.chatSvc.ListMessages(ctx, aid, processID)
	if err != nil {
		if errors.Is(err, services.ErrProcessNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "process not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	if msgs == nil {
		msgs = []domain.ChatMessage{}
	}
	ok(c, http.StatusOK, ListMessagesResponse{Messages: msgs})
}

// MarkRead godoc
// @ID          markRead
// @Summary     Mark the caller's messages below a boundary as read
// @Description Sets the read timestamp on every unread entry of the caller with a message id strictly below before_message_id. Idempotent.
// @Tags        Messages
// @Accept      json
// @Produce     json
//
// @Param       X-Actor-ID  header  string  true  "Calling actor ID"
// @Param       body        body    handlers.MarkReadRequest  true  "Read boundary"
//
// @Success     200  {object}  handlers.MarkReadResponse
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /messages/read [post]
func (h *Handlers) MarkRead(c *gin.Context) {
	var req MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "before_message_id required (positive integer)")
		return
	}

	marked, err := h.chatSvc.MarkRead(c.Request.Context(), actorID(c), req.BeforeMessageID)
	if err != nil {
		if errors.Is(err, services.ErrInvalidBoundary) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeMarkReadFailed, err.Error())
		return
	}
	middleware.CountMarkedRead(marked)
	ok(c, http.StatusOK, MarkReadResponse{Marked: marked})
}

// UpdateMessageContent godoc
// @ID          updateMessageContent
// @Summary     Replace the body of a message
// @Description Updates message content only; recipient read state is untouched.
// @Tags        Messages
// @Accept      json
// @Produce     json
//
// @Param       X-Actor-ID  header  string  true "Calling actor ID"
// @Param       id          path    int     true "Message ID"
// @Param       body        body    handlers.UpdateMessageRequest  true "New content"
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Message not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /messages/{id}/content [put]
func (h *Handlers) UpdateMessageContent(c *gin.Context) {
	messageID, okID := pathID(c, "id")
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message id must be a positive integer")
		return
	}

	var req UpdateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "content required")
		return
	}

	err := h.chatSvc.UpdateContent(c.Request.Context(), messageID, sanitizeContent(req.Content))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMessageNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "message not found")
		case errors.Is(err, services.ErrEmptyContent), errors.Is(err, services.ErrTooLong):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeUpdateFailed, err.Error())
		}
		return
	}
	noContent(c)
}

// DeleteMessage godoc
// @ID          deleteMessage
// @Summary     Delete a message and its recipient entries
// @Description Removes every recipient entry and the message itself in one transaction.
// @Tags        Messages
// @Produce     json
//
// @Param       X-Actor-ID  header  string  true "Calling actor ID"
// @Param       id          path    int     true "Message ID"
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Message not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /messages/{id} [delete]
func (h *Handlers) DeleteMessage(c *gin.Context) {
	messageID, okID := pathID(c, "id")
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message id must be a positive integer")
		return
	}

	if err := h.chatSvc.Delete(c.Request.Context(), messageID); err != nil {
		if errors.Is(err, services.ErrMessageNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "message not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeDeleteFailed, err.Error())
		return
	}
	middleware.CountMessageDeleted()
	noContent(c)
}

// SearchMessagesResponse contains ranked matches for a message search, best
// first.
type SearchMessagesResponse struct {
	Matches []services.MessageMatch `json:"matches"`
}

// SearchMessages godoc
// @ID          searchMessages
// @Summary     Search the caller's messages in a process
// @Description Ranks the messages the caller is a recipient of against the query and returns the top matches.
// @Tags        Messages
// @Produce     json
//
// @Param       X-Actor-ID  header  string  true  "Calling actor ID"
// @Param       id          path    int     true  "Process ID"
// @Param       q           query   string  true  "Search query"
// @Param       k           query   int     false "Maximum matches (default 5, max 50)"
//
// @Success     200  {object} handlers.SearchMessagesResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Process not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /processes/{id}/messages/search [get]
func (h *Handlers) SearchMessages(c *gin.Context) {
	processID, okID := pathID(c, "id")
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "process id must be a positive integer")
		return
	}
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "q required")
		return
	}
	k := utils.ClampInt(utils.AtoiDefault(c.Query("k"), 5), 1, 50)

	matches, err := h.chatSvc.SearchMessages(c.Request.Context(), actorID(c), processID, q, k)
	if err != nil {
		if errors.Is(err, services.ErrProcessNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "process not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	if matches == nil {
		matches = []services.MessageMatch{}
	}
	ok(c, http.StatusOK, SearchMessagesResponse{Matches: matches})
}
