package handlers

import (
	"context"
	"fmt"
	"testing"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-process-chat/internal/domain"
	"github.com/tbourn/go-process-chat/internal/http/middleware"
	"github.com/tbourn/go-process-chat/internal/services"
)

// newHandlersDB opens a fresh in-memory database for the transport-owned read
// paths (ETag stats, idempotency records).
func newHandlersDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.Executor{},
		&domain.Deployment{},
		&domain.Process{},
		&domain.ChatMessage{},
		&domain.ChatMessageRecipient{},
		&domain.Idempotency{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// newTestRouter mirrors the production route layout with the idempotency
// middleware installed (no lookup; replay detection is the handler's job here).
func newTestRouter(h *Handlers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{}, nil))

	r.POST("/deployments", h.CreateDeployment)
	r.POST("/processes", h.StartProcess)
	r.GET("/processes/:id", h.GetProcess)
	r.POST("/processes/:id/messages", h.SendMessage)
	r.GET("/processes/:id/messages", h.ListMessages)
	r.GET("/processes/:id/messages/search", h.SearchMessages)
	r.POST("/messages/read", h.MarkRead)
	r.PUT("/messages/:id/content", h.UpdateMessageContent)
	r.DELETE("/messages/:id", h.DeleteMessage)
	r.GET("/rooms", h.ListRooms)
	r.POST("/executors", h.RegisterExecutor)
	r.GET("/executors/:id", h.GetExecutor)
	r.DELETE("/executors/:id/active", h.DeactivateExecutor)
	return r
}

//
// Fakes — one per service contract, with pluggable function fields so each
// test wires only the call it exercises.
//

type fakeChatSvc struct {
	send          func(ctx context.Context, actorID string, processID int64, content string, recipientIDs []string) (*domain.ChatMessage, error)
	markRead      func(ctx context.Context, actorID string, beforeMessageID int64) (int64, error)
	listMessages  func(ctx context.Context, actorID string, processID int64) ([]domain.ChatMessage, error)
	listRooms     func(ctx context.Context, actorID string) ([]domain.ChatRoom, error)
	updateContent func(ctx context.Context, messageID int64, content string) error
	get           func(ctx context.Context, messageID int64) (*domain.ChatMessage, error)
	delete        func(ctx context.Context, messageID int64) error
	search        func(ctx context.Context, actorID string, processID int64, query string, k int) ([]services.MessageMatch, error)
}

func (f *fakeChatSvc) Send(ctx context.Context, actorID string, processID int64, content string, recipientIDs []string) (*domain.ChatMessage, error) {
	return f.send(ctx, actorID, processID, content, recipientIDs)
}

func (f *fakeChatSvc) MarkRead(ctx context.Context, actorID string, beforeMessageID int64) (int64, error) {
	return f.markRead(ctx, actorID, beforeMessageID)
}

func (f *fakeChatSvc) ListMessages(ctx context.Context, actorID string, processID int64) ([]domain.ChatMessage, error) {
	return f.listMessages(ctx, actorID, processID)
}

func (f *fakeChatSvc) ListRooms(ctx context.Context, actorID string) ([]domain.ChatRoom, error) {
	return f.listRooms(ctx, actorID)
}

func (f *fakeChatSvc) UpdateContent(ctx context.Context, messageID int64, content string) error {
	return f.updateContent(ctx, messageID, content)
}

func (f *fakeChatSvc) Get(ctx context.Context, messageID int64) (*domain.ChatMessage, error) {
	return f.get(ctx, messageID)
}

func (f *fakeChatSvc) Delete(ctx context.Context, messageID int64) error {
	return f.delete(ctx, messageID)
}

func (f *fakeChatSvc) SearchMessages(ctx context.Context, actorID string, processID int64, query string, k int) ([]services.MessageMatch, error) {
	return f.search(ctx, actorID, processID, query, k)
}

type fakeExecSvc struct {
	register   func(ctx context.Context, in services.RegisterExecutorInput) (*domain.Executor, error)
	get        func(ctx context.Context, id string) (*domain.Executor, error)
	deactivate func(ctx context.Context, id string) error
}

func (f *fakeExecSvc) Register(ctx context.Context, in services.RegisterExecutorInput) (*domain.Executor, error) {
	return f.register(ctx, in)
}

func (f *fakeExecSvc) Get(ctx context.Context, id string) (*domain.Executor, error) {
	return f.get(ctx, id)
}

func (f *fakeExecSvc) Deactivate(ctx context.Context, id string) error {
	return f.deactivate(ctx, id)
}

type fakeProcSvc struct {
	deploy func(ctx context.Context, name string, version int) (*domain.Deployment, error)
	start  func(ctx context.Context, deploymentID int64) (*domain.Process, error)
	get    func(ctx context.Context, id int64) (*domain.Process, error)
}

func (f *fakeProcSvc) Deploy(ctx context.Context, name string, version int) (*domain.Deployment, error) {
	return f.deploy(ctx, name, version)
}

func (f *fakeProcSvc) Start(ctx context.Context, deploymentID int64) (*domain.Process, error) {
	return f.start(ctx, deploymentID)
}

func (f *fakeProcSvc) Get(ctx context.Context, id int64) (*domain.Process, error) {
	return f.get(ctx, id)
}
