// Executor registry HTTP handlers.
//
// Executors are the addressable principals of the chat subsystem: actors
// (human users, with contact details and an active flag) and groups. They
// are modeled as one flat record with a kind tag rather than a hierarchy.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-process-chat/internal/domain"
	"github.com/tbourn/go-process-chat/internal/services"
)

// ExecutorService defines the executor registry operations consumed by HTTP
// handlers.
type ExecutorService interface {
	// Register persists a new actor or group.
	Register(ctx context.Context, in services.RegisterExecutorInput) (*domain.Executor, error)
	// Get fetches an executor by id.
	Get(ctx context.Context, id string) (*domain.Executor, error)
	// Deactivate clears the active flag on an actor.
	Deactivate(ctx context.Context, id string) error
}

// RegisterExecutorRequest is the JSON payload for registering an executor.
//
// Kind selects the variant: "actor" records keep code, email and phone;
// "group" records ignore them. FullName is optional and derived from Name
// when empty.
type RegisterExecutorRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=128" example:"release.manager"`
	FullName string `json:"full_name" example:"Release Manager"`
	Kind     string `json:"kind" binding:"required,oneof=actor group" example:"actor"`
	Code     *int64 `json:"code,omitempty" example:"1024"`
	Email    string `json:"email,omitempty" example:"rm@example.com"`
	Phone    string `json:"phone,omitempty" example:"+30 210 0000000"`
}

// ExecutorResponse is the JSON envelope for a single executor.
type ExecutorResponse struct {
	Executor *domain.Executor `json:"executor"`
}

// RegisterExecutor godoc
// @ID          registerExecutor
// @Summary     Register an actor or group
// @Description Creates an executor record. Kind is "actor" or "group"; names are unique across both kinds.
// @Tags        Executors
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.RegisterExecutorRequest  true  "Executor payload"
//
// @Success     201  {object} handlers.ExecutorResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     409  {object} handlers.ErrorResponse "Name already taken"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /executors [post]
func (h *Handlers) RegisterExecutor(c *gin.Context) {
	var req RegisterExecutorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name and kind (actor|group) required")
		return
	}

	exec, err := h.execSvc.Register(c.Request.Context(), services.RegisterExecutorInput{
		Name:     req.Name,
		FullName: req.FullName,
		Kind:     req.Kind,
		Code:     req.Code,
		Email:    req.Email,
		Phone:    req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidKind), errors.Is(err, services.ErrNameRequired):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		case errors.Is(err, services.ErrNameTaken):
			fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeRegisterFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, ExecutorResponse{Executor: exec})
}

// GetExecutor godoc
// @ID          getExecutor
// @Summary     Fetch an executor by id
// @Tags        Executors
// @Produce     json
//
// @Param       id  path  string  true  "Executor ID (UUID)"
//
// @Success     200  {object} handlers.ExecutorResponse
// @Failure     404  {object} handlers.ErrorResponse "Executor not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /executors/{id} [get]
func (h *Handlers) GetExecutor(c *gin.Context) {
	exec, err := h.execSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrExecutorNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "executor not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, ExecutorResponse{Executor: exec})
}

// DeactivateExecutor godoc
// @ID          deactivateExecutor
// @Summary     Deactivate an actor
// @Description Clears the active flag. Existing messages and recipient entries are untouched.
// @Tags        Executors
// @Produce     json
//
// @Param       id  path  string  true  "Executor ID (UUID)"
//
// @Success     204  {string} string "No Content"
// @Failure     404  {object} handlers.ErrorResponse "Executor not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /executors/{id}/active [delete]
func (h *Handlers) DeactivateExecutor(c *gin.Context) {
	if err := h.execSvc.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, services.ErrExecutorNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "executor not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}
