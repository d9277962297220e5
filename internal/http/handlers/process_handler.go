// Deployment and process HTTP handlers.
//
// Processes are the scoping unit for chat rooms; each belongs to a
// deployment whose name doubles as the room display name.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-process-chat/internal/domain"
	"github.com/tbourn/go-process-chat/internal/services"
)

// ProcessService defines the deployment and process operations consumed by
// HTTP handlers.
type ProcessService interface {
	// Deploy registers a named deployment.
	Deploy(ctx context.Context, name string, version int) (*domain.Deployment, error)
	// Start creates a process instance under a deployment.
	Start(ctx context.Context, deploymentID int64) (*domain.Process, error)
	// Get fetches a process with its deployment preloaded.
	Get(ctx context.Context, id int64) (*domain.Process, error)
}

// CreateDeploymentRequest is the JSON payload for registering a deployment.
type CreateDeploymentRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=255" example:"invoice-approval"`
	Version int    `json:"version" example:"1"`
}

// DeploymentResponse is the JSON envelope for a single deployment.
type DeploymentResponse struct {
	Deployment *domain.Deployment `json:"deployment"`
}

// StartProcessRequest is the JSON payload for starting a process instance.
type StartProcessRequest struct {
	DeploymentID int64 `json:"deployment_id" binding:"required,min=1" example:"1"`
}

// ProcessResponse is the JSON envelope for a single process.
type ProcessResponse struct {
	Process *domain.Process `json:"process"`
}

// CreateDeployment godoc
// @ID          createDeployment
// @Summary     Register a deployment
// @Description Registers a named deployment; its name is shown as the chat room title for processes started from it.
// @Tags        Processes
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateDeploymentRequest  true  "Deployment payload"
//
// @Success     201  {object} handlers.DeploymentResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /deployments [post]
func (h *Handlers) CreateDeployment(c *gin.Context) {
	var req CreateDeploymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name required")
		return
	}

	dep, err := h.procSvc.Deploy(c.Request.Context(), req.Name, req.Version)
	if err != nil {
		if errors.Is(err, services.ErrDeploymentNameRequired) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusCreated, DeploymentResponse{Deployment: dep})
}

// StartProcess godoc
// @ID          startProcess
// @Summary     Start a process instance
// @Description Creates a process under an existing deployment. The process id scopes a chat room.
// @Tags        Processes
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.StartProcessRequest  true  "Process payload"
//
// @Success     201  {object} handlers.ProcessResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Deployment not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /processes [post]
func (h *Handlers) StartProcess(c *gin.Context) {
	var req StartProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "deployment_id required (positive integer)")
		return
	}

	proc, err := h.procSvc.Start(c.Request.Context(), req.DeploymentID)
	if err != nil {
		if errors.Is(err, services.ErrDeploymentNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "deployment not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusCreated, ProcessResponse{Process: proc})
}

// GetProcess godoc
// @ID          getProcess
// @Summary     Fetch a process by id
// @Tags        Processes
// @Produce     json
//
// @Param       id  path  int  true  "Process ID"
//
// @Success     200  {object} handlers.ProcessResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Process not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /processes/{id} [get]
func (h *Handlers) GetProcess(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "process id must be a positive integer")
		return
	}

	proc, err := h.procSvc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrProcessNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "process not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, ProcessResponse{Process: proc})
}
