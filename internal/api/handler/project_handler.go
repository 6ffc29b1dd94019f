package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Rich-Bam/Time-2026-sub001/internal/dto"
	"github.com/Rich-Bam/Time-2026-sub001/internal/service"
	"github.com/Rich-Bam/Time-2026-sub001/pkg/response"
)

// Project error codes (17xxx).
const codeProjectNotFound = 17001

// ProjectHandler serves the project catalog endpoints.
type ProjectHandler struct {
	svc    service.ProjectService
	logger *zap.Logger
}

// NewProjectHandler creates a ProjectHandler.
func NewProjectHandler(svc service.ProjectService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{svc: svc, logger: logger}
}

func (h *ProjectHandler) projectError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrProjectNotFound):
		response.NotFound(c, codeProjectNotFound, "project not found")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, 10003, "admin privileges required")
	default:
		return false
	}
	return true
}

// List handles GET /api/v1/projects?active=true.
func (h *ProjectHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	projects, err := h.svc.List(c.Request.Context(), activeOnly)
	if err != nil {
		h.logger.Error("list projects failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": projects})
}

// Get handles GET /api/v1/projects/:id.
func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if !h.projectError(c, err) {
			h.logger.Error("load project failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	response.OK(c, project)
}

// Create handles POST /api/v1/projects.
func (h *ProjectHandler) Create(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}

	project, err := h.svc.Create(c.Request.Context(), currentActor(c), &req)
	if err != nil {
		if !h.projectError(c, err) {
			h.logger.Error("create project failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	response.Created(c, project)
}

// Update handles PATCH /api/v1/projects/:id.
func (h *ProjectHandler) Update(c *gin.Context) {
	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}

	project, err := h.svc.Update(c.Request.Context(), currentActor(c), c.Param("id"), &req)
	if err != nil {
		if !h.projectError(c, err) {
			h.logger.Error("update project failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	response.OK(c, project)
}

// Delete handles DELETE /api/v1/projects/:id.
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), currentActor(c), c.Param("id")); err != nil {
		if !h.projectError(c, err) {
			h.logger.Error("delete project failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
