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

// User error codes (12xxx).
const (
	codeUserNotFound = 12001
	codeEmailTaken   = 12002
)

// UserHandler serves the user management endpoints.
type UserHandler struct {
	svc    service.UserService
	logger *zap.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, logger: logger}
}

// List handles GET /api/v1/users.
func (h *UserHandler) List(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}

	list, total, err := h.svc.List(c.Request.Context(), &page)
	if err != nil {
		h.logger.Error("list users failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, page.GetPage(), page.GetPageSize())
}

// Get handles GET /api/v1/users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, codeUserNotFound, "user not found")
		default:
			h.logger.Error("load user failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	response.OK(c, user)
}

// Update handles PATCH /api/v1/users/:id.
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}

	user, err := h.svc.Update(c.Request.Context(), currentActor(c), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			response.Forbidden(c, 10003, "not allowed to update this user")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, codeUserNotFound, "user not found")
		case errors.Is(err, service.ErrEmailTaken):
			response.Conflict(c, codeEmailTaken, "email already in use")
		default:
			h.logger.Error("update user failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	response.OK(c, user)
}

// AssignRole handles PUT /api/v1/users/:id/role.
func (h *UserHandler) AssignRole(c *gin.Context) {
	var req dto.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}

	if err := h.svc.AssignRole(c.Request.Context(), currentActor(c), c.Param("id"), req.Role); err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			response.Forbidden(c, 10003, "admin privileges required")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, codeUserNotFound, "user not found")
		default:
			h.logger.Error("assign role failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
