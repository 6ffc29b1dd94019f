package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Rich-Bam/Time-2026-sub001/internal/dto"
	"github.com/Rich-Bam/Time-2026-sub001/internal/service"
	"github.com/Rich-Bam/Time-2026-sub001/pkg/jwt"
	"github.com/Rich-Bam/Time-2026-sub001/pkg/response"
)

// Auth error codes (11xxx).
const (
	codeInvalidCredentials = 11001
	codeInvalidRefresh     = 11002
	codeWrongPassword      = 11003
)

// AuthHandler serves the authentication endpoints.
type AuthHandler struct {
	svc    service.AuthService
	logger *zap.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Unauthorized(c, codeInvalidCredentials, "invalid email or password")
		default:
			h.logger.Error("login failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	response.OK(c, resp)
}

// Refresh handles POST /api/v1/auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}

	resp, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRefresh):
			response.Unauthorized(c, codeInvalidRefresh, "invalid refresh token")
		default:
			h.logger.Error("token refresh failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	response.OK(c, resp)
}

// Logout handles POST /api/v1/auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := c.Get(CtxClaims)
	if !ok {
		response.Unauthorized(c, 10002, "not authenticated")
		return
	}

	if err := h.svc.Logout(c.Request.Context(), claims.(*jwt.Claims)); err != nil {
		h.logger.Error("logout failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	c.Status(http.StatusNoContent)
}

// Me handles GET /api/v1/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	resp, err := h.svc.Me(c.Request.Context(), currentActor(c).UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.Unauthorized(c, 10002, "account no longer exists")
		default:
			h.logger.Error("load current user failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	response.OK(c, resp)
}

// ChangePassword handles POST /api/v1/auth/password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}

	if err := h.svc.ChangePassword(c.Request.Context(), currentActor(c).UserID, &req); err != nil {
		switch {
		case errors.Is(err, service.ErrWrongPassword):
			response.BadRequest(c, codeWrongPassword, "old password does not match")
		case errors.Is(err, service.ErrUserNotFound):
			response.Unauthorized(c, 10002, "account no longer exists")
		default:
			h.logger.Error("password change failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
