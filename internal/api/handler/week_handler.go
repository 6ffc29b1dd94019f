package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Rich-Bam/Time-2026-sub001/internal/dto"
	"github.com/Rich-Bam/Time-2026-sub001/internal/service"
	"github.com/Rich-Bam/Time-2026-sub001/pkg/response"
)

// Week error codes (14xxx).
const (
	codeWeekNotFound     = 14001
	codeAlreadyConfirmed = 14002
	codeWeekNotConfirmed = 14003
)

// WeekHandler serves the weekly confirmation endpoints.
type WeekHandler struct {
	svc    service.WeekService
	logger *zap.Logger
}

// NewWeekHandler creates a WeekHandler.
func NewWeekHandler(svc service.WeekService, logger *zap.Logger) *WeekHandler {
	return &WeekHandler{svc: svc, logger: logger}
}

// Status handles GET /api/v1/weeks/status?date=YYYY-MM-DD&user_id=...
func (h *WeekHandler) Status(c *gin.Context) {
	day, ok := queryDate(c, "date")
	if !ok {
		response.BadRequest(c, 10001, "invalid date")
		return
	}

	status, err := h.svc.Status(c.Request.Context(), currentActor(c), c.Query("user_id"), day)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			response.Forbidden(c, 10003, "not allowed to view this week")
		default:
			h.logger.Error("week status failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	response.OK(c, status)
}

// Confirm handles POST /api/v1/weeks/confirm.
func (h *WeekHandler) Confirm(c *gin.Context) {
	var req dto.ConfirmWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}

	week, err := h.svc.Confirm(c.Request.Context(), currentActor(c), req.WeekStart)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyConfirmed):
			response.Conflict(c, codeAlreadyConfirmed, "week is already confirmed")
		default:
			h.logger.Error("confirm week failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	response.OK(c, week)
}

// reviewError maps the errors shared by the admin review endpoints.
func (h *WeekHandler) reviewError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, 10003, "admin privileges required")
	case errors.Is(err, service.ErrWeekNotFound):
		response.NotFound(c, codeWeekNotFound, "week not found")
	case errors.Is(err, service.ErrWeekNotConfirmed):
		response.Conflict(c, codeWeekNotConfirmed, "week has not been confirmed")
	default:
		return false
	}
	return true
}

// Approve handles POST /api/v1/weeks/approve.
func (h *WeekHandler) Approve(c *gin.Context) {
	var req dto.ReviewWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}

	week, err := h.svc.Approve(c.Request.Context(), currentActor(c), req.UserID, req.WeekStart, req.Comment)
	if err != nil {
		if !h.reviewError(c, err) {
			h.logger.Error("approve week failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	response.OK(c, week)
}

// Reopen handles POST /api/v1/weeks/reopen.
func (h *WeekHandler) Reopen(c *gin.Context) {
	var req dto.ReviewWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}

	week, err := h.svc.Reopen(c.Request.Context(), currentActor(c), req.UserID, req.WeekStart, req.Comment)
	if err != nil {
		if !h.reviewError(c, err) {
			h.logger.Error("reopen week failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	response.OK(c, week)
}

// PendingReview handles GET /api/v1/weeks/pending-review.
func (h *WeekHandler) PendingReview(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}

	list, total, err := h.svc.ListPendingReview(c.Request.Context(), currentActor(c), &page)
	if err != nil {
		if !h.reviewError(c, err) {
			h.logger.Error("list pending weeks failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	response.OKPage(c, list, total, page.GetPage(), page.GetPageSize())
}
