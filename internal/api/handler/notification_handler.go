package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Rich-Bam/Time-2026-sub001/internal/dto"
	"github.com/Rich-Bam/Time-2026-sub001/internal/service"
	"github.com/Rich-Bam/Time-2026-sub001/pkg/response"
)

// NotificationHandler serves the notification endpoints.
type NotificationHandler struct {
	svc    service.NotificationService
	logger *zap.Logger
}

// NewNotificationHandler creates a NotificationHandler.
func NewNotificationHandler(svc service.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{svc: svc, logger: logger}
}

// List handles GET /api/v1/notifications?unread=true.
func (h *NotificationHandler) List(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}
	unreadOnly := c.Query("unread") == "true"

	list, total, err := h.svc.List(c.Request.Context(), currentActor(c), unreadOnly, &page)
	if err != nil {
		h.logger.Error("list notifications failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, page.GetPage(), page.GetPageSize())
}

// MarkRead handles POST /api/v1/notifications/:id/read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.svc.MarkRead(c.Request.Context(), currentActor(c), c.Param("id")); err != nil {
		h.logger.Error("mark notification read failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	c.Status(http.StatusNoContent)
}

// MarkAllRead handles POST /api/v1/notifications/read-all.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.svc.MarkAllRead(c.Request.Context(), currentActor(c)); err != nil {
		h.logger.Error("mark notifications read failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	c.Status(http.StatusNoContent)
}
