package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Rich-Bam/Time-2026-sub001/internal/dto"
	"github.com/Rich-Bam/Time-2026-sub001/internal/service"
	"github.com/Rich-Bam/Time-2026-sub001/pkg/response"
)

// Share error codes (15xxx).
const (
	codeShareNotFound      = 15001
	codeRecipientNotFound  = 15002
	codeShareWithSelf      = 15003
	codeFutureDate         = 15004
	codeNoEntries          = 15005
	codeAlreadyShared      = 15006
	codeNotShareRecipient  = 15007
	codeShareResolved      = 15008
	codeOriginalsNotFound  = 15009
	codeConfirmationNeeded = 15010
	codeDayOutsideWeek     = 15011
)

// ShareHandler serves the entry-sharing endpoints.
type ShareHandler struct {
	svc    service.ShareService
	logger *zap.Logger
}

// NewShareHandler creates a ShareHandler.
func NewShareHandler(svc service.ShareService, logger *zap.Logger) *ShareHandler {
	return &ShareHandler{svc: svc, logger: logger}
}

// Create handles POST /api/v1/shares.
func (h *ShareHandler) Create(c *gin.Context) {
	var req dto.CreateShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}

	result, err := h.svc.Create(c.Request.Context(), currentActor(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrShareWithSelf):
			response.BadRequest(c, codeShareWithSelf, "cannot share with yourself")
		case errors.Is(err, service.ErrRecipientNotFound):
			response.NotFound(c, codeRecipientNotFound, "recipient not found")
		case errors.Is(err, service.ErrFutureDate):
			response.BadRequest(c, codeFutureDate, "cannot share a future week")
		case errors.Is(err, service.ErrNoEntries):
			response.BadRequest(c, codeNoEntries, "nothing to share on the selected days")
		case errors.Is(err, service.ErrAlreadyShared):
			response.Conflict(c, codeAlreadyShared, "a pending share for this day already exists")
		case errors.Is(err, service.ErrDayOutsideWeek):
			response.BadRequest(c, codeDayOutsideWeek, "selected day falls outside the anchor week")
		default:
			h.logger.Error("create share failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// shareError maps the errors shared by the resolve endpoints.
func (h *ShareHandler) shareError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrShareNotFound):
		response.NotFound(c, codeShareNotFound, "share not found")
	case errors.Is(err, service.ErrNotShareRecipient):
		response.Forbidden(c, codeNotShareRecipient, "share is addressed to another user")
	case errors.Is(err, service.ErrShareResolved):
		response.Conflict(c, codeShareResolved, "share has already been accepted or declined")
	default:
		return false
	}
	return true
}

// Preview handles GET /api/v1/shares/:id/preview.
func (h *ShareHandler) Preview(c *gin.Context) {
	preview, err := h.svc.Preview(c.Request.Context(), currentActor(c), c.Param("id"))
	if err != nil {
		if !h.shareError(c, err) {
			h.logger.Error("preview share failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	response.OK(c, preview)
}

// Accept handles POST /api/v1/shares/:id/accept.
//
// When the recipient already has entries in the target range and has not
// confirmed the overwrite, the call answers 409 with confirmation_required
// so the client can ask and retry.
func (h *ShareHandler) Accept(c *gin.Context) {
	var req dto.AcceptShareRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}

	result, err := h.svc.Accept(c.Request.Context(), currentActor(c), c.Param("id"), req.ConfirmOverwrite)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrConfirmRequired):
			response.ErrorWithData(c, http.StatusConflict, codeConfirmationNeeded,
				"existing entries in range, confirmation required",
				gin.H{"confirmation_required": true})
		case errors.Is(err, service.ErrOriginalsNotFound):
			response.Conflict(c, codeOriginalsNotFound, "shared entries no longer exist")
		default:
			if !h.shareError(c, err) {
				h.logger.Error("accept share failed", zap.Error(err))
				response.InternalError(c)
			}
		}
		return
	}

	response.OK(c, result)
}

// Decline handles POST /api/v1/shares/:id/decline.
func (h *ShareHandler) Decline(c *gin.Context) {
	if err := h.svc.Decline(c.Request.Context(), currentActor(c), c.Param("id")); err != nil {
		if !h.shareError(c, err) {
			h.logger.Error("decline share failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// ListIncoming handles GET /api/v1/shares/incoming?status=pending.
func (h *ShareHandler) ListIncoming(c *gin.Context) {
	shares, err := h.svc.ListIncoming(c.Request.Context(), currentActor(c), c.Query("status"))
	if err != nil {
		h.logger.Error("list incoming shares failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": shares})
}

// ListOutgoing handles GET /api/v1/shares/outgoing?status=pending.
func (h *ShareHandler) ListOutgoing(c *gin.Context) {
	shares, err := h.svc.ListOutgoing(c.Request.Context(), currentActor(c), c.Query("status"))
	if err != nil {
		h.logger.Error("list outgoing shares failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": shares})
}
