package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Rich-Bam/Time-2026-sub001/internal/model"
	"github.com/Rich-Bam/Time-2026-sub001/internal/service"
	"github.com/Rich-Bam/Time-2026-sub001/pkg/response"
)

// Export error codes (16xxx).
const codeEmptyExport = 16001

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves the export endpoints.
type ExportHandler struct {
	svc    service.ExportService
	logger *zap.Logger
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(svc service.ExportService, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{svc: svc, logger: logger}
}

// exportRange reads the from/to query parameters, defaulting to the current
// week when absent.
func exportRange(c *gin.Context) (model.Date, model.Date, bool) {
	from, okFrom := queryDate(c, "from")
	to, okTo := queryDate(c, "to")
	if !okFrom || !okTo {
		return model.Date{}, model.Date{}, false
	}
	if c.Query("from") == "" && c.Query("to") == "" {
		today := model.Today()
		return today.WeekStart(), today.WeekEnd(), true
	}
	if to.Before(from) {
		return model.Date{}, model.Date{}, false
	}
	return from, to, true
}

// Excel handles GET /api/v1/export/excel?from=...&to=...&user_id=...
func (h *ExportHandler) Excel(c *gin.Context) {
	from, to, ok := exportRange(c)
	if !ok {
		response.BadRequest(c, 10001, "invalid date range")
		return
	}

	buf, filename, err := h.svc.ExportExcel(c.Request.Context(), currentActor(c), c.Query("user_id"), from, to)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			response.Forbidden(c, 10003, "not allowed to export this user")
		case errors.Is(err, service.ErrEmptyExport):
			response.NotFound(c, codeEmptyExport, "no entries in the selected range")
		default:
			h.logger.Error("excel export failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Calendar handles GET /api/v1/export/calendar?from=...&to=...&user_id=...
func (h *ExportHandler) Calendar(c *gin.Context) {
	from, to, ok := exportRange(c)
	if !ok {
		response.BadRequest(c, 10001, "invalid date range")
		return
	}

	feed, err := h.svc.CalendarFeed(c.Request.Context(), currentActor(c), c.Query("user_id"), from, to)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			response.Forbidden(c, 10003, "not allowed to export this user")
		default:
			h.logger.Error("calendar export failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}
