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

// Timesheet error codes (13xxx).
const (
	codeEntryNotFound      = 13001
	codeWeekLocked         = 13002
	codeInvalidDuration    = 13003
	codeProjectRefViolated = 13004
)

// TimesheetHandler serves the timesheet entry endpoints.
type TimesheetHandler struct {
	svc    service.TimesheetService
	logger *zap.Logger
}

// NewTimesheetHandler creates a TimesheetHandler.
func NewTimesheetHandler(svc service.TimesheetService, logger *zap.Logger) *TimesheetHandler {
	return &TimesheetHandler{svc: svc, logger: logger}
}

// timesheetError maps service errors shared by every mutation endpoint.
// Returns false when the error was not one of them.
func (h *TimesheetHandler) timesheetError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrWeekLocked):
		response.Conflict(c, codeWeekLocked, "week is confirmed and locked")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, 10003, "not allowed to edit this timesheet")
	case errors.Is(err, service.ErrEntryNotFound):
		response.NotFound(c, codeEntryNotFound, "entry not found")
	case errors.Is(err, service.ErrInvalidDuration):
		response.BadRequest(c, codeInvalidDuration, "entry needs hours or a start and end time")
	case errors.Is(err, service.ErrProjectNotFound):
		response.BadRequest(c, codeProjectRefViolated, "project not found")
	default:
		return false
	}
	return true
}

// Create handles POST /api/v1/timesheet/entries.
func (h *TimesheetHandler) Create(c *gin.Context) {
	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}

	entry, err := h.svc.AddEntry(c.Request.Context(), currentActor(c), &req)
	if err != nil {
		if !h.timesheetError(c, err) {
			h.logger.Error("create entry failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	response.Created(c, entry)
}

// Update handles PATCH /api/v1/timesheet/entries/:id.
func (h *TimesheetHandler) Update(c *gin.Context) {
	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}

	entry, err := h.svc.UpdateEntry(c.Request.Context(), currentActor(c), c.Param("id"), &req)
	if err != nil {
		if !h.timesheetError(c, err) {
			h.logger.Error("update entry failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	response.OK(c, entry)
}

// Delete handles DELETE /api/v1/timesheet/entries/:id.
func (h *TimesheetHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteEntry(c.Request.Context(), currentActor(c), c.Param("id")); err != nil {
		if !h.timesheetError(c, err) {
			h.logger.Error("delete entry failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// Week handles GET /api/v1/timesheet/week?date=YYYY-MM-DD&user_id=...
func (h *TimesheetHandler) Week(c *gin.Context) {
	day, ok := queryDate(c, "date")
	if !ok {
		response.BadRequest(c, 10001, "invalid date")
		return
	}

	view, err := h.svc.GetWeek(c.Request.Context(), currentActor(c), c.Query("user_id"), day)
	if err != nil {
		if !h.timesheetError(c, err) {
			h.logger.Error("load week failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	response.OK(c, view)
}

// SetOvernightStay handles PUT /api/v1/timesheet/overnight.
func (h *TimesheetHandler) SetOvernightStay(c *gin.Context) {
	var req dto.SetOvernightStayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}

	if err := h.svc.SetOvernightStay(c.Request.Context(), currentActor(c), &req); err != nil {
		if !h.timesheetError(c, err) {
			h.logger.Error("set overnight stay failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// Overtime handles GET /api/v1/timesheet/overtime?date=YYYY-MM-DD&user_id=...
func (h *TimesheetHandler) Overtime(c *gin.Context) {
	day, ok := queryDate(c, "date")
	if !ok {
		response.BadRequest(c, 10001, "invalid date")
		return
	}

	summary, err := h.svc.OvertimeSummary(c.Request.Context(), currentActor(c), c.Query("user_id"), day)
	if err != nil {
		if !h.timesheetError(c, err) {
			h.logger.Error("overtime summary failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	response.OK(c, summary)
}
