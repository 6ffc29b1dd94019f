package handler

import (
	"go.uber.org/zap"

	"github.com/Rich-Bam/Time-2026-sub001/internal/service"
)

// Handler aggregates all HTTP handlers.
type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Project      *ProjectHandler
	Timesheet    *TimesheetHandler
	Week         *WeekHandler
	Share        *ShareHandler
	Notification *NotificationHandler
	Export       *ExportHandler
}

// NewHandler wires the handler layer.
func NewHandler(svc *service.Service, logger *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth, logger),
		User:         NewUserHandler(svc.User, logger),
		Project:      NewProjectHandler(svc.Project, logger),
		Timesheet:    NewTimesheetHandler(svc.Timesheet, logger),
		Week:         NewWeekHandler(svc.Week, logger),
		Share:        NewShareHandler(svc.Share, logger),
		Notification: NewNotificationHandler(svc.Notification, logger),
		Export:       NewExportHandler(svc.Export, logger),
	}
}
