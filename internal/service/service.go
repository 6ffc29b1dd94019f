package service

import (
	"go.uber.org/zap"

	"github.com/Rich-Bam/Time-2026-sub001/config"
	"github.com/Rich-Bam/Time-2026-sub001/internal/model"
	"github.com/Rich-Bam/Time-2026-sub001/internal/repository"
	"github.com/Rich-Bam/Time-2026-sub001/pkg/jwt"
	"github.com/Rich-Bam/Time-2026-sub001/pkg/redis"
)

// Actor identifies who is performing an operation. Every service method
// that enforces ownership or role rules takes it explicitly.
type Actor struct {
	UserID string
	Role   string
}

// IsAdmin reports whether the actor holds administrative rights.
func (a Actor) IsAdmin() bool {
	return a.Role == model.RoleAdmin || a.Role == model.UserTypeSuperAdmin
}

// Service aggregates all business services.
type Service struct {
	Auth         AuthService
	User         UserService
	Project      ProjectService
	Timesheet    TimesheetService
	Week         WeekService
	Share        ShareService
	Notification NotificationService
	Export       ExportService
}

// NewService wires the service layer.
func NewService(cfg *config.Config, repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *Service {
	return &Service{
		Auth:         NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:         NewUserService(repo, logger),
		Project:      NewProjectService(repo, logger),
		Timesheet:    NewTimesheetService(repo, logger),
		Week:         NewWeekService(repo, logger),
		Share:        NewShareService(repo, logger),
		Notification: NewNotificationService(repo, logger),
		Export:       NewExportService(cfg, repo, logger),
	}
}
