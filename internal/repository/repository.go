package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregates all repositories.
type Repository struct {
	db *gorm.DB

	User          UserRepository
	Project       ProjectRepository
	Timesheet     TimesheetRepository
	OvernightStay OvernightStayRepository
	ConfirmedWeek ConfirmedWeekRepository
	SharedEntry   SharedEntryRepository
	Notification  NotificationRepository
}

// NewRepository builds the repository aggregate.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:            db,
		User:          NewUserRepo(db),
		Project:       NewProjectRepo(db),
		Timesheet:     NewTimesheetRepo(db),
		OvernightStay: NewOvernightStayRepo(db),
		ConfirmedWeek: NewConfirmedWeekRepo(db),
		SharedEntry:   NewSharedEntryRepo(db),
		Notification:  NewNotificationRepo(db),
	}
}

// Transaction runs fn against a repository aggregate bound to a single
// database transaction; every step commits or rolls back together.
// With no underlying database (unit tests with mock repositories), fn runs
// against the receiver directly.
func (r *Repository) Transaction(ctx context.Context, fn func(*Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
