package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Rich-Bam/Time-2026-sub001/internal/model"
)

// ConfirmedWeekRepository is the week lock-state data access interface.
type ConfirmedWeekRepository interface {
	Get(ctx context.Context, userID string, weekStart model.Date) (*model.ConfirmedWeek, error)
	// Upsert writes the lock state keyed on (user_id, week_start).
	Upsert(ctx context.Context, week *model.ConfirmedWeek) error
	// ListPendingReview returns confirmed weeks not yet approved, oldest first.
	ListPendingReview(ctx context.Context, offset, limit int) ([]model.ConfirmedWeek, int64, error)
	ListByUser(ctx context.Context, userID string, from, to model.Date) ([]model.ConfirmedWeek, error)
}

type confirmedWeekRepo struct {
	db *gorm.DB
}

// NewConfirmedWeekRepo creates a ConfirmedWeekRepository.
func NewConfirmedWeekRepo(db *gorm.DB) ConfirmedWeekRepository {
	return &confirmedWeekRepo{db: db}
}

func (r *confirmedWeekRepo) Get(ctx context.Context, userID string, weekStart model.Date) (*model.ConfirmedWeek, error) {
	var week model.ConfirmedWeek
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND week_start = ?", userID, weekStart).
		First(&week).Error
	if err != nil {
		return nil, err
	}
	return &week, nil
}

func (r *confirmedWeekRepo) Upsert(ctx context.Context, week *model.ConfirmedWeek) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "week_start"}},
			DoUpdates: clause.AssignmentColumns([]string{"confirmed", "admin_approved", "admin_reviewed", "updated_at"}),
		}).
		Create(week).Error
}

func (r *confirmedWeekRepo) ListPendingReview(ctx context.Context, offset, limit int) ([]model.ConfirmedWeek, int64, error) {
	var weeks []model.ConfirmedWeek
	var total int64

	db := r.db.WithContext(ctx).
		Model(&model.ConfirmedWeek{}).
		Where("confirmed = ? AND admin_approved = ?", true, false)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("User").
		Offset(offset).Limit(limit).
		Order("week_start ASC").
		Find(&weeks).Error; err != nil {
		return nil, 0, err
	}

	return weeks, total, nil
}

func (r *confirmedWeekRepo) ListByUser(ctx context.Context, userID string, from, to model.Date) ([]model.ConfirmedWeek, error) {
	var weeks []model.ConfirmedWeek
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND week_start >= ? AND week_start <= ?", userID, from, to).
		Order("week_start ASC").
		Find(&weeks).Error
	if err != nil {
		return nil, err
	}
	return weeks, nil
}
