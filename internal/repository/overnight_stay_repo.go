package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Rich-Bam/Time-2026-sub001/internal/model"
)

// OvernightStayRepository is the overnight-stay data access interface.
type OvernightStayRepository interface {
	// Upsert inserts or refreshes the stay keyed on (user_id, stay_date).
	Upsert(ctx context.Context, stay *model.OvernightStay) error
	Get(ctx context.Context, userID string, date model.Date) (*model.OvernightStay, error)
	Delete(ctx context.Context, userID string, date model.Date) error
	ListByUserAndRange(ctx context.Context, userID string, from, to model.Date) ([]model.OvernightStay, error)
}

type overnightStayRepo struct {
	db *gorm.DB
}

// NewOvernightStayRepo creates an OvernightStayRepository.
func NewOvernightStayRepo(db *gorm.DB) OvernightStayRepository {
	return &overnightStayRepo{db: db}
}

func (r *overnightStayRepo) Upsert(ctx context.Context, stay *model.OvernightStay) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "stay_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"updated_at"}),
		}).
		Create(stay).Error
}

func (r *overnightStayRepo) Get(ctx context.Context, userID string, date model.Date) (*model.OvernightStay, error) {
	var stay model.OvernightStay
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND stay_date = ?", userID, date).
		First(&stay).Error
	if err != nil {
		return nil, err
	}
	return &stay, nil
}

func (r *overnightStayRepo) Delete(ctx context.Context, userID string, date model.Date) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND stay_date = ?", userID, date).
		Delete(&model.OvernightStay{}).Error
}

func (r *overnightStayRepo) ListByUserAndRange(ctx context.Context, userID string, from, to model.Date) ([]model.OvernightStay, error) {
	var stays []model.OvernightStay
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND stay_date >= ? AND stay_date <= ?", userID, from, to).
		Order("stay_date ASC").
		Find(&stays).Error
	if err != nil {
		return nil, err
	}
	return stays, nil
}
