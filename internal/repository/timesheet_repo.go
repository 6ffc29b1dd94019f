package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Rich-Bam/Time-2026-sub001/internal/model"
)

// TimesheetRepository is the timesheet entry data access interface.
type TimesheetRepository interface {
	Create(ctx context.Context, entry *model.TimesheetEntry) error
	BatchCreate(ctx context.Context, entries []model.TimesheetEntry) error
	GetByID(ctx context.Context, id string) (*model.TimesheetEntry, error)
	Update(ctx context.Context, entry *model.TimesheetEntry) error
	Delete(ctx context.Context, id string) error
	ListByUserAndDate(ctx context.Context, userID string, date model.Date) ([]model.TimesheetEntry, error)
	ListByUserAndRange(ctx context.Context, userID string, from, to model.Date) ([]model.TimesheetEntry, error)
	ListByIDs(ctx context.Context, ids []string) ([]model.TimesheetEntry, error)
	CountByUserAndRange(ctx context.Context, userID string, from, to model.Date) (int64, error)
	DeleteByUserAndRange(ctx context.Context, userID string, from, to model.Date) error
}

type timesheetRepo struct {
	db *gorm.DB
}

// NewTimesheetRepo creates a TimesheetRepository.
func NewTimesheetRepo(db *gorm.DB) TimesheetRepository {
	return &timesheetRepo{db: db}
}

func (r *timesheetRepo) Create(ctx context.Context, entry *model.TimesheetEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *timesheetRepo) BatchCreate(ctx context.Context, entries []model.TimesheetEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&entries).Error
}

func (r *timesheetRepo) GetByID(ctx context.Context, id string) (*model.TimesheetEntry, error) {
	var entry model.TimesheetEntry
	err := r.db.WithContext(ctx).
		Preload("Project").
		Where("entry_id = ?", id).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *timesheetRepo) Update(ctx context.Context, entry *model.TimesheetEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *timesheetRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("entry_id = ?", id).
		Delete(&model.TimesheetEntry{}).Error
}

func (r *timesheetRepo) ListByUserAndDate(ctx context.Context, userID string, date model.Date) ([]model.TimesheetEntry, error) {
	var entries []model.TimesheetEntry
	err := r.db.WithContext(ctx).
		Preload("Project").
		Where("user_id = ? AND entry_date = ?", userID, date).
		Order("start_time ASC NULLS LAST, created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *timesheetRepo) ListByUserAndRange(ctx context.Context, userID string, from, to model.Date) ([]model.TimesheetEntry, error) {
	var entries []model.TimesheetEntry
	err := r.db.WithContext(ctx).
		Preload("Project").
		Where("user_id = ? AND entry_date >= ? AND entry_date <= ?", userID, from, to).
		Order("entry_date ASC, start_time ASC NULLS LAST, created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *timesheetRepo) ListByIDs(ctx context.Context, ids []string) ([]model.TimesheetEntry, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var entries []model.TimesheetEntry
	err := r.db.WithContext(ctx).
		Where("entry_id IN ?", ids).
		Order("entry_date ASC, created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *timesheetRepo) CountByUserAndRange(ctx context.Context, userID string, from, to model.Date) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.TimesheetEntry{}).
		Where("user_id = ? AND entry_date >= ? AND entry_date <= ?", userID, from, to).
		Count(&count).Error
	return count, err
}

func (r *timesheetRepo) DeleteByUserAndRange(ctx context.Context, userID string, from, to model.Date) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND entry_date >= ? AND entry_date <= ?", userID, from, to).
		Delete(&model.TimesheetEntry{}).Error
}
