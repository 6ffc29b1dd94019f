package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Rich-Bam/Time-2026-sub001/internal/model"
)

// SharedEntryRepository is the entry-share data access interface.
type SharedEntryRepository interface {
	// CreateWithItems inserts the share and its snapshot items in one
	// transaction; a partial share row is never left behind.
	CreateWithItems(ctx context.Context, share *model.SharedEntry, items []model.SharedEntryItem) error
	GetByID(ctx context.Context, id string) (*model.SharedEntry, error)
	GetPending(ctx context.Context, sharerID, recipientID, shareType string, shareDate model.Date) (*model.SharedEntry, error)
	Update(ctx context.Context, share *model.SharedEntry) error
	ListByRecipient(ctx context.Context, recipientID, status string) ([]model.SharedEntry, error)
	ListBySharer(ctx context.Context, sharerID, status string) ([]model.SharedEntry, error)
}

type sharedEntryRepo struct {
	db *gorm.DB
}

// NewSharedEntryRepo creates a SharedEntryRepository.
func NewSharedEntryRepo(db *gorm.DB) SharedEntryRepository {
	return &sharedEntryRepo{db: db}
}

func (r *sharedEntryRepo) CreateWithItems(ctx context.Context, share *model.SharedEntry, items []model.SharedEntryItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(share).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].SharedEntryID = share.SharedEntryID
		}
		return tx.Create(&items).Error
	})
}

func (r *sharedEntryRepo) GetByID(ctx context.Context, id string) (*model.SharedEntry, error) {
	var share model.SharedEntry
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Sharer").
		Preload("Recipient").
		Where("shared_entry_id = ?", id).
		First(&share).Error
	if err != nil {
		return nil, err
	}
	return &share, nil
}

func (r *sharedEntryRepo) GetPending(ctx context.Context, sharerID, recipientID, shareType string, shareDate model.Date) (*model.SharedEntry, error) {
	var share model.SharedEntry
	err := r.db.WithContext(ctx).
		Where("sharer_id = ? AND recipient_id = ? AND share_type = ? AND share_date = ? AND status = ?",
			sharerID, recipientID, shareType, shareDate, model.ShareStatusPending).
		First(&share).Error
	if err != nil {
		return nil, err
	}
	return &share, nil
}

func (r *sharedEntryRepo) Update(ctx context.Context, share *model.SharedEntry) error {
	return r.db.WithContext(ctx).Save(share).Error
}

func (r *sharedEntryRepo) ListByRecipient(ctx context.Context, recipientID, status string) ([]model.SharedEntry, error) {
	var shares []model.SharedEntry
	db := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Sharer").
		Where("recipient_id = ?", recipientID)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	if err := db.Order("created_at DESC").Find(&shares).Error; err != nil {
		return nil, err
	}
	return shares, nil
}

func (r *sharedEntryRepo) ListBySharer(ctx context.Context, sharerID, status string) ([]model.SharedEntry, error) {
	var shares []model.SharedEntry
	db := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Recipient").
		Where("sharer_id = ?", sharerID)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	if err := db.Order("created_at DESC").Find(&shares).Error; err != nil {
		return nil, err
	}
	return shares, nil
}
