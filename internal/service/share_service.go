package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Rich-Bam/Time-2026-sub001/internal/dto"
	"github.com/Rich-Bam/Time-2026-sub001/internal/model"
	"github.com/Rich-Bam/Time-2026-sub001/internal/repository"
	pkgerrors "github.com/Rich-Bam/Time-2026-sub001/pkg/errors"
)

// Sharing errors.
var (
	ErrShareNotFound     = errors.New("share not found")
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrShareWithSelf     = errors.New("cannot share with yourself")
	ErrFutureDate        = errors.New("cannot share a future week")
	ErrNoEntries         = errors.New("nothing to share on the selected days")
	ErrAlreadyShared     = errors.New("a pending share for this day already exists")
	ErrDayOutsideWeek    = errors.New("selected day falls outside the anchor week")
	ErrNotShareRecipient = errors.New("share is addressed to another user")
	ErrShareResolved     = errors.New("share has already been accepted or declined")
	ErrOriginalsNotFound = errors.New("shared entries no longer exist")
	ErrConfirmRequired   = errors.New("existing entries in range, confirmation required")
)

// ShareService manages the entry-sharing protocol between users.
//
// Shares snapshot entries by identifier at creation; values are resolved at
// accept time, so the recipient receives whatever the sharer's entries say
// when accepting.
type ShareService interface {
	// Create starts a sharing transaction. Week shares fan out to one
	// SharedEntry per selected day; days already pending are skipped, days
	// with neither entries nor an overnight stay are excluded.
	Create(ctx context.Context, actor Actor, req *dto.CreateShareRequest) (*dto.CreateShareResult, error)
	// Preview resolves a share's snapshot to the sharer's current entries.
	// Deleted entries disappear from the preview silently.
	Preview(ctx context.Context, actor Actor, shareID string) (*dto.SharePreviewResponse, error)
	// Accept copies the shared entries into the recipient's timesheet,
	// replacing the target range. Without confirmOverwrite, existing
	// recipient entries in range suspend the accept with ErrConfirmRequired.
	Accept(ctx context.Context, actor Actor, shareID string, confirmOverwrite bool) (*dto.AcceptShareResult, error)
	// Decline resolves a pending share without touching any timesheet.
	Decline(ctx context.Context, actor Actor, shareID string) error
	ListIncoming(ctx context.Context, actor Actor, status string) ([]model.SharedEntry, error)
	ListOutgoing(ctx context.Context, actor Actor, status string) ([]model.SharedEntry, error)
}

type shareService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewShareService creates a ShareService.
func NewShareService(repo *repository.Repository, logger *zap.Logger) ShareService {
	return &shareService{repo: repo, logger: logger}
}

func (s *shareService) Create(ctx context.Context, actor Actor, req *dto.CreateShareRequest) (*dto.CreateShareResult, error) {
	if req.RecipientID == actor.UserID {
		return nil, ErrShareWithSelf
	}
	if _, err := s.repo.User.GetByID(ctx, req.RecipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, fmt.Errorf("load recipient: %w", err)
	}
	if req.Date.WeekStart().After(model.Today().WeekStart()) {
		return nil, ErrFutureDate
	}

	days := []model.Date{req.Date}
	if req.ShareType == model.ShareTypeWeek {
		if len(req.Days) == 0 {
			return nil, ErrNoEntries
		}
		anchor := req.Date.WeekStart()
		for _, d := range req.Days {
			if !d.WeekStart().Equal(anchor) {
				return nil, ErrDayOutsideWeek
			}
		}
		days = req.Days
	}

	result := &dto.CreateShareResult{}
	var pendingSkips int

	for _, day := range days {
		entries, err := s.repo.Timesheet.ListByUserAndDate(ctx, actor.UserID, day)
		if err != nil {
			return nil, fmt.Errorf("list entries: %w", err)
		}

		// A day with only an overnight stay is still shareable, with an
		// empty snapshot.
		if len(entries) == 0 {
			if _, err := s.repo.OvernightStay.Get(ctx, actor.UserID, day); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					if req.ShareType == model.ShareTypeDay {
						return nil, ErrNoEntries
					}
					result.SkippedDays = append(result.SkippedDays, day)
					continue
				}
				return nil, fmt.Errorf("load overnight stay: %w", err)
			}
		}

		if _, err := s.repo.SharedEntry.GetPending(ctx, actor.UserID, req.RecipientID, req.ShareType, day); err == nil {
			if req.ShareType == model.ShareTypeDay {
				return nil, ErrAlreadyShared
			}
			pendingSkips++
			result.SkippedDays = append(result.SkippedDays, day)
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("check pending share: %w", err)
		}

		share := &model.SharedEntry{
			SharerID:    actor.UserID,
			RecipientID: req.RecipientID,
			ShareType:   req.ShareType,
			ShareDate:   day,
			Status:      model.ShareStatusPending,
			Message:     req.Message,
		}
		items := make([]model.SharedEntryItem, 0, len(entries))
		for _, e := range entries {
			items = append(items, model.SharedEntryItem{EntryID: e.EntryID})
		}

		if err := s.repo.SharedEntry.CreateWithItems(ctx, share, items); err != nil {
			// A concurrent create for the same tuple loses to the partial
			// unique index; treat it like the pre-check hit.
			if pkgerrors.IsDuplicateKey(err) {
				if req.ShareType == model.ShareTypeDay {
					return nil, ErrAlreadyShared
				}
				pendingSkips++
				result.SkippedDays = append(result.SkippedDays, day)
				continue
			}
			return nil, fmt.Errorf("create share: %w", err)
		}
		result.Shares = append(result.Shares, *share)
	}

	if len(result.Shares) == 0 {
		if pendingSkips > 0 {
			return nil, ErrAlreadyShared
		}
		return nil, ErrNoEntries
	}

	s.notify(ctx, req.RecipientID, model.NotificationShareReceived,
		"Hours shared with you",
		fmt.Sprintf("A colleague shared timesheet entries for %s with you.", req.Date),
		result.Shares[0].SharedEntryID)
	s.logger.Info("share created",
		zap.String("sharer_id", actor.UserID),
		zap.String("recipient_id", req.RecipientID),
		zap.String("share_type", req.ShareType),
		zap.Int("shares", len(result.Shares)),
		zap.Int("skipped", len(result.SkippedDays)))
	return result, nil
}

func (s *shareService) Preview(ctx context.Context, actor Actor, shareID string) (*dto.SharePreviewResponse, error) {
	share, err := s.loadShare(ctx, shareID)
	if err != nil {
		return nil, err
	}
	if share.RecipientID != actor.UserID && share.SharerID != actor.UserID && !actor.IsAdmin() {
		return nil, ErrNotShareRecipient
	}

	entries, err := s.resolveItems(ctx, share)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.TimesheetEntry{}
	}
	return &dto.SharePreviewResponse{Share: share, Entries: entries}, nil
}

func (s *shareService) Accept(ctx context.Context, actor Actor, shareID string, confirmOverwrite bool) (*dto.AcceptShareResult, error) {
	share, err := s.loadShare(ctx, shareID)
	if err != nil {
		return nil, err
	}
	if share.RecipientID != actor.UserID {
		return nil, ErrNotShareRecipient
	}
	if share.IsResolved() {
		return nil, ErrShareResolved
	}

	// Overnight-only share: no snapshot, just the stay fact.
	if len(share.Items) == 0 {
		err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
			stay := &model.OvernightStay{UserID: actor.UserID, StayDate: share.ShareDate}
			if err := tx.OvernightStay.Upsert(ctx, stay); err != nil {
				return fmt.Errorf("copy overnight stay: %w", err)
			}
			return s.markAccepted(ctx, tx, share)
		})
		if err != nil {
			return nil, err
		}
		s.notifyResolved(ctx, share, true)
		return &dto.AcceptShareResult{Share: share, OvernightOnly: true}, nil
	}

	from, to := shareRange(share)

	originals, err := s.resolveItems(ctx, share)
	if err != nil {
		return nil, err
	}
	// The sharer deleted everything since sharing; the share stays pending.
	if len(originals) == 0 {
		return nil, ErrOriginalsNotFound
	}

	existing, err := s.repo.Timesheet.CountByUserAndRange(ctx, actor.UserID, from, to)
	if err != nil {
		return nil, fmt.Errorf("count existing entries: %w", err)
	}
	if existing > 0 && !confirmOverwrite {
		return nil, ErrConfirmRequired
	}

	copies := make([]model.TimesheetEntry, 0, len(originals))
	for i := range originals {
		copies = append(copies, originals[i].CopyTo(actor.UserID))
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Timesheet.DeleteByUserAndRange(ctx, actor.UserID, from, to); err != nil {
			return fmt.Errorf("clear target range: %w", err)
		}
		if err := tx.Timesheet.BatchCreate(ctx, copies); err != nil {
			return fmt.Errorf("copy entries: %w", err)
		}
		// The sharer's overnight fact for the day travels with the entries.
		if _, err := tx.OvernightStay.Get(ctx, share.SharerID, share.ShareDate); err == nil {
			stay := &model.OvernightStay{UserID: actor.UserID, StayDate: share.ShareDate}
			if err := tx.OvernightStay.Upsert(ctx, stay); err != nil {
				return fmt.Errorf("copy overnight stay: %w", err)
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("load overnight stay: %w", err)
		}
		return s.markAccepted(ctx, tx, share)
	})
	if err != nil {
		return nil, err
	}

	s.notifyResolved(ctx, share, true)
	s.logger.Info("share accepted",
		zap.String("share_id", share.SharedEntryID),
		zap.String("recipient_id", actor.UserID),
		zap.Int("copied", len(copies)))
	return &dto.AcceptShareResult{Share: share, CopiedEntries: len(copies)}, nil
}

func (s *shareService) Decline(ctx context.Context, actor Actor, shareID string) error {
	share, err := s.loadShare(ctx, shareID)
	if err != nil {
		return err
	}
	if share.RecipientID != actor.UserID {
		return ErrNotShareRecipient
	}
	if share.IsResolved() {
		return ErrShareResolved
	}

	share.Status = model.ShareStatusDeclined
	if err := s.repo.SharedEntry.Update(ctx, share); err != nil {
		return fmt.Errorf("decline share: %w", err)
	}
	s.notifyResolved(ctx, share, false)
	return nil
}

func (s *shareService) ListIncoming(ctx context.Context, actor Actor, status string) ([]model.SharedEntry, error) {
	shares, err := s.repo.SharedEntry.ListByRecipient(ctx, actor.UserID, status)
	if err != nil {
		return nil, fmt.Errorf("list incoming shares: %w", err)
	}
	return shares, nil
}

func (s *shareService) ListOutgoing(ctx context.Context, actor Actor, status string) ([]model.SharedEntry, error) {
	shares, err := s.repo.SharedEntry.ListBySharer(ctx, actor.UserID, status)
	if err != nil {
		return nil, fmt.Errorf("list outgoing shares: %w", err)
	}
	return shares, nil
}

// ── helpers ──

// shareRange returns the recipient-side target range: the single day for day
// shares, the full Monday..Sunday week for week shares.
func shareRange(share *model.SharedEntry) (model.Date, model.Date) {
	if share.ShareType == model.ShareTypeWeek {
		return share.ShareDate.WeekStart(), share.ShareDate.WeekEnd()
	}
	return share.ShareDate, share.ShareDate
}

func (s *shareService) loadShare(ctx context.Context, shareID string) (*model.SharedEntry, error) {
	share, err := s.repo.SharedEntry.GetByID(ctx, shareID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShareNotFound
		}
		return nil, fmt.Errorf("load share: %w", err)
	}
	return share, nil
}

// resolveItems looks up the sharer's current entries behind the snapshot.
// Entries deleted since share time simply drop out.
func (s *shareService) resolveItems(ctx context.Context, share *model.SharedEntry) ([]model.TimesheetEntry, error) {
	ids := make([]string, 0, len(share.Items))
	for _, item := range share.Items {
		ids = append(ids, item.EntryID)
	}
	entries, err := s.repo.Timesheet.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve share items: %w", err)
	}
	return entries, nil
}

func (s *shareService) markAccepted(ctx context.Context, tx *repository.Repository, share *model.SharedEntry) error {
	now := time.Now()
	share.Status = model.ShareStatusAccepted
	share.AcceptedAt = &now
	if err := tx.SharedEntry.Update(ctx, share); err != nil {
		return fmt.Errorf("resolve share: %w", err)
	}
	return nil
}

// notifyResolved tells the sharer how the share ended. Best effort.
func (s *shareService) notifyResolved(ctx context.Context, share *model.SharedEntry, accepted bool) {
	kind := model.NotificationShareDeclined
	title := "Share declined"
	content := fmt.Sprintf("Your share for %s was declined.", share.ShareDate)
	if accepted {
		kind = model.NotificationShareAccepted
		title = "Share accepted"
		content = fmt.Sprintf("Your share for %s was accepted.", share.ShareDate)
	}
	s.notify(ctx, share.SharerID, kind, title, content, share.SharedEntryID)
}

func (s *shareService) notify(ctx context.Context, userID, kind, title, content, shareID string) {
	relatedType := "shared_entry"
	n := &model.Notification{
		UserID:      userID,
		Type:        kind,
		Title:       title,
		Content:     content,
		RelatedType: &relatedType,
		RelatedID:   &shareID,
	}
	if err := s.repo.Notification.Create(ctx, n); err != nil {
		s.logger.Warn("share notification failed",
			zap.String("user_id", userID),
			zap.Error(err))
	}
}
