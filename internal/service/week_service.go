package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Rich-Bam/Time-2026-sub001/internal/dto"
	"github.com/Rich-Bam/Time-2026-sub001/internal/model"
	"github.com/Rich-Bam/Time-2026-sub001/internal/repository"
)

// Week lock errors.
var (
	ErrWeekNotFound     = errors.New("week record not found")
	ErrWeekLocked       = errors.New("week is confirmed and locked")
	ErrAlreadyConfirmed = errors.New("week is already confirmed")
	ErrWeekNotConfirmed = errors.New("week has not been confirmed")
	ErrForbidden        = errors.New("operation not allowed for this user")
)

// WeekService manages the weekly confirmation lock workflow.
type WeekService interface {
	// Status reports the lock state of one (user, week) as seen by the actor.
	Status(ctx context.Context, actor Actor, userID string, anyDay model.Date) (*dto.WeekStatusResponse, error)
	// Confirm locks the owner's week. Idempotent retries fail with
	// ErrAlreadyConfirmed.
	Confirm(ctx context.Context, actor Actor, anyDay model.Date) (*model.ConfirmedWeek, error)
	// Approve marks a confirmed week as reviewed and approved. Admin only.
	Approve(ctx context.Context, actor Actor, userID string, anyDay model.Date, comment string) (*model.ConfirmedWeek, error)
	// Reopen returns a confirmed week to the open state. Admin only.
	Reopen(ctx context.Context, actor Actor, userID string, anyDay model.Date, comment string) (*model.ConfirmedWeek, error)
	// ListPendingReview returns confirmed, not yet approved weeks, oldest first.
	ListPendingReview(ctx context.Context, actor Actor, page *dto.PaginationRequest) ([]dto.PendingWeekResponse, int64, error)
}

type weekService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewWeekService creates a WeekService.
func NewWeekService(repo *repository.Repository, logger *zap.Logger) WeekService {
	return &weekService{repo: repo, logger: logger}
}

// weekLocked reports whether the week containing day is locked against edits
// for the given actor. A missing lock row means the week is open.
func weekLocked(ctx context.Context, repo *repository.Repository, ownerID string, day model.Date, actorIsAdmin bool) (bool, error) {
	week, err := repo.ConfirmedWeek.Get(ctx, ownerID, day.WeekStart())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("load week lock: %w", err)
	}
	return week.LockedFor(actorIsAdmin), nil
}

func (s *weekService) Status(ctx context.Context, actor Actor, userID string, anyDay model.Date) (*dto.WeekStatusResponse, error) {
	if userID == "" {
		userID = actor.UserID
	}
	if userID != actor.UserID && !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	weekStart := anyDay.WeekStart()
	resp := &dto.WeekStatusResponse{UserID: userID, WeekStart: weekStart}

	week, err := s.repo.ConfirmedWeek.Get(ctx, userID, weekStart)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resp, nil
		}
		return nil, fmt.Errorf("load week lock: %w", err)
	}

	resp.Confirmed = week.Confirmed
	resp.AdminApproved = week.AdminApproved
	resp.AdminReviewed = week.AdminReviewed
	resp.Locked = week.LockedFor(actor.IsAdmin())
	return resp, nil
}

func (s *weekService) Confirm(ctx context.Context, actor Actor, anyDay model.Date) (*model.ConfirmedWeek, error) {
	weekStart := anyDay.WeekStart()

	existing, err := s.repo.ConfirmedWeek.Get(ctx, actor.UserID, weekStart)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load week lock: %w", err)
	}
	if existing != nil && existing.Confirmed {
		return nil, ErrAlreadyConfirmed
	}

	week := &model.ConfirmedWeek{
		UserID:    actor.UserID,
		WeekStart: weekStart,
		Confirmed: true,
	}
	if err := s.repo.ConfirmedWeek.Upsert(ctx, week); err != nil {
		return nil, fmt.Errorf("confirm week: %w", err)
	}

	s.logger.Info("week confirmed",
		zap.String("user_id", actor.UserID),
		zap.String("week_start", weekStart.String()))
	return week, nil
}

func (s *weekService) Approve(ctx context.Context, actor Actor, userID string, anyDay model.Date, comment string) (*model.ConfirmedWeek, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	weekStart := anyDay.WeekStart()
	week, err := s.repo.ConfirmedWeek.Get(ctx, userID, weekStart)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWeekNotFound
		}
		return nil, fmt.Errorf("load week lock: %w", err)
	}
	if !week.Confirmed {
		return nil, ErrWeekNotConfirmed
	}

	week.AdminApproved = true
	week.AdminReviewed = true
	if err := s.repo.ConfirmedWeek.Upsert(ctx, week); err != nil {
		return nil, fmt.Errorf("approve week: %w", err)
	}

	s.notifyReview(ctx, userID, weekStart, model.NotificationWeekApproved, comment)
	s.logger.Info("week approved",
		zap.String("admin_id", actor.UserID),
		zap.String("user_id", userID),
		zap.String("week_start", weekStart.String()))
	return week, nil
}

func (s *weekService) Reopen(ctx context.Context, actor Actor, userID string, anyDay model.Date, comment string) (*model.ConfirmedWeek, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	weekStart := anyDay.WeekStart()
	week, err := s.repo.ConfirmedWeek.Get(ctx, userID, weekStart)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWeekNotFound
		}
		return nil, fmt.Errorf("load week lock: %w", err)
	}

	week.Confirmed = false
	week.AdminApproved = false
	week.AdminReviewed = true
	if err := s.repo.ConfirmedWeek.Upsert(ctx, week); err != nil {
		return nil, fmt.Errorf("reopen week: %w", err)
	}

	s.notifyReview(ctx, userID, weekStart, model.NotificationWeekReopened, comment)
	s.logger.Info("week reopened",
		zap.String("admin_id", actor.UserID),
		zap.String("user_id", userID),
		zap.String("week_start", weekStart.String()))
	return week, nil
}

func (s *weekService) ListPendingReview(ctx context.Context, actor Actor, page *dto.PaginationRequest) ([]dto.PendingWeekResponse, int64, error) {
	if !actor.IsAdmin() {
		return nil, 0, ErrForbidden
	}

	weeks, total, err := s.repo.ConfirmedWeek.ListPendingReview(ctx, page.GetOffset(), page.GetPageSize())
	if err != nil {
		return nil, 0, fmt.Errorf("list pending weeks: %w", err)
	}

	list := make([]dto.PendingWeekResponse, 0, len(weeks))
	for _, w := range weeks {
		item := dto.PendingWeekResponse{
			UserID:    w.UserID,
			WeekStart: w.WeekStart,
			Confirmed: w.Confirmed,
		}
		if w.User != nil {
			item.UserName = w.User.Name
		}
		list = append(list, item)
	}
	return list, total, nil
}

// notifyReview records a review notification for the week owner. A failure
// is logged, never propagated; the review itself has already committed.
func (s *weekService) notifyReview(ctx context.Context, userID string, weekStart model.Date, kind, comment string) {
	title := "Week approved"
	content := fmt.Sprintf("Your week of %s has been approved.", weekStart)
	if kind == model.NotificationWeekReopened {
		title = "Week reopened"
		content = fmt.Sprintf("Your week of %s has been reopened for editing.", weekStart)
	}
	if comment != "" {
		content += " " + comment
	}

	relatedType := "confirmed_week"
	n := &model.Notification{
		UserID:      userID,
		Type:        kind,
		Title:       title,
		Content:     content,
		RelatedType: &relatedType,
	}
	if err := s.repo.Notification.Create(ctx, n); err != nil {
		s.logger.Warn("review notification failed",
			zap.String("user_id", userID),
			zap.String("week_start", weekStart.String()),
			zap.Error(err))
	}
}
