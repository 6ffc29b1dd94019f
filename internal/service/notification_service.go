package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Rich-Bam/Time-2026-sub001/internal/dto"
	"github.com/Rich-Bam/Time-2026-sub001/internal/model"
	"github.com/Rich-Bam/Time-2026-sub001/internal/repository"
)

// NotificationService lists and resolves a user's notifications.
type NotificationService interface {
	List(ctx context.Context, actor Actor, unreadOnly bool, page *dto.PaginationRequest) ([]model.Notification, int64, error)
	MarkRead(ctx context.Context, actor Actor, id string) error
	MarkAllRead(ctx context.Context, actor Actor) error
}

type notificationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNotificationService creates a NotificationService.
func NewNotificationService(repo *repository.Repository, logger *zap.Logger) NotificationService {
	return &notificationService{repo: repo, logger: logger}
}

func (s *notificationService) List(ctx context.Context, actor Actor, unreadOnly bool, page *dto.PaginationRequest) ([]model.Notification, int64, error) {
	list, total, err := s.repo.Notification.ListByUser(ctx, actor.UserID, unreadOnly, page.GetOffset(), page.GetPageSize())
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	return list, total, nil
}

func (s *notificationService) MarkRead(ctx context.Context, actor Actor, id string) error {
	if err := s.repo.Notification.MarkRead(ctx, id, actor.UserID); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, actor Actor) error {
	if err := s.repo.Notification.MarkAllRead(ctx, actor.UserID); err != nil {
		return fmt.Errorf("mark notifications read: %w", err)
	}
	return nil
}
