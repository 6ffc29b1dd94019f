package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/Rich-Bam/Time-2026-sub001/internal/dto"
	"github.com/Rich-Bam/Time-2026-sub001/internal/model"
	"github.com/Rich-Bam/Time-2026-sub001/internal/repository"
)

var (
	testMonday = model.NewDate(2025, 3, 10)
	owner      = Actor{UserID: "user-1", Role: model.RoleUser}
	otherUser  = Actor{UserID: "user-2", Role: model.RoleUser}
	admin      = Actor{UserID: "admin-1", Role: model.RoleAdmin}
)

func newWeekService(repo *repository.Repository) WeekService {
	return NewWeekService(repo, zap.NewNop())
}

func TestWeekService_ConfirmTwice(t *testing.T) {
	svc := newWeekService(newTestRepo())
	ctx := context.Background()

	week, err := svc.Confirm(ctx, owner, testMonday.AddDays(3))
	if err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	if !week.WeekStart.Equal(testMonday) {
		t.Errorf("WeekStart = %s, want %s (normalized to Monday)", week.WeekStart, testMonday)
	}
	if !week.Confirmed {
		t.Error("Confirmed = false after Confirm()")
	}

	if _, err := svc.Confirm(ctx, owner, testMonday); !errors.Is(err, ErrAlreadyConfirmed) {
		t.Errorf("second Confirm() error = %v, want ErrAlreadyConfirmed", err)
	}
}

func TestWeekService_ApproveFlow(t *testing.T) {
	repo := newTestRepo()
	svc := newWeekService(repo)
	ctx := context.Background()

	if _, err := svc.Approve(ctx, admin, owner.UserID, testMonday, ""); !errors.Is(err, ErrWeekNotFound) {
		t.Fatalf("Approve() before confirm error = %v, want ErrWeekNotFound", err)
	}

	if _, err := svc.Confirm(ctx, owner, testMonday); err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}

	if _, err := svc.Approve(ctx, owner, owner.UserID, testMonday, ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("Approve() by non-admin error = %v, want ErrForbidden", err)
	}

	week, err := svc.Approve(ctx, admin, owner.UserID, testMonday, "looks good")
	if err != nil {
		t.Fatalf("Approve() error = %v", err)
	}
	if !week.AdminApproved || !week.AdminReviewed {
		t.Errorf("after Approve(): approved=%v reviewed=%v, want both true", week.AdminApproved, week.AdminReviewed)
	}

	// The owner hears about the review.
	notifications := repo.Notification.(*mockNotificationRepo).list
	if len(notifications) != 1 || notifications[0].Type != model.NotificationWeekApproved {
		t.Errorf("notifications = %+v, want one week_approved for the owner", notifications)
	}
}

func TestWeekService_ApproveUnconfirmedWeek(t *testing.T) {
	repo := newTestRepo()
	svc := newWeekService(repo)
	ctx := context.Background()

	// A reopened week leaves a row with confirmed=false.
	week := &model.ConfirmedWeek{UserID: owner.UserID, WeekStart: testMonday, AdminReviewed: true}
	if err := repo.ConfirmedWeek.Upsert(ctx, week); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	if _, err := svc.Approve(ctx, admin, owner.UserID, testMonday, ""); !errors.Is(err, ErrWeekNotConfirmed) {
		t.Errorf("Approve() error = %v, want ErrWeekNotConfirmed", err)
	}
}

func TestWeekService_Reopen(t *testing.T) {
	repo := newTestRepo()
	svc := newWeekService(repo)
	ctx := context.Background()

	if _, err := svc.Confirm(ctx, owner, testMonday); err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	if _, err := svc.Reopen(ctx, owner, owner.UserID, testMonday, ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("Reopen() by non-admin error = %v, want ErrForbidden", err)
	}

	week, err := svc.Reopen(ctx, admin, owner.UserID, testMonday, "please fix Tuesday")
	if err != nil {
		t.Fatalf("Reopen() error = %v", err)
	}
	if week.Confirmed || week.AdminApproved {
		t.Errorf("after Reopen(): confirmed=%v approved=%v, want both false", week.Confirmed, week.AdminApproved)
	}
	if !week.AdminReviewed {
		t.Error("AdminReviewed = false after Reopen(), the review should stay on record")
	}

	// The owner can confirm again after fixing things.
	if _, err := svc.Confirm(ctx, owner, testMonday); err != nil {
		t.Errorf("Confirm() after reopen error = %v", err)
	}
}

func TestWeekService_StatusLockVisibility(t *testing.T) {
	svc := newWeekService(newTestRepo())
	ctx := context.Background()

	status, err := svc.Status(ctx, owner, "", testMonday)
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if status.Locked || status.Confirmed {
		t.Errorf("open week: locked=%v confirmed=%v, want both false", status.Locked, status.Confirmed)
	}

	if _, err := svc.Confirm(ctx, owner, testMonday); err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}

	status, _ = svc.Status(ctx, owner, "", testMonday)
	if !status.Locked {
		t.Error("confirmed week should be locked for the owner")
	}
	status, _ = svc.Status(ctx, admin, owner.UserID, testMonday)
	if !status.Locked {
		t.Error("confirmed week should read locked for an admin until approved")
	}

	if _, err := svc.Approve(ctx, admin, owner.UserID, testMonday, ""); err != nil {
		t.Fatalf("Approve() error = %v", err)
	}

	status, _ = svc.Status(ctx, admin, owner.UserID, testMonday)
	if status.Locked {
		t.Error("approved week should read unlocked for an admin")
	}
	status, _ = svc.Status(ctx, owner, "", testMonday)
	if !status.Locked {
		t.Error("approved week stays locked for the owner")
	}
}

func TestWeekService_StatusForbiddenAcrossUsers(t *testing.T) {
	svc := newWeekService(newTestRepo())

	if _, err := svc.Status(context.Background(), otherUser, owner.UserID, testMonday); !errors.Is(err, ErrForbidden) {
		t.Errorf("Status() for another user error = %v, want ErrForbidden", err)
	}
}

func TestWeekService_ListPendingReview(t *testing.T) {
	repo := newTestRepo()
	svc := newWeekService(repo)
	ctx := context.Background()

	repo.User.(*mockUserRepo).users[owner.UserID] = &model.User{UserID: owner.UserID, Name: "Alice"}

	if _, err := svc.Confirm(ctx, owner, testMonday); err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	if _, err := svc.Confirm(ctx, otherUser, testMonday.AddDays(-7)); err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}

	if _, _, err := svc.ListPendingReview(ctx, owner, &dto.PaginationRequest{}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("ListPendingReview() by non-admin error = %v, want ErrForbidden", err)
	}

	list, total, err := svc.ListPendingReview(ctx, admin, &dto.PaginationRequest{})
	if err != nil {
		t.Fatalf("ListPendingReview() error = %v", err)
	}
	if total != 2 || len(list) != 2 {
		t.Fatalf("ListPendingReview() total = %d, len = %d, want 2 and 2", total, len(list))
	}
	// Oldest week first.
	if !list[0].WeekStart.Equal(testMonday.AddDays(-7)) {
		t.Errorf("first pending week = %s, want %s", list[0].WeekStart, testMonday.AddDays(-7))
	}

	if _, err := svc.Approve(ctx, admin, owner.UserID, testMonday, ""); err != nil {
		t.Fatalf("Approve() error = %v", err)
	}
	_, total, _ = svc.ListPendingReview(ctx, admin, &dto.PaginationRequest{})
	if total != 1 {
		t.Errorf("after approval total = %d, want 1", total)
	}
}
