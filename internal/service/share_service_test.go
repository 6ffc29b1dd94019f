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
	alice = Actor{UserID: "alice", Role: model.RoleUser}
	bob   = Actor{UserID: "bob", Role: model.RoleUser}
)

func newShareService(repo *repository.Repository) ShareService {
	return NewShareService(repo, zap.NewNop())
}

func seedUsers(t *testing.T, repo *repository.Repository) {
	t.Helper()
	users := repo.User.(*mockUserRepo).users
	users[alice.UserID] = &model.User{UserID: alice.UserID, Name: "Alice", Email: "alice@example.com"}
	users[bob.UserID] = &model.User{UserID: bob.UserID, Name: "Bob", Email: "bob@example.com"}
}

func seedEntry(t *testing.T, repo *repository.Repository, userID string, date model.Date, hours float64) *model.TimesheetEntry {
	t.Helper()
	e := &model.TimesheetEntry{
		UserID:    userID,
		EntryDate: date,
		WorkType:  model.WorkTypeRegular,
		Hours:     f64(hours),
	}
	if err := repo.Timesheet.Create(context.Background(), e); err != nil {
		t.Fatalf("seed entry: %v", err)
	}
	return e
}

func dayShare(date model.Date) *dto.CreateShareRequest {
	return &dto.CreateShareRequest{
		RecipientID: bob.UserID,
		ShareType:   model.ShareTypeDay,
		Date:        date,
	}
}

func TestShareService_CreateDayShare(t *testing.T) {
	repo := newTestRepo()
	svc := newShareService(repo)
	ctx := context.Background()

	seedUsers(t, repo)
	e1 := seedEntry(t, repo, alice.UserID, testMonday, 8)
	e2 := seedEntry(t, repo, alice.UserID, testMonday, 2)

	result, err := svc.Create(ctx, alice, dayShare(testMonday))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(result.Shares) != 1 {
		t.Fatalf("Shares = %d, want 1", len(result.Shares))
	}

	share := result.Shares[0]
	if share.Status != model.ShareStatusPending {
		t.Errorf("Status = %q, want pending", share.Status)
	}
	if len(share.Items) != 2 {
		t.Fatalf("Items = %d, want 2", len(share.Items))
	}
	got := map[string]bool{share.Items[0].EntryID: true, share.Items[1].EntryID: true}
	if !got[e1.EntryID] || !got[e2.EntryID] {
		t.Errorf("snapshot items = %+v, want entry ids %s and %s", share.Items, e1.EntryID, e2.EntryID)
	}

	// The recipient hears about it.
	notifications := repo.Notification.(*mockNotificationRepo).list
	if len(notifications) != 1 || notifications[0].UserID != bob.UserID {
		t.Errorf("notifications = %+v, want one share_received for bob", notifications)
	}
}

func TestShareService_CreateRejections(t *testing.T) {
	repo := newTestRepo()
	svc := newShareService(repo)
	ctx := context.Background()
	seedUsers(t, repo)

	tests := []struct {
		name    string
		req     *dto.CreateShareRequest
		wantErr error
	}{
		{
			name: "share with yourself",
			req: &dto.CreateShareRequest{
				RecipientID: alice.UserID,
				ShareType:   model.ShareTypeDay,
				Date:        testMonday,
			},
			wantErr: ErrShareWithSelf,
		},
		{
			name: "unknown recipient",
			req: &dto.CreateShareRequest{
				RecipientID: "ghost",
				ShareType:   model.ShareTypeDay,
				Date:        testMonday,
			},
			wantErr: ErrRecipientNotFound,
		},
		{
			name:    "future week",
			req:     dayShare(model.Today().AddDays(8)),
			wantErr: ErrFutureDate,
		},
		{
			name:    "day with nothing to share",
			req:     dayShare(testMonday),
			wantErr: ErrNoEntries,
		},
		{
			name: "week share day outside anchor week",
			req: &dto.CreateShareRequest{
				RecipientID: bob.UserID,
				ShareType:   model.ShareTypeWeek,
				Date:        testMonday,
				Days:        []model.Date{testMonday.AddDays(9)},
			},
			wantErr: ErrDayOutsideWeek,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, alice, tt.req); !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestShareService_CreateDuplicatePending(t *testing.T) {
	repo := newTestRepo()
	svc := newShareService(repo)
	ctx := context.Background()

	seedUsers(t, repo)
	seedEntry(t, repo, alice.UserID, testMonday, 8)

	if _, err := svc.Create(ctx, alice, dayShare(testMonday)); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := svc.Create(ctx, alice, dayShare(testMonday)); !errors.Is(err, ErrAlreadyShared) {
		t.Errorf("duplicate Create() error = %v, want ErrAlreadyShared", err)
	}
}

func TestShareService_CreateOvernightOnly(t *testing.T) {
	repo := newTestRepo()
	svc := newShareService(repo)
	ctx := context.Background()

	seedUsers(t, repo)
	stay := &model.OvernightStay{UserID: alice.UserID, StayDate: model.NewDate(2025, 3, 10)}
	if err := repo.OvernightStay.Upsert(ctx, stay); err != nil {
		t.Fatalf("seed stay: %v", err)
	}

	result, err := svc.Create(ctx, alice, dayShare(model.NewDate(2025, 3, 10)))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(result.Shares) != 1 {
		t.Fatalf("Shares = %d, want 1", len(result.Shares))
	}
	if len(result.Shares[0].Items) != 0 {
		t.Errorf("overnight-only share has %d items, want 0", len(result.Shares[0].Items))
	}

	// Accepting copies the stay, not entries.
	accepted, err := svc.Accept(ctx, bob, result.Shares[0].SharedEntryID, false)
	if err != nil {
		t.Fatalf("Accept() error = %v", err)
	}
	if !accepted.OvernightOnly || accepted.CopiedEntries != 0 {
		t.Errorf("Accept() = %+v, want overnight-only with zero copies", accepted)
	}
	if _, err := repo.OvernightStay.Get(ctx, bob.UserID, model.NewDate(2025, 3, 10)); err != nil {
		t.Errorf("recipient overnight stay not recorded: %v", err)
	}
}

func TestShareService_CreateWeekShareSkipsDays(t *testing.T) {
	repo := newTestRepo()
	svc := newShareService(repo)
	ctx := context.Background()

	seedUsers(t, repo)
	seedEntry(t, repo, alice.UserID, testMonday, 8)
	stay := &model.OvernightStay{UserID: alice.UserID, StayDate: testMonday.AddDays(1)}
	if err := repo.OvernightStay.Upsert(ctx, stay); err != nil {
		t.Fatalf("seed stay: %v", err)
	}
	// Wednesday has neither entries nor a stay.

	req := &dto.CreateShareRequest{
		RecipientID: bob.UserID,
		ShareType:   model.ShareTypeWeek,
		Date:        testMonday,
		Days:        []model.Date{testMonday, testMonday.AddDays(1), testMonday.AddDays(2)},
	}
	result, err := svc.Create(ctx, alice, req)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(result.Shares) != 2 {
		t.Errorf("Shares = %d, want 2 (entries day + overnight-only day)", len(result.Shares))
	}
	if len(result.SkippedDays) != 1 || !result.SkippedDays[0].Equal(testMonday.AddDays(2)) {
		t.Errorf("SkippedDays = %v, want just Wednesday", result.SkippedDays)
	}

	// Re-sharing the same selection: every qualifying day is already
	// pending, so nothing is created.
	if _, err := svc.Create(ctx, alice, req); !errors.Is(err, ErrAlreadyShared) {
		t.Errorf("repeat Create() error = %v, want ErrAlreadyShared", err)
	}
}

func TestShareService_AcceptOverwriteConfirmation(t *testing.T) {
	repo := newTestRepo()
	svc := newShareService(repo)
	ctx := context.Background()

	seedUsers(t, repo)
	seedEntry(t, repo, alice.UserID, testMonday, 8)
	existing := seedEntry(t, repo, bob.UserID, testMonday, 3)

	result, err := svc.Create(ctx, alice, dayShare(testMonday))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	shareID := result.Shares[0].SharedEntryID

	// Without confirmation the accept suspends and nothing changes.
	if _, err := svc.Accept(ctx, bob, shareID, false); !errors.Is(err, ErrConfirmRequired) {
		t.Fatalf("Accept() error = %v, want ErrConfirmRequired", err)
	}
	share, _ := repo.SharedEntry.GetByID(ctx, shareID)
	if share.Status != model.ShareStatusPending {
		t.Fatalf("share status = %q after suspended accept, want pending", share.Status)
	}
	if _, err := repo.Timesheet.GetByID(ctx, existing.EntryID); err != nil {
		t.Fatalf("recipient entry touched by suspended accept: %v", err)
	}

	// Confirmed accept replaces the recipient's day.
	accepted, err := svc.Accept(ctx, bob, shareID, true)
	if err != nil {
		t.Fatalf("Accept() with confirmation error = %v", err)
	}
	if accepted.CopiedEntries != 1 {
		t.Errorf("CopiedEntries = %d, want 1", accepted.CopiedEntries)
	}
	if _, err := repo.Timesheet.GetByID(ctx, existing.EntryID); err == nil {
		t.Error("recipient's old entry survived the overwrite")
	}

	entries, _ := repo.Timesheet.ListByUserAndDate(ctx, bob.UserID, testMonday)
	if len(entries) != 1 || entries[0].EffectiveHours() != 8 {
		t.Errorf("recipient entries = %+v, want one 8h copy", entries)
	}
	share, _ = repo.SharedEntry.GetByID(ctx, shareID)
	if share.Status != model.ShareStatusAccepted || share.AcceptedAt == nil {
		t.Errorf("share status = %q accepted_at = %v, want accepted with timestamp", share.Status, share.AcceptedAt)
	}

	// A resolved share cannot be accepted again.
	if _, err := svc.Accept(ctx, bob, shareID, true); !errors.Is(err, ErrShareResolved) {
		t.Errorf("second Accept() error = %v, want ErrShareResolved", err)
	}
}

func TestShareService_AcceptCleanTarget(t *testing.T) {
	repo := newTestRepo()
	svc := newShareService(repo)
	ctx := context.Background()

	seedUsers(t, repo)
	seedEntry(t, repo, alice.UserID, testMonday, 8)

	result, err := svc.Create(ctx, alice, dayShare(testMonday))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// No existing entries: no confirmation needed.
	if _, err := svc.Accept(ctx, bob, result.Shares[0].SharedEntryID, false); err != nil {
		t.Fatalf("Accept() error = %v", err)
	}
	entries, _ := repo.Timesheet.ListByUserAndDate(ctx, bob.UserID, testMonday)
	if len(entries) != 1 {
		t.Errorf("recipient entries = %d, want 1", len(entries))
	}
}

func TestShareService_AcceptValuesResolvedAtAcceptTime(t *testing.T) {
	repo := newTestRepo()
	svc := newShareService(repo)
	ctx := context.Background()

	seedUsers(t, repo)
	e := seedEntry(t, repo, alice.UserID, testMonday, 8)

	result, err := svc.Create(ctx, alice, dayShare(testMonday))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// The sharer edits after sharing; the snapshot is by reference.
	e.Hours = f64(6)
	if err := repo.Timesheet.Update(ctx, e); err != nil {
		t.Fatalf("update entry: %v", err)
	}

	if _, err := svc.Accept(ctx, bob, result.Shares[0].SharedEntryID, false); err != nil {
		t.Fatalf("Accept() error = %v", err)
	}
	entries, _ := repo.Timesheet.ListByUserAndDate(ctx, bob.UserID, testMonday)
	if len(entries) != 1 || entries[0].EffectiveHours() != 6 {
		t.Errorf("recipient copy = %+v, want the sharer's current 6h value", entries)
	}
}

func TestShareService_AcceptOriginalsDeleted(t *testing.T) {
	repo := newTestRepo()
	svc := newShareService(repo)
	ctx := context.Background()

	seedUsers(t, repo)
	e := seedEntry(t, repo, alice.UserID, testMonday, 8)

	result, err := svc.Create(ctx, alice, dayShare(testMonday))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.Timesheet.Delete(ctx, e.EntryID); err != nil {
		t.Fatalf("delete entry: %v", err)
	}

	shareID := result.Shares[0].SharedEntryID
	if _, err := svc.Accept(ctx, bob, shareID, false); !errors.Is(err, ErrOriginalsNotFound) {
		t.Fatalf("Accept() error = %v, want ErrOriginalsNotFound", err)
	}

	// The share stays pending so the recipient can decline it.
	share, _ := repo.SharedEntry.GetByID(ctx, shareID)
	if share.Status != model.ShareStatusPending {
		t.Errorf("share status = %q, want pending", share.Status)
	}
	if err := svc.Decline(ctx, bob, shareID); err != nil {
		t.Errorf("Decline() error = %v", err)
	}
}

func TestShareService_AcceptWrongRecipient(t *testing.T) {
	repo := newTestRepo()
	svc := newShareService(repo)
	ctx := context.Background()

	seedUsers(t, repo)
	seedEntry(t, repo, alice.UserID, testMonday, 8)

	result, err := svc.Create(ctx, alice, dayShare(testMonday))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := svc.Accept(ctx, alice, result.Shares[0].SharedEntryID, false); !errors.Is(err, ErrNotShareRecipient) {
		t.Errorf("Accept() by sharer error = %v, want ErrNotShareRecipient", err)
	}
}

func TestShareService_Decline(t *testing.T) {
	repo := newTestRepo()
	svc := newShareService(repo)
	ctx := context.Background()

	seedUsers(t, repo)
	seedEntry(t, repo, alice.UserID, testMonday, 8)

	result, err := svc.Create(ctx, alice, dayShare(testMonday))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	shareID := result.Shares[0].SharedEntryID

	if err := svc.Decline(ctx, bob, shareID); err != nil {
		t.Fatalf("Decline() error = %v", err)
	}
	share, _ := repo.SharedEntry.GetByID(ctx, shareID)
	if share.Status != model.ShareStatusDeclined {
		t.Errorf("share status = %q, want declined", share.Status)
	}
	if err := svc.Decline(ctx, bob, shareID); !errors.Is(err, ErrShareResolved) {
		t.Errorf("second Decline() error = %v, want ErrShareResolved", err)
	}

	// Declining never touches the recipient's timesheet.
	entries, _ := repo.Timesheet.ListByUserAndDate(ctx, bob.UserID, testMonday)
	if len(entries) != 0 {
		t.Errorf("recipient entries = %d, want 0", len(entries))
	}

	// After declining, the same day can be shared again.
	if _, err := svc.Create(ctx, alice, dayShare(testMonday)); err != nil {
		t.Errorf("Create() after decline error = %v", err)
	}
}

func TestShareService_Preview(t *testing.T) {
	repo := newTestRepo()
	svc := newShareService(repo)
	ctx := context.Background()

	seedUsers(t, repo)
	e1 := seedEntry(t, repo, alice.UserID, testMonday, 8)
	e2 := seedEntry(t, repo, alice.UserID, testMonday, 2)

	result, err := svc.Create(ctx, alice, dayShare(testMonday))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	shareID := result.Shares[0].SharedEntryID

	preview, err := svc.Preview(ctx, bob, shareID)
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}
	if len(preview.Entries) != 2 {
		t.Fatalf("preview entries = %d, want 2", len(preview.Entries))
	}

	// Deleted entries drop out of the preview without an error.
	if err := repo.Timesheet.Delete(ctx, e1.EntryID); err != nil {
		t.Fatalf("delete entry: %v", err)
	}
	preview, err = svc.Preview(ctx, bob, shareID)
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}
	if len(preview.Entries) != 1 || preview.Entries[0].EntryID != e2.EntryID {
		t.Errorf("preview entries = %+v, want only %s", preview.Entries, e2.EntryID)
	}

	// Outsiders cannot look at the share.
	outsider := Actor{UserID: "carol", Role: model.RoleUser}
	if _, err := svc.Preview(ctx, outsider, shareID); !errors.Is(err, ErrNotShareRecipient) {
		t.Errorf("Preview() by outsider error = %v, want ErrNotShareRecipient", err)
	}
}

func TestShareService_WeekShareAcceptReplacesWholeWeek(t *testing.T) {
	repo := newTestRepo()
	svc := newShareService(repo)
	ctx := context.Background()

	seedUsers(t, repo)
	seedEntry(t, repo, alice.UserID, testMonday, 8)
	bobFriday := seedEntry(t, repo, bob.UserID, testMonday.AddDays(4), 5)

	req := &dto.CreateShareRequest{
		RecipientID: bob.UserID,
		ShareType:   model.ShareTypeWeek,
		Date:        testMonday,
		Days:        []model.Date{testMonday},
	}
	result, err := svc.Create(ctx, alice, req)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// The target range of a week share is the full Monday..Sunday week, so
	// bob's Friday entry triggers the confirmation and then gets replaced.
	shareID := result.Shares[0].SharedEntryID
	if _, err := svc.Accept(ctx, bob, shareID, false); !errors.Is(err, ErrConfirmRequired) {
		t.Fatalf("Accept() error = %v, want ErrConfirmRequired", err)
	}
	if _, err := svc.Accept(ctx, bob, shareID, true); err != nil {
		t.Fatalf("Accept() error = %v", err)
	}

	if _, err := repo.Timesheet.GetByID(ctx, bobFriday.EntryID); err == nil {
		t.Error("recipient's Friday entry survived a week-share accept")
	}
	entries, _ := repo.Timesheet.ListByUserAndRange(ctx, bob.UserID, testMonday, testMonday.WeekEnd())
	if len(entries) != 1 || !entries[0].EntryDate.Equal(testMonday) {
		t.Errorf("recipient week = %+v, want only the copied Monday entry", entries)
	}
}
