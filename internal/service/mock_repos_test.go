package service

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/Rich-Bam/Time-2026-sub001/internal/model"
	"github.com/Rich-Bam/Time-2026-sub001/internal/repository"
)

// In-memory repository fakes. The aggregate is built without a database, so
// Repository.Transaction runs callbacks directly against these fakes.

func newTestRepo() *repository.Repository {
	return &repository.Repository{
		User:          &mockUserRepo{users: map[string]*model.User{}},
		Project:       &mockProjectRepo{projects: map[string]*model.Project{}},
		Timesheet:     &mockTimesheetRepo{entries: map[string]*model.TimesheetEntry{}},
		OvernightStay: &mockOvernightRepo{stays: map[string]*model.OvernightStay{}},
		ConfirmedWeek: &mockConfirmedWeekRepo{weeks: map[string]*model.ConfirmedWeek{}},
		SharedEntry:   &mockSharedEntryRepo{shares: map[string]*model.SharedEntry{}},
		Notification:  &mockNotificationRepo{},
	}
}

// ── users ──

type mockUserRepo struct {
	users map[string]*model.User
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = fmt.Sprintf("user-%d", len(m.users)+1)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) List(_ context.Context, offset, limit int) ([]model.User, int64, error) {
	ids := make([]string, 0, len(m.users))
	for id := range m.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var list []model.User
	for _, id := range ids {
		list = append(list, *m.users[id])
	}
	total := int64(len(list))
	if offset > len(list) {
		return nil, total, nil
	}
	list = list[offset:]
	if limit < len(list) {
		list = list[:limit]
	}
	return list, total, nil
}

// ── projects ──

type mockProjectRepo struct {
	projects map[string]*model.Project
}

func (m *mockProjectRepo) Create(_ context.Context, project *model.Project) error {
	if project.ProjectID == "" {
		project.ProjectID = fmt.Sprintf("project-%d", len(m.projects)+1)
	}
	m.projects[project.ProjectID] = project
	return nil
}

func (m *mockProjectRepo) GetByID(_ context.Context, id string) (*model.Project, error) {
	if p, ok := m.projects[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProjectRepo) List(_ context.Context, activeOnly bool) ([]model.Project, error) {
	var list []model.Project
	for _, p := range m.projects {
		if activeOnly && !p.IsActive {
			continue
		}
		list = append(list, *p)
	}
	return list, nil
}

func (m *mockProjectRepo) Update(_ context.Context, project *model.Project) error {
	m.projects[project.ProjectID] = project
	return nil
}

func (m *mockProjectRepo) Delete(_ context.Context, id string) error {
	delete(m.projects, id)
	return nil
}

// ── timesheet entries ──

type mockTimesheetRepo struct {
	entries map[string]*model.TimesheetEntry
	seq     int
}

func (m *mockTimesheetRepo) Create(_ context.Context, entry *model.TimesheetEntry) error {
	if entry.EntryID == "" {
		m.seq++
		entry.EntryID = fmt.Sprintf("entry-%d", m.seq)
	}
	copied := *entry
	m.entries[entry.EntryID] = &copied
	return nil
}

func (m *mockTimesheetRepo) BatchCreate(ctx context.Context, entries []model.TimesheetEntry) error {
	for i := range entries {
		if err := m.Create(ctx, &entries[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockTimesheetRepo) GetByID(_ context.Context, id string) (*model.TimesheetEntry, error) {
	if e, ok := m.entries[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimesheetRepo) Update(_ context.Context, entry *model.TimesheetEntry) error {
	copied := *entry
	m.entries[entry.EntryID] = &copied
	return nil
}

func (m *mockTimesheetRepo) Delete(_ context.Context, id string) error {
	delete(m.entries, id)
	return nil
}

func (m *mockTimesheetRepo) ListByUserAndDate(_ context.Context, userID string, date model.Date) ([]model.TimesheetEntry, error) {
	var list []model.TimesheetEntry
	for _, e := range m.sorted() {
		if e.UserID == userID && e.EntryDate.Equal(date) {
			list = append(list, e)
		}
	}
	return list, nil
}

func (m *mockTimesheetRepo) ListByUserAndRange(_ context.Context, userID string, from, to model.Date) ([]model.TimesheetEntry, error) {
	var list []model.TimesheetEntry
	for _, e := range m.sorted() {
		if e.UserID == userID && !e.EntryDate.Before(from) && !e.EntryDate.After(to) {
			list = append(list, e)
		}
	}
	return list, nil
}

func (m *mockTimesheetRepo) ListByIDs(_ context.Context, ids []string) ([]model.TimesheetEntry, error) {
	var list []model.TimesheetEntry
	for _, id := range ids {
		if e, ok := m.entries[id]; ok {
			list = append(list, *e)
		}
	}
	return list, nil
}

func (m *mockTimesheetRepo) CountByUserAndRange(ctx context.Context, userID string, from, to model.Date) (int64, error) {
	list, _ := m.ListByUserAndRange(ctx, userID, from, to)
	return int64(len(list)), nil
}

func (m *mockTimesheetRepo) DeleteByUserAndRange(ctx context.Context, userID string, from, to model.Date) error {
	list, _ := m.ListByUserAndRange(ctx, userID, from, to)
	for _, e := range list {
		delete(m.entries, e.EntryID)
	}
	return nil
}

func (m *mockTimesheetRepo) sorted() []model.TimesheetEntry {
	ids := make([]string, 0, len(m.entries))
	for id := range m.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	list := make([]model.TimesheetEntry, 0, len(ids))
	for _, id := range ids {
		list = append(list, *m.entries[id])
	}
	return list
}

// ── overnight stays ──

type mockOvernightRepo struct {
	stays map[string]*model.OvernightStay
}

func stayKey(userID string, date model.Date) string {
	return userID + "|" + date.String()
}

func (m *mockOvernightRepo) Upsert(_ context.Context, stay *model.OvernightStay) error {
	copied := *stay
	m.stays[stayKey(stay.UserID, stay.StayDate)] = &copied
	return nil
}

func (m *mockOvernightRepo) Get(_ context.Context, userID string, date model.Date) (*model.OvernightStay, error) {
	if st, ok := m.stays[stayKey(userID, date)]; ok {
		copied := *st
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOvernightRepo) Delete(_ context.Context, userID string, date model.Date) error {
	delete(m.stays, stayKey(userID, date))
	return nil
}

func (m *mockOvernightRepo) ListByUserAndRange(_ context.Context, userID string, from, to model.Date) ([]model.OvernightStay, error) {
	var list []model.OvernightStay
	for _, st := range m.stays {
		if st.UserID == userID && !st.StayDate.Before(from) && !st.StayDate.After(to) {
			list = append(list, *st)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].StayDate.Before(list[j].StayDate) })
	return list, nil
}

// ── confirmed weeks ──

type mockConfirmedWeekRepo struct {
	weeks map[string]*model.ConfirmedWeek
}

func weekKey(userID string, weekStart model.Date) string {
	return userID + "|" + weekStart.String()
}

func (m *mockConfirmedWeekRepo) Get(_ context.Context, userID string, weekStart model.Date) (*model.ConfirmedWeek, error) {
	if w, ok := m.weeks[weekKey(userID, weekStart)]; ok {
		copied := *w
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockConfirmedWeekRepo) Upsert(_ context.Context, week *model.ConfirmedWeek) error {
	copied := *week
	m.weeks[weekKey(week.UserID, week.WeekStart)] = &copied
	return nil
}

func (m *mockConfirmedWeekRepo) ListPendingReview(_ context.Context, offset, limit int) ([]model.ConfirmedWeek, int64, error) {
	var list []model.ConfirmedWeek
	for _, w := range m.weeks {
		if w.Confirmed && !w.AdminApproved {
			list = append(list, *w)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].WeekStart.Before(list[j].WeekStart) })
	total := int64(len(list))
	if offset > len(list) {
		return nil, total, nil
	}
	list = list[offset:]
	if limit < len(list) {
		list = list[:limit]
	}
	return list, total, nil
}

func (m *mockConfirmedWeekRepo) ListByUser(_ context.Context, userID string, from, to model.Date) ([]model.ConfirmedWeek, error) {
	var list []model.ConfirmedWeek
	for _, w := range m.weeks {
		if w.UserID == userID && !w.WeekStart.Before(from) && !w.WeekStart.After(to) {
			list = append(list, *w)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].WeekStart.Before(list[j].WeekStart) })
	return list, nil
}

// ── shared entries ──

type mockSharedEntryRepo struct {
	shares map[string]*model.SharedEntry
	seq    int
}

func (m *mockSharedEntryRepo) CreateWithItems(_ context.Context, share *model.SharedEntry, items []model.SharedEntryItem) error {
	// The partial unique index allows one pending share per tuple.
	for _, s := range m.shares {
		if s.Status == model.ShareStatusPending &&
			s.SharerID == share.SharerID &&
			s.RecipientID == share.RecipientID &&
			s.ShareType == share.ShareType &&
			s.ShareDate.Equal(share.ShareDate) {
			return gorm.ErrDuplicatedKey
		}
	}
	if share.SharedEntryID == "" {
		m.seq++
		share.SharedEntryID = fmt.Sprintf("share-%d", m.seq)
	}
	for i := range items {
		items[i].SharedEntryID = share.SharedEntryID
	}
	share.Items = items
	copied := *share
	m.shares[share.SharedEntryID] = &copied
	return nil
}

func (m *mockSharedEntryRepo) GetByID(_ context.Context, id string) (*model.SharedEntry, error) {
	if s, ok := m.shares[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSharedEntryRepo) GetPending(_ context.Context, sharerID, recipientID, shareType string, shareDate model.Date) (*model.SharedEntry, error) {
	for _, s := range m.shares {
		if s.Status == model.ShareStatusPending &&
			s.SharerID == sharerID &&
			s.RecipientID == recipientID &&
			s.ShareType == shareType &&
			s.ShareDate.Equal(shareDate) {
			copied := *s
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSharedEntryRepo) Update(_ context.Context, share *model.SharedEntry) error {
	copied := *share
	m.shares[share.SharedEntryID] = &copied
	return nil
}

func (m *mockSharedEntryRepo) ListByRecipient(_ context.Context, recipientID, status string) ([]model.SharedEntry, error) {
	var list []model.SharedEntry
	for _, s := range m.shares {
		if s.RecipientID == recipientID && (status == "" || s.Status == status) {
			list = append(list, *s)
		}
	}
	return list, nil
}

func (m *mockSharedEntryRepo) ListBySharer(_ context.Context, sharerID, status string) ([]model.SharedEntry, error) {
	var list []model.SharedEntry
	for _, s := range m.shares {
		if s.SharerID == sharerID && (status == "" || s.Status == status) {
			list = append(list, *s)
		}
	}
	return list, nil
}

// ── notifications ──

type mockNotificationRepo struct {
	list []model.Notification
	seq  int
}

func (m *mockNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	if n.NotificationID == "" {
		m.seq++
		n.NotificationID = fmt.Sprintf("notification-%d", m.seq)
	}
	m.list = append(m.list, *n)
	return nil
}

func (m *mockNotificationRepo) ListByUser(_ context.Context, userID string, unreadOnly bool, offset, limit int) ([]model.Notification, int64, error) {
	var list []model.Notification
	for _, n := range m.list {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		list = append(list, n)
	}
	total := int64(len(list))
	if offset > len(list) {
		return nil, total, nil
	}
	list = list[offset:]
	if limit < len(list) {
		list = list[:limit]
	}
	return list, total, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, id, userID string) error {
	for i := range m.list {
		if m.list[i].NotificationID == id && m.list[i].UserID == userID {
			m.list[i].IsRead = true
		}
	}
	return nil
}

func (m *mockNotificationRepo) MarkAllRead(_ context.Context, userID string) error {
	for i := range m.list {
		if m.list[i].UserID == userID {
			m.list[i].IsRead = true
		}
	}
	return nil
}
