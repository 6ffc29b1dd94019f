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

// Timesheet errors.
var (
	ErrEntryNotFound   = errors.New("timesheet entry not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrInvalidDuration = errors.New("entry needs hours or a start and end time")
)

// TimesheetService manages timesheet entries and overnight stays.
// Every mutation consults the weekly lock first.
type TimesheetService interface {
	AddEntry(ctx context.Context, actor Actor, req *dto.CreateEntryRequest) (*model.TimesheetEntry, error)
	UpdateEntry(ctx context.Context, actor Actor, entryID string, req *dto.UpdateEntryRequest) (*model.TimesheetEntry, error)
	DeleteEntry(ctx context.Context, actor Actor, entryID string) error
	// GetWeek assembles the Monday..Sunday view of one user's week.
	GetWeek(ctx context.Context, actor Actor, userID string, anyDay model.Date) (*dto.WeekViewResponse, error)
	SetOvernightStay(ctx context.Context, actor Actor, req *dto.SetOvernightStayRequest) error
	// OvertimeSummary computes the weekly overtime buckets.
	OvertimeSummary(ctx context.Context, actor Actor, userID string, anyDay model.Date) (*dto.OvertimeSummary, error)
}

type timesheetService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTimesheetService creates a TimesheetService.
func NewTimesheetService(repo *repository.Repository, logger *zap.Logger) TimesheetService {
	return &timesheetService{repo: repo, logger: logger}
}

// resolveOwner decides whose timesheet an operation targets. Only admins may
// act on another user's data.
func resolveOwner(actor Actor, requested string) (string, error) {
	if requested == "" || requested == actor.UserID {
		return actor.UserID, nil
	}
	if !actor.IsAdmin() {
		return "", ErrForbidden
	}
	return requested, nil
}

// ensureEditable rejects mutations in a confirmed week unless the actor is
// an administrator.
func (s *timesheetService) ensureEditable(ctx context.Context, ownerID string, day model.Date, actor Actor) error {
	if actor.IsAdmin() {
		return nil
	}
	locked, err := weekLocked(ctx, s.repo, ownerID, day, false)
	if err != nil {
		return err
	}
	if locked {
		return ErrWeekLocked
	}
	return nil
}

func (s *timesheetService) AddEntry(ctx context.Context, actor Actor, req *dto.CreateEntryRequest) (*model.TimesheetEntry, error) {
	ownerID, err := resolveOwner(actor, req.UserID)
	if err != nil {
		return nil, err
	}
	if req.Hours == nil && (req.StartTime == nil || req.EndTime == nil) {
		return nil, ErrInvalidDuration
	}
	if err := s.ensureEditable(ctx, ownerID, req.Date, actor); err != nil {
		return nil, err
	}
	if req.ProjectID != nil {
		if _, err := s.repo.Project.GetByID(ctx, *req.ProjectID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProjectNotFound
			}
			return nil, fmt.Errorf("load project: %w", err)
		}
	}

	entry := &model.TimesheetEntry{
		UserID:      ownerID,
		EntryDate:   req.Date,
		ProjectID:   req.ProjectID,
		WorkType:    req.WorkType,
		Hours:       req.Hours,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Description: req.Description,
		Overnight:   req.Overnight,
	}
	if err := s.repo.Timesheet.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}

	// An entry flagged overnight also records the per-day overnight fact.
	if req.Overnight {
		stay := &model.OvernightStay{UserID: ownerID, StayDate: req.Date}
		if err := s.repo.OvernightStay.Upsert(ctx, stay); err != nil {
			s.logger.Warn("overnight stay upsert failed",
				zap.String("user_id", ownerID),
				zap.String("date", req.Date.String()),
				zap.Error(err))
		}
	}
	return entry, nil
}

func (s *timesheetService) UpdateEntry(ctx context.Context, actor Actor, entryID string, req *dto.UpdateEntryRequest) (*model.TimesheetEntry, error) {
	entry, err := s.loadOwnedEntry(ctx, actor, entryID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureEditable(ctx, entry.UserID, entry.EntryDate, actor); err != nil {
		return nil, err
	}

	if req.ProjectID != nil {
		if _, err := s.repo.Project.GetByID(ctx, *req.ProjectID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProjectNotFound
			}
			return nil, fmt.Errorf("load project: %w", err)
		}
		entry.ProjectID = req.ProjectID
	}
	if req.WorkType != nil {
		entry.WorkType = *req.WorkType
	}
	if req.Hours != nil {
		entry.Hours = req.Hours
	}
	if req.StartTime != nil {
		entry.StartTime = req.StartTime
	}
	if req.EndTime != nil {
		entry.EndTime = req.EndTime
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.Overnight != nil {
		entry.Overnight = *req.Overnight
	}
	if entry.Hours == nil && (entry.StartTime == nil || entry.EndTime == nil) {
		return nil, ErrInvalidDuration
	}

	if err := s.repo.Timesheet.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("update entry: %w", err)
	}
	return entry, nil
}

func (s *timesheetService) DeleteEntry(ctx context.Context, actor Actor, entryID string) error {
	entry, err := s.loadOwnedEntry(ctx, actor, entryID)
	if err != nil {
		return err
	}
	if err := s.ensureEditable(ctx, entry.UserID, entry.EntryDate, actor); err != nil {
		return err
	}
	if err := s.repo.Timesheet.Delete(ctx, entryID); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

func (s *timesheetService) GetWeek(ctx context.Context, actor Actor, userID string, anyDay model.Date) (*dto.WeekViewResponse, error) {
	ownerID, err := resolveOwner(actor, userID)
	if err != nil {
		return nil, err
	}

	weekStart := anyDay.WeekStart()
	weekEnd := anyDay.WeekEnd()

	entries, err := s.repo.Timesheet.ListByUserAndRange(ctx, ownerID, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	stays, err := s.repo.OvernightStay.ListByUserAndRange(ctx, ownerID, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("list overnight stays: %w", err)
	}

	resp := &dto.WeekViewResponse{
		UserID:    ownerID,
		WeekStart: weekStart,
		Days:      make([]dto.WeekDayView, 7),
	}

	week, err := s.repo.ConfirmedWeek.Get(ctx, ownerID, weekStart)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load week lock: %w", err)
	}
	if week != nil {
		resp.Confirmed = week.Confirmed
		resp.Approved = week.AdminApproved
		resp.Locked = week.LockedFor(actor.IsAdmin())
	}

	stayDays := make(map[string]bool, len(stays))
	for _, st := range stays {
		stayDays[st.StayDate.String()] = true
	}

	for i := 0; i < 7; i++ {
		day := weekStart.AddDays(i)
		view := dto.WeekDayView{
			Date:      day,
			Entries:   []model.TimesheetEntry{},
			Overnight: stayDays[day.String()],
		}
		for _, e := range entries {
			if e.EntryDate.Equal(day) {
				view.Entries = append(view.Entries, e)
				view.Hours += e.EffectiveHours()
			}
		}
		view.Hours = round2(view.Hours)
		resp.TotalHours += view.Hours
		resp.Days[i] = view
	}
	resp.TotalHours = round2(resp.TotalHours)

	buckets := CalculateOvertime(entries)
	resp.Overtime = dto.OvertimeSummary{
		Overtime:       buckets.Overtime,
		Bucket125:      buckets.Bucket125,
		Bucket150:      buckets.Bucket150,
		Bucket200:      buckets.Bucket200,
		OvernightStays: len(stays),
	}
	return resp, nil
}

func (s *timesheetService) SetOvernightStay(ctx context.Context, actor Actor, req *dto.SetOvernightStayRequest) error {
	ownerID, err := resolveOwner(actor, req.UserID)
	if err != nil {
		return err
	}
	if err := s.ensureEditable(ctx, ownerID, req.Date, actor); err != nil {
		return err
	}

	if !req.Stayed {
		if err := s.repo.OvernightStay.Delete(ctx, ownerID, req.Date); err != nil {
			return fmt.Errorf("clear overnight stay: %w", err)
		}
		return nil
	}
	stay := &model.OvernightStay{UserID: ownerID, StayDate: req.Date}
	if err := s.repo.OvernightStay.Upsert(ctx, stay); err != nil {
		return fmt.Errorf("record overnight stay: %w", err)
	}
	return nil
}

func (s *timesheetService) OvertimeSummary(ctx context.Context, actor Actor, userID string, anyDay model.Date) (*dto.OvertimeSummary, error) {
	ownerID, err := resolveOwner(actor, userID)
	if err != nil {
		return nil, err
	}

	weekStart := anyDay.WeekStart()
	entries, err := s.repo.Timesheet.ListByUserAndRange(ctx, ownerID, weekStart, anyDay.WeekEnd())
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	stays, err := s.repo.OvernightStay.ListByUserAndRange(ctx, ownerID, weekStart, anyDay.WeekEnd())
	if err != nil {
		return nil, fmt.Errorf("list overnight stays: %w", err)
	}

	buckets := CalculateOvertime(entries)
	return &dto.OvertimeSummary{
		Overtime:       buckets.Overtime,
		Bucket125:      buckets.Bucket125,
		Bucket150:      buckets.Bucket150,
		Bucket200:      buckets.Bucket200,
		OvernightStays: len(stays),
	}, nil
}

// loadOwnedEntry fetches an entry and enforces ownership for non-admins.
func (s *timesheetService) loadOwnedEntry(ctx context.Context, actor Actor, entryID string) (*model.TimesheetEntry, error) {
	entry, err := s.repo.Timesheet.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("load entry: %w", err)
	}
	if entry.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	return entry, nil
}
