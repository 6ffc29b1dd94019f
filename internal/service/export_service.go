package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Rich-Bam/Time-2026-sub001/config"
	"github.com/Rich-Bam/Time-2026-sub001/internal/model"
	"github.com/Rich-Bam/Time-2026-sub001/internal/repository"
)

// Export errors.
var ErrEmptyExport = fmt.Errorf("no entries in the selected range")

// ExportService renders timesheet data as Excel workbooks and iCalendar feeds.
type ExportService interface {
	// ExportExcel renders one user's entries over a date range. Admins may
	// export any user, others only themselves.
	ExportExcel(ctx context.Context, actor Actor, userID string, from, to model.Date) (*bytes.Buffer, string, error)
	// CalendarFeed renders the user's entries and overnight stays as an
	// iCalendar document.
	CalendarFeed(ctx context.Context, actor Actor, userID string, from, to model.Date) (string, error)
}

type exportService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates an ExportService.
func NewExportService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{cfg: cfg, repo: repo, logger: logger}
}

var excelHeader = []string{"Date", "Project", "Work type", "Hours", "Start", "End", "Description", "Overnight"}

func (s *exportService) ExportExcel(ctx context.Context, actor Actor, userID string, from, to model.Date) (*bytes.Buffer, string, error) {
	ownerID, err := resolveOwner(actor, userID)
	if err != nil {
		return nil, "", err
	}

	entries, err := s.repo.Timesheet.ListByUserAndRange(ctx, ownerID, from, to)
	if err != nil {
		return nil, "", fmt.Errorf("list entries: %w", err)
	}
	if len(entries) == 0 {
		return nil, "", ErrEmptyExport
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Timesheet"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, "", fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return nil, "", fmt.Errorf("create style: %w", err)
	}

	for i, h := range excelHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, "", fmt.Errorf("write header: %w", err)
		}
	}
	if err := f.SetCellStyle(sheet, "A1", "H1", headerStyle); err != nil {
		return nil, "", fmt.Errorf("style header: %w", err)
	}

	var total float64
	for i, e := range entries {
		row := i + 2
		project := ""
		if e.Project != nil {
			project = e.Project.Name
		}
		hours := e.EffectiveHours()
		total += hours

		values := []interface{}{
			e.EntryDate.String(),
			project,
			e.WorkType,
			hours,
			deref(e.StartTime),
			deref(e.EndTime),
			e.Description,
			e.Overnight,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, "", fmt.Errorf("write row %d: %w", row, err)
			}
		}
	}

	totalRow := len(entries) + 3
	cellLabel, _ := excelize.CoordinatesToCellName(3, totalRow)
	cellValue, _ := excelize.CoordinatesToCellName(4, totalRow)
	_ = f.SetCellValue(sheet, cellLabel, "Total")
	_ = f.SetCellValue(sheet, cellValue, round2(total))

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("render workbook: %w", err)
	}

	filename := fmt.Sprintf("timesheet_%s_%s.xlsx", from, to)
	s.logger.Info("excel export rendered",
		zap.String("user_id", ownerID),
		zap.Int("entries", len(entries)))
	return buf, filename, nil
}

func (s *exportService) CalendarFeed(ctx context.Context, actor Actor, userID string, from, to model.Date) (string, error) {
	ownerID, err := resolveOwner(actor, userID)
	if err != nil {
		return "", err
	}

	entries, err := s.repo.Timesheet.ListByUserAndRange(ctx, ownerID, from, to)
	if err != nil {
		return "", fmt.Errorf("list entries: %w", err)
	}
	stays, err := s.repo.OvernightStay.ListByUserAndRange(ctx, ownerID, from, to)
	if err != nil {
		return "", fmt.Errorf("list overnight stays: %w", err)
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//timesheet//EN")

	for _, e := range entries {
		event := cal.AddEvent(fmt.Sprintf("entry-%s@timesheet", e.EntryID))
		event.SetCreatedTime(e.CreatedAt)
		event.SetDtStampTime(e.CreatedAt)
		event.SetSummary(entrySummary(&e))
		if e.Description != "" {
			event.SetDescription(e.Description)
		}
		if start, end, ok := entryTimes(&e); ok {
			event.SetStartAt(start)
			event.SetEndAt(end)
		} else {
			event.SetAllDayStartAt(e.EntryDate.Time)
			event.SetAllDayEndAt(e.EntryDate.AddDays(1).Time)
		}
	}

	for _, st := range stays {
		event := cal.AddEvent(fmt.Sprintf("stay-%s-%s@timesheet", st.UserID, st.StayDate))
		event.SetCreatedTime(st.CreatedAt)
		event.SetDtStampTime(st.CreatedAt)
		event.SetSummary("Overnight stay")
		event.SetAllDayStartAt(st.StayDate.Time)
		event.SetAllDayEndAt(st.StayDate.AddDays(1).Time)
	}

	return cal.Serialize(), nil
}

func entrySummary(e *model.TimesheetEntry) string {
	if e.Project != nil {
		return fmt.Sprintf("%s (%.2fh)", e.Project.Name, e.EffectiveHours())
	}
	if model.IsLeaveType(e.WorkType) {
		return fmt.Sprintf("Leave (%.2fh)", e.EffectiveHours())
	}
	return fmt.Sprintf("Worked %.2fh", e.EffectiveHours())
}

// entryTimes converts an entry's clock times into concrete timestamps on the
// entry date. Overnight end times roll into the next day.
func entryTimes(e *model.TimesheetEntry) (start, end time.Time, ok bool) {
	if e.StartTime == nil || e.EndTime == nil {
		return time.Time{}, time.Time{}, false
	}
	startMin, okS := model.ParseClockMinutes(*e.StartTime)
	endMin, okE := model.ParseClockMinutes(*e.EndTime)
	if !okS || !okE {
		return time.Time{}, time.Time{}, false
	}
	day := e.EntryDate.Time
	start = day.Add(time.Duration(startMin) * time.Minute)
	end = day.Add(time.Duration(endMin) * time.Minute)
	if !end.After(start) {
		end = end.Add(24 * time.Hour)
	}
	return start, end, true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
