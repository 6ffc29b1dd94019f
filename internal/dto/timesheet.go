package dto

import "github.com/Rich-Bam/Time-2026-sub001/internal/model"

// CreateEntryRequest is the entry form.
// UserID is optional; administrators may log hours on behalf of a user.
type CreateEntryRequest struct {
	UserID      string     `json:"user_id"     binding:"omitempty,uuid"`
	Date        model.Date `json:"date"        binding:"required"`
	ProjectID   *string    `json:"project_id"  binding:"omitempty,uuid"`
	WorkType    int        `json:"work_type"   binding:"required,min=1,max=199"`
	Hours       *float64   `json:"hours"       binding:"omitempty,gt=0,lte=24"`
	StartTime   *string    `json:"start_time"  binding:"omitempty,len=5"`
	EndTime     *string    `json:"end_time"    binding:"omitempty,len=5"`
	Description string     `json:"description" binding:"omitempty,max=500"`
	Overnight   bool       `json:"overnight"`
}

// UpdateEntryRequest is the partial entry update form.
type UpdateEntryRequest struct {
	ProjectID   *string  `json:"project_id"  binding:"omitempty,uuid"`
	WorkType    *int     `json:"work_type"   binding:"omitempty,min=1,max=199"`
	Hours       *float64 `json:"hours"       binding:"omitempty,gt=0,lte=24"`
	StartTime   *string  `json:"start_time"  binding:"omitempty,len=5"`
	EndTime     *string  `json:"end_time"    binding:"omitempty,len=5"`
	Description *string  `json:"description" binding:"omitempty,max=500"`
	Overnight   *bool    `json:"overnight"`
}

// SetOvernightStayRequest records or clears the per-day overnight fact.
type SetOvernightStayRequest struct {
	UserID string     `json:"user_id" binding:"omitempty,uuid"`
	Date   model.Date `json:"date"    binding:"required"`
	Stayed bool       `json:"stayed"`
}

// WeekDayView is one calendar day inside a week view.
type WeekDayView struct {
	Date      model.Date             `json:"date"`
	Entries   []model.TimesheetEntry `json:"entries"`
	Overnight bool                   `json:"overnight"`
	Hours     float64                `json:"hours"`
}

// WeekViewResponse is the full week of one user's timesheet.
type WeekViewResponse struct {
	UserID     string          `json:"user_id"`
	WeekStart  model.Date      `json:"week_start"`
	Locked     bool            `json:"locked"`
	Confirmed  bool            `json:"confirmed"`
	Approved   bool            `json:"admin_approved"`
	Days       []WeekDayView   `json:"days"` // Monday..Sunday
	TotalHours float64         `json:"total_hours"`
	Overtime   OvertimeSummary `json:"overtime"`
}

// OvertimeSummary is the weekly overtime bucket breakdown.
type OvertimeSummary struct {
	Overtime       float64 `json:"overtime"`
	Bucket125      float64 `json:"bucket_125"`
	Bucket150      float64 `json:"bucket_150"`
	Bucket200      float64 `json:"bucket_200"`
	OvernightStays int     `json:"overnight_stays"`
}
