package dto

import "github.com/Rich-Bam/Time-2026-sub001/internal/model"

// ConfirmWeekRequest locks a week. Any date within the week is accepted;
// the service normalizes to the ISO Monday.
type ConfirmWeekRequest struct {
	WeekStart model.Date `json:"week_start" binding:"required"`
}

// ReviewWeekRequest is the admin approve/reopen form.
type ReviewWeekRequest struct {
	UserID    string     `json:"user_id"    binding:"required,uuid"`
	WeekStart model.Date `json:"week_start" binding:"required"`
	Comment   string     `json:"comment"    binding:"omitempty,max=500"`
}

// WeekStatusResponse reports the lock state of one (user, week).
type WeekStatusResponse struct {
	UserID        string     `json:"user_id"`
	WeekStart     model.Date `json:"week_start"`
	Confirmed     bool       `json:"confirmed"`
	AdminApproved bool       `json:"admin_approved"`
	AdminReviewed bool       `json:"admin_reviewed"`
	Locked        bool       `json:"locked"`
}

// PendingWeekResponse is one row of the admin review queue.
type PendingWeekResponse struct {
	UserID    string     `json:"user_id"`
	UserName  string     `json:"user_name,omitempty"`
	WeekStart model.Date `json:"week_start"`
	Confirmed bool       `json:"confirmed"`
}
