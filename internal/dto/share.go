package dto

import "github.com/Rich-Bam/Time-2026-sub001/internal/model"

// CreateShareRequest starts a sharing transaction.
//
// For week shares, Days is the explicit subset of days within the anchor
// week to share; days are never selected implicitly.
type CreateShareRequest struct {
	RecipientID string       `json:"recipient_id" binding:"required,uuid"`
	ShareType   string       `json:"share_type"   binding:"required,oneof=day week"`
	Date        model.Date   `json:"date"         binding:"required"`
	Days        []model.Date `json:"days"         binding:"omitempty,max=7"`
	Message     string       `json:"message"      binding:"omitempty,max=500"`
}

// CreateShareResult reports what a create call produced.
type CreateShareResult struct {
	Shares      []model.SharedEntry `json:"shares"`
	SkippedDays []model.Date        `json:"skipped_days,omitempty"` // already pending or nothing to share
}

// AcceptShareRequest resolves a pending share.
// ConfirmOverwrite must be true to replace the recipient's existing entries
// in the target range.
type AcceptShareRequest struct {
	ConfirmOverwrite bool `json:"confirm_overwrite"`
}

// SharePreviewResponse resolves a share's snapshot to current entries.
type SharePreviewResponse struct {
	Share   *model.SharedEntry     `json:"share"`
	Entries []model.TimesheetEntry `json:"entries"`
}

// AcceptShareResult reports what an accept call copied.
type AcceptShareResult struct {
	Share         *model.SharedEntry `json:"share"`
	CopiedEntries int                `json:"copied_entries"`
	OvernightOnly bool               `json:"overnight_only"`
}
