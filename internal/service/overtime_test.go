package service

import (
	"testing"

	"github.com/Rich-Bam/Time-2026-sub001/internal/model"
)

func entry(date model.Date, workType int, hours float64) model.TimesheetEntry {
	h := hours
	return model.TimesheetEntry{EntryDate: date, WorkType: workType, Hours: &h}
}

func TestCalculateOvertime(t *testing.T) {
	monday := model.NewDate(2025, 3, 10)
	saturday := monday.AddDays(5)
	sunday := monday.AddDays(6)

	tests := []struct {
		name    string
		entries []model.TimesheetEntry
		want    OvertimeBuckets
	}{
		{
			name:    "empty week",
			entries: nil,
			want:    OvertimeBuckets{},
		},
		{
			name: "weekday within regular hours",
			entries: []model.TimesheetEntry{
				entry(monday, model.WorkTypeRegular, 8),
			},
			want: OvertimeBuckets{},
		},
		{
			name: "weekday eleven hours splits buckets",
			entries: []model.TimesheetEntry{
				entry(monday, model.WorkTypeRegular, 11),
			},
			want: OvertimeBuckets{Overtime: 3, Bucket125: 2, Bucket150: 1},
		},
		{
			name: "weekday nine hours only first bucket",
			entries: []model.TimesheetEntry{
				entry(monday, model.WorkTypeRegular, 9),
			},
			want: OvertimeBuckets{Overtime: 1, Bucket125: 1},
		},
		{
			name: "saturday counts from the first hour",
			entries: []model.TimesheetEntry{
				entry(saturday, model.WorkTypeRegular, 4),
			},
			want: OvertimeBuckets{Overtime: 4, Bucket150: 4},
		},
		{
			name: "sunday counts double from the first hour",
			entries: []model.TimesheetEntry{
				entry(sunday, model.WorkTypeRegular, 5),
			},
			want: OvertimeBuckets{Overtime: 5, Bucket200: 5},
		},
		{
			name: "leave hours never produce overtime",
			entries: []model.TimesheetEntry{
				entry(monday, model.WorkTypeVacation, 12),
				entry(sunday, model.WorkTypeSick, 8),
			},
			want: OvertimeBuckets{},
		},
		{
			name: "multiple entries on one day accumulate",
			entries: []model.TimesheetEntry{
				entry(monday, model.WorkTypeRegular, 6),
				entry(monday, model.WorkTypeCommute, 5),
			},
			want: OvertimeBuckets{Overtime: 3, Bucket125: 2, Bucket150: 1},
		},
		{
			name: "standby counts as worked time",
			entries: []model.TimesheetEntry{
				entry(saturday, model.WorkTypeStandby, 2),
			},
			want: OvertimeBuckets{Overtime: 2, Bucket150: 2},
		},
		{
			name: "mixed week",
			entries: []model.TimesheetEntry{
				entry(monday, model.WorkTypeRegular, 10),
				entry(monday.AddDays(1), model.WorkTypeRegular, 8),
				entry(saturday, model.WorkTypeRegular, 3),
				entry(sunday, model.WorkTypeRegular, 2),
			},
			want: OvertimeBuckets{Overtime: 7, Bucket125: 2, Bucket150: 3, Bucket200: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateOvertime(tt.entries)
			if got != tt.want {
				t.Errorf("CalculateOvertime() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCalculateOvertime_DerivedHours(t *testing.T) {
	monday := model.NewDate(2025, 3, 10)
	start, end := "08:00", "18:30"
	e := model.TimesheetEntry{
		EntryDate: monday,
		WorkType:  model.WorkTypeRegular,
		StartTime: &start,
		EndTime:   &end,
	}

	got := CalculateOvertime([]model.TimesheetEntry{e})
	want := OvertimeBuckets{Overtime: 2.5, Bucket125: 2, Bucket150: 0.5}
	if got != want {
		t.Errorf("CalculateOvertime() = %+v, want %+v", got, want)
	}
}
