package service

import (
	"math"
	"time"

	"github.com/Rich-Bam/Time-2026-sub001/internal/model"
)

// OvertimeBuckets is the weekly overtime breakdown by compensation rate.
type OvertimeBuckets struct {
	Overtime  float64 // sum of the three buckets
	Bucket125 float64 // weekday hours 9 and 10
	Bucket150 float64 // weekday hours beyond 10, all Saturday hours
	Bucket200 float64 // all Sunday hours
}

const regularWeekdayHours = 8.0

// CalculateOvertime classifies one week of entries into overtime buckets.
//
// Only worked-time entries count; leave types never produce overtime.
// Saturday and Sunday hours are overtime from the first hour, weekdays
// only beyond eight hours per day. All results round to two decimals.
func CalculateOvertime(entries []model.TimesheetEntry) OvertimeBuckets {
	perDay := make(map[string]float64)
	weekdays := make(map[string]time.Weekday)
	for _, e := range entries {
		if !model.IsWorkedTime(e.WorkType) {
			continue
		}
		key := e.EntryDate.String()
		perDay[key] += e.EffectiveHours()
		weekdays[key] = e.EntryDate.Weekday()
	}

	var b OvertimeBuckets
	for day, hours := range perDay {
		switch weekdays[day] {
		case time.Sunday:
			b.Bucket200 += hours
		case time.Saturday:
			b.Bucket150 += hours
		default:
			over := hours - regularWeekdayHours
			if over <= 0 {
				continue
			}
			b.Bucket125 += math.Min(over, 2)
			if over > 2 {
				b.Bucket150 += over - 2
			}
		}
	}

	b.Bucket125 = round2(b.Bucket125)
	b.Bucket150 = round2(b.Bucket150)
	b.Bucket200 = round2(b.Bucket200)
	b.Overtime = round2(b.Bucket125 + b.Bucket150 + b.Bucket200)
	return b
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
