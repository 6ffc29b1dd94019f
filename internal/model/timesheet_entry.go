package model

// TimesheetEntry — timesheet table. One logged work interval.
//
// Hours may be null when start/end times are present; a project is advisory
// for worked time and not required for leave categories (not enforced by
// storage).
type TimesheetEntry struct {
	EntryID     string   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"entry_id"`
	UserID      string   `gorm:"type:uuid;not null;index:idx_timesheet_user_date" json:"user_id"`
	EntryDate   Date     `gorm:"type:date;not null;index:idx_timesheet_user_date" json:"date"`
	ProjectID   *string  `gorm:"type:uuid"                                      json:"project_id,omitempty"`
	WorkType    int      `gorm:"not null;default:10"                            json:"work_type"`
	Hours       *float64 `gorm:"type:numeric(5,2)"                              json:"hours,omitempty"`
	StartTime   *string  `gorm:"type:varchar(5)"                                json:"start_time,omitempty"` // "HH:MM"
	EndTime     *string  `gorm:"type:varchar(5)"                                json:"end_time,omitempty"`
	Description string   `gorm:"type:varchar(500);not null;default:''"          json:"description,omitempty"`
	Overnight   bool     `gorm:"not null;default:false"                         json:"overnight"`
	BaseModel

	Project *Project `gorm:"foreignKey:ProjectID;references:ProjectID" json:"project,omitempty"`
}

// TableName sets the table name.
func (TimesheetEntry) TableName() string { return "timesheet" }

// EffectiveHours returns the entry's duration in hours. Explicit hours win;
// otherwise the duration derives from start/end times, crossing midnight
// when end precedes start.
func (e *TimesheetEntry) EffectiveHours() float64 {
	if e.Hours != nil {
		return *e.Hours
	}
	if e.StartTime == nil || e.EndTime == nil {
		return 0
	}
	start, okS := ParseClockMinutes(*e.StartTime)
	end, okE := ParseClockMinutes(*e.EndTime)
	if !okS || !okE {
		return 0
	}
	minutes := end - start
	if minutes < 0 {
		minutes += 24 * 60
	}
	return float64(minutes) / 60
}

// ParseClockMinutes parses "HH:MM" into minutes since midnight.
func ParseClockMinutes(s string) (int, bool) {
	if len(s) != 5 || s[2] != ':' {
		return 0, false
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' ||
		s[3] < '0' || s[3] > '9' || s[4] < '0' || s[4] > '9' ||
		h > 23 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// CopyTo returns a copy of the entry owned by another user, as produced when
// a share is accepted. The database assigns a fresh id.
func (e *TimesheetEntry) CopyTo(userID string) TimesheetEntry {
	return TimesheetEntry{
		UserID:      userID,
		EntryDate:   e.EntryDate,
		ProjectID:   e.ProjectID,
		WorkType:    e.WorkType,
		Hours:       e.Hours,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Description: e.Description,
		Overnight:   e.Overnight,
	}
}
