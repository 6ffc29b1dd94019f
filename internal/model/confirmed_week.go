package model

// ConfirmedWeek — confirmed_weeks table. Lock state for one (user, ISO week).
//
// A missing row means the week is open. The owner locks the week by
// confirming it; only an administrator moves it on to approved or back to
// open.
type ConfirmedWeek struct {
	UserID        string `gorm:"type:uuid;primaryKey"  json:"user_id"`
	WeekStart     Date   `gorm:"type:date;primaryKey"  json:"week_start"` // Monday
	Confirmed     bool   `gorm:"not null;default:false" json:"confirmed"`
	AdminApproved bool   `gorm:"not null;default:false" json:"admin_approved"`
	AdminReviewed bool   `gorm:"not null;default:false" json:"admin_reviewed"`
	BaseModel

	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName sets the table name.
func (ConfirmedWeek) TableName() string { return "confirmed_weeks" }

// LockedFor reports whether the week is visibly locked for an actor.
// Admins see a confirmed week as unlocked once they have approved it.
func (w *ConfirmedWeek) LockedFor(actorIsAdmin bool) bool {
	if !w.Confirmed {
		return false
	}
	return !actorIsAdmin || !w.AdminApproved
}
