package model

// OvernightStay — overnight_stays table. A per-day boolean fact "user stayed
// overnight on date", unique per (user, date).
type OvernightStay struct {
	UserID   string `gorm:"type:uuid;primaryKey"             json:"user_id"`
	StayDate Date   `gorm:"type:date;primaryKey;column:stay_date" json:"date"`
	BaseModel
}

// TableName sets the table name.
func (OvernightStay) TableName() string { return "overnight_stays" }
