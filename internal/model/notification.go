package model

// Notification types.
const (
	NotificationWeekApproved  = "week_approved"
	NotificationWeekReopened  = "week_reopened"
	NotificationShareReceived = "share_received"
	NotificationShareAccepted = "share_accepted"
	NotificationShareDeclined = "share_declined"
)

// Notification — notifications table.
type Notification struct {
	NotificationID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	UserID         string  `gorm:"type:uuid;not null;index"                       json:"user_id"`
	Type           string  `gorm:"type:varchar(50);not null"                      json:"type"`
	Title          string  `gorm:"type:varchar(200);not null"                     json:"title"`
	Content        string  `gorm:"type:text;not null"                             json:"content"`
	IsRead         bool    `gorm:"not null;default:false"                         json:"is_read"`
	RelatedType    *string `gorm:"type:varchar(20)"                               json:"related_type,omitempty"` // confirmed_week | shared_entry
	RelatedID      *string `gorm:"type:uuid"                                      json:"related_id,omitempty"`
	BaseModel
}

// TableName sets the table name.
func (Notification) TableName() string { return "notifications" }
