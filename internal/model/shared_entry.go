package model

import "time"

// Share types.
const (
	ShareTypeDay  = "day"
	ShareTypeWeek = "week"
)

// Share statuses. Pending is the only non-terminal state.
const (
	ShareStatusPending  = "pending"
	ShareStatusAccepted = "accepted"
	ShareStatusDeclined = "declined"
)

// SharedEntry — shared_entries table. One sharing transaction from a sharer
// to a recipient for one day (or one day of a week share).
//
// Items snapshot which entries existed at share time, by identifier only;
// values are resolved at accept time.
type SharedEntry struct {
	SharedEntryID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"shared_entry_id"`
	SharerID      string     `gorm:"type:uuid;not null"                             json:"sharer_id"`
	RecipientID   string     `gorm:"type:uuid;not null;index"                       json:"recipient_id"`
	ShareType     string     `gorm:"type:varchar(10);not null"                      json:"share_type"` // day | week
	ShareDate     Date       `gorm:"type:date;not null"                             json:"share_date"`
	Status        string     `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	Message       string     `gorm:"type:varchar(500);not null;default:''"          json:"message,omitempty"`
	CreatedAt     time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	AcceptedAt    *time.Time `json:"accepted_at,omitempty"`

	Sharer    *User             `gorm:"foreignKey:SharerID;references:UserID"    json:"sharer,omitempty"`
	Recipient *User             `gorm:"foreignKey:RecipientID;references:UserID" json:"recipient,omitempty"`
	Items     []SharedEntryItem `gorm:"foreignKey:SharedEntryID;references:SharedEntryID" json:"items,omitempty"`
}

// TableName sets the table name.
func (SharedEntry) TableName() string { return "shared_entries" }

// IsResolved reports whether the share reached a terminal status.
func (s *SharedEntry) IsResolved() bool {
	return s.Status != ShareStatusPending
}

// SharedEntryItem — shared_entry_items table. References one timesheet entry
// captured at share-creation time.
type SharedEntryItem struct {
	ItemID        string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"item_id"`
	SharedEntryID string `gorm:"type:uuid;not null;index"                       json:"shared_entry_id"`
	EntryID       string `gorm:"type:uuid;not null"                             json:"entry_id"`
}

// TableName sets the table name.
func (SharedEntryItem) TableName() string { return "shared_entry_items" }
