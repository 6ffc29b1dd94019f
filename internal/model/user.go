package model

// Role values for users.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"

	// UserTypeSuperAdmin marks the organization owner; treated as admin.
	UserTypeSuperAdmin = "super_admin"
)

// User — users table.
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'user'"       json:"role"` // admin | user
	UserType     string `gorm:"type:varchar(50);not null;default:''"           json:"user_type,omitempty"`
	SoftDeleteModel
}

// TableName sets the table name.
func (User) TableName() string { return "users" }

// IsAdmin reports whether the user has administrator privileges.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.UserType == UserTypeSuperAdmin
}
