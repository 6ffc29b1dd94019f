package model

// Project — projects table.
type Project struct {
	ProjectID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"project_id"`
	Name      string `gorm:"type:varchar(200);not null"                     json:"name"`
	IsActive  bool   `gorm:"not null;default:true"                          json:"is_active"`
	SoftDeleteModel
}

// TableName sets the table name.
func (Project) TableName() string { return "projects" }
