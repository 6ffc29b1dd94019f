package dto

// CreateProjectRequest is the project form.
type CreateProjectRequest struct {
	Name string `json:"name" binding:"required,min=2,max=200"`
}

// UpdateProjectRequest is the partial project update form.
type UpdateProjectRequest struct {
	Name     *string `json:"name"      binding:"omitempty,min=2,max=200"`
	IsActive *bool   `json:"is_active"`
}
