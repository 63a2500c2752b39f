package dto

type ProjectItem struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	OwnerID     int64      `json:"owner_id"`
	Status      string     `json:"status"`
	Version     int64      `json:"version"`
	CreatedAt   string     `json:"created_at"`
	UpdatedAt   *string    `json:"updated_at,omitempty"`
	Tasks       []TaskItem `json:"tasks"`
}

type CreateProjectRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	OwnerID     int64   `json:"owner_id" binding:"required,gt=0"`
}

type UpdateProjectRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}
