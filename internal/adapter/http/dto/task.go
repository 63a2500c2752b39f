package dto

type TaskItem struct {
	ID             int64    `json:"id"`
	ProjectID      int64    `json:"project_id"`
	Title          string   `json:"title"`
	Description    *string  `json:"description,omitempty"`
	Priority       string   `json:"priority"`
	Status         string   `json:"status"`
	DueDate        *string  `json:"due_date,omitempty"`
	AssigneeID     *int64   `json:"assignee_id,omitempty"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      *string  `json:"updated_at,omitempty"`
}

type OverdueTaskItem struct {
	ProjectID   int64    `json:"project_id"`
	ProjectName string   `json:"project_name"`
	Task        TaskItem `json:"task"`
}

// TaskPayload holds the editable task fields shared by create and update.
type TaskPayload struct {
	Title          string   `json:"title" binding:"required"`
	Description    *string  `json:"description"`
	Priority       *string  `json:"priority" binding:"omitempty,oneof=low medium high critical"`
	DueDate        *string  `json:"due_date"`
	EstimatedHours *float64 `json:"estimated_hours" binding:"omitempty,gt=0"`
}

type CreateTaskRequest struct {
	TaskPayload
	AssigneeID *int64 `json:"assignee_id" binding:"omitempty,gt=0"`
}

type UpdateTaskRequest struct {
	TaskPayload
}

type AssignTaskRequest struct {
	AssigneeID int64 `json:"assignee_id" binding:"required,gt=0"`
}

type ChangeTaskStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=todo in_progress done cancelled"`
}
