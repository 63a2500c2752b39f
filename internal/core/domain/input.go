package domain

type CreateProjectInput struct {
	Name        string
	Description *string
	OwnerID     int64
}

type UpdateProjectInput struct {
	Name        string
	Description *string
}

type CreateTaskInput struct {
	ProjectID  int64
	Details    TaskDetails
	AssigneeID *int64
}

type CreateTeamInput struct {
	Name        string
	Description *string
	LeaderID    int64
}

// OverdueTask pairs an overdue task with the project that owns it.
type OverdueTask struct {
	ProjectID   int64
	ProjectName string
	Task        TaskItem
}
