package ports

import (
	"context"
	"time"

	"taskhub/internal/core/domain"
)

type ProjectService interface {
	CreateProject(ctx context.Context, input domain.CreateProjectInput) (*domain.Project, error)
	UpdateProject(ctx context.Context, projectID int64, input domain.UpdateProjectInput) (*domain.Project, error)
	ArchiveProject(ctx context.Context, projectID int64) (*domain.Project, error)
	GetProject(ctx context.Context, projectID int64) (*domain.Project, error)
	ListProjects(ctx context.Context) ([]*domain.Project, error)
	ListProjectsByOwner(ctx context.Context, ownerID int64) ([]*domain.Project, error)

	CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.TaskItem, error)
	UpdateTask(ctx context.Context, projectID, taskID int64, details domain.TaskDetails) (domain.TaskItem, error)
	AssignTask(ctx context.Context, projectID, taskID, assigneeID int64) (domain.TaskItem, error)
	ChangeTaskStatus(ctx context.Context, projectID, taskID int64, status domain.TaskStatus) (domain.TaskItem, error)
	CompleteTask(ctx context.Context, projectID, taskID int64) (domain.TaskItem, error)
	GetTask(ctx context.Context, projectID, taskID int64) (domain.TaskItem, error)
	ListTasks(ctx context.Context, projectID int64) ([]domain.TaskItem, error)
	ListTasksByAssignee(ctx context.Context, assigneeID int64) ([]domain.TaskItem, error)
	ListOverdueTasks(ctx context.Context, at time.Time) ([]domain.OverdueTask, error)
}

type TeamService interface {
	CreateTeam(ctx context.Context, input domain.CreateTeamInput) (*domain.Team, error)
	AddMember(ctx context.Context, teamID, userID int64, role domain.TeamRole) (domain.TeamMember, error)
	RemoveMember(ctx context.Context, teamID, userID int64, newLeaderID *int64) error
	ChangeLeader(ctx context.Context, teamID, newLeaderID int64) (*domain.Team, error)
	ChangeMemberRole(ctx context.Context, teamID, actorUserID, targetUserID int64, role domain.TeamRole) (*domain.Team, error)
	GetTeam(ctx context.Context, teamID int64) (*domain.Team, error)
	ListTeams(ctx context.Context) ([]*domain.Team, error)
	ListTeamsByLeader(ctx context.Context, leaderID int64) ([]*domain.Team, error)
}
