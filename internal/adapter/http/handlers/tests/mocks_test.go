package tests

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"taskhub/internal/core/domain"
)

type projectServiceMock struct {
	mock.Mock
}

func (m *projectServiceMock) project(args mock.Arguments) (*domain.Project, error) {
	var project *domain.Project
	if value := args.Get(0); value != nil {
		project = value.(*domain.Project)
	}
	return project, args.Error(1)
}

func (m *projectServiceMock) projects(args mock.Arguments) ([]*domain.Project, error) {
	var projects []*domain.Project
	if value := args.Get(0); value != nil {
		projects = value.([]*domain.Project)
	}
	return projects, args.Error(1)
}

func (m *projectServiceMock) task(args mock.Arguments) (domain.TaskItem, error) {
	var task domain.TaskItem
	if value := args.Get(0); value != nil {
		task = value.(domain.TaskItem)
	}
	return task, args.Error(1)
}

func (m *projectServiceMock) tasks(args mock.Arguments) ([]domain.TaskItem, error) {
	var tasks []domain.TaskItem
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.TaskItem)
	}
	return tasks, args.Error(1)
}

func (m *projectServiceMock) CreateProject(ctx context.Context, input domain.CreateProjectInput) (*domain.Project, error) {
	return m.project(m.Called(ctx, input))
}

func (m *projectServiceMock) UpdateProject(ctx context.Context, projectID int64, input domain.UpdateProjectInput) (*domain.Project, error) {
	return m.project(m.Called(ctx, projectID, input))
}

func (m *projectServiceMock) ArchiveProject(ctx context.Context, projectID int64) (*domain.Project, error) {
	return m.project(m.Called(ctx, projectID))
}

func (m *projectServiceMock) GetProject(ctx context.Context, projectID int64) (*domain.Project, error) {
	return m.project(m.Called(ctx, projectID))
}

func (m *projectServiceMock) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	return m.projects(m.Called(ctx))
}

func (m *projectServiceMock) ListProjectsByOwner(ctx context.Context, ownerID int64) ([]*domain.Project, error) {
	return m.projects(m.Called(ctx, ownerID))
}

func (m *projectServiceMock) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.TaskItem, error) {
	return m.task(m.Called(ctx, input))
}

func (m *projectServiceMock) UpdateTask(ctx context.Context, projectID, taskID int64, details domain.TaskDetails) (domain.TaskItem, error) {
	return m.task(m.Called(ctx, projectID, taskID, details))
}

func (m *projectServiceMock) AssignTask(ctx context.Context, projectID, taskID, assigneeID int64) (domain.TaskItem, error) {
	return m.task(m.Called(ctx, projectID, taskID, assigneeID))
}

func (m *projectServiceMock) ChangeTaskStatus(ctx context.Context, projectID, taskID int64, status domain.TaskStatus) (domain.TaskItem, error) {
	return m.task(m.Called(ctx, projectID, taskID, status))
}

func (m *projectServiceMock) CompleteTask(ctx context.Context, projectID, taskID int64) (domain.TaskItem, error) {
	return m.task(m.Called(ctx, projectID, taskID))
}

func (m *projectServiceMock) GetTask(ctx context.Context, projectID, taskID int64) (domain.TaskItem, error) {
	return m.task(m.Called(ctx, projectID, taskID))
}

func (m *projectServiceMock) ListTasks(ctx context.Context, projectID int64) ([]domain.TaskItem, error) {
	return m.tasks(m.Called(ctx, projectID))
}

func (m *projectServiceMock) ListTasksByAssignee(ctx context.Context, assigneeID int64) ([]domain.TaskItem, error) {
	return m.tasks(m.Called(ctx, assigneeID))
}

func (m *projectServiceMock) ListOverdueTasks(ctx context.Context, at time.Time) ([]domain.OverdueTask, error) {
	args := m.Called(ctx, at)
	var overdue []domain.OverdueTask
	if value := args.Get(0); value != nil {
		overdue = value.([]domain.OverdueTask)
	}
	return overdue, args.Error(1)
}

type teamServiceMock struct {
	mock.Mock
}

func (m *teamServiceMock) team(args mock.Arguments) (*domain.Team, error) {
	var team *domain.Team
	if value := args.Get(0); value != nil {
		team = value.(*domain.Team)
	}
	return team, args.Error(1)
}

func (m *teamServiceMock) teams(args mock.Arguments) ([]*domain.Team, error) {
	var teams []*domain.Team
	if value := args.Get(0); value != nil {
		teams = value.([]*domain.Team)
	}
	return teams, args.Error(1)
}

func (m *teamServiceMock) CreateTeam(ctx context.Context, input domain.CreateTeamInput) (*domain.Team, error) {
	return m.team(m.Called(ctx, input))
}

func (m *teamServiceMock) AddMember(ctx context.Context, teamID, userID int64, role domain.TeamRole) (domain.TeamMember, error) {
	args := m.Called(ctx, teamID, userID, role)
	var member domain.TeamMember
	if value := args.Get(0); value != nil {
		member = value.(domain.TeamMember)
	}
	return member, args.Error(1)
}

func (m *teamServiceMock) RemoveMember(ctx context.Context, teamID, userID int64, newLeaderID *int64) error {
	return m.Called(ctx, teamID, userID, newLeaderID).Error(0)
}

func (m *teamServiceMock) ChangeLeader(ctx context.Context, teamID, newLeaderID int64) (*domain.Team, error) {
	return m.team(m.Called(ctx, teamID, newLeaderID))
}

func (m *teamServiceMock) ChangeMemberRole(ctx context.Context, teamID, actorUserID, targetUserID int64, role domain.TeamRole) (*domain.Team, error) {
	return m.team(m.Called(ctx, teamID, actorUserID, targetUserID, role))
}

func (m *teamServiceMock) GetTeam(ctx context.Context, teamID int64) (*domain.Team, error) {
	return m.team(m.Called(ctx, teamID))
}

func (m *teamServiceMock) ListTeams(ctx context.Context) ([]*domain.Team, error) {
	return m.teams(m.Called(ctx))
}

func (m *teamServiceMock) ListTeamsByLeader(ctx context.Context, leaderID int64) ([]*domain.Team, error) {
	return m.teams(m.Called(ctx, leaderID))
}
