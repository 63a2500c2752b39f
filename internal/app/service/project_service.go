package service

import (
	"context"
	"sort"
	"time"

	"taskhub/internal/core/domain"
	"taskhub/internal/core/ports"
)

type ProjectService struct {
	tx            *Transactor
	newUnitOfWork ports.UnitOfWorkFactory
}

var _ ports.ProjectService = (*ProjectService)(nil)

func NewProjectService(tx *Transactor, factory ports.UnitOfWorkFactory) *ProjectService {
	return &ProjectService{tx: tx, newUnitOfWork: factory}
}

func (s *ProjectService) CreateProject(ctx context.Context, input domain.CreateProjectInput) (*domain.Project, error) {
	var project *domain.Project
	err := s.tx.InTransaction(ctx, func(ctx context.Context, work ports.UnitOfWork) error {
		p, err := domain.NewProject(input.Name, input.Description, input.OwnerID)
		if err != nil {
			return err
		}
		if err := work.Projects().Add(ctx, p); err != nil {
			return err
		}
		project = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) UpdateProject(ctx context.Context, projectID int64, input domain.UpdateProjectInput) (*domain.Project, error) {
	return s.mutateProject(ctx, projectID, func(p *domain.Project) error {
		return p.UpdateDetails(input.Name, input.Description)
	})
}

func (s *ProjectService) ArchiveProject(ctx context.Context, projectID int64) (*domain.Project, error) {
	return s.mutateProject(ctx, projectID, (*domain.Project).Archive)
}

func (s *ProjectService) GetProject(ctx context.Context, projectID int64) (*domain.Project, error) {
	if projectID <= 0 {
		return nil, invalidID("project id", projectID)
	}
	return query(ctx, s.newUnitOfWork, func(work ports.UnitOfWork) (*domain.Project, error) {
		return work.Projects().LoadByID(ctx, projectID)
	})
}

func (s *ProjectService) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	return query(ctx, s.newUnitOfWork, func(work ports.UnitOfWork) ([]*domain.Project, error) {
		return work.Projects().LoadAll(ctx)
	})
}

func (s *ProjectService) ListProjectsByOwner(ctx context.Context, ownerID int64) ([]*domain.Project, error) {
	return query(ctx, s.newUnitOfWork, func(work ports.UnitOfWork) ([]*domain.Project, error) {
		return work.Projects().LoadWhere(ctx, func(p *domain.Project) bool {
			return p.OwnerID() == ownerID
		})
	})
}

func (s *ProjectService) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.TaskItem, error) {
	var task domain.TaskItem
	_, err := s.mutateProject(ctx, input.ProjectID, func(p *domain.Project) error {
		created, err := p.AddTask(input.Details, input.AssigneeID)
		task = created
		return err
	})
	if err != nil {
		return domain.TaskItem{}, err
	}
	return task, nil
}

func (s *ProjectService) UpdateTask(ctx context.Context, projectID, taskID int64, details domain.TaskDetails) (domain.TaskItem, error) {
	return s.mutateTask(ctx, projectID, taskID, func(p *domain.Project) error {
		return p.UpdateTaskDetails(taskID, details)
	})
}

func (s *ProjectService) AssignTask(ctx context.Context, projectID, taskID, assigneeID int64) (domain.TaskItem, error) {
	return s.mutateTask(ctx, projectID, taskID, func(p *domain.Project) error {
		return p.AssignTask(taskID, assigneeID)
	})
}

func (s *ProjectService) ChangeTaskStatus(ctx context.Context, projectID, taskID int64, status domain.TaskStatus) (domain.TaskItem, error) {
	return s.mutateTask(ctx, projectID, taskID, func(p *domain.Project) error {
		return p.ChangeTaskStatus(taskID, status)
	})
}

func (s *ProjectService) CompleteTask(ctx context.Context, projectID, taskID int64) (domain.TaskItem, error) {
	return s.ChangeTaskStatus(ctx, projectID, taskID, domain.TaskStatusDone)
}

func (s *ProjectService) GetTask(ctx context.Context, projectID, taskID int64) (domain.TaskItem, error) {
	p, err := s.GetProject(ctx, projectID)
	if err != nil {
		return domain.TaskItem{}, err
	}
	task, ok := p.Task(taskID)
	if !ok || task.Deleted() {
		return domain.TaskItem{}, &domain.Error{Kind: domain.ErrNotFound, Message: "task not found in project"}
	}
	return task, nil
}

func (s *ProjectService) ListTasks(ctx context.Context, projectID int64) ([]domain.TaskItem, error) {
	p, err := s.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return liveTasks(p, func(domain.TaskItem) bool { return true }), nil
}

func (s *ProjectService) ListTasksByAssignee(ctx context.Context, assigneeID int64) ([]domain.TaskItem, error) {
	projects, err := s.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.TaskItem
	for _, p := range projects {
		out = append(out, liveTasks(p, func(t domain.TaskItem) bool {
			return t.AssigneeID() != nil && *t.AssigneeID() == assigneeID
		})...)
	}
	return out, nil
}

// ListOverdueTasks returns the open tasks whose due date is before at,
// earliest due date first.
func (s *ProjectService) ListOverdueTasks(ctx context.Context, at time.Time) ([]domain.OverdueTask, error) {
	projects, err := s.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.OverdueTask
	for _, p := range projects {
		for _, t := range liveTasks(p, func(t domain.TaskItem) bool { return t.Overdue(at) }) {
			out = append(out, domain.OverdueTask{ProjectID: p.ID(), ProjectName: p.Name(), Task: t})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Task.DueDate().Before(*out[j].Task.DueDate())
	})
	return out, nil
}

func (s *ProjectService) mutateProject(ctx context.Context, projectID int64, mutate func(*domain.Project) error) (*domain.Project, error) {
	if projectID <= 0 {
		return nil, invalidID("project id", projectID)
	}
	var project *domain.Project
	err := s.tx.InTransaction(ctx, func(ctx context.Context, work ports.UnitOfWork) error {
		p, err := work.Projects().LoadByID(ctx, projectID)
		if err != nil {
			return err
		}
		if err := mutate(p); err != nil {
			return err
		}
		work.Projects().MarkUpdated(p)
		project = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) mutateTask(ctx context.Context, projectID, taskID int64, mutate func(*domain.Project) error) (domain.TaskItem, error) {
	p, err := s.mutateProject(ctx, projectID, mutate)
	if err != nil {
		return domain.TaskItem{}, err
	}
	task, _ := p.Task(taskID)
	return task, nil
}

func liveTasks(p *domain.Project, match func(domain.TaskItem) bool) []domain.TaskItem {
	var out []domain.TaskItem
	for _, t := range p.Tasks() {
		if !t.Deleted() && match(t) {
			out = append(out, t)
		}
	}
	return out
}
