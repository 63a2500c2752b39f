package domain

import (
	"strings"
	"unicode/utf8"
)

const (
	maxProjectNameLength        = 200
	maxProjectDescriptionLength = 2000
	MaxTasksPerProject          = 100
)

type ProjectStatus string

const (
	ProjectStatusActive   ProjectStatus = "active"
	ProjectStatusArchived ProjectStatus = "archived"
)

func (s ProjectStatus) Valid() bool {
	return s == ProjectStatusActive || s == ProjectStatusArchived
}

// Project is the aggregate root owning an ordered list of tasks.
type Project struct {
	AggregateRoot
	name        string
	description *string
	ownerID     int64
	status      ProjectStatus
	tasks       []*TaskItem
}

// ProjectSnapshot is the persisted shape of a project and its tasks.
type ProjectSnapshot struct {
	Entity      Entity
	Name        string
	Description *string
	OwnerID     int64
	Status      ProjectStatus
	Tasks       []TaskSnapshot
}

// NewProject creates an active project and records ProjectCreated.
func NewProject(name string, description *string, ownerID int64) (*Project, error) {
	return NewProjectWithStatus(name, description, ownerID, ProjectStatusActive)
}

func NewProjectWithStatus(name string, description *string, ownerID int64, status ProjectStatus) (*Project, error) {
	p := &Project{AggregateRoot: AggregateRoot{Entity: newEntity()}}
	if err := p.setName(name); err != nil {
		return nil, err
	}
	if err := p.setDescription(description); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, invariant("invalid project status %q", status)
	}
	if ownerID <= 0 {
		return nil, invariant("owner id must be greater than zero")
	}
	p.status = status
	p.ownerID = ownerID
	p.record(ProjectCreated{Name: p.name, OwnerID: ownerID, CreatedAt: p.createdAt})
	return p, nil
}

// RestoreProject rehydrates a project from the store without raising events.
func RestoreProject(s ProjectSnapshot) *Project {
	p := &Project{
		AggregateRoot: AggregateRoot{Entity: s.Entity},
		name:          s.Name,
		description:   copyString(s.Description),
		ownerID:       s.OwnerID,
		status:        s.Status,
		tasks:         make([]*TaskItem, 0, len(s.Tasks)),
	}
	for _, ts := range s.Tasks {
		p.tasks = append(p.tasks, restoreTaskItem(ts))
	}
	return p
}

func (p *Project) Kind() AggregateKind   { return AggregateProject }
func (p *Project) Name() string          { return p.name }
func (p *Project) Description() *string  { return copyString(p.description) }
func (p *Project) OwnerID() int64        { return p.ownerID }
func (p *Project) Status() ProjectStatus { return p.status }

// Tasks returns copies of the owned tasks; changes to them do not reach the project.
func (p *Project) Tasks() []TaskItem {
	out := make([]TaskItem, 0, len(p.tasks))
	for _, t := range p.tasks {
		out = append(out, *t)
	}
	return out
}

// Task returns a copy of the task with the given id.
func (p *Project) Task(taskID int64) (TaskItem, bool) {
	for _, t := range p.tasks {
		if t.id == taskID {
			return *t, true
		}
	}
	return TaskItem{}, false
}

func (p *Project) Snapshot() ProjectSnapshot {
	s := ProjectSnapshot{
		Entity:      p.Entity,
		Name:        p.name,
		Description: copyString(p.description),
		OwnerID:     p.ownerID,
		Status:      p.status,
		Tasks:       make([]TaskSnapshot, 0, len(p.tasks)),
	}
	for _, t := range p.tasks {
		s.Tasks = append(s.Tasks, t.Snapshot())
	}
	return s
}

// AssignID also propagates the project id to the owned tasks.
func (p *Project) AssignID(id int64) {
	p.Entity.AssignID(id)
	for _, t := range p.tasks {
		t.projectID = p.id
	}
}

// AddTask appends a Todo task and records TaskCreated.
func (p *Project) AddTask(details TaskDetails, assigneeID *int64) (TaskItem, error) {
	if err := p.ensureNotDeleted(); err != nil {
		return TaskItem{}, err
	}
	if p.status == ProjectStatusArchived {
		return TaskItem{}, invariant("cannot add tasks to an archived project")
	}
	if len(p.tasks) >= MaxTasksPerProject {
		return TaskItem{}, invariant("a project cannot have more than %d tasks", MaxTasksPerProject)
	}

	task, err := newTaskItem(p.nextTaskID(), p.id, details, assigneeID)
	if err != nil {
		return TaskItem{}, err
	}
	p.tasks = append(p.tasks, task)
	p.touch()
	p.record(TaskCreated{TaskID: task.id, Title: task.title, CreatedAt: task.createdAt})
	return *task, nil
}

func (p *Project) UpdateDetails(name string, description *string) error {
	if err := p.ensureNotDeleted(); err != nil {
		return err
	}
	next := *p
	if err := next.setName(name); err != nil {
		return err
	}
	if err := next.setDescription(description); err != nil {
		return err
	}
	p.name, p.description = next.name, next.description
	p.touch()
	return nil
}

// AssignTask assigns the task and records TaskAssigned.
func (p *Project) AssignTask(taskID, assigneeID int64) error {
	if err := p.ensureNotDeleted(); err != nil {
		return err
	}
	task, err := p.taskOrError(taskID)
	if err != nil {
		return err
	}
	if err := task.assignTo(assigneeID); err != nil {
		return err
	}
	p.touch()
	p.record(TaskAssigned{TaskID: task.id, AssigneeID: assigneeID, AssignedAt: now()})
	return nil
}

// ChangeTaskStatus runs the task state machine. Requesting the current
// status is a no-op; entering Done records TaskCompleted.
func (p *Project) ChangeTaskStatus(taskID int64, newStatus TaskStatus) error {
	if err := p.ensureNotDeleted(); err != nil {
		return err
	}
	task, err := p.taskOrError(taskID)
	if err != nil {
		return err
	}
	previous := task.status
	changed, err := task.changeStatus(newStatus)
	if err != nil || !changed {
		return err
	}
	p.touch()
	if previous != TaskStatusDone && task.status == TaskStatusDone {
		p.record(TaskCompleted{TaskID: task.id, CompletedAt: now()})
	}
	return nil
}

func (p *Project) UpdateTaskDetails(taskID int64, details TaskDetails) error {
	if err := p.ensureNotDeleted(); err != nil {
		return err
	}
	task, err := p.taskOrError(taskID)
	if err != nil {
		return err
	}
	if err := task.updateDetails(details); err != nil {
		return err
	}
	p.touch()
	return nil
}

// Archive is a no-op on an archived project and fails while any task is
// Todo or InProgress.
func (p *Project) Archive() error {
	if err := p.ensureNotDeleted(); err != nil {
		return err
	}
	if p.status == ProjectStatusArchived {
		return nil
	}
	for _, t := range p.tasks {
		if !t.isDeleted && t.status.Active() {
			return invariant("cannot archive a project with active tasks")
		}
	}
	p.status = ProjectStatusArchived
	p.touch()
	p.record(ProjectArchived{ArchivedAt: now()})
	return nil
}

func (p *Project) taskOrError(taskID int64) (*TaskItem, error) {
	if taskID <= 0 {
		return nil, notFound("task id must be greater than zero")
	}
	for _, t := range p.tasks {
		if t.id == taskID {
			return t, nil
		}
	}
	return nil, notFound("task %d not found in project", taskID)
}

func (p *Project) nextTaskID() int64 {
	var max int64
	for _, t := range p.tasks {
		if t.id > max {
			max = t.id
		}
	}
	return max + 1
}

func (p *Project) setName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return invariant("project name cannot be empty or whitespace")
	}
	if utf8.RuneCountInString(trimmed) > maxProjectNameLength {
		return invariant("project name cannot exceed %d characters", maxProjectNameLength)
	}
	p.name = trimmed
	return nil
}

func (p *Project) setDescription(description *string) error {
	normalized, err := normalizeDescription(description, maxProjectDescriptionLength, "project")
	if err != nil {
		return err
	}
	p.description = normalized
	return nil
}

func (p *Project) ensureNotDeleted() error {
	if p.isDeleted {
		return invariant("cannot modify a deleted project")
	}
	return nil
}
