package domain

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxTaskTitleLength       = 200
	maxTaskDescriptionLength = 2000
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone, TaskStatusCancelled:
		return true
	}
	return false
}

// Active reports whether the task still blocks archiving its project.
func (s TaskStatus) Active() bool {
	return s == TaskStatusTodo || s == TaskStatusInProgress
}

// Terminal reports whether no transition leaves s.
func (s TaskStatus) Terminal() bool {
	return s == TaskStatusDone || s == TaskStatusCancelled
}

var taskTransitions = map[TaskStatus][]TaskStatus{
	TaskStatusTodo:       {TaskStatusInProgress, TaskStatusCancelled},
	TaskStatusInProgress: {TaskStatusDone, TaskStatusCancelled},
}

// CanTransition reports whether the state machine allows from -> to.
func CanTransition(from, to TaskStatus) bool {
	for _, allowed := range taskTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// TaskItem is owned by exactly one Project and is only mutated through it.
type TaskItem struct {
	Entity
	projectID      int64
	title          string
	description    *string
	priority       Priority
	status         TaskStatus
	dueDate        *time.Time
	assigneeID     *int64
	estimatedHours *float64
}

// TaskDetails carries the editable fields of a task.
type TaskDetails struct {
	Title          string
	Description    *string
	Priority       Priority
	DueDate        *time.Time
	EstimatedHours *float64
}

// TaskSnapshot is the persisted shape of a task, used to rehydrate it.
type TaskSnapshot struct {
	Entity         Entity
	ProjectID      int64
	Title          string
	Description    *string
	Priority       Priority
	Status         TaskStatus
	DueDate        *time.Time
	AssigneeID     *int64
	EstimatedHours *float64
}

func newTaskItem(id, projectID int64, details TaskDetails, assigneeID *int64) (*TaskItem, error) {
	t := &TaskItem{Entity: newEntity(), projectID: projectID, status: TaskStatusTodo}
	t.id = id
	if err := t.applyDetails(details); err != nil {
		return nil, err
	}
	if assigneeID != nil {
		if *assigneeID <= 0 {
			return nil, invariant("assignee id must be greater than zero")
		}
		v := *assigneeID
		t.assigneeID = &v
	}
	return t, nil
}

func restoreTaskItem(s TaskSnapshot) *TaskItem {
	return &TaskItem{
		Entity:         s.Entity,
		projectID:      s.ProjectID,
		title:          s.Title,
		description:    copyString(s.Description),
		priority:       s.Priority,
		status:         s.Status,
		dueDate:        copyTime(s.DueDate),
		assigneeID:     copyInt64(s.AssigneeID),
		estimatedHours: copyFloat(s.EstimatedHours),
	}
}

func (t *TaskItem) ProjectID() int64         { return t.projectID }
func (t *TaskItem) Title() string            { return t.title }
func (t *TaskItem) Description() *string     { return copyString(t.description) }
func (t *TaskItem) Priority() Priority       { return t.priority }
func (t *TaskItem) Status() TaskStatus       { return t.status }
func (t *TaskItem) DueDate() *time.Time      { return copyTime(t.dueDate) }
func (t *TaskItem) AssigneeID() *int64       { return copyInt64(t.assigneeID) }
func (t *TaskItem) EstimatedHours() *float64 { return copyFloat(t.estimatedHours) }

// Overdue reports whether the task is still open past its due date.
func (t *TaskItem) Overdue(at time.Time) bool {
	return t.dueDate != nil && t.dueDate.Before(at) && !t.status.Terminal()
}

// Snapshot exports the task for persistence and read models.
func (t *TaskItem) Snapshot() TaskSnapshot {
	return TaskSnapshot{
		Entity:         t.Entity,
		ProjectID:      t.projectID,
		Title:          t.title,
		Description:    copyString(t.description),
		Priority:       t.priority,
		Status:         t.status,
		DueDate:        copyTime(t.dueDate),
		AssigneeID:     copyInt64(t.assigneeID),
		EstimatedHours: copyFloat(t.estimatedHours),
	}
}

func (t *TaskItem) assignTo(assigneeID int64) error {
	if err := t.ensureNotDeleted(); err != nil {
		return err
	}
	if assigneeID <= 0 {
		return invariant("assignee id must be greater than zero")
	}
	if t.status.Terminal() {
		return invariant("cannot assign a completed or cancelled task")
	}
	t.assigneeID = &assigneeID
	t.touch()
	return nil
}

// changeStatus returns changed=false when newStatus is the current status.
func (t *TaskItem) changeStatus(newStatus TaskStatus) (bool, error) {
	if err := t.ensureNotDeleted(); err != nil {
		return false, err
	}
	if !newStatus.Valid() {
		return false, invariant("invalid task status %q", newStatus)
	}
	if newStatus == t.status {
		return false, nil
	}
	if newStatus == TaskStatusDone && t.assigneeID == nil {
		return false, invariant("cannot mark task as completed without an assignee")
	}
	if !CanTransition(t.status, newStatus) {
		return false, invariant("invalid task status transition from %s to %s", t.status, newStatus)
	}
	t.status = newStatus
	t.touch()
	return true, nil
}

func (t *TaskItem) updateDetails(details TaskDetails) error {
	if err := t.ensureNotDeleted(); err != nil {
		return err
	}
	// validate on a copy so a rejected update leaves the task untouched
	next := *t
	if err := next.applyDetails(details); err != nil {
		return err
	}
	*t = next
	t.touch()
	return nil
}

func (t *TaskItem) applyDetails(d TaskDetails) error {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return invariant("task title cannot be empty")
	}
	if utf8.RuneCountInString(title) > maxTaskTitleLength {
		return invariant("task title cannot exceed %d characters", maxTaskTitleLength)
	}
	description, err := normalizeDescription(d.Description, maxTaskDescriptionLength, "task")
	if err != nil {
		return err
	}
	if !d.Priority.Valid() {
		return invariant("invalid task priority %q", d.Priority)
	}
	if d.DueDate != nil && !d.DueDate.After(now()) {
		return invariant("due date must be in the future")
	}
	if h := d.EstimatedHours; h != nil && (!(*h > 0) || math.IsInf(*h, 1)) {
		return invariant("estimated hours must be a positive finite number when set")
	}

	t.title = title
	t.description = description
	t.priority = d.Priority
	t.dueDate = copyTime(d.DueDate)
	t.estimatedHours = copyFloat(d.EstimatedHours)
	return nil
}

func (t *TaskItem) ensureNotDeleted() error {
	if t.isDeleted {
		return invariant("cannot modify a deleted task")
	}
	return nil
}

func normalizeDescription(description *string, max int, owner string) (*string, error) {
	if description == nil {
		return nil, nil
	}
	if utf8.RuneCountInString(*description) > max {
		return nil, invariant("%s description cannot exceed %d characters", owner, max)
	}
	trimmed := strings.TrimSpace(*description)
	if trimmed == "" {
		return nil, nil
	}
	return &trimmed, nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

func copyInt64(i *int64) *int64 {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
