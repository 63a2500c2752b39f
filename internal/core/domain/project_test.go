package domain_test

import (
	"math"
	"strings"
	"testing"
	"time"

	"taskhub/internal/core/domain"

	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func newProject(t *testing.T) *domain.Project {
	t.Helper()
	p, err := domain.NewProject("Core", nil, 42)
	require.NoError(t, err)
	return p
}

func taskDetails(title string) domain.TaskDetails {
	return domain.TaskDetails{
		Title:          title,
		Priority:       domain.PriorityHigh,
		DueDate:        ptr(time.Now().Add(72 * time.Hour)),
		EstimatedHours: ptr(2.5),
	}
}

func kinds(events []domain.Event) []domain.EventKind {
	out := make([]domain.EventKind, 0, len(events))
	for _, e := range events {
		out = append(out, e.Kind())
	}
	return out
}

func TestNewProject_TrimsNameAndRecordsCreated(t *testing.T) {
	p, err := domain.NewProject("  Core Platform  ", ptr("  desc "), 42)
	require.NoError(t, err)

	require.Equal(t, "Core Platform", p.Name())
	require.Equal(t, "desc", *p.Description())
	require.Equal(t, int64(42), p.OwnerID())
	require.Equal(t, domain.ProjectStatusActive, p.Status())
	require.Equal(t, []domain.EventKind{domain.EventProjectCreated}, kinds(p.PendingEvents()))
}

func TestNewProject_RejectsInvalidInput(t *testing.T) {
	cases := map[string]struct {
		name        string
		description *string
		ownerID     int64
	}{
		"blank name":       {name: "   ", ownerID: 1},
		"name too long":    {name: strings.Repeat("a", 201), ownerID: 1},
		"description long": {name: "ok", description: ptr(strings.Repeat("d", 2001)), ownerID: 1},
		"zero owner":       {name: "ok", ownerID: 0},
		"negative owner":   {name: "ok", ownerID: -3},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			p, err := domain.NewProject(tc.name, tc.description, tc.ownerID)
			require.ErrorIs(t, err, domain.ErrInvariantViolation)
			require.Nil(t, p)
		})
	}
}

func TestNewProject_BlankDescriptionBecomesNil(t *testing.T) {
	p, err := domain.NewProject("Core", ptr("   "), 1)
	require.NoError(t, err)
	require.Nil(t, p.Description())
}

func TestNewProjectWithStatus_RejectsUnknownStatus(t *testing.T) {
	_, err := domain.NewProjectWithStatus("Core", nil, 1, domain.ProjectStatus("frozen"))
	require.ErrorIs(t, err, domain.ErrInvariantViolation)
}

func TestProject_AddTaskAssignsSequentialIDs(t *testing.T) {
	p := newProject(t)

	first, err := p.AddTask(taskDetails("T1"), ptr(int64(10)))
	require.NoError(t, err)
	second, err := p.AddTask(taskDetails("T2"), nil)
	require.NoError(t, err)

	require.Equal(t, int64(1), first.ID())
	require.Equal(t, int64(2), second.ID())
	require.Equal(t, domain.TaskStatusTodo, first.Status())
	require.Equal(t, int64(10), *first.AssigneeID())
	require.Len(t, p.Tasks(), 2)
	require.NotNil(t, p.UpdatedAt())
}

func TestProject_AddTaskValidatesTaskFields(t *testing.T) {
	p := newProject(t)
	p.ClearEvents()

	cases := map[string]domain.TaskDetails{
		"blank title":      {Title: " ", Priority: domain.PriorityLow},
		"unknown priority": {Title: "x", Priority: domain.Priority("urgent")},
		"past due date":    {Title: "x", Priority: domain.PriorityLow, DueDate: ptr(time.Now().Add(-time.Hour))},
		"zero hours":       {Title: "x", Priority: domain.PriorityLow, EstimatedHours: ptr(0.0)},
		"NaN hours":        {Title: "x", Priority: domain.PriorityLow, EstimatedHours: ptr(math.NaN())},
		"infinite hours":   {Title: "x", Priority: domain.PriorityLow, EstimatedHours: ptr(math.Inf(1))},
		"title too long":   {Title: strings.Repeat("t", 201), Priority: domain.PriorityLow},
	}
	for name, details := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := p.AddTask(details, nil)
			require.ErrorIs(t, err, domain.ErrInvariantViolation)
		})
	}
	require.Empty(t, p.Tasks())
	require.Empty(t, p.PendingEvents())
}

func TestProject_AddTaskRejectsArchivedProject(t *testing.T) {
	p := newProject(t)
	require.NoError(t, p.Archive())

	_, err := p.AddTask(taskDetails("T1"), nil)
	require.ErrorIs(t, err, domain.ErrInvariantViolation)
}

func TestProject_AddTaskEnforcesCapacity(t *testing.T) {
	p := newProject(t)
	for i := 0; i < domain.MaxTasksPerProject; i++ {
		_, err := p.AddTask(domain.TaskDetails{Title: "t", Priority: domain.PriorityLow}, nil)
		require.NoError(t, err)
	}

	_, err := p.AddTask(domain.TaskDetails{Title: "overflow", Priority: domain.PriorityLow}, nil)
	require.ErrorIs(t, err, domain.ErrInvariantViolation)
	require.Len(t, p.Tasks(), domain.MaxTasksPerProject)
}

func TestProject_TaskCopiesDoNotLeakMutation(t *testing.T) {
	p := newProject(t)
	_, err := p.AddTask(taskDetails("T1"), nil)
	require.NoError(t, err)

	copied := p.Tasks()[0]
	require.NoError(t, copied.SoftDelete())

	task, ok := p.Task(1)
	require.True(t, ok)
	require.False(t, task.Deleted())
}

func TestProject_TaskFieldPointersAreCopies(t *testing.T) {
	p := newProject(t)
	due := time.Now().Add(72 * time.Hour)
	details := taskDetails("T1")
	details.DueDate = ptr(due)
	details.Description = ptr("original")
	_, err := p.AddTask(details, ptr(int64(3)))
	require.NoError(t, err)

	copied := p.Tasks()[0]
	*copied.DueDate() = time.Now().Add(-1000 * time.Hour)
	*copied.Description() = "changed"
	*copied.AssigneeID() = 99
	*copied.EstimatedHours() = -1

	snapshot := p.Snapshot()
	*snapshot.Tasks[0].DueDate = time.Now().Add(-1000 * time.Hour)

	task, ok := p.Task(1)
	require.True(t, ok)
	require.True(t, task.DueDate().Equal(due))
	require.Equal(t, "original", *task.Description())
	require.Equal(t, int64(3), *task.AssigneeID())
	require.Equal(t, 2.5, *task.EstimatedHours())
}

func TestRestoreProject_DoesNotAliasSnapshot(t *testing.T) {
	p := newProject(t)
	_, err := p.AddTask(taskDetails("T1"), nil)
	require.NoError(t, err)
	snapshot := p.Snapshot()
	due := *snapshot.Tasks[0].DueDate

	restored := domain.RestoreProject(snapshot)
	*snapshot.Tasks[0].DueDate = time.Now().Add(-1000 * time.Hour)

	task, ok := restored.Task(1)
	require.True(t, ok)
	require.True(t, task.DueDate().Equal(due))
}

func TestProject_AssignTask(t *testing.T) {
	p := newProject(t)
	_, err := p.AddTask(taskDetails("T1"), nil)
	require.NoError(t, err)
	p.ClearEvents()

	require.NoError(t, p.AssignTask(1, 7))

	task, _ := p.Task(1)
	require.Equal(t, int64(7), *task.AssigneeID())
	events := p.PendingEvents()
	require.Len(t, events, 1)
	require.Equal(t, domain.TaskAssigned{TaskID: 1, AssigneeID: 7, AssignedAt: events[0].OccurredAt()}, events[0])
}

func TestProject_AssignTaskErrors(t *testing.T) {
	p := newProject(t)
	_, err := p.AddTask(taskDetails("T1"), ptr(int64(3)))
	require.NoError(t, err)

	require.ErrorIs(t, p.AssignTask(0, 7), domain.ErrNotFound)
	require.ErrorIs(t, p.AssignTask(99, 7), domain.ErrNotFound)
	require.ErrorIs(t, p.AssignTask(1, 0), domain.ErrInvariantViolation)

	require.NoError(t, p.ChangeTaskStatus(1, domain.TaskStatusCancelled))
	require.ErrorIs(t, p.AssignTask(1, 7), domain.ErrInvariantViolation)
}

func TestProject_TaskStatusTransitions(t *testing.T) {
	all := []domain.TaskStatus{
		domain.TaskStatusTodo,
		domain.TaskStatusInProgress,
		domain.TaskStatusDone,
		domain.TaskStatusCancelled,
	}
	allowed := map[domain.TaskStatus][]domain.TaskStatus{
		domain.TaskStatusTodo:       {domain.TaskStatusInProgress, domain.TaskStatusCancelled},
		domain.TaskStatusInProgress: {domain.TaskStatusDone, domain.TaskStatusCancelled},
	}

	for _, from := range all {
		for _, to := range all {
			if from == to {
				continue
			}
			require.Equal(t, contains(allowed[from], to), domain.CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func contains(list []domain.TaskStatus, s domain.TaskStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestProject_ChangeTaskStatus(t *testing.T) {
	t.Run("todo to done is rejected", func(t *testing.T) {
		p := newProject(t)
		_, _ = p.AddTask(taskDetails("T1"), ptr(int64(3)))

		err := p.ChangeTaskStatus(1, domain.TaskStatusDone)
		require.ErrorIs(t, err, domain.ErrInvariantViolation)
		require.Contains(t, err.Error(), "from todo to done")
	})

	t.Run("done requires an assignee", func(t *testing.T) {
		p := newProject(t)
		_, _ = p.AddTask(taskDetails("T1"), nil)
		require.NoError(t, p.ChangeTaskStatus(1, domain.TaskStatusInProgress))

		require.ErrorIs(t, p.ChangeTaskStatus(1, domain.TaskStatusDone), domain.ErrInvariantViolation)
		task, _ := p.Task(1)
		require.Equal(t, domain.TaskStatusInProgress, task.Status())
	})

	t.Run("in progress to done records completion once", func(t *testing.T) {
		p := newProject(t)
		_, _ = p.AddTask(taskDetails("T1"), ptr(int64(3)))
		require.NoError(t, p.ChangeTaskStatus(1, domain.TaskStatusInProgress))
		p.ClearEvents()

		require.NoError(t, p.ChangeTaskStatus(1, domain.TaskStatusDone))
		require.NoError(t, p.ChangeTaskStatus(1, domain.TaskStatusDone))
		require.Equal(t, []domain.EventKind{domain.EventTaskCompleted}, kinds(p.PendingEvents()))
	})

	t.Run("same status is a silent no-op", func(t *testing.T) {
		p := newProject(t)
		_, _ = p.AddTask(taskDetails("T1"), nil)
		p.ClearEvents()
		before := p.UpdatedAt()

		require.NoError(t, p.ChangeTaskStatus(1, domain.TaskStatusTodo))
		require.Empty(t, p.PendingEvents())
		require.Equal(t, before, p.UpdatedAt())
	})

	t.Run("terminal states have no exits", func(t *testing.T) {
		p := newProject(t)
		_, _ = p.AddTask(taskDetails("T1"), ptr(int64(3)))
		require.NoError(t, p.ChangeTaskStatus(1, domain.TaskStatusCancelled))

		for _, to := range []domain.TaskStatus{domain.TaskStatusTodo, domain.TaskStatusInProgress, domain.TaskStatusDone} {
			require.ErrorIs(t, p.ChangeTaskStatus(1, to), domain.ErrInvariantViolation)
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		p := newProject(t)
		_, _ = p.AddTask(taskDetails("T1"), nil)
		require.ErrorIs(t, p.ChangeTaskStatus(1, domain.TaskStatus("blocked")), domain.ErrInvariantViolation)
	})
}

func TestProject_UpdateTaskDetailsIsAllOrNothing(t *testing.T) {
	p := newProject(t)
	_, err := p.AddTask(taskDetails("T1"), nil)
	require.NoError(t, err)

	bad := taskDetails("Renamed")
	bad.EstimatedHours = ptr(-1.0)
	require.ErrorIs(t, p.UpdateTaskDetails(1, bad), domain.ErrInvariantViolation)

	task, _ := p.Task(1)
	require.Equal(t, "T1", task.Title())

	good := taskDetails("  Renamed  ")
	good.Priority = domain.PriorityCritical
	require.NoError(t, p.UpdateTaskDetails(1, good))
	task, _ = p.Task(1)
	require.Equal(t, "Renamed", task.Title())
	require.Equal(t, domain.PriorityCritical, task.Priority())
}

func TestProject_UpdateDetails(t *testing.T) {
	p := newProject(t)

	require.ErrorIs(t, p.UpdateDetails("", nil), domain.ErrInvariantViolation)
	require.Equal(t, "Core", p.Name())

	require.NoError(t, p.UpdateDetails(" Platform ", ptr("new")))
	require.Equal(t, "Platform", p.Name())
	require.Equal(t, "new", *p.Description())
}

func TestProject_Archive(t *testing.T) {
	t.Run("fails with active tasks", func(t *testing.T) {
		p := newProject(t)
		_, _ = p.AddTask(taskDetails("T1"), ptr(int64(10)))

		err := p.Archive()
		require.ErrorIs(t, err, domain.ErrInvariantViolation)
		require.Contains(t, err.Error(), "active tasks")
		require.Equal(t, domain.ProjectStatusActive, p.Status())
	})

	t.Run("succeeds when every task is closed and is idempotent", func(t *testing.T) {
		p := newProject(t)
		_, _ = p.AddTask(taskDetails("T1"), ptr(int64(10)))
		_, _ = p.AddTask(taskDetails("T2"), nil)
		require.NoError(t, p.ChangeTaskStatus(1, domain.TaskStatusInProgress))
		require.NoError(t, p.ChangeTaskStatus(1, domain.TaskStatusDone))
		require.NoError(t, p.ChangeTaskStatus(2, domain.TaskStatusCancelled))
		p.ClearEvents()

		require.NoError(t, p.Archive())
		require.NoError(t, p.Archive())

		require.Equal(t, domain.ProjectStatusArchived, p.Status())
		require.Equal(t, []domain.EventKind{domain.EventProjectArchived}, kinds(p.PendingEvents()))
	})
}

func TestProject_DeletedRejectsMutation(t *testing.T) {
	p := newProject(t)
	_, err := p.AddTask(taskDetails("T1"), nil)
	require.NoError(t, err)
	require.NoError(t, p.SoftDelete())

	require.ErrorIs(t, p.SoftDelete(), domain.ErrInvariantViolation)
	require.ErrorIs(t, p.UpdateDetails("x", nil), domain.ErrInvariantViolation)
	require.ErrorIs(t, p.AssignTask(1, 2), domain.ErrInvariantViolation)
	require.ErrorIs(t, p.ChangeTaskStatus(1, domain.TaskStatusInProgress), domain.ErrInvariantViolation)
	require.ErrorIs(t, p.UpdateTaskDetails(1, taskDetails("y")), domain.ErrInvariantViolation)
	require.ErrorIs(t, p.Archive(), domain.ErrInvariantViolation)
	_, err = p.AddTask(taskDetails("T2"), nil)
	require.ErrorIs(t, err, domain.ErrInvariantViolation)
}

func TestProject_EndToEndEventSequence(t *testing.T) {
	p, err := domain.NewProject("Core", nil, 42)
	require.NoError(t, err)

	task, err := p.AddTask(domain.TaskDetails{
		Title:          "T1",
		Priority:       domain.PriorityHigh,
		DueDate:        ptr(time.Now().Add(72 * time.Hour)),
		EstimatedHours: ptr(2.5),
	}, ptr(int64(10)))
	require.NoError(t, err)

	require.NoError(t, p.AssignTask(task.ID(), 10))
	require.NoError(t, p.ChangeTaskStatus(task.ID(), domain.TaskStatusInProgress))
	require.NoError(t, p.ChangeTaskStatus(task.ID(), domain.TaskStatusDone))

	require.Equal(t, []domain.EventKind{
		domain.EventProjectCreated,
		domain.EventTaskCreated,
		domain.EventTaskAssigned,
		domain.EventTaskCompleted,
	}, kinds(p.PendingEvents()))
	require.Equal(t, domain.ProjectStatusActive, p.Status())
}

func TestRestoreProject_RoundTripsSnapshot(t *testing.T) {
	p := newProject(t)
	_, err := p.AddTask(taskDetails("T1"), ptr(int64(5)))
	require.NoError(t, err)
	p.AssignID(9)

	restored := domain.RestoreProject(p.Snapshot())

	require.Equal(t, p.Snapshot(), restored.Snapshot())
	require.Empty(t, restored.PendingEvents())
	task, ok := restored.Task(1)
	require.True(t, ok)
	require.Equal(t, int64(9), task.ProjectID())
}
