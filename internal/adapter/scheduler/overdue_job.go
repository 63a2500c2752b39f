package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"taskhub/internal/core/domain"
)

const overdueScanTimeout = 30 * time.Second

// OverdueLister is the query the overdue scan depends on.
type OverdueLister interface {
	ListOverdueTasks(ctx context.Context, at time.Time) ([]domain.OverdueTask, error)
}

// OverdueTaskJob periodically logs the open tasks that are past due.
type OverdueTaskJob struct {
	lister   OverdueLister
	interval time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

func NewOverdueTaskJob(lister OverdueLister, interval time.Duration, logger *zap.Logger) *OverdueTaskJob {
	return &OverdueTaskJob{lister: lister, interval: interval, logger: logger, now: time.Now}
}

func (j *OverdueTaskJob) Name() string            { return "overdue_task_scan" }
func (j *OverdueTaskJob) Interval() time.Duration { return j.interval }

func (j *OverdueTaskJob) Execute() {
	ctx, cancel := context.WithTimeout(context.Background(), overdueScanTimeout)
	defer cancel()

	at := j.now().UTC()
	tasks, err := j.lister.ListOverdueTasks(ctx, at)
	if err != nil {
		j.logger.Error("overdue task scan failed", zap.Error(err))
		return
	}

	for _, t := range tasks {
		fields := []zap.Field{
			zap.Int64("project_id", t.ProjectID),
			zap.Int64("task_id", t.Task.ID()),
			zap.String("title", t.Task.Title()),
			zap.Time("due_date", *t.Task.DueDate()),
		}
		if assignee := t.Task.AssigneeID(); assignee != nil {
			fields = append(fields, zap.Int64("assignee_id", *assignee))
		}
		j.logger.Warn("task overdue", fields...)
	}
	j.logger.Info("overdue task scan finished", zap.Int("overdue", len(tasks)), zap.Time("at", at))
}
