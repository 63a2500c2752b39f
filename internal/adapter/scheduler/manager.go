// Package scheduler runs the periodic background jobs.
package scheduler

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// Job is a periodic unit of work registered with the Manager.
type Job interface {
	Name() string
	Interval() time.Duration
	Execute()
}

type Manager struct {
	scheduler gocron.Scheduler
	logger    *zap.Logger
}

func NewManager(logger *zap.Logger) (*Manager, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	return &Manager{scheduler: s, logger: logger}, nil
}

// Register adds a job. Runs never overlap: a run that is still going when
// the next one is due pushes it back.
func (m *Manager) Register(job Job) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(job.Interval()),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.Name()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}
	m.logger.Info("scheduled job registered", zap.String("job", job.Name()), zap.Duration("interval", job.Interval()))
	return nil
}

func (m *Manager) Start() {
	m.scheduler.Start()
	m.logger.Info("scheduler started")
}

func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		m.logger.Warn("failed to shutdown scheduler", zap.Error(err))
	}
	m.logger.Info("scheduler stopped")
}
