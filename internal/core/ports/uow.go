package ports

import (
	"context"

	"taskhub/internal/core/domain"
)

type ProjectRepository interface {
	LoadByID(ctx context.Context, id int64) (*domain.Project, error)
	LoadAll(ctx context.Context) ([]*domain.Project, error)
	LoadWhere(ctx context.Context, match func(*domain.Project) bool) ([]*domain.Project, error)
	Add(ctx context.Context, p *domain.Project) error
	MarkUpdated(p *domain.Project)
	MarkDeleted(p *domain.Project) error
}

type TeamRepository interface {
	LoadByID(ctx context.Context, id int64) (*domain.Team, error)
	LoadAll(ctx context.Context) ([]*domain.Team, error)
	LoadWhere(ctx context.Context, match func(*domain.Team) bool) ([]*domain.Team, error)
	Add(ctx context.Context, t *domain.Team) error
	MarkUpdated(t *domain.Team)
	MarkDeleted(t *domain.Team) error
}

// UnitOfWork tracks the aggregates touched by one command and persists them
// atomically. Events raised by those aggregates are delivered only after the
// store acknowledged the commit.
type UnitOfWork interface {
	Projects() ProjectRepository
	Teams() TeamRepository
	SaveChanges(ctx context.Context) (int64, error)
	BeginTransaction(ctx context.Context) error
	CommitTransaction(ctx context.Context) error
	RollbackTransaction(ctx context.Context) error
}

// UnitOfWorkFactory hands out a fresh unit of work per command.
type UnitOfWorkFactory func() UnitOfWork

// EventDispatcher delivers one committed domain event.
type EventDispatcher interface {
	Publish(ctx context.Context, envelope domain.Envelope) error
}
