package ports

import (
	"context"

	"taskhub/internal/core/domain"
)

// StoreReader loads persisted aggregates. Soft-deleted aggregates are never
// returned.
type StoreReader interface {
	FindProject(ctx context.Context, id int64) (*domain.Project, error)
	ListProjects(ctx context.Context) ([]*domain.Project, error)
	FindTeam(ctx context.Context, id int64) (*domain.Team, error)
	ListTeams(ctx context.Context) ([]*domain.Team, error)
}

// Store is the persistence backend behind the unit of work.
type Store interface {
	StoreReader
	Begin(ctx context.Context) (StoreTx, error)
}

// StoreTx writes aggregates inside one store transaction. Save inserts when
// the aggregate has no id yet, otherwise it updates the row only if the
// stored version matches and returns domain.ErrConcurrencyConflict when it
// does not. On success the aggregate carries its new id and version and the
// number of rows written is returned.
type StoreTx interface {
	StoreReader
	SaveProject(ctx context.Context, p *domain.Project) (int64, error)
	SaveTeam(ctx context.Context, t *domain.Team) (int64, error)
	Commit() error
	Rollback() error
}
