package uow

import (
	"context"
	"errors"
	"fmt"

	"taskhub/internal/core/domain"
	"taskhub/internal/core/ports"
)

var (
	ErrTransactionInProgress = errors.New("uow: transaction already in progress")
	ErrNoTransaction         = errors.New("uow: no transaction in progress")
)

type key struct {
	kind domain.AggregateKind
	id   int64
}

type entry struct {
	agg   domain.Aggregate
	dirty bool
}

// UnitOfWork tracks the aggregates loaded or added during one command. It is
// not safe for concurrent use.
type UnitOfWork struct {
	store      ports.Store
	dispatcher ports.EventDispatcher

	tracked []*entry
	byKey   map[key]*entry

	tx     ports.StoreTx
	outbox []domain.Envelope

	projects *repository[*domain.Project]
	teams    *repository[*domain.Team]
}

var _ ports.UnitOfWork = (*UnitOfWork)(nil)

// New returns a unit of work writing to store. A nil dispatcher drops events.
func New(store ports.Store, dispatcher ports.EventDispatcher) *UnitOfWork {
	u := &UnitOfWork{
		store:      store,
		dispatcher: dispatcher,
		byKey:      make(map[key]*entry),
	}
	u.projects = &repository[*domain.Project]{
		uow:  u,
		kind: domain.AggregateProject,
		find: func(ctx context.Context, r ports.StoreReader, id int64) (*domain.Project, error) {
			return r.FindProject(ctx, id)
		},
		list: func(ctx context.Context, r ports.StoreReader) ([]*domain.Project, error) {
			return r.ListProjects(ctx)
		},
	}
	u.teams = &repository[*domain.Team]{
		uow:  u,
		kind: domain.AggregateTeam,
		find: func(ctx context.Context, r ports.StoreReader, id int64) (*domain.Team, error) {
			return r.FindTeam(ctx, id)
		},
		list: func(ctx context.Context, r ports.StoreReader) ([]*domain.Team, error) {
			return r.ListTeams(ctx)
		},
	}
	return u
}

// NewFactory binds a store and dispatcher into a per-command factory.
func NewFactory(store ports.Store, dispatcher ports.EventDispatcher) ports.UnitOfWorkFactory {
	return func() ports.UnitOfWork {
		return New(store, dispatcher)
	}
}

func (u *UnitOfWork) Projects() ports.ProjectRepository { return u.projects }
func (u *UnitOfWork) Teams() ports.TeamRepository       { return u.teams }

// SaveChanges writes every dirty aggregate and returns the number of rows
// written. Without an explicit transaction the write is committed at once and
// the collected events are delivered afterwards. Inside a transaction the
// events wait in the outbox until CommitTransaction.
func (u *UnitOfWork) SaveChanges(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if u.tx != nil {
		n, err := u.write(ctx, u.tx)
		if err != nil {
			return 0, err
		}
		u.outbox = append(u.outbox, u.collectEvents()...)
		return n, nil
	}

	tx, err := u.store.Begin(ctx)
	if err != nil {
		return 0, domain.Persistence("begin transaction", err)
	}
	n, err := u.write(ctx, tx)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		u.abort(tx)
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		u.discard()
		return 0, domain.Persistence("commit", err)
	}

	events := u.collectEvents()
	return n, u.deliver(context.WithoutCancel(ctx), events)
}

func (u *UnitOfWork) BeginTransaction(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if u.tx != nil {
		return ErrTransactionInProgress
	}
	tx, err := u.store.Begin(ctx)
	if err != nil {
		return domain.Persistence("begin transaction", err)
	}
	u.tx = tx
	return nil
}

// CommitTransaction commits the open transaction and then delivers the
// events saved inside it. A cancelled context rolls back instead.
func (u *UnitOfWork) CommitTransaction(ctx context.Context) error {
	if u.tx == nil {
		return ErrNoTransaction
	}
	tx := u.tx
	u.tx = nil

	if err := ctx.Err(); err != nil {
		u.abort(tx)
		return err
	}
	if err := tx.Commit(); err != nil {
		u.discard()
		return domain.Persistence("commit", err)
	}

	events := u.outbox
	u.outbox = nil
	return u.deliver(context.WithoutCancel(ctx), events)
}

// RollbackTransaction discards the open transaction, its outbox and every
// tracked aggregate.
func (u *UnitOfWork) RollbackTransaction(_ context.Context) error {
	if u.tx == nil {
		return ErrNoTransaction
	}
	tx := u.tx
	u.tx = nil
	if err := tx.Rollback(); err != nil {
		u.discard()
		return domain.Persistence("rollback", err)
	}
	u.discard()
	return nil
}

func (u *UnitOfWork) reader() ports.StoreReader {
	if u.tx != nil {
		return u.tx
	}
	return u.store
}

func (u *UnitOfWork) write(ctx context.Context, tx ports.StoreTx) (int64, error) {
	var total int64
	var saved []*entry
	for _, e := range u.tracked {
		if !e.dirty && len(e.agg.PendingEvents()) == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		n, err := save(ctx, tx, e.agg)
		if err != nil {
			return 0, err
		}
		total += n
		saved = append(saved, e)
	}
	for _, e := range saved {
		e.dirty = false
		u.byKey[key{kind: e.agg.Kind(), id: e.agg.ID()}] = e
	}
	return total, nil
}

func save(ctx context.Context, tx ports.StoreTx, agg domain.Aggregate) (int64, error) {
	switch a := agg.(type) {
	case *domain.Project:
		return tx.SaveProject(ctx, a)
	case *domain.Team:
		return tx.SaveTeam(ctx, a)
	default:
		return 0, fmt.Errorf("uow: unsupported aggregate %T", agg)
	}
}

func (u *UnitOfWork) abort(tx ports.StoreTx) {
	_ = tx.Rollback()
	u.discard()
}

// discard drops the outbox, the buffered events and the identity map after
// a failed write so that nothing from it can ever be delivered.
func (u *UnitOfWork) discard() {
	for _, e := range u.tracked {
		e.agg.ClearEvents()
	}
	u.tracked = nil
	u.byKey = make(map[key]*entry)
	u.outbox = nil
}

func (u *UnitOfWork) lookup(k key) *entry {
	if k.id == 0 {
		return nil
	}
	return u.byKey[k]
}

func (u *UnitOfWork) entryFor(agg domain.Aggregate) *entry {
	for _, e := range u.tracked {
		if e.agg == agg {
			return e
		}
	}
	return nil
}

func (u *UnitOfWork) track(agg domain.Aggregate, dirty bool) *entry {
	if e := u.entryFor(agg); e != nil {
		e.dirty = e.dirty || dirty
		return e
	}
	e := &entry{agg: agg, dirty: dirty}
	u.tracked = append(u.tracked, e)
	if agg.ID() != 0 {
		u.byKey[key{kind: agg.Kind(), id: agg.ID()}] = e
	}
	return e
}
