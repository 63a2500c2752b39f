package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"taskhub/internal/core/domain"
	"taskhub/internal/core/ports"
)

// Transactor runs commands inside one unit of work and one store
// transaction. Queries do not go through it.
type Transactor struct {
	newUnitOfWork ports.UnitOfWorkFactory
	logger        *zap.Logger
}

func NewTransactor(factory ports.UnitOfWorkFactory, logger *zap.Logger) *Transactor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Transactor{newUnitOfWork: factory, logger: logger}
}

// InTransaction begins a transaction, runs fn, saves and commits. Any error
// or panic from fn rolls back and is passed on unchanged. Events are
// delivered after the commit; a delivery failure is logged and does not fail
// the command, since the state change is already durable.
func (t *Transactor) InTransaction(ctx context.Context, fn func(ctx context.Context, work ports.UnitOfWork) error) error {
	work := t.newUnitOfWork()
	if err := work.BeginTransaction(ctx); err != nil {
		return err
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if r := recover(); r != nil {
			t.rollback(ctx, work)
			panic(r)
		}
		t.rollback(ctx, work)
	}()

	if err := fn(ctx, work); err != nil {
		return err
	}
	if _, err := work.SaveChanges(ctx); err != nil {
		return err
	}

	committed = true
	if err := work.CommitTransaction(ctx); err != nil {
		if errors.Is(err, domain.ErrEventDelivery) {
			t.logger.Error("domain events not fully delivered after commit", zap.Error(err))
			return nil
		}
		return err
	}
	return nil
}

func (t *Transactor) rollback(ctx context.Context, work ports.UnitOfWork) {
	if err := work.RollbackTransaction(context.WithoutCancel(ctx)); err != nil {
		t.logger.Warn("rollback failed", zap.Error(err))
	}
}

// query runs fn against a fresh unit of work without opening a transaction.
func query[T any](ctx context.Context, factory ports.UnitOfWorkFactory, fn func(work ports.UnitOfWork) (T, error)) (T, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}
	return fn(factory())
}

func invalidID(name string, id int64) error {
	return &domain.Error{Kind: domain.ErrInvariantViolation, Message: fmt.Sprintf("%s must be greater than zero, got %d", name, id)}
}
