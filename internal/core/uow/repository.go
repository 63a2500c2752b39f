package uow

import (
	"context"
	"errors"

	"taskhub/internal/core/domain"
	"taskhub/internal/core/ports"
)

// repository resolves aggregates of one kind through the identity map of its
// unit of work, so a command always sees a single instance per id.
type repository[T domain.Aggregate] struct {
	uow  *UnitOfWork
	kind domain.AggregateKind
	find func(ctx context.Context, r ports.StoreReader, id int64) (T, error)
	list func(ctx context.Context, r ports.StoreReader) ([]T, error)
}

func (r *repository[T]) LoadByID(ctx context.Context, id int64) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	if e := r.uow.lookup(key{kind: r.kind, id: id}); e != nil {
		if e.agg.Deleted() {
			return zero, domain.NotFound(r.kind, id)
		}
		return e.agg.(T), nil
	}

	agg, err := r.find(ctx, r.uow.reader(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return zero, domain.NotFound(r.kind, id)
		}
		return zero, err
	}
	r.uow.track(agg, false)
	return agg, nil
}

// LoadAll returns the live aggregates of the store, substituting the tracked
// instance for every id already in the identity map.
func (r *repository[T]) LoadAll(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	loaded, err := r.list(ctx, r.uow.reader())
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(loaded))
	for _, agg := range loaded {
		if e := r.uow.lookup(key{kind: r.kind, id: agg.ID()}); e != nil {
			if !e.agg.Deleted() {
				out = append(out, e.agg.(T))
			}
			continue
		}
		r.uow.track(agg, false)
		out = append(out, agg)
	}
	return out, nil
}

func (r *repository[T]) LoadWhere(ctx context.Context, match func(T) bool) ([]T, error) {
	all, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(all))
	for _, agg := range all {
		if match(agg) {
			out = append(out, agg)
		}
	}
	return out, nil
}

// Add tracks a new aggregate; it is inserted on the next SaveChanges.
func (r *repository[T]) Add(ctx context.Context, agg T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if agg.ID() != 0 {
		if e := r.uow.lookup(key{kind: r.kind, id: agg.ID()}); e != nil && e.agg != domain.Aggregate(agg) {
			return domain.Conflict("%s %d is already tracked", r.kind, agg.ID())
		}
	}
	r.uow.track(agg, true)
	return nil
}

func (r *repository[T]) MarkUpdated(agg T) {
	r.uow.track(agg, true)
}

// MarkDeleted soft-deletes the aggregate and schedules the write.
func (r *repository[T]) MarkDeleted(agg T) error {
	if err := agg.SoftDelete(); err != nil {
		return err
	}
	r.uow.track(agg, true)
	return nil
}
