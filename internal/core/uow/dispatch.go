package uow

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"taskhub/internal/core/domain"
)

// collectEvents drains the buffers of every tracked aggregate, in tracking
// order then insertion order, and wraps each event in an envelope.
func (u *UnitOfWork) collectEvents() []domain.Envelope {
	var out []domain.Envelope
	for _, e := range u.tracked {
		events := e.agg.PendingEvents()
		if len(events) == 0 {
			continue
		}
		for _, ev := range events {
			out = append(out, domain.Envelope{
				ID:            uuid.NewString(),
				AggregateKind: e.agg.Kind(),
				AggregateID:   e.agg.ID(),
				Event:         ev,
			})
		}
		e.agg.ClearEvents()
	}
	return out
}

// deliver publishes events one at a time. A failing event does not stop the
// remaining ones; all failures are returned together as ErrEventDelivery.
func (u *UnitOfWork) deliver(ctx context.Context, events []domain.Envelope) error {
	if u.dispatcher == nil || len(events) == 0 {
		return nil
	}

	var errs error
	for _, env := range events {
		if err := u.dispatcher.Publish(ctx, env); err != nil {
			zap.L().Warn("domain event delivery failed",
				zap.String("event_id", env.ID),
				zap.String("event", string(env.Event.Kind())),
				zap.Int64("aggregate_id", env.AggregateID),
				zap.Error(err),
			)
			errs = multierr.Append(errs, fmt.Errorf("%s %s: %w", env.Event.Kind(), env.ID, err))
		}
	}
	if errs != nil {
		return fmt.Errorf("%w: %w", domain.ErrEventDelivery, errs)
	}
	return nil
}
