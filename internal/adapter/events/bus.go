// Package events holds the dispatchers plugged into the unit of work.
package events

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/multierr"

	"taskhub/internal/core/domain"
	"taskhub/internal/core/ports"
)

// Handler consumes one delivered event.
type Handler func(ctx context.Context, env domain.Envelope) error

// Bus routes each event to the handlers subscribed to its kind, in
// subscription order, followed by the handlers subscribed to every kind.
type Bus struct {
	mu       sync.RWMutex
	handlers map[domain.EventKind][]Handler
	all      []Handler
}

var _ ports.EventDispatcher = (*Bus)(nil)

func NewBus() *Bus {
	return &Bus{handlers: make(map[domain.EventKind][]Handler)}
}

func (b *Bus) Subscribe(kind domain.EventKind, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[kind] = append(b.handlers[kind], h)
}

func (b *Bus) SubscribeAll(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.all = append(b.all, h)
}

// Publish runs every matching handler even when an earlier one fails and
// returns the combined failures.
func (b *Bus) Publish(ctx context.Context, env domain.Envelope) error {
	b.mu.RLock()
	kind := env.Event.Kind()
	handlers := make([]Handler, 0, len(b.handlers[kind])+len(b.all))
	handlers = append(handlers, b.handlers[kind]...)
	handlers = append(handlers, b.all...)
	b.mu.RUnlock()

	var errs error
	for i, h := range handlers {
		if err := h(ctx, env); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("handler %d for %s: %w", i, kind, err))
		}
	}
	return errs
}
