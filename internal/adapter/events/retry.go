package events

import (
	"context"

	"github.com/cenkalti/backoff/v5"

	"taskhub/internal/core/domain"
	"taskhub/internal/core/ports"
)

const defaultMaxTries = 3

// RetryDispatcher retries a failing delivery with exponential backoff before
// giving up and returning the last error.
type RetryDispatcher struct {
	next       ports.EventDispatcher
	maxTries   uint
	newBackOff func() backoff.BackOff
}

var _ ports.EventDispatcher = (*RetryDispatcher)(nil)

type RetryOption func(*RetryDispatcher)

// WithBackOff replaces the exponential policy, mostly for tests.
func WithBackOff(fn func() backoff.BackOff) RetryOption {
	return func(r *RetryDispatcher) { r.newBackOff = fn }
}

func NewRetryDispatcher(next ports.EventDispatcher, maxTries uint, opts ...RetryOption) *RetryDispatcher {
	if maxTries == 0 {
		maxTries = defaultMaxTries
	}
	r := &RetryDispatcher{
		next:     next,
		maxTries: maxTries,
		newBackOff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *RetryDispatcher) Publish(ctx context.Context, env domain.Envelope) error {
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, r.next.Publish(ctx, env)
	}, backoff.WithBackOff(r.newBackOff()), backoff.WithMaxTries(r.maxTries))
	return err
}
