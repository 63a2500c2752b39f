package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvariantViolation  = errors.New("invariant violation")
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrConcurrencyConflict = errors.New("concurrency conflict")
	ErrConflict            = errors.New("conflict")
	ErrPersistence         = errors.New("persistence error")
	ErrEventDelivery       = errors.New("event delivery failed")
)

// Error is a domain failure tagged with one of the sentinel kinds above.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func invariant(format string, args ...any) error {
	return &Error{Kind: ErrInvariantViolation, Message: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func forbidden(format string, args ...any) error {
	return &Error{Kind: ErrForbidden, Message: fmt.Sprintf(format, args...)}
}

// NotFound builds a not-found error for an aggregate lookup.
func NotFound(kind AggregateKind, id int64) error {
	return notFound("%s %d not found", kind, id)
}

// Persistence wraps an infrastructure failure so that callers can match it with ErrPersistence.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}

// Conflict reports a uniqueness rule enforced by the store.
func Conflict(format string, args ...any) error {
	return &Error{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}
