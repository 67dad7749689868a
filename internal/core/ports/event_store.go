package ports

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/event"
	"orderflow/internal/core/domain/model/kernel"
)

// ErrDuplicateIdempotencyKey signals that an append hit an idempotency key
// that is already stored. This is not a true failure: Append returns the
// previously stored event alongside this sentinel so callers can replay the
// prior outcome instead of producing a duplicate.
var ErrDuplicateIdempotencyKey = errors.New("idempotency key already stored")

// EventStore is the durable append-only log of domain events and the single
// source of truth of the engine. Events are keyed by their globally unique
// idempotency key and by (aggregate, sequence).
type EventStore interface {
	// Append persists the event atomically. If the idempotency key already
	// exists it returns the previously stored event together with
	// ErrDuplicateIdempotencyKey. If a concurrent append claimed the same
	// (aggregate, sequence) slot it fails with errs.ErrSequenceConflict.
	Append(ctx context.Context, evt *event.DomainEvent) (*event.DomainEvent, error)

	// ListByAggregate returns the aggregate's events ordered by sequence
	// ascending. Safe to call repeatedly; no server-side cursor state.
	ListByAggregate(ctx context.Context, aggregateID kernel.UUID) ([]*event.DomainEvent, error)

	// GetByIdempotencyKey returns the event stored under the key, or an
	// errs.ObjectNotFoundError when no such event exists.
	GetByIdempotencyKey(ctx context.Context, key string) (*event.DomainEvent, error)

	// GetByID returns the event with the given event identifier, or an
	// errs.ObjectNotFoundError when no such event exists.
	GetByID(ctx context.Context, id kernel.UUID) (*event.DomainEvent, error)
}
