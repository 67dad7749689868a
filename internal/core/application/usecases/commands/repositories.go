// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, idempotency lookup,
// transaction management, persistence, and post-commit event dispatch.
package commands

import (
	"context"

	"orderflow/internal/core/domain/model/event"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/retry"
	"orderflow/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// EventStoreFactory provides access to the event store within a transaction.
	EventStoreFactory interface {
		EventStore() ports.EventStore
	}

	// OrderUoW manages a transaction spanning the order snapshot and the
	// event log. Every state-changing command writes both through one OrderUoW
	// so the snapshot and its event commit or roll back together.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		EventStoreFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)

// EventDispatcher hands committed events to their registered handlers.
// Dispatch is asynchronous; handler outcomes never surface to the command.
type EventDispatcher interface {
	Dispatch(ctx context.Context, evt *event.DomainEvent)
}

// DeadLetterRetrier re-enters a dead-lettered delivery into the retry loop.
type DeadLetterRetrier interface {
	RetryDeadLetter(ctx context.Context, eventID kernel.UUID, handlerID string) (*retry.Record, error)
}
