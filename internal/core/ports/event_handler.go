package ports

import (
	"context"

	"orderflow/internal/core/domain/model/event"
)

// EventHandler is the capability implemented by event consumers (payment and
// shipping notifiers, projections). Delivery is at-least-once: a handler may
// be invoked more than once for the same event and must tolerate this. A
// handler's error never reaches the command that produced the event; failed
// deliveries are retried and eventually dead-lettered.
type EventHandler interface {
	// HandlerID identifies the handler in retry records and logs. It must be
	// stable across process restarts.
	HandlerID() string

	// Handle processes one event. The context carries the per-attempt
	// deadline; a handler that overruns it is counted as a failed attempt.
	Handle(ctx context.Context, evt *event.DomainEvent) error
}
