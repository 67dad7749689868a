package dispatch

import (
	"context"
	"log/slog"
	"sync"

	"orderflow/internal/core/domain/model/event"
	"orderflow/internal/pkg/errs"
)

// Dispatcher fans stored events out to their registered handlers. Each
// dispatched event runs in its own goroutine; handlers for that event run
// sequentially in registration order, each through the coordinator so that
// failures are retried and eventually dead-lettered.
type Dispatcher struct {
	registry    *HandlerRegistry
	coordinator *Coordinator
	logger      *slog.Logger
	wg          sync.WaitGroup
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(
	registry *HandlerRegistry, coordinator *Coordinator, logger *slog.Logger,
) (*Dispatcher, error) {
	if registry == nil {
		return nil, errs.NewValueIsRequiredError("registry")
	}
	if coordinator == nil {
		return nil, errs.NewValueIsRequiredError("coordinator")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &Dispatcher{
		registry:    registry,
		coordinator: coordinator,
		logger:      logger.With("component", "dispatch"),
	}, nil
}

// Dispatch hands the event to its handlers asynchronously and returns
// immediately. Delivery outlives the caller's context: cancelling the
// command that produced the event must not cancel deliveries in flight.
func (d *Dispatcher) Dispatch(ctx context.Context, evt *event.DomainEvent) {
	handlers := d.registry.HandlersFor(evt.EventType())
	if len(handlers) == 0 {
		return
	}

	deliveryCtx := context.WithoutCancel(ctx)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		for _, handler := range handlers {
			if _, err := d.coordinator.Deliver(deliveryCtx, evt, handler); err != nil {
				d.logger.Error("delivery bookkeeping failed",
					"event_id", evt.ID(),
					"handler_id", handler.HandlerID(),
					"cause", err)
			}
		}
	}()
}

// Wait blocks until all in-flight dispatches have finished. Used on
// shutdown to drain deliveries.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
