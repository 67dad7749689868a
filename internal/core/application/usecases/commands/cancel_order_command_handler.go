package commands

import (
	"context"
	"orderflow/internal/core/domain/model/event"
	"orderflow/internal/core/domain/model/order"
)

// CancelOrderCommandHandler cancels a Pending or Paid order. Orders that have
// already shipped can no longer be cancelled.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher EventDispatcher
}

// NewCancelOrderCommandHandler creates a handler for the cancel_order operation.
func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory, dispatcher EventDispatcher,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the command. A replayed idempotency key reports success
// without changing state; a rejected transition surfaces the domain error.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return applyTransition(ctx, h.uowFactory, h.dispatcher, cmd.OrderID(), cmd.IdempotencyKey(),
		func(aggregate *order.Order) (*event.DomainEvent, error) {
			return aggregate.Cancel(cmd.Reason(), cmd.IdempotencyKey())
		})
}
