package commands

import (
	"context"
	"orderflow/internal/core/domain/model/event"
	"orderflow/internal/core/domain/model/order"
)

// DeliverOrderCommandHandler moves a Shipped order to Delivered, the happy-path
// terminal state.
type DeliverOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher EventDispatcher
}

// NewDeliverOrderCommandHandler creates a handler for the deliver_order operation.
func NewDeliverOrderCommandHandler(
	uowFactory OrderUoWFactory, dispatcher EventDispatcher,
) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the command. A replayed idempotency key reports success
// without changing state; a rejected transition surfaces the domain error.
func (h *DeliverOrderCommandHandler) Handle(ctx context.Context, cmd DeliverOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return applyTransition(ctx, h.uowFactory, h.dispatcher, cmd.OrderID(), cmd.IdempotencyKey(),
		func(aggregate *order.Order) (*event.DomainEvent, error) {
			return aggregate.MarkDelivered(cmd.IdempotencyKey())
		})
}
