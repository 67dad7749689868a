package commands

import (
	"context"
	"orderflow/internal/core/domain/model/event"
	"orderflow/internal/core/domain/model/order"
)

// ProcessOrderCommandHandler moves a Paid order into Processing, the state in which
// the warehouse picks and packs it.
type ProcessOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher EventDispatcher
}

// NewProcessOrderCommandHandler creates a handler for the process_order operation.
func NewProcessOrderCommandHandler(
	uowFactory OrderUoWFactory, dispatcher EventDispatcher,
) ProcessOrderCommandHandler {
	return ProcessOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the command. A replayed idempotency key reports success
// without changing state; a rejected transition surfaces the domain error.
func (h *ProcessOrderCommandHandler) Handle(ctx context.Context, cmd ProcessOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return applyTransition(ctx, h.uowFactory, h.dispatcher, cmd.OrderID(), cmd.IdempotencyKey(),
		func(aggregate *order.Order) (*event.DomainEvent, error) {
			return aggregate.StartProcessing(cmd.IdempotencyKey())
		})
}
