package commands

import (
	"context"
	"orderflow/internal/core/domain/model/event"
	"orderflow/internal/core/domain/model/order"
)

// PayOrderCommandHandler moves a Pending order to Paid, recording the payment
// reference on the aggregate.
type PayOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher EventDispatcher
}

// NewPayOrderCommandHandler creates a handler for the pay_order operation.
func NewPayOrderCommandHandler(
	uowFactory OrderUoWFactory, dispatcher EventDispatcher,
) PayOrderCommandHandler {
	return PayOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the command. A replayed idempotency key reports success
// without changing state; a rejected transition surfaces the domain error.
func (h *PayOrderCommandHandler) Handle(ctx context.Context, cmd PayOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return applyTransition(ctx, h.uowFactory, h.dispatcher, cmd.OrderID(), cmd.IdempotencyKey(),
		func(aggregate *order.Order) (*event.DomainEvent, error) {
			return aggregate.Pay(cmd.PaymentID(), cmd.IdempotencyKey())
		})
}
