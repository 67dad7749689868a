package commands

import (
	"context"
	"orderflow/internal/core/domain/model/event"
	"orderflow/internal/core/domain/model/order"
)

// FailPaymentCommandHandler moves a Pending order to Failed when its charge was
// declined.
type FailPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher EventDispatcher
}

// NewFailPaymentCommandHandler creates a handler for the fail_payment operation.
func NewFailPaymentCommandHandler(
	uowFactory OrderUoWFactory, dispatcher EventDispatcher,
) FailPaymentCommandHandler {
	return FailPaymentCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the command. A replayed idempotency key reports success
// without changing state; a rejected transition surfaces the domain error.
func (h *FailPaymentCommandHandler) Handle(ctx context.Context, cmd FailPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return applyTransition(ctx, h.uowFactory, h.dispatcher, cmd.OrderID(), cmd.IdempotencyKey(),
		func(aggregate *order.Order) (*event.DomainEvent, error) {
			return aggregate.FailPayment(cmd.Reason(), cmd.IdempotencyKey())
		})
}
