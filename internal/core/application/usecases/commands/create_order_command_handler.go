package commands

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for placing orders.
// Creates the aggregate in Pending status, persists the snapshot together
// with the OrderCreated event in one transaction and dispatches the event
// after commit.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher EventDispatcher
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// Requires an OrderUoWFactory for transactional persistence and an
// EventDispatcher for post-commit delivery.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory, dispatcher EventDispatcher,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the order placement command. A command whose idempotency
// key was already stored is a replay: no new order is created, no new event
// is appended, and the handler reports success.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	eventStore := uow.EventStore()
	if _, err := eventStore.GetByIdempotencyKey(ctx, cmd.IdempotencyKey()); err == nil {
		return nil
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	aggregate, evt, err := order.NewOrder(
		cmd.OrderID(), cmd.UserID(), cmd.Email(), cmd.Items(), cmd.IdempotencyKey())
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if _, err = eventStore.Append(ctx, evt); err != nil {
		if errors.Is(err, ports.ErrDuplicateIdempotencyKey) {
			return nil
		}
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.dispatcher.Dispatch(ctx, evt)
	return nil
}
