package commands

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/event"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// applyTransition is the shared algorithm of every state-changing command:
// replay detection via the idempotency key, aggregate load, transition,
// snapshot update plus event append in one transaction, and post-commit
// dispatch. A replayed key reports success without touching the aggregate.
//
// Rejected transitions surface the domain's order.InvalidTransitionError;
// a lost optimistic-concurrency race surfaces errs.ErrConcurrencyConflict
// and the caller retries the whole command against fresh state.
func applyTransition(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	dispatcher EventDispatcher,
	orderID kernel.UUID,
	idempotencyKey string,
	op func(aggregate *order.Order) (*event.DomainEvent, error),
) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	eventStore := uow.EventStore()
	if _, err := eventStore.GetByIdempotencyKey(ctx, idempotencyKey); err == nil {
		return nil
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	evt, err := op(aggregate)
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
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

	dispatcher.Dispatch(ctx, evt)
	return nil
}
