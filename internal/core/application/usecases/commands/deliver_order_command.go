package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrDeliverOrderCommandIsNotConstructed = errors.New(
	"DeliverOrderCommand must be created via NewDeliverOrderCommand constructor",
)

// DeliverOrderCommand represents a request to record delivery of a shipped order.
type DeliverOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	idempotencyKey string

	guard guard.ConstructorGuard
}

// NewDeliverOrderCommand creates a command to record delivery of a shipped order.
func NewDeliverOrderCommand(orderID kernel.UUID, idempotencyKey string) (DeliverOrderCommand, error) {
	cmd := DeliverOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setIdempotencyKey(idempotencyKey),
	); err != nil {
		return DeliverOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeliverOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeliverOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being acted on.
func (c DeliverOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// IdempotencyKey returns the key deduplicating retried submissions.
func (c DeliverOrderCommand) IdempotencyKey() string {
	return c.idempotencyKey
}

func (c *DeliverOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *DeliverOrderCommand) setIdempotencyKey(idempotencyKey string) error {
	if idempotencyKey == "" {
		return ErrIdempotencyKeyIsRequired
	}

	c.idempotencyKey = idempotencyKey
	return nil
}
