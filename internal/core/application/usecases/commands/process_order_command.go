package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrProcessOrderCommandIsNotConstructed = errors.New(
	"ProcessOrderCommand must be created via NewProcessOrderCommand constructor",
)

// ProcessOrderCommand represents a request to start fulfilment of a paid order.
type ProcessOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	idempotencyKey string

	guard guard.ConstructorGuard
}

// NewProcessOrderCommand creates a command to start fulfilment of a paid order.
func NewProcessOrderCommand(orderID kernel.UUID, idempotencyKey string) (ProcessOrderCommand, error) {
	cmd := ProcessOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setIdempotencyKey(idempotencyKey),
	); err != nil {
		return ProcessOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessOrderCommand) Validate() error {
	return c.guard.Validate(ErrProcessOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being acted on.
func (c ProcessOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// IdempotencyKey returns the key deduplicating retried submissions.
func (c ProcessOrderCommand) IdempotencyKey() string {
	return c.idempotencyKey
}

func (c *ProcessOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ProcessOrderCommand) setIdempotencyKey(idempotencyKey string) error {
	if idempotencyKey == "" {
		return ErrIdempotencyKeyIsRequired
	}

	c.idempotencyKey = idempotencyKey
	return nil
}
