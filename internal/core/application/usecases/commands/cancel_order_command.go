package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var (
	ErrCancelOrderCommandIsNotConstructed = errors.New(
		"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
	)
	ErrReasonIsRequired = errors.New("reason is required")
)

// CancelOrderCommand represents a request to cancel an order before it has shipped.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	reason         string
	idempotencyKey string

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an order before it has shipped.
func NewCancelOrderCommand(orderID kernel.UUID, reason, idempotencyKey string) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setReason(reason),
		cmd.setIdempotencyKey(idempotencyKey),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being acted on.
func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reason returns why the order is being cancelled.
func (c CancelOrderCommand) Reason() string {
	return c.reason
}

// IdempotencyKey returns the key deduplicating retried submissions.
func (c CancelOrderCommand) IdempotencyKey() string {
	return c.idempotencyKey
}

func (c *CancelOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CancelOrderCommand) setReason(reason string) error {
	if reason == "" {
		return ErrReasonIsRequired
	}

	c.reason = reason
	return nil
}

func (c *CancelOrderCommand) setIdempotencyKey(idempotencyKey string) error {
	if idempotencyKey == "" {
		return ErrIdempotencyKeyIsRequired
	}

	c.idempotencyKey = idempotencyKey
	return nil
}
