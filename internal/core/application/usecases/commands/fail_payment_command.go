package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var (
	ErrFailPaymentCommandIsNotConstructed = errors.New(
		"FailPaymentCommand must be created via NewFailPaymentCommand constructor",
	)
	ErrFailureReasonIsRequired = errors.New("failure reason is required")
)

// FailPaymentCommand represents a request to record a failed charge on a pending order.
type FailPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	reason         string
	idempotencyKey string

	guard guard.ConstructorGuard
}

// NewFailPaymentCommand creates a command to record a failed charge on a pending order.
func NewFailPaymentCommand(orderID kernel.UUID, reason, idempotencyKey string) (FailPaymentCommand, error) {
	cmd := FailPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setReason(reason),
		cmd.setIdempotencyKey(idempotencyKey),
	); err != nil {
		return FailPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c FailPaymentCommand) Validate() error {
	return c.guard.Validate(ErrFailPaymentCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being acted on.
func (c FailPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reason returns why the charge failed.
func (c FailPaymentCommand) Reason() string {
	return c.reason
}

// IdempotencyKey returns the key deduplicating retried submissions.
func (c FailPaymentCommand) IdempotencyKey() string {
	return c.idempotencyKey
}

func (c *FailPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *FailPaymentCommand) setReason(reason string) error {
	if reason == "" {
		return ErrFailureReasonIsRequired
	}

	c.reason = reason
	return nil
}

func (c *FailPaymentCommand) setIdempotencyKey(idempotencyKey string) error {
	if idempotencyKey == "" {
		return ErrIdempotencyKeyIsRequired
	}

	c.idempotencyKey = idempotencyKey
	return nil
}
