package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var (
	ErrPayOrderCommandIsNotConstructed = errors.New(
		"PayOrderCommand must be created via NewPayOrderCommand constructor",
	)
	ErrPaymentIDIsRequired = errors.New("payment id is required")
)

// PayOrderCommand represents a request to mark an order as paid after a successful charge.
type PayOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	paymentID      string
	idempotencyKey string

	guard guard.ConstructorGuard
}

// NewPayOrderCommand creates a command to mark an order as paid after a successful charge.
func NewPayOrderCommand(orderID kernel.UUID, paymentID, idempotencyKey string) (PayOrderCommand, error) {
	cmd := PayOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPaymentID(paymentID),
		cmd.setIdempotencyKey(idempotencyKey),
	); err != nil {
		return PayOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PayOrderCommand) Validate() error {
	return c.guard.Validate(ErrPayOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being acted on.
func (c PayOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PaymentID returns the identifier of the successful charge.
func (c PayOrderCommand) PaymentID() string {
	return c.paymentID
}

// IdempotencyKey returns the key deduplicating retried submissions.
func (c PayOrderCommand) IdempotencyKey() string {
	return c.idempotencyKey
}

func (c *PayOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PayOrderCommand) setPaymentID(paymentID string) error {
	if paymentID == "" {
		return ErrPaymentIDIsRequired
	}

	c.paymentID = paymentID
	return nil
}

func (c *PayOrderCommand) setIdempotencyKey(idempotencyKey string) error {
	if idempotencyKey == "" {
		return ErrIdempotencyKeyIsRequired
	}

	c.idempotencyKey = idempotencyKey
	return nil
}
