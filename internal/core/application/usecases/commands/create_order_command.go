package commands

import (
	"errors"
	"strings"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrUserIDIsRequired         = errors.New("user id is required")
	ErrEmailIsInvalid           = errors.New("email must contain a mailbox and a domain")
	ErrItemsAreRequired         = errors.New("at least one line item is required")
	ErrIdempotencyKeyIsRequired = errors.New("idempotency key is required")
)

// CreateOrderCommand represents a request to place a new order. Encapsulates
// the buyer's identity, contact email and the line items being purchased.
// The idempotency key makes retried submissions collapse into one order.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	userID         string
	email          string
	items          []order.Item
	idempotencyKey string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates that the order ID is valid, the user and email are present,
// there is at least one item and the idempotency key is non-empty.
func NewCreateOrderCommand(
	orderID kernel.UUID, userID, email string, items []order.Item, idempotencyKey string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setUserID(userID),
		cmd.setEmail(email),
		cmd.setItems(items),
		cmd.setIdempotencyKey(idempotencyKey),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will be created under.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// UserID returns the identifier of the buyer placing the order.
func (c CreateOrderCommand) UserID() string {
	return c.userID
}

// Email returns the buyer's contact email.
func (c CreateOrderCommand) Email() string {
	return c.email
}

// Items returns the order's line items.
func (c CreateOrderCommand) Items() []order.Item {
	return append([]order.Item(nil), c.items...)
}

// IdempotencyKey returns the key deduplicating retried submissions.
func (c CreateOrderCommand) IdempotencyKey() string {
	return c.idempotencyKey
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setUserID(userID string) error {
	if userID == "" {
		return ErrUserIDIsRequired
	}

	c.userID = userID
	return nil
}

func (c *CreateOrderCommand) setEmail(email string) error {
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return ErrEmailIsInvalid
	}

	c.email = email
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	c.items = append([]order.Item(nil), items...)
	return nil
}

func (c *CreateOrderCommand) setIdempotencyKey(idempotencyKey string) error {
	if idempotencyKey == "" {
		return ErrIdempotencyKeyIsRequired
	}

	c.idempotencyKey = idempotencyKey
	return nil
}
