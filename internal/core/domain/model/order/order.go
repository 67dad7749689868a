package order

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/event"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder, RestoreOrder or Replay factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder, RestoreOrder, or Replay")
)

// Order is the aggregate root of the order lifecycle engine. It owns the
// order's state and produces exactly one domain event per accepted state
// transition, never a transition without an event or an event without a
// transition.
//
// Order follows these invariants:
//   - Status is always one of the defined lifecycle states
//   - Version strictly increases by 1 per accepted transition
//   - Every event's sequence number equals the version it produced
//   - Current state is fully determined by replaying the event history
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated methods. Persistence and event storage happen
// in the command layer as one atomic unit; the aggregate itself has no side
// effects beyond returning the new snapshot and event.
type Order struct {
	id        kernel.UUID
	userID    string
	email     string
	paymentID string
	items     []Item
	total     float64
	status    Status
	version   int
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrder creates a new Order in Pending status at version 1 and returns it
// together with the OrderCreated event at sequence 1.
//
// Fails with an errs value error when the order details are structurally
// invalid: zero ID, empty user, or no line items. The idempotency key ties
// the creation to exactly one logical operation and is recorded on the event.
func NewOrder(id kernel.UUID, userID, email string, items []Item, idempotencyKey string) (*Order, *event.DomainEvent, error) {
	if err := errors.Join(
		id.Validate(),
		validateUserID(userID),
		validateItems(items),
	); err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	o := &Order{
		id:            id,
		userID:        userID,
		email:         email,
		items:         append([]Item(nil), items...),
		total:         totalOf(items),
		status:        Pending,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	payload := map[string]any{
		"user_id": userID,
		"email":   email,
		"items":   itemsPayload(items),
		"total":   o.total,
	}
	evt, err := event.New(event.OrderCreated, id, payload, userID, idempotencyKey, o.version, now)
	if err != nil {
		return nil, nil, err
	}

	return o, evt, nil
}

// RestoreOrder rebuilds an Order from a persisted snapshot. All attributes
// are taken as stored; the status and version must already be valid.
func RestoreOrder(
	id kernel.UUID,
	userID, email, paymentID string,
	items []Item,
	total float64,
	status Status,
	version int,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	if err := errors.Join(id.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	if version < 1 {
		return nil, errs.NewVersionIsInvalidErrorWithCause("order version",
			fmt.Errorf("%d is not greater than 0", version))
	}

	return &Order{
		id:            id,
		userID:        userID,
		email:         email,
		paymentID:     paymentID,
		items:         append([]Item(nil), items...),
		total:         total,
		status:        status,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// UserID returns the identifier of the user who placed the order.
func (o *Order) UserID() string {
	return o.userID
}

// Email returns the contact email for the order.
func (o *Order) Email() string {
	return o.email
}

// PaymentID returns the payment reference, empty until the order is paid.
func (o *Order) PaymentID() string {
	return o.paymentID
}

// Items returns a copy of the order's line items.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

// Total returns the order total, the sum of line item subtotals.
func (o *Order) Total() float64 {
	return o.total
}

// Status returns the current lifecycle state of the order.
func (o *Order) Status() Status {
	return o.status
}

// Version returns the monotonic version, incremented by 1 per accepted
// transition. Used for optimistic concurrency control.
func (o *Order) Version() int {
	return o.version
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last-modified timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Pay transitions the order from Pending to Paid, recording the payment
// reference, and returns the OrderPaid event.
func (o *Order) Pay(paymentID, idempotencyKey string) (*event.DomainEvent, error) {
	evt, err := o.transition(Paid, event.OrderPaid, map[string]any{
		"payment_id": paymentID,
		"total":      o.total,
	}, idempotencyKey)
	if err != nil {
		return nil, err
	}

	o.paymentID = paymentID
	return evt, nil
}

// StartProcessing transitions the order from Paid to Processing and returns
// the OrderProcessing event.
func (o *Order) StartProcessing(idempotencyKey string) (*event.DomainEvent, error) {
	return o.transition(Processing, event.OrderProcessing, nil, idempotencyKey)
}

// Cancel transitions the order to Cancelled and returns the OrderCancelled
// event. Allowed from Pending and Paid only.
func (o *Order) Cancel(reason, idempotencyKey string) (*event.DomainEvent, error) {
	return o.transition(Cancelled, event.OrderCancelled, map[string]any{
		"reason": reason,
	}, idempotencyKey)
}

// Ship transitions the order from Processing to Shipped and returns the
// OrderShipped event.
func (o *Order) Ship(idempotencyKey string) (*event.DomainEvent, error) {
	return o.transition(Shipped, event.OrderShipped, nil, idempotencyKey)
}

// MarkDelivered transitions the order from Shipped to Delivered and returns
// the OrderDelivered event.
func (o *Order) MarkDelivered(idempotencyKey string) (*event.DomainEvent, error) {
	return o.transition(Delivered, event.OrderDelivered, nil, idempotencyKey)
}

// FailPayment transitions the order from Pending to Failed and returns the
// PaymentFailed event. Failed is reachable from Pending only.
func (o *Order) FailPayment(reason, idempotencyKey string) (*event.DomainEvent, error) {
	return o.transition(Failed, event.PaymentFailed, map[string]any{
		"reason": reason,
	}, idempotencyKey)
}

// transition validates the requested status change against the table, bumps
// the version and timestamp, and builds the typed event with the next
// sequence number. On rejection nothing changes and no event is produced.
func (o *Order) transition(
	target Status,
	eventType event.Type,
	payload map[string]any,
	idempotencyKey string,
) (*event.DomainEvent, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	evt, err := event.New(eventType, o.id, payload, o.userID, idempotencyKey, o.version+1, now)
	if err != nil {
		return nil, err
	}

	o.status = newStatus
	o.version++
	o.updatedAt = now
	return evt, nil
}

func validateUserID(userID string) error {
	if userID == "" {
		return errs.NewValueIsRequiredError("user id")
	}
	return nil
}

func totalOf(items []Item) float64 {
	var total float64
	for _, item := range items {
		total += item.Subtotal()
	}
	return total
}

func itemsPayload(items []Item) []any {
	payload := make([]any, 0, len(items))
	for _, item := range items {
		payload = append(payload, map[string]any{
			"name":       item.Name(),
			"quantity":   item.Quantity(),
			"unit_price": item.UnitPrice(),
		})
	}
	return payload
}
