package order

import (
	"fmt"

	"orderflow/internal/core/domain/model/event"
	"orderflow/internal/pkg/errs"
)

// Replay rebuilds an Order purely from its event history, ordered by
// sequence ascending. The history must start with an OrderCreated event at
// sequence 1 and contain no gaps. Every transition event is re-validated
// against the status table, so a history that could not have been produced
// by the aggregate is rejected.
func Replay(events []*event.DomainEvent) (*Order, error) {
	if len(events) == 0 {
		return nil, errs.NewValueIsRequiredError("event history")
	}

	first := events[0]
	if first.EventType() != event.OrderCreated || first.Sequence() != 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("event history",
			fmt.Errorf("history must start with %s at sequence 1, got %s at %d",
				event.OrderCreated, first.EventType(), first.Sequence()))
	}

	o, err := orderFromCreated(first)
	if err != nil {
		return nil, err
	}

	for _, evt := range events[1:] {
		if !evt.AggregateID().IsEqual(o.id) {
			return nil, errs.NewValueIsInvalidErrorWithCause("event history",
				fmt.Errorf("event %s belongs to aggregate %s, not %s",
					evt.ID(), evt.AggregateID(), o.id))
		}
		if evt.Sequence() != o.version+1 {
			return nil, errs.NewValueIsInvalidErrorWithCause("event history",
				fmt.Errorf("expected sequence %d, got %d", o.version+1, evt.Sequence()))
		}

		if err = o.apply(evt); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// apply advances the order by one historical event, enforcing the same
// transition rules that produced it.
func (o *Order) apply(evt *event.DomainEvent) error {
	target, err := StatusForEventType(evt.EventType())
	if err != nil {
		return err
	}

	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	if evt.EventType() == event.OrderPaid {
		if paymentID, ok := evt.Payload()["payment_id"].(string); ok {
			o.paymentID = paymentID
		}
	}

	o.status = newStatus
	o.version++
	o.updatedAt = evt.OccurredAt()
	return nil
}

// StatusForEventType maps a transition event type to the status it moves the
// order into. OrderCreated maps to Pending.
func StatusForEventType(t event.Type) (Status, error) {
	switch t {
	case event.OrderCreated:
		return Pending, nil
	case event.OrderPaid:
		return Paid, nil
	case event.OrderProcessing:
		return Processing, nil
	case event.OrderCancelled:
		return Cancelled, nil
	case event.OrderShipped:
		return Shipped, nil
	case event.OrderDelivered:
		return Delivered, nil
	case event.PaymentFailed:
		return Failed, nil
	default:
		return Unknown, errs.NewValueIsInvalidErrorWithCause("event type",
			fmt.Errorf("%s does not map to a status transition", t))
	}
}

func orderFromCreated(evt *event.DomainEvent) (*Order, error) {
	payload := evt.Payload()

	userID, _ := payload["user_id"].(string)
	email, _ := payload["email"].(string)

	items, err := itemsFromPayload(payload["items"])
	if err != nil {
		return nil, err
	}

	occurredAt := evt.OccurredAt()
	return &Order{
		id:            evt.AggregateID(),
		userID:        userID,
		email:         email,
		items:         items,
		total:         numberFromPayload(payload["total"]),
		status:        Pending,
		version:       1,
		createdAt:     occurredAt,
		updatedAt:     occurredAt,
		isConstructed: true,
	}, nil
}

// itemsFromPayload tolerates both in-process payloads and payloads that went
// through a JSON round trip, where numbers arrive as float64.
func itemsFromPayload(raw any) ([]Item, error) {
	entries, ok := raw.([]any)
	if !ok {
		return nil, errs.NewValueIsInvalidError("order created payload items")
	}

	items := make([]Item, 0, len(entries))
	for _, entry := range entries {
		fields, ok := entry.(map[string]any)
		if !ok {
			return nil, errs.NewValueIsInvalidError("order created payload items")
		}

		name, _ := fields["name"].(string)
		item, err := NewItem(name, int(numberFromPayload(fields["quantity"])), numberFromPayload(fields["unit_price"]))
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func numberFromPayload(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
