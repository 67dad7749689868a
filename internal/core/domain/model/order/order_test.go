package order_test

import (
	"testing"

	"orderflow/internal/core/domain/model/event"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validItems(t *testing.T) []order.Item {
	t.Helper()
	item, err := order.NewItem("keyboard", 2, 49.90)
	require.NoError(t, err)
	return []order.Item{item}
}

func TestNewOrder(t *testing.T) {
	validID := kernel.NewUUID()

	t.Run("should create pending order at version 1 with created event at sequence 1", func(t *testing.T) {
		o, evt, err := order.NewOrder(validID, "user-1", "user@example.com", validItems(t), "key-1")

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(validID))
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, 1, o.Version())
		assert.Equal(t, "user-1", o.UserID())
		assert.InDelta(t, 99.80, o.Total(), 0.0001)
		assert.Empty(t, o.PaymentID())

		require.NoError(t, evt.Validate())
		assert.Equal(t, event.OrderCreated, evt.EventType())
		assert.Equal(t, 1, evt.Sequence())
		assert.True(t, evt.AggregateID().IsEqual(validID))
		assert.Equal(t, "key-1", evt.IdempotencyKey())
		assert.Equal(t, "user-1", evt.Metadata().UserID)
	})

	t.Run("should fail with invalid UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		o, evt, err := order.NewOrder(invalidID, "user-1", "user@example.com", validItems(t), "key-1")

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Nil(t, evt)
		assert.Contains(t, err.Error(), "UUID must be created")
	})

	t.Run("should fail with empty user", func(t *testing.T) {
		_, _, err := order.NewOrder(validID, "", "user@example.com", validItems(t), "key-1")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail with no line items", func(t *testing.T) {
		_, _, err := order.NewOrder(validID, "user-1", "user@example.com", nil, "key-1")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "order items")
	})

	t.Run("should fail with empty idempotency key", func(t *testing.T) {
		_, _, err := order.NewOrder(validID, "user-1", "user@example.com", validItems(t), "")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestNewItem(t *testing.T) {
	t.Run("should create valid item", func(t *testing.T) {
		item, err := order.NewItem("mouse", 1, 19.99)

		require.NoError(t, err)
		assert.Equal(t, "mouse", item.Name())
		assert.Equal(t, 1, item.Quantity())
		assert.InDelta(t, 19.99, item.Subtotal(), 0.0001)
	})

	t.Run("should reject empty name", func(t *testing.T) {
		_, err := order.NewItem("", 1, 19.99)
		require.Error(t, err)
	})

	t.Run("should reject non-positive quantity", func(t *testing.T) {
		_, err := order.NewItem("mouse", 0, 19.99)
		require.Error(t, err)
	})

	t.Run("should reject negative price", func(t *testing.T) {
		_, err := order.NewItem("mouse", 1, -1)
		require.Error(t, err)
	})
}

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, _, err := order.NewOrder(kernel.NewUUID(), "user-1", "user@example.com", validItems(t), "key-create")
	require.NoError(t, err)
	return o
}

func TestOrder_Pay(t *testing.T) {
	t.Run("should transition pending order to paid with OrderPaid event", func(t *testing.T) {
		o := newPendingOrder(t)

		evt, err := o.Pay("pay-123", "key-pay")

		require.NoError(t, err)
		assert.Equal(t, order.Paid, o.Status())
		assert.Equal(t, 2, o.Version())
		assert.Equal(t, "pay-123", o.PaymentID())
		assert.Equal(t, event.OrderPaid, evt.EventType())
		assert.Equal(t, 2, evt.Sequence())
		assert.Equal(t, "pay-123", evt.Payload()["payment_id"])
	})

	t.Run("should reject paying a paid order", func(t *testing.T) {
		o := newPendingOrder(t)
		_, err := o.Pay("pay-123", "key-pay")
		require.NoError(t, err)

		evt, err := o.Pay("pay-456", "key-pay-2")

		require.Error(t, err)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Nil(t, evt)
		assert.Equal(t, order.Paid, o.Status())
		assert.Equal(t, 2, o.Version())
		assert.Equal(t, "pay-123", o.PaymentID())
	})
}

func TestOrder_LifecycleTransitions(t *testing.T) {
	t.Run("full happy path bumps version and sequence in lockstep", func(t *testing.T) {
		o := newPendingOrder(t)

		steps := []func() (*event.DomainEvent, error){
			func() (*event.DomainEvent, error) { return o.Pay("pay-1", "k2") },
			func() (*event.DomainEvent, error) { return o.StartProcessing("k3") },
			func() (*event.DomainEvent, error) { return o.Ship("k4") },
			func() (*event.DomainEvent, error) { return o.MarkDelivered("k5") },
		}
		expectedTypes := []event.Type{
			event.OrderPaid, event.OrderProcessing, event.OrderShipped, event.OrderDelivered,
		}

		for i, step := range steps {
			evt, err := step()
			require.NoError(t, err)
			assert.Equal(t, expectedTypes[i], evt.EventType())
			assert.Equal(t, i+2, evt.Sequence())
			assert.Equal(t, i+2, o.Version())
		}

		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("should reject shipping a pending order and change nothing", func(t *testing.T) {
		o := newPendingOrder(t)

		evt, err := o.Ship("k-ship")

		require.Error(t, err)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Nil(t, evt)
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, 1, o.Version())

		var transitionErr *order.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, order.Pending, transitionErr.From)
		assert.Equal(t, order.Shipped, transitionErr.To)
	})

	t.Run("should reject cancelling a shipped order", func(t *testing.T) {
		o := newPendingOrder(t)
		_, err := o.Pay("pay-1", "k2")
		require.NoError(t, err)
		_, err = o.StartProcessing("k3")
		require.NoError(t, err)
		_, err = o.Ship("k4")
		require.NoError(t, err)

		evt, err := o.Cancel("changed my mind", "k5")

		require.Error(t, err)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Nil(t, evt)
		assert.Equal(t, order.Shipped, o.Status())
	})

	t.Run("should cancel a pending order with reason in payload", func(t *testing.T) {
		o := newPendingOrder(t)

		evt, err := o.Cancel("out of stock", "k2")

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, o.Status())
		assert.Equal(t, event.OrderCancelled, evt.EventType())
		assert.Equal(t, "out of stock", evt.Payload()["reason"])
	})

	t.Run("should fail payment only from pending", func(t *testing.T) {
		o := newPendingOrder(t)

		evt, err := o.FailPayment("card declined", "k2")

		require.NoError(t, err)
		assert.Equal(t, order.Failed, o.Status())
		assert.Equal(t, event.PaymentFailed, evt.EventType())

		paid := newPendingOrder(t)
		_, err = paid.Pay("pay-1", "k2")
		require.NoError(t, err)

		_, err = paid.FailPayment("late decline", "k3")
		require.Error(t, err)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("zero value order fails validation", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("nil order fails validation", func(t *testing.T) {
		var o *order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should restore order from snapshot values", func(t *testing.T) {
		o := newPendingOrder(t)
		_, err := o.Pay("pay-1", "k2")
		require.NoError(t, err)

		restored, err := order.RestoreOrder(
			o.ID(), o.UserID(), o.Email(), o.PaymentID(), o.Items(), o.Total(),
			o.Status(), o.Version(), o.CreatedAt(), o.UpdatedAt(),
		)

		require.NoError(t, err)
		assert.True(t, restored.IsEqual(o))
		assert.Equal(t, order.Paid, restored.Status())
		assert.Equal(t, 2, restored.Version())
		assert.Equal(t, "pay-1", restored.PaymentID())
	})

	t.Run("should reject invalid version", func(t *testing.T) {
		o := newPendingOrder(t)

		_, err := order.RestoreOrder(
			o.ID(), o.UserID(), o.Email(), "", o.Items(), o.Total(),
			o.Status(), 0, o.CreatedAt(), o.UpdatedAt(),
		)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	})

	t.Run("should reject invalid status", func(t *testing.T) {
		o := newPendingOrder(t)

		_, err := order.RestoreOrder(
			o.ID(), o.UserID(), o.Email(), "", o.Items(), o.Total(),
			order.Unknown, 1, o.CreatedAt(), o.UpdatedAt(),
		)

		require.Error(t, err)
	})
}
