package event_test

import (
	"encoding/json"
	"testing"
	"time"

	"orderflow/internal/core/domain/model/event"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	aggregateID := kernel.NewUUID()
	occurredAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should create event with metadata and sequence", func(t *testing.T) {
		evt, err := event.New(event.OrderPaid, aggregateID,
			map[string]any{"payment_id": "pay-1"}, "user-1", "key-1", 2, occurredAt)

		require.NoError(t, err)
		require.NoError(t, evt.Validate())
		assert.NoError(t, evt.ID().Validate())
		assert.Equal(t, event.OrderPaid, evt.EventType())
		assert.True(t, evt.AggregateID().IsEqual(aggregateID))
		assert.Equal(t, event.AggregateTypeOrder, evt.AggregateType())
		assert.Equal(t, "key-1", evt.IdempotencyKey())
		assert.Equal(t, 2, evt.Sequence())
		assert.Equal(t, occurredAt, evt.OccurredAt())
		assert.Equal(t, "user-1", evt.Metadata().UserID)
		assert.Equal(t, event.SchemaVersion, evt.Metadata().Version)
	})

	t.Run("should reject unknown event type", func(t *testing.T) {
		_, err := event.New(event.Type("order_refunded"), aggregateID, nil, "user-1", "key-1", 1, occurredAt)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject zero aggregate ID", func(t *testing.T) {
		var zero kernel.UUID
		_, err := event.New(event.OrderPaid, zero, nil, "user-1", "key-1", 1, occurredAt)
		require.Error(t, err)
	})

	t.Run("should reject empty idempotency key", func(t *testing.T) {
		_, err := event.New(event.OrderPaid, aggregateID, nil, "user-1", "", 1, occurredAt)
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject sequence below 1", func(t *testing.T) {
		_, err := event.New(event.OrderPaid, aggregateID, nil, "user-1", "key-1", 0, occurredAt)
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestDomainEvent_Immutability(t *testing.T) {
	t.Run("mutating a returned payload does not affect the event", func(t *testing.T) {
		evt, err := event.New(event.OrderCancelled, kernel.NewUUID(),
			map[string]any{"reason": "oos"}, "user-1", "key-1", 2, time.Now().UTC())
		require.NoError(t, err)

		payload := evt.Payload()
		payload["reason"] = "tampered"

		assert.Equal(t, "oos", evt.Payload()["reason"])
	})
}

func TestDomainEvent_WireShape(t *testing.T) {
	aggregateID := kernel.NewUUID()
	occurredAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("envelope has exactly the contract keys", func(t *testing.T) {
		evt, err := event.New(event.OrderPaid, aggregateID,
			map[string]any{"payment_id": "pay-1", "total": 99.8}, "user-1", "key-1", 2, occurredAt)
		require.NoError(t, err)

		data, err := json.Marshal(evt)
		require.NoError(t, err)

		var raw map[string]any
		require.NoError(t, json.Unmarshal(data, &raw))

		for _, key := range []string{
			"event_id", "event_type", "aggregate_id", "aggregate_type",
			"payload", "metadata", "idempotency_key", "occurred_at",
		} {
			assert.Contains(t, raw, key)
		}
		assert.Len(t, raw, 8)

		metadata, ok := raw["metadata"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, metadata, "user_id")
		assert.Contains(t, metadata, "timestamp")
		assert.Contains(t, metadata, "version")
		assert.Len(t, metadata, 3)
	})

	t.Run("round-trips losslessly", func(t *testing.T) {
		evt, err := event.New(event.OrderCancelled, aggregateID,
			map[string]any{"reason": "out of stock"}, "user-1", "key-2", 3, occurredAt)
		require.NoError(t, err)

		data, err := json.Marshal(evt)
		require.NoError(t, err)

		parsed, err := event.UnmarshalWire(data, evt.Sequence())
		require.NoError(t, err)

		assert.True(t, parsed.ID().IsEqual(evt.ID()))
		assert.Equal(t, evt.EventType(), parsed.EventType())
		assert.True(t, parsed.AggregateID().IsEqual(evt.AggregateID()))
		assert.Equal(t, evt.AggregateType(), parsed.AggregateType())
		assert.Equal(t, evt.Payload(), parsed.Payload())
		assert.Equal(t, evt.IdempotencyKey(), parsed.IdempotencyKey())
		assert.Equal(t, evt.Sequence(), parsed.Sequence())
		assert.True(t, evt.OccurredAt().Equal(parsed.OccurredAt()))
		assert.Equal(t, evt.Metadata().UserID, parsed.Metadata().UserID)
		assert.Equal(t, evt.Metadata().Version, parsed.Metadata().Version)
	})

	t.Run("rejects malformed envelopes", func(t *testing.T) {
		_, err := event.UnmarshalWire([]byte(`{"event_id": "not-a-uuid"}`), 1)
		require.Error(t, err)

		_, err = event.UnmarshalWire([]byte(`{`), 1)
		require.Error(t, err)
	})
}

func TestRestore(t *testing.T) {
	t.Run("zero value event fails validation", func(t *testing.T) {
		var evt event.DomainEvent
		require.ErrorIs(t, evt.Validate(), event.ErrEventIsNotConstructed)
	})

	t.Run("restore preserves stored identity", func(t *testing.T) {
		id := kernel.NewUUID()
		aggregateID := kernel.NewUUID()
		metadata := event.Metadata{UserID: "user-1", Timestamp: time.Now().UTC(), Version: 1}

		evt, err := event.Restore(id, event.OrderShipped, aggregateID,
			event.AggregateTypeOrder, nil, metadata, "key-1", 4)

		require.NoError(t, err)
		assert.True(t, evt.ID().IsEqual(id))
		assert.Equal(t, 4, evt.Sequence())
		assert.NotNil(t, evt.Payload())
	})
}
