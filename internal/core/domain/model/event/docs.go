// Package event provides the DomainEvent value object for the order lifecycle
// engine. A DomainEvent is an immutable record of a single accepted state
// transition on an aggregate. Events are append-only: once created they are
// never mutated or deleted, and an aggregate's state is fully determined by
// replaying its events in sequence order.
//
// The package also owns the JSON wire shape of an event. The shape is the
// persisted and transmitted contract and round-trips losslessly:
//
//	{
//	  "event_id": "...",
//	  "event_type": "order_paid",
//	  "aggregate_id": "...",
//	  "aggregate_type": "Order",
//	  "payload": {...},
//	  "metadata": {"user_id": "...", "timestamp": "...", "version": 1},
//	  "idempotency_key": "...",
//	  "occurred_at": "..."
//	}
package event
