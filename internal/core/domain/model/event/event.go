package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// AggregateTypeOrder is the aggregate type recorded on events produced by the
// order aggregate.
const AggregateTypeOrder = "Order"

// SchemaVersion is the current version of the event wire shape, recorded in
// every event's metadata.
const SchemaVersion = 1

var (
	// ErrEventIsNotConstructed is returned when a DomainEvent instance was not
	// created through the New or Restore factory functions.
	ErrEventIsNotConstructed = errors.New("DomainEvent must be created via New or Restore")

	ErrUnknownEventType = errs.NewValueIsInvalidError("event type")
)

// Type identifies the kind of state transition an event records.
type Type string

const (
	OrderCreated    Type = "order_created"
	OrderPaid       Type = "order_paid"
	OrderProcessing Type = "order_processing"
	OrderCancelled  Type = "order_cancelled"
	OrderShipped    Type = "order_shipped"
	OrderDelivered  Type = "order_delivered"
	PaymentFailed   Type = "payment_failed"
)

// Validate checks that the type is one of the defined event types.
func (t Type) Validate() error {
	switch t {
	case OrderCreated, OrderPaid, OrderProcessing, OrderCancelled, OrderShipped, OrderDelivered, PaymentFailed:
		return nil
	default:
		return ErrUnknownEventType
	}
}

func (t Type) String() string {
	return string(t)
}

// Metadata carries the actor, occurrence timestamp and wire schema version of
// an event.
type Metadata struct {
	UserID    string
	Timestamp time.Time
	Version   int
}

// DomainEvent is an immutable record of one accepted aggregate state
// transition.
//
// Invariants:
//   - (aggregate ID, sequence) is unique within the event log
//   - the idempotency key is globally unique; a second append with the same
//     key returns the original record instead of creating a new one
type DomainEvent struct {
	id             kernel.UUID
	eventType      Type
	aggregateID    kernel.UUID
	aggregateType  string
	payload        map[string]any
	metadata       Metadata
	idempotencyKey string
	sequence       int

	isConstructed bool
}

// New builds a DomainEvent for a freshly accepted transition. The event gets
// a random ID, the current schema version and the supplied occurrence
// timestamp. Sequence is the event's position in the aggregate's history,
// starting at 1.
func New(
	eventType Type,
	aggregateID kernel.UUID,
	payload map[string]any,
	userID string,
	idempotencyKey string,
	sequence int,
	occurredAt time.Time,
) (*DomainEvent, error) {
	if err := eventType.Validate(); err != nil {
		return nil, err
	}
	if err := aggregateID.Validate(); err != nil {
		return nil, err
	}
	if idempotencyKey == "" {
		return nil, errs.NewValueIsRequiredError("idempotency key")
	}
	if sequence < 1 {
		return nil, errs.NewValueIsOutOfRangeError("sequence", sequence, 1, "unbounded")
	}
	if payload == nil {
		payload = map[string]any{}
	}

	return &DomainEvent{
		id:            kernel.NewUUID(),
		eventType:     eventType,
		aggregateID:   aggregateID,
		aggregateType: AggregateTypeOrder,
		payload:       payload,
		metadata: Metadata{
			UserID:    userID,
			Timestamp: occurredAt,
			Version:   SchemaVersion,
		},
		idempotencyKey: idempotencyKey,
		sequence:       sequence,
		isConstructed:  true,
	}, nil
}

// Restore rebuilds a DomainEvent from persistence. All attributes, including
// the original event ID and metadata, are taken as stored.
func Restore(
	id kernel.UUID,
	eventType Type,
	aggregateID kernel.UUID,
	aggregateType string,
	payload map[string]any,
	metadata Metadata,
	idempotencyKey string,
	sequence int,
) (*DomainEvent, error) {
	if err := errors.Join(id.Validate(), eventType.Validate(), aggregateID.Validate()); err != nil {
		return nil, err
	}
	if payload == nil {
		payload = map[string]any{}
	}

	return &DomainEvent{
		id:             id,
		eventType:      eventType,
		aggregateID:    aggregateID,
		aggregateType:  aggregateType,
		payload:        payload,
		metadata:       metadata,
		idempotencyKey: idempotencyKey,
		sequence:       sequence,
		isConstructed:  true,
	}, nil
}

// Validate ensures the event was created through New or Restore.
func (e *DomainEvent) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEventIsNotConstructed
	}
	return nil
}

// ID returns the event's unique identifier.
func (e *DomainEvent) ID() kernel.UUID {
	return e.id
}

// EventType returns the kind of transition the event records.
func (e *DomainEvent) EventType() Type {
	return e.eventType
}

// AggregateID returns the identifier of the aggregate the event belongs to.
func (e *DomainEvent) AggregateID() kernel.UUID {
	return e.aggregateID
}

// AggregateType returns the type name of the aggregate the event belongs to.
func (e *DomainEvent) AggregateType() string {
	return e.aggregateType
}

// Payload returns a copy of the event-type-specific payload. Copying keeps
// the event immutable to callers.
func (e *DomainEvent) Payload() map[string]any {
	payload := make(map[string]any, len(e.payload))
	for k, v := range e.payload {
		payload[k] = v
	}
	return payload
}

// Metadata returns the actor, occurrence timestamp and schema version.
func (e *DomainEvent) Metadata() Metadata {
	return e.metadata
}

// IdempotencyKey returns the caller-supplied token that ties the event to
// exactly one logical operation.
func (e *DomainEvent) IdempotencyKey() string {
	return e.idempotencyKey
}

// Sequence returns the event's position in its aggregate's history, starting at 1.
func (e *DomainEvent) Sequence() int {
	return e.sequence
}

// OccurredAt returns the occurrence timestamp of the transition.
func (e *DomainEvent) OccurredAt() time.Time {
	return e.metadata.Timestamp
}

// envelope is the JSON wire shape of an event. The field set and names are a
// stable contract shared with external consumers.
type envelope struct {
	EventID       string         `json:"event_id"`
	EventType     string         `json:"event_type"`
	AggregateID   string         `json:"aggregate_id"`
	AggregateType string         `json:"aggregate_type"`
	Payload       map[string]any `json:"payload"`
	Metadata      struct {
		UserID    string    `json:"user_id"`
		Timestamp time.Time `json:"timestamp"`
		Version   int       `json:"version"`
	} `json:"metadata"`
	IdempotencyKey string    `json:"idempotency_key"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// MarshalJSON serializes the event into its wire envelope.
func (e *DomainEvent) MarshalJSON() ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	var env envelope
	env.EventID = e.id.String()
	env.EventType = string(e.eventType)
	env.AggregateID = e.aggregateID.String()
	env.AggregateType = e.aggregateType
	env.Payload = e.payload
	env.Metadata.UserID = e.metadata.UserID
	env.Metadata.Timestamp = e.metadata.Timestamp
	env.Metadata.Version = e.metadata.Version
	env.IdempotencyKey = e.idempotencyKey
	env.OccurredAt = e.metadata.Timestamp

	return json.Marshal(env)
}

// UnmarshalWire parses a wire envelope back into a DomainEvent. The sequence
// number is not part of the wire shape; callers that need it (the event
// store) persist it alongside the envelope.
func UnmarshalWire(data []byte, sequence int) (*DomainEvent, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("invalid event envelope: %w", err)
	}

	id, err := kernel.UUIDFromString(env.EventID)
	if err != nil {
		return nil, err
	}
	aggregateID, err := kernel.UUIDFromString(env.AggregateID)
	if err != nil {
		return nil, err
	}

	return Restore(
		id,
		Type(env.EventType),
		aggregateID,
		env.AggregateType,
		env.Payload,
		Metadata{
			UserID:    env.Metadata.UserID,
			Timestamp: env.OccurredAt,
			Version:   env.Metadata.Version,
		},
		env.IdempotencyKey,
		sequence,
	)
}
