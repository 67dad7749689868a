// Package eventrepo persists the append-only domain event log. Events are
// immutable once stored; the only write path is Append. Uniqueness of the
// idempotency key and of the (aggregate, sequence) pair is enforced by the
// database so concurrent appends cannot both win.
package eventrepo

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"orderflow/internal/core/domain/model/event"
	"orderflow/internal/core/domain/model/kernel"
)

// EventDTO represents the database structure of one stored event. The
// idempotency key is globally unique; (aggregate_id, sequence) is unique per
// aggregate history slot.
type EventDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventType      string    `gorm:"index"`
	AggregateID    uuid.UUID `gorm:"type:uuid;uniqueIndex:ux_events_aggregate_sequence"`
	Sequence       int       `gorm:"uniqueIndex:ux_events_aggregate_sequence"`
	AggregateType  string
	Payload        []byte `gorm:"type:jsonb"`
	UserID         string
	SchemaVersion  int
	IdempotencyKey string    `gorm:"uniqueIndex"`
	OccurredAt     time.Time `gorm:"index"`
}

// TableName specifies the database table name for stored events.
func (EventDTO) TableName() string {
	return "events"
}

// fromDomain converts a domain event to its database representation.
func fromDomain(evt *event.DomainEvent) (EventDTO, error) {
	payload, err := json.Marshal(evt.Payload())
	if err != nil {
		return EventDTO{}, err
	}

	return EventDTO{
		ID:             evt.ID().Bytes(),
		EventType:      string(evt.EventType()),
		AggregateID:    evt.AggregateID().Bytes(),
		Sequence:       evt.Sequence(),
		AggregateType:  evt.AggregateType(),
		Payload:        payload,
		UserID:         evt.Metadata().UserID,
		SchemaVersion:  evt.Metadata().Version,
		IdempotencyKey: evt.IdempotencyKey(),
		OccurredAt:     evt.OccurredAt(),
	}, nil
}

// toDomain converts a database DTO back to a domain event using Restore.
func toDomain(dto EventDTO) (*event.DomainEvent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	aggregateID, err := kernel.UUIDFromBytes(dto.AggregateID[:])
	if err != nil {
		return nil, err
	}

	var payload map[string]any
	if err = json.Unmarshal(dto.Payload, &payload); err != nil {
		return nil, err
	}

	return event.Restore(
		id,
		event.Type(dto.EventType),
		aggregateID,
		dto.AggregateType,
		payload,
		event.Metadata{
			UserID:    dto.UserID,
			Timestamp: dto.OccurredAt,
			Version:   dto.SchemaVersion,
		},
		dto.IdempotencyKey,
		dto.Sequence,
	)
}
