package queries

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"orderflow/internal/core/domain/model/event"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// GetOrderEventsQueryHandler reads an order's event history from the event
// log, ordered by sequence ascending. Results are restored domain events, so
// serializing them yields the exact wire envelope external consumers see.
type GetOrderEventsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderEventsQueryHandler creates a handler for event history queries.
// Requires a GORM database connection for query execution.
func NewGetOrderEventsQueryHandler(db *gorm.DB) GetOrderEventsQueryHandler {
	return GetOrderEventsQueryHandler{db: db}
}

// Handle executes the query. Every order carries at least its creation event,
// so an empty history means the order does not exist and fails with
// ObjectNotFound.
func (h GetOrderEventsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderEventsQuery,
) ([]*event.DomainEvent, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			event_type,
			aggregate_type,
			payload,
			user_id,
			schema_version,
			idempotency_key,
			sequence,
			occurred_at
		FROM events
		WHERE aggregate_id = ?
		ORDER BY sequence
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*event.DomainEvent, 0)

	for rows.Next() {
		var (
			id             uuid.UUID
			eventType      string
			aggregateType  string
			rawPayload     []byte
			userID         string
			schemaVersion  int
			idempotencyKey string
			sequence       int
			occurredAt     time.Time
		)

		err = rows.Scan(
			&id,
			&eventType,
			&aggregateType,
			&rawPayload,
			&userID,
			&schemaVersion,
			&idempotencyKey,
			&sequence,
			&occurredAt,
		)
		if err != nil {
			return nil, err
		}

		eventID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		var payload map[string]any
		if len(rawPayload) > 0 {
			if err = json.Unmarshal(rawPayload, &payload); err != nil {
				return nil, fmt.Errorf("corrupt event payload at sequence %d: %w", sequence, err)
			}
		}

		evt, restoreErr := event.Restore(
			eventID,
			event.Type(eventType),
			query.OrderID(),
			aggregateType,
			payload,
			event.Metadata{
				UserID:    userID,
				Timestamp: occurredAt,
				Version:   schemaVersion,
			},
			idempotencyKey,
			sequence,
		)
		if restoreErr != nil {
			return nil, fmt.Errorf("corrupt event at sequence %d: %w", sequence, restoreErr)
		}
		events = append(events, evt)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(events) == 0 {
		return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	return events, nil
}
