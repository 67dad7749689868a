package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/retry"
)

// GetDeadLettersQueryResponse is one parked delivery, joined with its event
// so operators can tell what failed without a second lookup.
type GetDeadLettersQueryResponse struct {
	EventID     kernel.UUID `json:"event_id"`
	HandlerID   string      `json:"handler_id"`
	EventType   string      `json:"event_type"`
	AggregateID kernel.UUID `json:"aggregate_id"`
	Attempts    int         `json:"attempts"`
	LastError   string      `json:"last_error"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// GetDeadLettersQueryHandler reads dead-lettered deliveries straight from
// the retry bookkeeping table.
type GetDeadLettersQueryHandler struct {
	db *gorm.DB
}

// NewGetDeadLettersQueryHandler creates a handler for dead-letter listings.
// Requires a GORM database connection for query execution.
func NewGetDeadLettersQueryHandler(db *gorm.DB) GetDeadLettersQueryHandler {
	return GetDeadLettersQueryHandler{db: db}
}

// Handle executes the query, most recently failed first.
func (h GetDeadLettersQueryHandler) Handle(
	ctx context.Context,
	_ GetDeadLettersQuery,
) ([]GetDeadLettersQueryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT r.event_id, r.handler_id, e.event_type, e.aggregate_id,
		       r.attempts, r.last_error, r.updated_at
		FROM delivery_records r
		JOIN events e ON e.id = r.event_id
		WHERE r.state = ?
		ORDER BY r.updated_at DESC
	`, int(retry.DeadLettered)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var responses []GetDeadLettersQueryResponse
	for rows.Next() {
		var (
			eventID     uuid.UUID
			aggregateID uuid.UUID
			response    GetDeadLettersQueryResponse
		)
		err := rows.Scan(
			&eventID, &response.HandlerID, &response.EventType, &aggregateID,
			&response.Attempts, &response.LastError, &response.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		response.EventID, err = kernel.UUIDFromBytes(eventID[:])
		if err != nil {
			return nil, err
		}
		response.AggregateID, err = kernel.UUIDFromBytes(aggregateID[:])
		if err != nil {
			return nil, err
		}

		responses = append(responses, response)
	}

	return responses, rows.Err()
}
