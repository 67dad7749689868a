package queries

import (
	"context"
	"time"

	"gorm.io/gorm"

	"orderflow/internal/core/domain/model/event"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
)

// GetOrderHistoryQueryResponse represents one entry of an order's status
// timeline: the state the order entered and when.
type GetOrderHistoryQueryResponse struct {
	Sequence  int       `json:"sequence"`
	EventType string    `json:"event_type"`
	Status    string    `json:"status"`
	EnteredAt time.Time `json:"entered_at"`
}

// GetOrderHistoryQueryHandler derives an order's status timeline from its
// event history. Each stored event maps to the status it moved the order
// into.
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryQueryHandler creates a handler for status timeline
// queries. Requires a GORM database connection for query execution.
func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle executes the query, returning the timeline in sequence order.
// An order with no events does not exist and fails with ObjectNotFound.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	history := make([]GetOrderHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			sequence,
			event_type,
			occurred_at
		FROM events
		WHERE aggregate_id = ?
		ORDER BY sequence
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry GetOrderHistoryQueryResponse

		err = rows.Scan(
			&entry.Sequence,
			&entry.EventType,
			&entry.EnteredAt,
		)
		if err != nil {
			return nil, err
		}

		status, statusErr := order.StatusForEventType(event.Type(entry.EventType))
		if statusErr != nil {
			return nil, statusErr
		}
		entry.Status = status.String()
		history = append(history, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(history) == 0 {
		return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	return history, nil
}
