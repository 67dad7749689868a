package queries

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderResponse represents one order snapshot on the read side. Items is the
// stored JSON verbatim; Status is the lifecycle state in its string form.
type OrderResponse struct {
	ID        kernel.UUID
	UserID    string
	Email     string
	PaymentID string
	Items     json.RawMessage
	Total     float64
	Status    string
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

const orderColumns = `
		id,
		user_id,
		email,
		payment_id,
		items,
		total,
		status,
		version,
		created_at,
		updated_at`

// scanOrders reads order snapshot rows into responses.
func scanOrders(rows *sql.Rows) ([]OrderResponse, error) {
	orders := make([]OrderResponse, 0)

	for rows.Next() {
		var resp OrderResponse
		var id uuid.UUID
		var items []byte
		var status int

		err := rows.Scan(
			&id,
			&resp.UserID,
			&resp.Email,
			&resp.PaymentID,
			&items,
			&resp.Total,
			&status,
			&resp.Version,
			&resp.CreatedAt,
			&resp.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.Items = items
		resp.Status = order.Status(status).String()
		orders = append(orders, resp)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
