package queries

import (
	"context"

	"gorm.io/gorm"

	"orderflow/internal/pkg/errs"
)

// GetOrderByPaymentQueryHandler resolves a payment reference to the order
// that recorded it.
type GetOrderByPaymentQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderByPaymentQueryHandler creates a handler for payment lookups.
// Requires a GORM database connection for query execution.
func NewGetOrderByPaymentQueryHandler(db *gorm.DB) GetOrderByPaymentQueryHandler {
	return GetOrderByPaymentQueryHandler{db: db}
}

// Handle executes the query. An unknown payment reference fails with an
// errs.ObjectNotFoundError.
func (h GetOrderByPaymentQueryHandler) Handle(
	ctx context.Context,
	query GetOrderByPaymentQuery,
) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT`+orderColumns+`
		FROM orders
		WHERE payment_id = ?
	`, query.PaymentID()).Rows()
	if err != nil {
		return OrderResponse{}, err
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		return OrderResponse{}, err
	}
	if len(orders) == 0 {
		return OrderResponse{}, errs.NewObjectNotFoundError("order", query.PaymentID())
	}

	return orders[0], nil
}
