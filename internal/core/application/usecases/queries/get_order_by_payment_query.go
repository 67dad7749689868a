package queries

import (
	"errors"

	"orderflow/internal/pkg/guard"
)

var (
	ErrGetOrderByPaymentQueryIsNotConstructed = errors.New(
		"GetOrderByPaymentQuery must be created via NewGetOrderByPaymentQuery constructor",
	)
	ErrPaymentIDIsRequired = errors.New("payment id is required")
)

// GetOrderByPaymentQuery retrieves the order referencing one payment.
// Payment references are recorded when an order is paid, so only paid (or
// later) orders are findable this way.
type GetOrderByPaymentQuery struct {
	paymentID string

	guard guard.ConstructorGuard
}

// NewGetOrderByPaymentQuery creates a query for the order behind a payment.
func NewGetOrderByPaymentQuery(paymentID string) (GetOrderByPaymentQuery, error) {
	if paymentID == "" {
		return GetOrderByPaymentQuery{}, ErrPaymentIDIsRequired
	}

	return GetOrderByPaymentQuery{
		paymentID: paymentID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderByPaymentQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderByPaymentQueryIsNotConstructed)
}

// PaymentID returns the payment reference being looked up.
func (q GetOrderByPaymentQuery) PaymentID() string {
	return q.paymentID
}
