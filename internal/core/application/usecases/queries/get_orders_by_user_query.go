package queries

import (
	"errors"

	"orderflow/internal/pkg/guard"
)

var (
	ErrGetOrdersByUserQueryIsNotConstructed = errors.New(
		"GetOrdersByUserQuery must be created via NewGetOrdersByUserQuery constructor",
	)
	ErrUserIDIsRequired = errors.New("user id is required")
)

// GetOrdersByUserQuery retrieves all orders placed by one user, newest
// first.
type GetOrdersByUserQuery struct {
	userID string

	guard guard.ConstructorGuard
}

// NewGetOrdersByUserQuery creates a query for a user's orders.
func NewGetOrdersByUserQuery(userID string) (GetOrdersByUserQuery, error) {
	if userID == "" {
		return GetOrdersByUserQuery{}, ErrUserIDIsRequired
	}

	return GetOrdersByUserQuery{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersByUserQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersByUserQueryIsNotConstructed)
}

// UserID returns the identifier of the user whose orders are requested.
func (q GetOrdersByUserQuery) UserID() string {
	return q.userID
}
