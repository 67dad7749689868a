package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Updates use optimistic concurrency: writes compare the stored version with
// the version the aggregate was loaded at, and fail with a concurrency
// conflict when another writer got there first.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. The write only
	// succeeds if the stored version equals aggregate.Version()-1; otherwise
	// it fails with errs.ErrConcurrencyConflict and the caller must reread
	// and retry the whole command.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByPaymentID retrieves the order referencing a payment.
	GetByPaymentID(ctx context.Context, paymentID string) (*order.Order, error)

	// GetAllByUserID retrieves all orders placed by a user.
	GetAllByUserID(ctx context.Context, userID string) ([]*order.Order, error)

	// GetAllInStatus retrieves all orders currently in the given status.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)
}
