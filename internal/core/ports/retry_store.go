package ports

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/retry"
)

// RetryStore persists per-(event, handler) delivery state. It is written
// only by the retry coordinator; no other component mutates retry records.
type RetryStore interface {
	// Save inserts or updates the record keyed by (event ID, handler ID).
	Save(ctx context.Context, record *retry.Record) error

	// Get retrieves the record for an (event, handler) pair, or an
	// errs.ObjectNotFoundError when none exists.
	Get(ctx context.Context, eventID kernel.UUID, handlerID string) (*retry.Record, error)

	// GetAllDue returns records scheduled for retry whose next attempt time
	// is at or before now, ordered by next attempt time ascending.
	GetAllDue(ctx context.Context, now time.Time) ([]*retry.Record, error)

	// GetAllStale returns in-progress records last updated at or before the
	// given time. These are attempts whose outcome was never recorded.
	GetAllStale(ctx context.Context, before time.Time) ([]*retry.Record, error)

	// GetAllDeadLettered returns records parked for manual intervention.
	GetAllDeadLettered(ctx context.Context) ([]*retry.Record, error)
}
