package eventrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"orderflow/internal/core/domain/model/event"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// GormEventStore implements EventStore using GORM. It requires the gorm
// connection to be opened with TranslateError so unique violations surface
// as gorm.ErrDuplicatedKey.
type GormEventStore struct {
	db *gorm.DB
	// lookupDB is used to disambiguate unique violations. It must not be a
	// transaction: after a unique violation PostgreSQL aborts the enclosing
	// transaction and refuses further statements on it, so the lookup has to
	// run on a separate connection.
	lookupDB *gorm.DB
}

// NewGormEventStore creates a new GORM event store over a root connection.
func NewGormEventStore(db *gorm.DB) *GormEventStore {
	return &GormEventStore{db: db, lookupDB: db}
}

// NewGormEventStoreInTx creates an event store writing through tx while
// resolving duplicate-key conflicts on the root connection.
func NewGormEventStoreInTx(tx, root *gorm.DB) *GormEventStore {
	return &GormEventStore{db: tx, lookupDB: root}
}

// Append persists the event. A duplicated idempotency key is not a failure:
// the previously stored event is returned together with
// ports.ErrDuplicateIdempotencyKey. A duplicated (aggregate, sequence) slot
// means a concurrent append won the race and fails with
// errs.ErrSequenceConflict.
func (s *GormEventStore) Append(ctx context.Context, evt *event.DomainEvent) (*event.DomainEvent, error) {
	if err := evt.Validate(); err != nil {
		return nil, err
	}

	dto, err := fromDomain(evt)
	if err != nil {
		return nil, err
	}

	if err = s.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}

		// Disambiguate which unique constraint fired: an existing event under
		// the same idempotency key means a replay, otherwise the history slot
		// was claimed concurrently.
		prior, getErr := getByIdempotencyKey(ctx, s.lookupDB, evt.IdempotencyKey())
		if getErr == nil {
			return prior, ports.ErrDuplicateIdempotencyKey
		}
		if !errors.Is(getErr, errs.ErrObjectNotFound) {
			return nil, getErr
		}

		return nil, errs.NewSequenceConflictErrorWithCause(
			evt.AggregateID().String(), evt.Sequence(), err)
	}

	return evt, nil
}

// ListByAggregate returns the aggregate's events ordered by sequence ascending.
func (s *GormEventStore) ListByAggregate(ctx context.Context, aggregateID kernel.UUID) ([]*event.DomainEvent, error) {
	var dtos []EventDTO

	err := s.db.WithContext(ctx).
		Where("aggregate_id = ?", aggregateID.Bytes()).
		Order("sequence ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]*event.DomainEvent, 0, len(dtos))
	for _, dto := range dtos {
		evt, restoreErr := toDomain(dto)
		if restoreErr != nil {
			return nil, fmt.Errorf("corrupt event at sequence %d: %w", dto.Sequence, restoreErr)
		}
		events = append(events, evt)
	}

	return events, nil
}

// GetByIdempotencyKey returns the event stored under the key.
func (s *GormEventStore) GetByIdempotencyKey(ctx context.Context, key string) (*event.DomainEvent, error) {
	return getByIdempotencyKey(ctx, s.db, key)
}

func getByIdempotencyKey(ctx context.Context, db *gorm.DB, key string) (*event.DomainEvent, error) {
	var dto EventDTO

	err := db.WithContext(ctx).First(&dto, "idempotency_key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("event", key)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByID returns the event with the given identifier.
func (s *GormEventStore) GetByID(ctx context.Context, id kernel.UUID) (*event.DomainEvent, error) {
	var dto EventDTO

	err := s.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("event", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
