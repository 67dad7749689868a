package retryrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/retry"
	"orderflow/internal/pkg/errs"
)

// GormRetryStore implements RetryStore using GORM.
type GormRetryStore struct {
	db *gorm.DB
}

// NewGormRetryStore creates a new GORM retry store.
func NewGormRetryStore(db *gorm.DB) *GormRetryStore {
	return &GormRetryStore{db: db}
}

// Save upserts the record keyed by (event ID, handler ID).
func (s *GormRetryStore) Save(ctx context.Context, record *retry.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}, {Name: "handler_id"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
}

// Get retrieves the record for an (event, handler) pair.
func (s *GormRetryStore) Get(ctx context.Context, eventID kernel.UUID, handlerID string) (*retry.Record, error) {
	var dto RecordDTO

	err := s.db.WithContext(ctx).
		First(&dto, "event_id = ? AND handler_id = ?", eventID.Bytes(), handlerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery record", eventID.String()+"/"+handlerID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllDue returns pending and scheduled records whose next attempt time is
// at or before now, ordered by next attempt time ascending.
func (s *GormRetryStore) GetAllDue(ctx context.Context, now time.Time) ([]*retry.Record, error) {
	var dtos []RecordDTO

	err := s.db.WithContext(ctx).
		Where("state IN ? AND next_attempt_at <= ?",
			[]int{int(retry.Pending), int(retry.ScheduledRetry)}, now).
		Order("next_attempt_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetAllStale returns in-progress records last updated at or before the
// given time, oldest first.
func (s *GormRetryStore) GetAllStale(ctx context.Context, before time.Time) ([]*retry.Record, error) {
	var dtos []RecordDTO

	err := s.db.WithContext(ctx).
		Where("state = ? AND updated_at <= ?", int(retry.InProgress), before).
		Order("updated_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetAllDeadLettered returns records parked for manual intervention, most
// recently failed first.
func (s *GormRetryStore) GetAllDeadLettered(ctx context.Context) ([]*retry.Record, error) {
	var dtos []RecordDTO

	err := s.db.WithContext(ctx).
		Where("state = ?", int(retry.DeadLettered)).
		Order("updated_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

func toDomainAll(dtos []RecordDTO) ([]*retry.Record, error) {
	records := make([]*retry.Record, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
