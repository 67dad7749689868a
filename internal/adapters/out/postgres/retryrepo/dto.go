// Package retryrepo persists per-(event, handler) delivery state for the
// retry coordinator. One row exists per delivery; Save upserts on the
// composite primary key.
package retryrepo

import (
	"time"

	"github.com/google/uuid"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/retry"
)

// RecordDTO represents the database structure of one delivery record.
type RecordDTO struct {
	EventID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	HandlerID     string    `gorm:"primaryKey"`
	Attempts      int
	State         int       `gorm:"index"`
	NextAttemptAt time.Time `gorm:"index"`
	LastError     string
	// the domain record owns this timestamp; gorm must not auto-touch it
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

// TableName specifies the database table name for delivery records.
func (RecordDTO) TableName() string {
	return "delivery_records"
}

// fromDomain converts a delivery record to its database representation.
func fromDomain(record *retry.Record) RecordDTO {
	return RecordDTO{
		EventID:       record.EventID().Bytes(),
		HandlerID:     record.HandlerID(),
		Attempts:      record.Attempts(),
		State:         int(record.State()),
		NextAttemptAt: record.NextAttemptAt(),
		LastError:     record.LastError(),
		UpdatedAt:     record.UpdatedAt(),
	}
}

// toDomain converts a database DTO back to a delivery record using
// RestoreRecord.
func toDomain(dto RecordDTO) (*retry.Record, error) {
	eventID, err := kernel.UUIDFromBytes(dto.EventID[:])
	if err != nil {
		return nil, err
	}

	return retry.RestoreRecord(
		eventID,
		dto.HandlerID,
		dto.Attempts,
		retry.State(dto.State),
		dto.NextAttemptAt,
		dto.LastError,
		dto.UpdatedAt,
	)
}
