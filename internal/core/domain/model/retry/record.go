package retry

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

var (
	// ErrRecordIsNotConstructed is returned when a Record instance was not
	// created through the NewRecord or RestoreRecord factory functions.
	ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord or RestoreRecord")

	// ErrNotDeadLettered is returned when a manual retry targets a record
	// that is not parked in the dead-letter set.
	ErrNotDeadLettered = errors.New("record is not dead-lettered")
)

// Record tracks the delivery of one event to one handler. It owns the
// attempt count, the backoff schedule and the dead-letter flag. Records are
// mutated only by the retry coordinator.
type Record struct {
	eventID       kernel.UUID
	handlerID     string
	attempts      int
	state         State
	nextAttemptAt time.Time
	lastError     string
	updatedAt     time.Time

	isConstructed bool
}

// NewRecord creates a Pending delivery record for an (event, handler) pair.
func NewRecord(eventID kernel.UUID, handlerID string) (*Record, error) {
	if err := eventID.Validate(); err != nil {
		return nil, err
	}
	if handlerID == "" {
		return nil, errs.NewValueIsRequiredError("handler id")
	}

	now := time.Now().UTC()
	return &Record{
		eventID:       eventID,
		handlerID:     handlerID,
		state:         Pending,
		nextAttemptAt: now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreRecord rebuilds a Record from persistence.
func RestoreRecord(
	eventID kernel.UUID,
	handlerID string,
	attempts int,
	state State,
	nextAttemptAt time.Time,
	lastError string,
	updatedAt time.Time,
) (*Record, error) {
	if err := errors.Join(eventID.Validate(), state.Validate()); err != nil {
		return nil, err
	}
	if handlerID == "" {
		return nil, errs.NewValueIsRequiredError("handler id")
	}
	if attempts < 0 {
		return nil, errs.NewValueIsOutOfRangeError("attempts", attempts, 0, "unbounded")
	}

	return &Record{
		eventID:       eventID,
		handlerID:     handlerID,
		attempts:      attempts,
		state:         state,
		nextAttemptAt: nextAttemptAt,
		lastError:     lastError,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Record instance was properly constructed.
func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}
	return nil
}

// EventID returns the identifier of the event being delivered.
func (r *Record) EventID() kernel.UUID {
	return r.eventID
}

// HandlerID returns the identifier of the target handler.
func (r *Record) HandlerID() string {
	return r.handlerID
}

// Attempts returns the number of attempts made so far.
func (r *Record) Attempts() int {
	return r.attempts
}

// State returns the current delivery state.
func (r *Record) State() State {
	return r.state
}

// NextAttemptAt returns the earliest time the next attempt may run.
func (r *Record) NextAttemptAt() time.Time {
	return r.nextAttemptAt
}

// LastError returns the message of the most recent failure, empty if none.
func (r *Record) LastError() string {
	return r.lastError
}

// UpdatedAt returns the time of the last state change.
func (r *Record) UpdatedAt() time.Time {
	return r.updatedAt
}

// IsDeadLettered reports whether the record is parked for manual intervention.
func (r *Record) IsDeadLettered() bool {
	return r.state == DeadLettered
}

// IsDue reports whether the record is eligible to run at the given time:
// Pending records are always eligible, ScheduledRetry records once their
// next attempt time has arrived.
func (r *Record) IsDue(now time.Time) bool {
	switch r.state {
	case Pending:
		return true
	case ScheduledRetry:
		return !now.Before(r.nextAttemptAt)
	default:
		return false
	}
}

// Start moves the record into InProgress for a new attempt. Allowed from
// Pending and ScheduledRetry only.
func (r *Record) Start(now time.Time) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.state != Pending && r.state != ScheduledRetry {
		return fmt.Errorf("cannot start delivery in state %s", r.state)
	}

	r.state = InProgress
	r.updatedAt = now
	return nil
}

// Succeed marks the attempt as successful. Terminal.
func (r *Record) Succeed(now time.Time) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.state != InProgress {
		return fmt.Errorf("cannot succeed delivery in state %s", r.state)
	}

	r.attempts++
	r.state = Succeeded
	r.lastError = ""
	r.updatedAt = now
	return nil
}

// Fail records a failed attempt. The record moves to ScheduledRetry with an
// exponential backoff delay, or to DeadLettered once the policy's attempt
// budget is exhausted.
func (r *Record) Fail(cause error, now time.Time, policy Backoff) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.state != InProgress {
		return fmt.Errorf("cannot fail delivery in state %s", r.state)
	}

	r.attempts++
	if cause != nil {
		r.lastError = cause.Error()
	}
	r.updatedAt = now

	if r.attempts >= policy.MaxAttempts() {
		r.state = DeadLettered
		return nil
	}

	r.state = ScheduledRetry
	r.nextAttemptAt = now.Add(policy.Delay(r.attempts))
	return nil
}

// ReclaimStale returns an abandoned in-progress record to Pending so the
// sweep attempts it again. An attempt whose outcome was never recorded, a
// crash mid-delivery for example, would otherwise strand the record in
// InProgress forever. The attempt count is untouched: starting an attempt
// does not consume budget, recording its outcome does.
func (r *Record) ReclaimStale(now time.Time) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.state != InProgress {
		return fmt.Errorf("cannot reclaim delivery in state %s", r.state)
	}

	r.state = Pending
	r.nextAttemptAt = now
	r.updatedAt = now
	return nil
}

// ResetForManualRetry re-enters a dead-lettered record into Pending with a
// fresh attempt budget. Fails with ErrNotDeadLettered otherwise.
func (r *Record) ResetForManualRetry(now time.Time) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.state != DeadLettered {
		return ErrNotDeadLettered
	}

	r.attempts = 0
	r.state = Pending
	r.nextAttemptAt = now
	r.updatedAt = now
	return nil
}
