package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"orderflow/internal/core/domain/model/event"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/retry"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

const defaultAttemptTimeout = 5 * time.Second

// Coordinator drives individual delivery attempts and keeps the retry
// records consistent with their outcomes. One record exists per
// (event, handler) pair; the coordinator moves it through its lifecycle and
// dead-letters it once the attempt budget is exhausted.
type Coordinator struct {
	retries        ports.RetryStore
	events         ports.EventStore
	registry       *HandlerRegistry
	backoff        retry.Backoff
	attemptTimeout time.Duration
	logger         *slog.Logger
}

// NewCoordinator creates a Coordinator. A non-positive attemptTimeout falls
// back to the default.
func NewCoordinator(
	retries ports.RetryStore,
	events ports.EventStore,
	registry *HandlerRegistry,
	backoff retry.Backoff,
	attemptTimeout time.Duration,
	logger *slog.Logger,
) (*Coordinator, error) {
	if retries == nil {
		return nil, errs.NewValueIsRequiredError("retries")
	}
	if events == nil {
		return nil, errs.NewValueIsRequiredError("events")
	}
	if registry == nil {
		return nil, errs.NewValueIsRequiredError("registry")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}
	if attemptTimeout <= 0 {
		attemptTimeout = defaultAttemptTimeout
	}

	return &Coordinator{
		retries:        retries,
		events:         events,
		registry:       registry,
		backoff:        backoff,
		attemptTimeout: attemptTimeout,
		logger:         logger.With("component", "dispatch"),
	}, nil
}

// Deliver runs a single delivery attempt of the event to the handler and
// records the outcome. Records that are already succeeded, dead-lettered or
// not yet due are left untouched. The returned error reports store failures
// only; handler failures are absorbed into the retry record.
func (c *Coordinator) Deliver(
	ctx context.Context, evt *event.DomainEvent, handler ports.EventHandler,
) (*retry.Record, error) {
	now := time.Now().UTC()

	record, err := c.retries.Get(ctx, evt.ID(), handler.HandlerID())
	if err != nil {
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return nil, err
		}
		record, err = retry.NewRecord(evt.ID(), handler.HandlerID())
		if err != nil {
			return nil, err
		}
	}

	if record.State() == retry.Succeeded || record.IsDeadLettered() || !record.IsDue(now) {
		return record, nil
	}

	if err := record.Start(now); err != nil {
		return nil, err
	}
	if err := c.retries.Save(ctx, record); err != nil {
		return nil, err
	}

	attemptErr := c.attempt(ctx, handler, evt)
	now = time.Now().UTC()

	if attemptErr == nil {
		if err := record.Succeed(now); err != nil {
			return nil, err
		}
		return record, c.retries.Save(ctx, record)
	}

	if err := record.Fail(attemptErr, now, c.backoff); err != nil {
		return nil, err
	}
	if record.IsDeadLettered() {
		c.logger.Error("event delivery dead-lettered",
			"event_id", evt.ID(),
			"event_type", evt.EventType(),
			"handler_id", handler.HandlerID(),
			"attempts", record.Attempts(),
			"cause", attemptErr)
	} else {
		c.logger.Warn("event delivery failed, retry scheduled",
			"event_id", evt.ID(),
			"event_type", evt.EventType(),
			"handler_id", handler.HandlerID(),
			"attempts", record.Attempts(),
			"next_attempt_at", record.NextAttemptAt(),
			"cause", attemptErr)
	}

	return record, c.retries.Save(ctx, record)
}

// SweepDue redelivers every due pending or scheduled record by looking up
// its event and handler again. Records whose handler is no longer registered
// are skipped and logged. In-progress records abandoned by a crashed attempt
// are reclaimed first so the same sweep redelivers them.
func (c *Coordinator) SweepDue(ctx context.Context) error {
	now := time.Now().UTC()
	if err := c.reclaimStale(ctx, now); err != nil {
		return err
	}

	records, err := c.retries.GetAllDue(ctx, now)
	if err != nil {
		return err
	}

	for _, record := range records {
		handler, ok := c.registry.HandlerByID(record.HandlerID())
		if !ok {
			c.logger.Warn("no handler registered for retry record",
				"event_id", record.EventID(), "handler_id", record.HandlerID())
			continue
		}

		evt, err := c.events.GetByID(ctx, record.EventID())
		if err != nil {
			c.logger.Error("cannot load event for retry record",
				"event_id", record.EventID(), "cause", err)
			continue
		}

		if _, err := c.Deliver(ctx, evt, handler); err != nil {
			c.logger.Error("retry delivery failed",
				"event_id", record.EventID(), "handler_id", record.HandlerID(), "cause", err)
		}
	}

	return nil
}

// reclaimStale returns abandoned in-progress records to Pending. A record
// counts as stale once its last update is older than twice the attempt
// timeout; a live attempt always records its outcome within one timeout.
func (c *Coordinator) reclaimStale(ctx context.Context, now time.Time) error {
	stale, err := c.retries.GetAllStale(ctx, now.Add(-2*c.attemptTimeout))
	if err != nil {
		return err
	}

	for _, record := range stale {
		if err := record.ReclaimStale(now); err != nil {
			c.logger.Error("cannot reclaim stale delivery record",
				"event_id", record.EventID(), "handler_id", record.HandlerID(), "cause", err)
			continue
		}

		c.logger.Warn("reclaimed stale in-progress delivery",
			"event_id", record.EventID(),
			"handler_id", record.HandlerID(),
			"attempts", record.Attempts())

		if err := c.retries.Save(ctx, record); err != nil {
			return err
		}
	}

	return nil
}

// RetryDeadLetter resets a dead-lettered record so the next sweep picks it
// up again with a fresh attempt budget.
func (c *Coordinator) RetryDeadLetter(
	ctx context.Context, eventID kernel.UUID, handlerID string,
) (*retry.Record, error) {
	record, err := c.retries.Get(ctx, eventID, handlerID)
	if err != nil {
		return nil, err
	}

	if err := record.ResetForManualRetry(time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := c.retries.Save(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// attempt invokes the handler with a per-attempt timeout. A panicking
// handler counts as a failed attempt; a stuck handler is abandoned once
// the timeout fires.
func (c *Coordinator) attempt(
	ctx context.Context, handler ports.EventHandler, evt *event.DomainEvent,
) error {
	attemptCtx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("handler panicked: %v", r)
			}
		}()
		done <- handler.Handle(attemptCtx, evt)
	}()

	select {
	case err := <-done:
		return err
	case <-attemptCtx.Done():
		return attemptCtx.Err()
	}
}
