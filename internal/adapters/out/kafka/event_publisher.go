package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"orderflow/internal/core/domain/model/event"
	"orderflow/internal/pkg/errs"
)

// EventPublisherID identifies the publisher in retry records. It must not
// change across releases or existing delivery records become orphaned.
const EventPublisherID = "kafka-event-publisher"

// eventProducer is the part of Producer the publisher uses.
type eventProducer interface {
	Produce(ctx context.Context, key, value []byte) error
}

// EventPublisher forwards domain events to Kafka in their wire envelope.
// It is registered as an event handler, so publishing failures are retried
// and eventually dead-lettered like any other delivery.
type EventPublisher struct {
	producer eventProducer
	logger   *slog.Logger
}

// NewEventPublisher creates an EventPublisher on top of a producer.
func NewEventPublisher(producer eventProducer, logger *slog.Logger) (*EventPublisher, error) {
	if producer == nil {
		return nil, errs.NewValueIsRequiredError("producer")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}
	return &EventPublisher{
		producer: producer,
		logger:   logger.With("component", "kafka"),
	}, nil
}

// HandlerID implements ports.EventHandler.
func (p *EventPublisher) HandlerID() string {
	return EventPublisherID
}

// Handle serializes the event envelope and produces it keyed by aggregate ID,
// so all events of one order stay in one partition.
func (p *EventPublisher) Handle(ctx context.Context, evt *event.DomainEvent) error {
	value, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", evt.ID(), err)
	}

	key := []byte(evt.AggregateID().String())
	if err := p.producer.Produce(ctx, key, value); err != nil {
		return err
	}

	p.logger.Info("event published",
		"event_id", evt.ID().String(),
		"event_type", string(evt.EventType()),
		"aggregate_id", evt.AggregateID().String(),
	)
	return nil
}
