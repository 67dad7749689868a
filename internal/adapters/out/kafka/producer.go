// Package kafka publishes committed domain events to a Kafka topic so that
// external systems (payments, shipping, analytics) can react to order
// lifecycle changes. Publishing runs as a registered event handler and shares
// the delivery retry budget with every other handler.
package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"orderflow/internal/pkg/errs"
)

// messageWriter is the slice of *kafka.Writer the producer depends on.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer writes messages to a single Kafka topic.
type Producer struct {
	writer messageWriter
	topic  string
	logger *slog.Logger
}

// NewProducer creates a Producer for the given brokers and topic.
func NewProducer(brokers []string, topic string, logger *slog.Logger) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, errs.NewValueIsRequiredError("brokers")
	}
	if topic == "" {
		return nil, errs.NewValueIsRequiredError("topic")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		writer: writer,
		topic:  topic,
		logger: logger.With("component", "kafka"),
	}, nil
}

// Produce writes a single keyed message. Messages with the same key land in
// the same partition, which preserves per-aggregate ordering for consumers.
func (p *Producer) Produce(ctx context.Context, key, value []byte) error {
	if err := p.writer.WriteMessages(ctx, kafka.Message{Key: key, Value: value}); err != nil {
		return fmt.Errorf("write message to topic %s: %w", p.topic, err)
	}
	p.logger.Debug("message produced", "topic", p.topic, "key", string(key))
	return nil
}

// Close flushes pending messages and releases the underlying connections.
func (p *Producer) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("close kafka writer: %w", err)
	}
	return nil
}
