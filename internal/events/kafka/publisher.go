package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/events"
	"github.com/segmentio/kafka-go"
)

// Publisher mirrors bus events onto a Kafka topic keyed by tenant.
type Publisher struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewPublisher builds an async writer for topic. Delivery failures are logged.
func NewPublisher(brokers []string, topic string, logger *slog.Logger) *Publisher {
	p := &Publisher{logger: logger}
	p.writer = &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		Async:        true,
		BatchTimeout: 50 * time.Millisecond,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				p.logger.Error("Failed to deliver change events", slog.Int("count", len(messages)), slog.String("error", err.Error()))
			}
		},
	}
	return p
}

// Message encodes ev as a Kafka message keyed by owner id.
func Message(ev events.Event) (kafka.Message, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encoding change event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(ev.OwnerID),
		Value: data,
		Time:  ev.At,
		Headers: []kafka.Header{
			{Key: "entity", Value: []byte(ev.Entity)},
			{Key: "op", Value: []byte(ev.Op)},
		},
	}, nil
}

// Publish queues ev for delivery.
func (p *Publisher) Publish(ctx context.Context, ev events.Event) error {
	msg, err := Message(ev)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

// Handler adapts the publisher into a bus subscriber.
func (p *Publisher) Handler() events.Handler {
	return func(ctx context.Context, ev events.Event) {
		if err := p.Publish(ctx, ev); err != nil {
			p.logger.Warn("Failed to mirror change event",
				slog.String("entity", string(ev.Entity)),
				slog.String("error", err.Error()))
		}
	}
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
