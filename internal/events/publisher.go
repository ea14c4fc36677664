package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Publisher emits lifecycle events. Publishing is fire and forget: failures
// are logged, never surfaced to the request that caused them.
type Publisher interface {
	Publish(ctx context.Context, event Event)
	Close() error
}

// KafkaWriter matches *kafka.Writer so tests can substitute a fake.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	writer KafkaWriter
	logger *zap.Logger
}

func NewKafkaPublisher(brokers []string, topic string, logger *zap.Logger) Publisher {
	return &kafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			WriteTimeout: 5 * time.Second,
		},
		logger: logger.Named("events.kafka"),
	}
}

// NewPublisherWithWriter is the constructor used by tests.
func NewPublisherWithWriter(writer KafkaWriter, logger *zap.Logger) Publisher {
	return &kafkaPublisher{writer: writer, logger: logger.Named("events.kafka")}
}

func (p *kafkaPublisher) Publish(ctx context.Context, event Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("marshal event failed",
			zap.String("event_type", string(event.EventType)),
			zap.Error(err),
		)
		return
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.EntityID),
		Value: payload,
	}); err != nil {
		p.logger.Warn("publish event failed",
			zap.String("event_type", string(event.EventType)),
			zap.String("entity_id", event.EntityID),
			zap.Error(err),
		)
	}
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}
