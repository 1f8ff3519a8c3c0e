package events

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/models"
)

// Publisher emits order lifecycle events. Publishing is fire-and-forget for
// callers: failures are logged, never propagated to the request.
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, event models.OrderPlacedEvent)
	Close() error
}

// KafkaProducer implements Publisher on a kafka topic.
type KafkaProducer struct {
	writer *kafka.Writer
	topic  string
}

func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	w := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	zap.L().Info("Kafka producer initialized", zap.String("topic", topic), zap.Strings("brokers", brokers))
	return &KafkaProducer{writer: w, topic: topic}
}

func (p *KafkaProducer) PublishOrderPlaced(ctx context.Context, event models.OrderPlacedEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		zap.L().Error("Failed to marshal order event", zap.Error(err))
		return
	}
	msg := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: data,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		zap.L().Error("Failed to publish order event",
			zap.String("order_id", event.OrderID),
			zap.String("topic", p.topic),
			zap.Error(err),
		)
		return
	}
	zap.L().Info("Order event published",
		zap.String("order_id", event.OrderID),
		zap.String("topic", p.topic),
	)
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderPlaced(context.Context, models.OrderPlacedEvent) {}

func (NoopPublisher) Close() error { return nil }
