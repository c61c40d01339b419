package events

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type KafkaProducer struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// NewKafkaProducer creates a producer whose writer picks the topic per
// message, so one producer can serve several event streams.
func NewKafkaProducer(brokers []string, logger *zap.Logger) *KafkaProducer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	logger.Info("Kafka producer initialized", zap.Strings("brokers", brokers))
	return &KafkaProducer{writer: w, logger: logger}
}

func (p *KafkaProducer) Publish(ctx context.Context, topic string, message []byte) error {
	msg := kafka.Message{
		Topic: topic,
		Value: message,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka publish to %s failed: %w", topic, err)
	}
	p.logger.Debug("Kafka message published", zap.String("topic", topic), zap.Int("bytes", len(message)))
	return nil
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
