package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	defaultBatchTimeout = 10 * time.Millisecond
	writeTimeout        = 5 * time.Second
)

// Producer publishes through a kafka-go Writer. Messages are partitioned
// by key hash so every value of one drain run lands on one partition.
type Producer struct {
	topic string
	w     *kafka.Writer
}

func NewProducer(brokers []string, topic string, batchTimeout time.Duration) *Producer {
	if batchTimeout <= 0 {
		batchTimeout = defaultBatchTimeout
	}
	return &Producer{
		topic: topic,
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			BatchTimeout: batchTimeout,
			WriteTimeout: writeTimeout,
		},
	}
}

// Publish writes one message and waits for every in-sync replica.
func (p *Producer) Publish(ctx context.Context, key, value []byte) error {
	msg := kafka.Message{Key: key, Value: value, Time: time.Now()}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka-go publish to %s: %w", p.topic, err)
	}
	return nil
}

func (p *Producer) Close() error { return p.w.Close() }
