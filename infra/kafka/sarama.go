package kafka

import (
	"context"

	"github.com/IBM/sarama"
)

// SaramaProducer publishes through a synchronous sarama producer.
type SaramaProducer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewSaramaProducer(brokers []string, topic string) (*SaramaProducer, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}
	return newSaramaProducer(producer, topic), nil
}

func newSaramaProducer(p sarama.SyncProducer, topic string) *SaramaProducer {
	return &SaramaProducer{producer: p, topic: topic}
}

// Publish sends one message. sarama's sync producer has no context hook,
// so ctx is only checked before sending.
func (p *SaramaProducer) Publish(ctx context.Context, key, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, _, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.ByteEncoder(key),
		Value: sarama.ByteEncoder(value),
	})
	return err
}

func (p *SaramaProducer) Close() error {
	return p.producer.Close()
}
