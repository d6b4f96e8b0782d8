// Package kafka publishes drained values to a Kafka topic. Two client
// libraries are supported behind the Publisher interface.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	DriverKafkaGo = "kafka-go"
	DriverSarama  = "sarama"
)

var ErrNoBrokers = errors.New("kafka: no brokers configured")

type Publisher interface {
	Publish(ctx context.Context, key, value []byte) error
	Close() error
}

type Config struct {
	Brokers      []string      `yaml:"brokers"`
	Topic        string        `yaml:"topic"`
	Driver       string        `yaml:"driver"`
	BatchTimeout time.Duration `yaml:"batch_timeout"`
}

// Enabled reports whether any broker is configured.
func (c Config) Enabled() bool { return len(c.Brokers) > 0 }

func NewPublisher(cfg Config) (Publisher, error) {
	if !cfg.Enabled() {
		return nil, ErrNoBrokers
	}
	switch cfg.Driver {
	case "", DriverKafkaGo:
		return NewProducer(cfg.Brokers, cfg.Topic, cfg.BatchTimeout), nil
	case DriverSarama:
		return NewSaramaProducer(cfg.Brokers, cfg.Topic)
	default:
		return nil, fmt.Errorf("kafka: unknown driver %q", cfg.Driver)
	}
}

// -------------------- Event --------------------

// Event is the wire form of one emitted value.
type Event struct {
	V     int       `json:"v"`
	Run   uuid.UUID `json:"run"`
	Index uint64    `json:"index"`
	Value int64     `json:"value"`
}

// EncodeEvent returns the message key (the run id, so one run stays on one
// partition in order) and the JSON value.
func EncodeEvent(run uuid.UUID, index uint64, value int64) (key, payload []byte, err error) {
	payload, err = json.Marshal(Event{V: 1, Run: run, Index: index, Value: value})
	if err != nil {
		return nil, nil, err
	}
	return []byte(run.String()), payload, nil
}

func DecodeEvent(b []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(b, &e); err != nil {
		return Event{}, err
	}
	if e.V != 1 {
		return Event{}, fmt.Errorf("kafka: unsupported event version %d", e.V)
	}
	return e, nil
}
