package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRoundTrip(t *testing.T) {
	run := uuid.New()
	key, payload, err := EncodeEvent(run, 3, -9)
	require.NoError(t, err)
	assert.Equal(t, run.String(), string(key))

	e, err := DecodeEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, Event{V: 1, Run: run, Index: 3, Value: -9}, e)

	_, err = DecodeEvent([]byte(`{"v":2}`))
	assert.Error(t, err)
}

func TestNewPublisherSelection(t *testing.T) {
	_, err := NewPublisher(Config{})
	assert.ErrorIs(t, err, ErrNoBrokers)

	_, err = NewPublisher(Config{Brokers: []string{"localhost:9092"}, Driver: "carrier-pigeon"})
	assert.Error(t, err)

	p, err := NewPublisher(Config{Brokers: []string{"localhost:9092"}, Topic: "sorted"})
	require.NoError(t, err)
	_, ok := p.(*Producer)
	assert.True(t, ok)
	assert.NoError(t, p.Close())
}

func TestSaramaProducerPublish(t *testing.T) {
	mock := mocks.NewSyncProducer(t, nil)
	mock.ExpectSendMessageAndSucceed()
	mock.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := newSaramaProducer(mock, "sorted")
	require.NoError(t, p.Publish(context.Background(), []byte("k"), []byte("v")))
	assert.True(t, errors.Is(p.Publish(context.Background(), []byte("k"), []byte("v")), sarama.ErrOutOfBrokers))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Publish(ctx, nil, nil), context.Canceled)
	assert.NoError(t, p.Close())
}

func TestProducerPartitionsByKey(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"}, "sorted", 0)
	defer p.Close()

	_, ok := p.w.Balancer.(*kafkago.Hash)
	assert.True(t, ok, "values of one run must share a partition")
	assert.Equal(t, kafkago.RequireAll, p.w.RequiredAcks)
	assert.Equal(t, defaultBatchTimeout, p.w.BatchTimeout)
}

func TestProducerPublishCancelled(t *testing.T) {
	p := NewProducer([]string{"127.0.0.1:1"}, "sorted", time.Millisecond)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := p.Publish(ctx, []byte("k"), []byte("v"))
	assert.ErrorContains(t, err, "sorted")
}
