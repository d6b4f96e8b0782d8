package broadcaster

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heaptree/infra/kafka"
	"heaptree/infra/outbox"
)

type fakePublisher struct {
	failFirst int
	sent      []kafka.Event
	closed    bool
}

func (f *fakePublisher) Publish(_ context.Context, _, value []byte) error {
	if f.failFirst > 0 {
		f.failFirst--
		return errors.New("broker unavailable")
	}
	e, err := kafka.DecodeEvent(value)
	if err != nil {
		return err
	}
	f.sent = append(f.sent, e)
	return nil
}

func (f *fakePublisher) Close() error {
	f.closed = true
	return nil
}

func setup(t *testing.T, values ...int64) (*outbox.Outbox, uuid.UUID) {
	t.Helper()
	logger.New("NOOP")
	t.Cleanup(logger.OnExit)

	ob, err := outbox.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = ob.Close() })

	run := uuid.New()
	for i, v := range values {
		require.NoError(t, ob.PutNew(uint64(i+1), run, uint64(i), v))
	}
	return ob, run
}

func TestReplayOncePublishesInOrder(t *testing.T) {
	ob, run := setup(t, 1, 4, 9)
	pub := &fakePublisher{}
	b := New(ob, pub, Config{}, logger.Sugar.WithServiceName("test"))

	n, err := b.ReplayOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.Len(t, pub.sent, 3)
	for i, want := range []int64{1, 4, 9} {
		assert.Equal(t, want, pub.sent[i].Value)
		assert.Equal(t, uint64(i), pub.sent[i].Index)
		assert.Equal(t, run, pub.sent[i].Run)
	}

	rec, err := ob.Get(2)
	require.NoError(t, err)
	assert.Equal(t, outbox.StateAcked, rec.State)

	// nothing left to send
	n, err = b.ReplayOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestReplayOnceRetriesFailures(t *testing.T) {
	ob, _ := setup(t, 7)
	pub := &fakePublisher{failFirst: 1}
	b := New(ob, pub, Config{MaxRetries: 2}, logger.Sugar.WithServiceName("test"))

	n, err := b.ReplayOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	rec, err := ob.Get(1)
	require.NoError(t, err)
	assert.Equal(t, outbox.StateFailed, rec.State)
	assert.Equal(t, uint32(1), rec.Retries)

	n, err = b.ReplayOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestReplayOnceGivesUp(t *testing.T) {
	ob, _ := setup(t, 7)
	pub := &fakePublisher{failFirst: 10}
	b := New(ob, pub, Config{MaxRetries: 2}, logger.Sugar.WithServiceName("test"))

	for i := 0; i < 4; i++ {
		_, err := b.ReplayOnce(context.Background())
		require.NoError(t, err)
	}
	rec, err := ob.Get(1)
	require.NoError(t, err)
	assert.Equal(t, outbox.StateFailed, rec.State)
	assert.Equal(t, uint32(2), rec.Retries)
	assert.Equal(t, 8, pub.failFirst)
}

func TestRunStopsWithContext(t *testing.T) {
	ob, _ := setup(t, 3)
	pub := &fakePublisher{}
	b := New(ob, pub, Config{Interval: 5 * time.Millisecond}, logger.Sugar.WithServiceName("test"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		b.Run(ctx)
		close(done)
	}()

	// acked records are compacted away after the pass
	require.Eventually(t, func() bool {
		_, err := ob.Get(1)
		return errors.Is(err, outbox.ErrNotFound)
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	<-done
	require.NoError(t, b.Close())
	assert.True(t, pub.closed)
}

func TestCompactKeepsUnacked(t *testing.T) {
	ob, _ := setup(t, 2, 5, 8)
	pub := &fakePublisher{}
	b := New(ob, pub, Config{}, logger.Sugar.WithServiceName("test"))

	require.NoError(t, ob.UpdateState(1, outbox.StateAcked, 0))
	require.NoError(t, ob.UpdateState(3, outbox.StateAcked, 0))

	n, err := b.Compact()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	rec, err := ob.Get(2)
	require.NoError(t, err)
	assert.Equal(t, outbox.StateNew, rec.State)
	_, err = ob.Get(3)
	assert.ErrorIs(t, err, outbox.ErrNotFound)
}
