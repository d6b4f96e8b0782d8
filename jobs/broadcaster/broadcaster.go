package broadcaster

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/datatrails/go-datatrails-common/logger"

	"heaptree/infra/kafka"
	"heaptree/infra/outbox"
)

const (
	defaultInterval   = 250 * time.Millisecond
	defaultMaxRetries = 5
)

type Config struct {
	Interval   time.Duration `yaml:"interval"`
	MaxRetries uint32        `yaml:"max_retries"`
}

// Broadcaster moves emitted values from the outbox to a publisher.
type Broadcaster struct {
	outbox    *outbox.Outbox
	publisher kafka.Publisher
	cfg       Config
	log       logger.Logger
}

// ------------------------------------------------
// CONSTRUCTOR
// ------------------------------------------------

func New(
	ob *outbox.Outbox,
	pub kafka.Publisher,
	cfg Config,
	log logger.Logger,
) *Broadcaster {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	return &Broadcaster{
		outbox:    ob,
		publisher: pub,
		cfg:       cfg,
		log:       log,
	}
}

// ------------------------------------------------
// LOOP
// ------------------------------------------------

// Run replays the outbox every interval until ctx is done.
func (b *Broadcaster) Run(ctx context.Context) {
	b.log.Infof("broadcaster started interval=%s", b.cfg.Interval)
	defer b.log.Infof("broadcaster stopped")

	ticker := time.NewTicker(b.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := b.ReplayOnce(ctx)
			if err != nil {
				b.log.Infof("broadcast pass failed: %v", err)
				continue
			}
			if n == 0 {
				continue
			}
			removed, err := b.Compact()
			if err != nil {
				b.log.Infof("outbox compaction failed: %v", err)
				continue
			}
			b.log.Debugf("broadcast acked=%d removed=%d", n, removed)
		}
	}
}

// ------------------------------------------------
// REPLAY
// ------------------------------------------------

// ReplayOnce publishes every NEW record and every FAILED record still
// under the retry limit, in sequence order. It returns how many were
// acknowledged. A failed publish is recorded and retried on a later pass.
func (b *Broadcaster) ReplayOnce(ctx context.Context) (int, error) {
	pending, err := b.pending()
	if err != nil {
		return 0, err
	}

	acked := 0
	for _, rec := range pending {
		if err := ctx.Err(); err != nil {
			return acked, err
		}

		// 1. mark SENT (idempotent)
		if err := b.outbox.UpdateState(rec.Seq, outbox.StateSent, rec.Retries); err != nil {
			return acked, err
		}

		// 2. publish
		key, payload, err := kafka.EncodeEvent(rec.RunID, rec.Index, rec.Value)
		if err != nil {
			return acked, err
		}
		if err := b.publisher.Publish(ctx, key, payload); err != nil {
			b.log.Infof("publish seq=%d retries=%d: %v", rec.Seq, rec.Retries+1, err)
			if err := b.outbox.UpdateState(rec.Seq, outbox.StateFailed, rec.Retries+1); err != nil {
				return acked, err
			}
			continue
		}

		// 3. mark ACKED
		if err := b.outbox.UpdateState(rec.Seq, outbox.StateAcked, rec.Retries); err != nil {
			return acked, err
		}
		acked++
	}
	return acked, nil
}

func (b *Broadcaster) pending() ([]outbox.Record, error) {
	var out []outbox.Record
	collect := func(rec outbox.Record) error {
		if rec.State == outbox.StateFailed && rec.Retries >= b.cfg.MaxRetries {
			return nil
		}
		out = append(out, rec)
		return nil
	}
	if err := b.outbox.ScanByState(outbox.StateNew, collect); err != nil {
		return nil, err
	}
	if err := b.outbox.ScanByState(outbox.StateFailed, collect); err != nil {
		return nil, err
	}
	// SENT records are a pass interrupted mid-publish; send them again.
	if err := b.outbox.ScanByState(outbox.StateSent, collect); err != nil {
		return nil, err
	}
	slices.SortFunc(out, func(a, b outbox.Record) int {
		return cmp.Compare(a.Seq, b.Seq)
	})
	return out, nil
}

// Compact deletes acknowledged records up to the newest sequence.
func (b *Broadcaster) Compact() (int, error) {
	last, err := b.outbox.LastSeq()
	if err != nil {
		return 0, err
	}
	return b.outbox.TruncateAckedUpTo(last)
}

// ------------------------------------------------
// SHUTDOWN
// ------------------------------------------------

func (b *Broadcaster) Close() error {
	return b.publisher.Close()
}
