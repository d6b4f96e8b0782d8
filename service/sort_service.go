package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/google/uuid"

	"heaptree/domain/heaptree"
	"heaptree/infra/memory"
	"heaptree/infra/outbox"
	"heaptree/infra/sequence"
)

/*
SortService is the ONLY write entry point into the tree.

The tree itself is single-writer; the service serializes callers with a
mutex so concurrent RPCs see one operation at a time.
*/

var ErrNotFound = errors.New("service: key not in tree")

type Config struct {
	// NodeLimit caps live tree nodes; 0 means unbounded.
	NodeLimit int `yaml:"node_limit"`
	// Trace logs every sift swap and extraction at debug level.
	Trace bool `yaml:"trace"`
}

type Direction uint8

const (
	Left Direction = iota
	Right
)

func (d Direction) String() string {
	if d == Right {
		return "right"
	}
	return "left"
}

type Stats struct {
	Len     int
	Height  int
	Balance int
	Ordered bool
	Live    int
}

// DrainResult describes one drain run.
type DrainResult struct {
	RunID   uuid.UUID
	Count   int
	LastSeq uint64
}

// recorder is the slice of the outbox the drain path writes through.
type recorder interface {
	PutNew(seq uint64, run uuid.UUID, index uint64, value int64) error
}

type SortService struct {
	mu     sync.Mutex
	tree   *heaptree.Tree
	pool   *memory.Pool[heaptree.Node]
	outbox recorder
	seq    *sequence.Sequencer
	log    logger.Logger
}

// NewSortService wires all dependencies. ob and seq may be nil, in which
// case drained values are not recorded.
func NewSortService(
	cfg Config,
	ob *outbox.Outbox,
	seq *sequence.Sequencer,
	log logger.Logger,
) *SortService {
	s := &SortService{
		pool: memory.NewPool(func() *heaptree.Node {
			return &heaptree.Node{}
		}, cfg.NodeLimit),
		seq: seq,
		log: log,
	}
	if ob != nil {
		s.outbox = ob
	}
	opts := []heaptree.Option{heaptree.WithAllocator(s.pool)}
	if cfg.Trace {
		opts = append(opts, heaptree.WithTracer(s.trace))
	}
	s.tree = heaptree.New(opts...)
	return s
}

//
// ──────────────────────────────────────────────────────────
// Commands
// ──────────────────────────────────────────────────────────
//

func (s *SortService) Insert(key int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.tree.Insert(key); err != nil {
		return fmt.Errorf("insert %d: %w", key, err)
	}
	return nil
}

// InsertMany inserts keys in order and stops at the first failure,
// returning how many were inserted.
func (s *SortService) InsertMany(keys []int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, k := range keys {
		if err := s.tree.Insert(k); err != nil {
			return i, fmt.Errorf("insert %d: %w", k, err)
		}
	}
	return len(keys), nil
}

// Drain empties the tree in ascending order, recording each value in the
// outbox (when configured) before handing it to fn. It stops early, with
// the remaining keys still in the tree, when ctx is done or fn fails.
// A value leaves the tree only once it has been recorded.
func (s *SortService) Drain(ctx context.Context, fn func(int64) error) (DrainResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := DrainResult{RunID: uuid.New()}
	s.log.Infof("drain started run=%s keys=%d", res.RunID, s.tree.Len())

	for !s.tree.Empty() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		v, err := s.tree.Min()
		if err != nil {
			return res, err
		}
		if err := s.record(&res, v); err != nil {
			return res, err
		}
		if _, err := s.tree.PopMin(); err != nil {
			return res, err
		}
		res.Count++
		if fn != nil {
			if err := fn(v); err != nil {
				return res, err
			}
		}
	}

	s.log.Infof("drain finished run=%s emitted=%d", res.RunID, res.Count)
	return res, nil
}

// Rotate rotates the subtree rooted at the first node holding key.
func (s *SortService) Rotate(key int64, dir Direction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.tree.Find(key)
	if n == nil {
		return fmt.Errorf("%w: %d", ErrNotFound, key)
	}
	var err error
	if dir == Right {
		err = s.tree.RotateRight(n)
	} else {
		err = s.tree.RotateLeft(n)
	}
	if err != nil {
		return fmt.Errorf("rotate %s at %d: %w", dir, key, err)
	}
	s.log.Debugf("rotated %s at %d height=%d balance=%d", dir, key, s.tree.Height(), s.tree.Balance())
	return nil
}

// Reset frees every node without emitting anything.
func (s *SortService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tree.Clear()
}

//
// ──────────────────────────────────────────────────────────
// Queries
// ──────────────────────────────────────────────────────────
//

func (s *SortService) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Stats{
		Len:     s.tree.Len(),
		Height:  s.tree.Height(),
		Balance: s.tree.Balance(),
		Ordered: s.tree.Ordered(),
		Live:    s.pool.Live(),
	}
}

func (s *SortService) Dump(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Dump(w)
}

func (s *SortService) Verify() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Verify()
}

//
// ──────────────────────────────────────────────────────────
// Internals
// ──────────────────────────────────────────────────────────
//

func (s *SortService) record(res *DrainResult, v int64) error {
	if s.outbox == nil || s.seq == nil {
		return nil
	}
	seq := s.seq.Next()
	if err := s.outbox.PutNew(seq, res.RunID, uint64(res.Count), v); err != nil {
		return fmt.Errorf("record seq %d: %w", seq, err)
	}
	res.LastSeq = seq
	return nil
}

func (s *SortService) trace(e heaptree.Event) {
	s.log.Debugf("tree %s key=%d other=%d", e.Kind, e.Key, e.Other)
}
