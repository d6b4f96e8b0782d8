package outbox

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("outbox: record not found")

const (
	keyPrefix = "emit/"
	keyUpper  = "emit/~"
)

// Outbox durably records every value emitted by a drain run until the
// broadcaster has delivered it.
type Outbox struct {
	db *pebble.DB
}

func Open(dir string) (*Outbox, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open outbox %s: %w", dir, err)
	}
	return &Outbox{db: db}, nil
}

func (o *Outbox) Close() error {
	return o.db.Close()
}

// -------------------- API --------------------

// PutNew stores a freshly emitted value.
func (o *Outbox) PutNew(seq uint64, run uuid.UUID, index uint64, value int64) error {
	rec := Record{
		State: StateNew,
		RunID: run,
		Index: index,
		Value: value,
	}
	return o.db.Set(keyFor(seq), encodeRecord(rec), pebble.Sync)
}

// UpdateState records a delivery attempt outcome.
func (o *Outbox) UpdateState(seq uint64, state State, retries uint32) error {
	rec, err := o.Get(seq)
	if err != nil {
		return err
	}
	rec.State = state
	rec.Retries = retries
	rec.LastAttempt = time.Now().UnixNano()
	return o.db.Set(keyFor(seq), encodeRecord(rec), pebble.Sync)
}

func (o *Outbox) Delete(seq uint64) error {
	return o.db.Delete(keyFor(seq), pebble.Sync)
}

func (o *Outbox) Get(seq uint64) (Record, error) {
	val, closer, err := o.db.Get(keyFor(seq))
	if errors.Is(err, pebble.ErrNotFound) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	defer closer.Close()

	return decodeRecord(seq, val)
}

// -------------------- Scan --------------------

// ScanByState iterates records in the given state in sequence order.
func (o *Outbox) ScanByState(state State, fn func(Record) error) error {
	return o.scan(func(rec Record) error {
		if rec.State != state {
			return nil
		}
		return fn(rec)
	})
}

// LastSeq returns the highest stored sequence, 0 when empty.
func (o *Outbox) LastSeq() (uint64, error) {
	iter, err := o.newIter()
	if err != nil {
		return 0, err
	}
	defer iter.Close()

	if !iter.Last() {
		return 0, iter.Error()
	}
	return parseKey(iter.Key())
}

// TruncateAckedUpTo removes acknowledged records with seq <= upTo.
func (o *Outbox) TruncateAckedUpTo(upTo uint64) (int, error) {
	b := o.db.NewBatch()
	defer b.Close()

	n := 0
	err := o.scan(func(rec Record) error {
		if rec.Seq > upTo || rec.State != StateAcked {
			return nil
		}
		n++
		return b.Delete(keyFor(rec.Seq), nil)
	})
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, nil
	}
	return n, b.Commit(pebble.Sync)
}

func (o *Outbox) scan(fn func(Record) error) error {
	iter, err := o.newIter()
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		seq, err := parseKey(iter.Key())
		if err != nil {
			return err
		}
		rec, err := decodeRecord(seq, iter.Value())
		if err != nil {
			return fmt.Errorf("seq %d: %w", seq, err)
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return iter.Error()
}

// -------------------- Helpers --------------------

func (o *Outbox) newIter() (*pebble.Iterator, error) {
	return o.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(keyPrefix),
		UpperBound: []byte(keyUpper),
	})
}

func keyFor(seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", keyPrefix, seq))
}

func parseKey(b []byte) (uint64, error) {
	return strconv.ParseUint(strings.TrimPrefix(string(b), keyPrefix), 10, 64)
}
