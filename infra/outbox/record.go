package outbox

import (
	"encoding/binary"
	"errors"
	"hash/crc32"

	"github.com/google/uuid"
)

// -------------------- State --------------------

type State uint8

const (
	StateNew State = iota
	StateSent
	StateAcked
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "NEW"
	case StateSent:
		return "SENT"
	case StateAcked:
		return "ACKED"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// -------------------- Record --------------------

// Record is one value emitted by a drain run, with its delivery state.
type Record struct {
	Seq         uint64
	State       State
	Retries     uint32
	LastAttempt int64

	RunID uuid.UUID
	Index uint64
	Value int64
}

var ErrCorrupt = errors.New("outbox: corrupt record")

// Frame:
// [state:1][retries:4][lastAttempt:8][run:16][index:8][value:8][crc:4]
const recordLen = 1 + 4 + 8 + 16 + 8 + 8 + 4

func encodeRecord(r Record) []byte {
	buf := make([]byte, recordLen)
	buf[0] = byte(r.State)
	binary.BigEndian.PutUint32(buf[1:5], r.Retries)
	binary.BigEndian.PutUint64(buf[5:13], uint64(r.LastAttempt))
	copy(buf[13:29], r.RunID[:])
	binary.BigEndian.PutUint64(buf[29:37], r.Index)
	binary.BigEndian.PutUint64(buf[37:45], uint64(r.Value))
	binary.BigEndian.PutUint32(buf[45:49], crc32.ChecksumIEEE(buf[:45]))
	return buf
}

func decodeRecord(seq uint64, b []byte) (Record, error) {
	if len(b) != recordLen {
		return Record{}, ErrCorrupt
	}
	if crc32.ChecksumIEEE(b[:45]) != binary.BigEndian.Uint32(b[45:49]) {
		return Record{}, ErrCorrupt
	}
	r := Record{
		Seq:         seq,
		State:       State(b[0]),
		Retries:     binary.BigEndian.Uint32(b[1:5]),
		LastAttempt: int64(binary.BigEndian.Uint64(b[5:13])),
		Index:       binary.BigEndian.Uint64(b[29:37]),
		Value:       int64(binary.BigEndian.Uint64(b[37:45])),
	}
	copy(r.RunID[:], b[13:29])
	return r, nil
}
