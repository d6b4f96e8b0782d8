// Package sequence numbers drained values for the outbox.
package sequence

import "sync/atomic"

// Sequencer hands out outbox keys. Numbers are unique and increasing for
// the life of the process; zero is never issued.
type Sequencer struct {
	last atomic.Uint64
}

// New resumes numbering after last, normally outbox.LastSeq().
func New(last uint64) *Sequencer {
	s := new(Sequencer)
	s.last.Store(last)
	return s
}

func (s *Sequencer) Next() uint64 { return s.last.Add(1) }

// Current is the most recently issued number, or the starting point when
// none has been issued yet.
func (s *Sequencer) Current() uint64 { return s.last.Load() }
