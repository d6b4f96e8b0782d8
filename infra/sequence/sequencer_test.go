package sequence

import (
	"sync"
	"testing"
)

func TestSequencerMonotonic(t *testing.T) {
	s := New(10)
	if got := s.Next(); got != 11 {
		t.Fatalf("expected 11, got %d", got)
	}
	if s.Current() != 11 {
		t.Errorf("expected current 11, got %d", s.Current())
	}
	if got := New(0).Next(); got != 1 {
		t.Errorf("expected a fresh sequencer to start at 1, got %d", got)
	}
}

func TestSequencerConcurrentUnique(t *testing.T) {
	s := New(0)
	const workers, per = 8, 500
	seen := make(chan uint64, workers*per)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < per; i++ {
				seen <- s.Next()
			}
		}()
	}
	wg.Wait()
	close(seen)

	uniq := make(map[uint64]struct{}, workers*per)
	for v := range seen {
		uniq[v] = struct{}{}
	}
	if len(uniq) != workers*per {
		t.Fatalf("expected %d unique ids, got %d", workers*per, len(uniq))
	}
	if s.Current() != workers*per {
		t.Errorf("expected current %d, got %d", workers*per, s.Current())
	}
}
