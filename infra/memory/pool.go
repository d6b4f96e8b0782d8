package memory

import (
	"errors"
	"sync"
)

// ErrExhausted is returned by Get once Limit objects are live.
var ErrExhausted = errors.New("memory: pool exhausted")

// Pool is a typed object pool with an optional cap on live objects.
// Objects handed out by Get count as live until passed back to Put.
type Pool[T any] struct {
	p     *sync.Pool
	mu    sync.Mutex
	live  int
	limit int
}

// NewPool builds a pool around ctor. limit <= 0 means unbounded.
func NewPool[T any](ctor func() *T, limit int) *Pool[T] {
	return &Pool[T]{
		p: &sync.Pool{
			New: func() any { return ctor() },
		},
		limit: limit,
	}
}

func (p *Pool[T]) Get() (*T, error) {
	p.mu.Lock()
	if p.limit > 0 && p.live >= p.limit {
		p.mu.Unlock()
		return nil, ErrExhausted
	}
	p.live++
	p.mu.Unlock()
	return p.p.Get().(*T), nil
}

func (p *Pool[T]) Put(v *T) {
	if v == nil {
		return
	}
	p.mu.Lock()
	if p.live > 0 {
		p.live--
	}
	p.mu.Unlock()
	p.p.Put(v)
}

// Live reports objects handed out and not yet returned.
func (p *Pool[T]) Live() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.live
}

func (p *Pool[T]) Limit() int { return p.limit }
