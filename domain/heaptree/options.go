package heaptree

// Allocator hands out and takes back node storage. memory.Pool[Node]
// satisfies it.
type Allocator interface {
	Get() (*Node, error)
	Put(*Node)
}

type heapAllocator struct{}

func (heapAllocator) Get() (*Node, error) { return new(Node), nil }
func (heapAllocator) Put(*Node)           {}

// EventKind names a structural step reported to a TraceFunc.
type EventKind uint8

const (
	EventInsert EventKind = iota
	EventSwapUp
	EventSwapDown
	EventExtract
	EventRotateLeft
	EventRotateRight
	EventHeapify
)

func (k EventKind) String() string {
	switch k {
	case EventInsert:
		return "insert"
	case EventSwapUp:
		return "swap-up"
	case EventSwapDown:
		return "swap-down"
	case EventExtract:
		return "extract"
	case EventRotateLeft:
		return "rotate-left"
	case EventRotateRight:
		return "rotate-right"
	case EventHeapify:
		return "heapify"
	default:
		return "unknown"
	}
}

// Event is one traced step. For swaps Key is the value that moved up and
// Other the value that moved down; for rotations Key is the old subtree
// root and Other the promoted one.
type Event struct {
	Kind  EventKind
	Key   int64
	Other int64
}

type TraceFunc func(Event)

type Option func(*Tree)

// WithAllocator replaces the default new(Node) allocator.
func WithAllocator(a Allocator) Option {
	return func(t *Tree) {
		if a != nil {
			t.alloc = a
		}
	}
}

// WithTracer installs a hook called for every structural step.
func WithTracer(fn TraceFunc) Option {
	return func(t *Tree) { t.trace = fn }
}
