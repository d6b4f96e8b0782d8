package heaptree

import "fmt"

// Tree is a min-heap over int64 keys stored in a pointer-linked binary
// tree. The zero value is not ready; use New.
type Tree struct {
	root *Node
	size int

	// dirty is set when a rotation has put a larger key above a smaller
	// one. The next Insert or extraction heapifies first.
	dirty bool

	alloc Allocator
	trace TraceFunc
}

func New(opts ...Option) *Tree {
	t := &Tree{alloc: heapAllocator{}}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ---- public API ----

func (t *Tree) Len() int      { return t.size }
func (t *Tree) Empty() bool   { return t.root == nil }
func (t *Tree) Root() *Node   { return t.root }
func (t *Tree) Ordered() bool { return !t.dirty }

// Height is the number of nodes on the longest root-to-leaf path.
func (t *Tree) Height() int { return t.root.Height() }

// Balance is the root's balance factor.
func (t *Tree) Balance() int { return t.root.BalanceFactor() }

// Min returns the smallest key without removing it.
func (t *Tree) Min() (int64, error) {
	if t.root == nil {
		return 0, ErrEmpty
	}
	if t.dirty {
		t.Heapify()
	}
	return t.root.key, nil
}

// Insert adds key. Storage is obtained before any link changes, so an
// allocation failure leaves the tree untouched.
func (t *Tree) Insert(key int64) error {
	n, err := t.alloc.Get()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAllocation, err)
	}
	if n == nil {
		return ErrAllocation
	}
	*n = Node{key: key}

	if t.dirty {
		t.Heapify()
	}

	if t.root == nil {
		t.root = n
		t.size++
		t.emit(EventInsert, key, 0)
		return nil
	}

	cur := t.root
	for {
		if key > cur.key {
			if cur.right == nil {
				cur.right = n
				break
			}
			cur = cur.right
		} else {
			if cur.left == nil {
				cur.left = n
				break
			}
			cur = cur.left
		}
	}
	n.parent = cur
	t.size++
	t.emit(EventInsert, key, cur.key)

	t.siftUp(n)
	return nil
}

// Find returns the first node holding key in pre-order, or nil. Sifting
// breaks search-tree order, so this walks the whole tree.
func (t *Tree) Find(key int64) *Node {
	var found *Node
	t.preOrder(t.root, func(n *Node) bool {
		if n.key == key {
			found = n
			return false
		}
		return true
	})
	return found
}

// Clear frees every node and leaves the tree empty and ready for reuse.
func (t *Tree) Clear() {
	var free func(n *Node)
	free = func(n *Node) {
		if n == nil {
			return
		}
		free(n.left)
		free(n.right)
		t.release(n)
	}
	free(t.root)
	t.root = nil
	t.size = 0
	t.dirty = false
}

// Heapify restores heap order over the whole tree by sifting every node
// down, children before parents.
func (t *Tree) Heapify() {
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		walk(n.left)
		walk(n.right)
		t.siftDown(n)
	}
	walk(t.root)
	t.dirty = false
	t.emit(EventHeapify, t.root.Key(), 0)
}

// ---- internal helpers ----

func (t *Tree) release(n *Node) {
	*n = Node{}
	t.size--
	t.alloc.Put(n)
}

func (t *Tree) emit(kind EventKind, key, other int64) {
	if t.trace != nil {
		t.trace(Event{Kind: kind, Key: key, Other: other})
	}
}

func (t *Tree) preOrder(n *Node, fn func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	return t.preOrder(n.left, fn) && t.preOrder(n.right, fn)
}

// owns walks parent links from n and reports whether they end at root.
func (t *Tree) owns(n *Node) bool {
	for n != nil {
		if n == t.root {
			return true
		}
		n = n.parent
	}
	return false
}
