package heaptree

import (
	"fmt"
	"io"
)

// Verify checks parent links, the node count and, unless a rotation has
// left the tree unordered, heap order. It returns an *InvariantError.
func (t *Tree) Verify() error {
	if t.root == nil {
		if t.size != 0 {
			return &InvariantError{Reason: fmt.Sprintf("empty tree reports %d nodes", t.size)}
		}
		return nil
	}
	if t.root.parent != nil {
		return &InvariantError{Key: t.root.key, Reason: "root has a parent"}
	}

	count := 0
	var err error
	t.preOrder(t.root, func(n *Node) bool {
		count++
		for _, c := range [2]*Node{n.left, n.right} {
			if c == nil {
				continue
			}
			if c.parent != n {
				err = &InvariantError{Key: c.key, Reason: fmt.Sprintf("parent link does not point at owner %d", n.key)}
				return false
			}
			if !t.dirty && c.key < n.key {
				err = &InvariantError{Key: c.key, Reason: fmt.Sprintf("child smaller than parent %d", n.key)}
				return false
			}
		}
		if n.left != nil && n.left == n.right {
			err = &InvariantError{Key: n.key, Reason: "both slots hold the same node"}
			return false
		}
		return true
	})
	if err != nil {
		return err
	}
	if count != t.size {
		return &InvariantError{Key: t.root.key, Reason: fmt.Sprintf("counted %d nodes, tree reports %d", count, t.size)}
	}
	return nil
}

// ---- walkers ----

// InOrder visits nodes left, self, right until fn returns false.
func (t *Tree) InOrder(fn func(*Node) bool) {
	var walk func(n *Node) bool
	walk = func(n *Node) bool {
		if n == nil {
			return true
		}
		return walk(n.left) && fn(n) && walk(n.right)
	}
	walk(t.root)
}

// Keys returns the keys in in-order position order.
func (t *Tree) Keys() []int64 {
	out := make([]int64, 0, t.size)
	t.InOrder(func(n *Node) bool {
		out = append(out, n.key)
		return true
	})
	return out
}

// Dump writes a pre-order listing: the root is marked <ROOT> and every
// other key is followed by its parent's key.
func (t *Tree) Dump(w io.Writer) error {
	var err error
	t.preOrder(t.root, func(n *Node) bool {
		if n.parent == nil {
			_, err = fmt.Fprintf(w, "<ROOT> %d ", n.key)
		} else {
			_, err = fmt.Fprintf(w, " %d p:%d ", n.key, n.parent.key)
		}
		return err == nil
	})
	return err
}
