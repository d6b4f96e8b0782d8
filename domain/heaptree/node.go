package heaptree

// Node is a single tree cell. A node owns its children through the two
// slots; parent is a back reference to the node owning this one, nil for
// the root.
type Node struct {
	key    int64
	left   *Node
	right  *Node
	parent *Node
}

// ---- navigation ----
//
// Every accessor is safe on a nil *Node and answers "nothing" for it.

func (n *Node) Key() int64 {
	if n == nil {
		return 0
	}
	return n.key
}

func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

func (n *Node) Left() *Node {
	if n == nil {
		return nil
	}
	return n.left
}

func (n *Node) Right() *Node {
	if n == nil {
		return nil
	}
	return n.right
}

// IsLeaf reports whether n has no children. A nil node counts as a leaf
// so descents can stop on it.
func (n *Node) IsLeaf() bool {
	if n == nil {
		return true
	}
	return n.left == nil && n.right == nil
}

// SmallerChild returns the child with the smaller key, the only child
// when there is one, or nil for a leaf. Ties go to the left child.
func (n *Node) SmallerChild() *Node {
	if n.IsLeaf() {
		return nil
	}
	switch {
	case n.left == nil:
		return n.right
	case n.right == nil:
		return n.left
	case n.right.key < n.left.key:
		return n.right
	default:
		return n.left
	}
}

// LargerChild mirrors SmallerChild. Ties go to the left child.
func (n *Node) LargerChild() *Node {
	if n.IsLeaf() {
		return nil
	}
	switch {
	case n.left == nil:
		return n.right
	case n.right == nil:
		return n.left
	case n.right.key > n.left.key:
		return n.right
	default:
		return n.left
	}
}

// LastLeaf descends from n preferring the right child, else the left,
// until it reaches a leaf. The leaf is not necessarily the largest key.
func (n *Node) LastLeaf() *Node {
	for n != nil && !n.IsLeaf() {
		if n.right != nil {
			n = n.right
		} else {
			n = n.left
		}
	}
	return n
}

// Height is 0 for nil, otherwise 1 + the taller child's height.
func (n *Node) Height() int {
	if n == nil {
		return 0
	}
	return 1 + max(n.left.Height(), n.right.Height())
}

// BalanceFactor is height(right) - height(left); positive means right
// heavy.
func (n *Node) BalanceFactor() int {
	if n == nil {
		return 0
	}
	return n.right.Height() - n.left.Height()
}

// slotOf returns the parent slot that currently owns n. The root has no
// slot. ok is false when n claims a parent that holds neither slot for it.
// Identity, not key, decides the slot.
func (n *Node) slotOf() (slot **Node, ok bool) {
	p := n.parent
	switch {
	case p == nil:
		return nil, true
	case p.left == n:
		return &p.left, true
	case p.right == n:
		return &p.right, true
	default:
		return nil, false
	}
}

func swapKeys(a, b *Node) {
	a.key, b.key = b.key, a.key
}
