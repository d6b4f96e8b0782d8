package heaptree

// RotateLeft promotes r's right child to subtree root:
//
//	  r              c
//	 / \            / \
//	a   c    ->    r   e
//	   / \        / \
//	  d   e      a   d
//
// Parent links inside the subtree are updated; the returned root has its
// parent cleared and is not attached anywhere, that is left to the
// caller. r is returned unchanged when it has no right child.
func RotateLeft(r *Node) *Node {
	if r == nil || r.right == nil {
		return r
	}
	c := r.right
	r.right = c.left
	if c.left != nil {
		c.left.parent = r
	}
	c.left = r
	r.parent = c
	c.parent = nil
	return c
}

// RotateRight is the mirror of RotateLeft.
func RotateRight(r *Node) *Node {
	if r == nil || r.left == nil {
		return r
	}
	c := r.left
	r.left = c.right
	if c.right != nil {
		c.right.parent = r
	}
	c.right = r
	r.parent = c
	c.parent = nil
	return c
}

// RotateLeft rotates the subtree rooted at n and reattaches the promoted
// node where n used to hang. Heap order is restored lazily by the next
// Insert or extraction.
func (t *Tree) RotateLeft(n *Node) error {
	if n == nil || n.right == nil {
		return ErrNoChild
	}
	return t.rotate(n, RotateLeft, EventRotateLeft)
}

// RotateRight is the mirror of Tree.RotateLeft.
func (t *Tree) RotateRight(n *Node) error {
	if n == nil || n.left == nil {
		return ErrNoChild
	}
	return t.rotate(n, RotateRight, EventRotateRight)
}

func (t *Tree) rotate(n *Node, prim func(*Node) *Node, kind EventKind) error {
	if !t.owns(n) {
		return ErrForeignNode
	}
	parent := n.parent
	slot, ok := n.slotOf()
	if !ok {
		return &InvariantError{Key: n.key, Reason: "rotation pivot is not owned by its parent"}
	}

	top := prim(n)
	top.parent = parent
	if slot == nil {
		t.root = top
	} else {
		*slot = top
	}

	if top.key > n.key {
		t.dirty = true
	}
	t.emit(kind, n.key, top.key)
	return nil
}
