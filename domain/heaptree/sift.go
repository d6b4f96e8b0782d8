package heaptree

// siftUp floats n's key toward the root. Once one level is ordered the
// levels above already are, so the loop stops at the first ordered pair.
func (t *Tree) siftUp(n *Node) {
	for p := n.parent; p != nil && n.key < p.key; n, p = p, p.parent {
		swapKeys(n, p)
		t.emit(EventSwapUp, p.key, n.key)
	}
}

// siftDown sinks n's key while its smaller child holds a strictly smaller
// key.
func (t *Tree) siftDown(n *Node) {
	for {
		c := n.SmallerChild()
		if c == nil || c.key >= n.key {
			return
		}
		swapKeys(n, c)
		t.emit(EventSwapDown, n.key, c.key)
		n = c
	}
}
