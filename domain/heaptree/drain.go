package heaptree

import "iter"

// PopMin removes and returns the smallest key.
//
// The last leaf's key is moved into the root, the leaf is unlinked from
// its parent by identity and freed, then the root's key sinks back down.
func (t *Tree) PopMin() (int64, error) {
	if t.root == nil {
		return 0, ErrEmpty
	}
	if t.dirty {
		t.Heapify()
	}

	leaf := t.root.LastLeaf()
	if leaf == t.root {
		key := leaf.key
		t.root = nil
		t.release(leaf)
		t.emit(EventExtract, key, key)
		return key, nil
	}

	slot, ok := leaf.slotOf()
	if !ok || slot == nil {
		return 0, &InvariantError{Key: leaf.key, Reason: "last leaf is not owned by its parent"}
	}

	smallest := t.root.key
	t.root.key = leaf.key
	*slot = nil
	t.emit(EventExtract, smallest, leaf.key)
	t.release(leaf)

	t.siftDown(t.root)
	return smallest, nil
}

// Drain returns a sequence that consumes the tree, yielding keys in
// non-decreasing order. Stopping early leaves a valid heap over the keys
// not yet yielded. Draining an empty tree yields nothing.
//
// A corrupted tree panics with the *InvariantError from PopMin rather
// than ending the sequence short. Callers that need an error use PopMin.
func (t *Tree) Drain() iter.Seq[int64] {
	return func(yield func(int64) bool) {
		for t.root != nil {
			key, err := t.PopMin()
			if err != nil {
				panic(err)
			}
			if !yield(key) {
				return
			}
		}
	}
}

// DrainSorted is Drain collected into a slice.
func (t *Tree) DrainSorted() []int64 {
	out := make([]int64, 0, t.size)
	for k := range t.Drain() {
		out = append(out, k)
	}
	return out
}
