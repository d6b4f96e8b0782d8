package heaptree

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned when extracting from a tree with no nodes.
	ErrEmpty = errors.New("heaptree: tree is empty")
	// ErrAllocation wraps an allocator failure during Insert. The tree is
	// left exactly as it was.
	ErrAllocation = errors.New("heaptree: node allocation failed")
	// ErrInvariant marks a broken structural or ordering invariant.
	ErrInvariant = errors.New("heaptree: invariant violation")
	// ErrNoChild is returned by a rotation whose pivot child is missing.
	ErrNoChild = errors.New("heaptree: rotation needs a child on that side")
	// ErrForeignNode is returned when a node does not belong to the tree.
	ErrForeignNode = errors.New("heaptree: node is not part of this tree")
)

// InvariantError describes where Verify (or an extraction step) found the
// structure inconsistent.
type InvariantError struct {
	Key    int64
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("heaptree: invariant violation at key %d: %s", e.Key, e.Reason)
}

func (e *InvariantError) Unwrap() error { return ErrInvariant }
