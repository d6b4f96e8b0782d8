// Package heaptree implements a pointer-linked binary tree kept in
// min-heap order and the destructive sort built on it.
//
// Keys are placed by binary-search descent (strictly greater goes right)
// and then float toward the root by exchanging keys with their parent.
// Draining moves the structurally-last leaf's key into the root, frees
// that leaf and sinks the root's key back down, so the keys read off the
// root come out in non-decreasing order.
//
// Sifts exchange keys, never nodes: a node keeps its position and its
// parent link from creation until it is freed. The package is
// single-writer; a Tree must not be shared between goroutines without
// external locking.
package heaptree
