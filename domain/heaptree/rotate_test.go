package heaptree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotatePrimitives(t *testing.T) {
	//    2            4
	//   / \          / \
	//  1   4   ->   2   5
	//     / \      / \
	//    3   5    1   3
	three, five := &Node{key: 3}, &Node{key: 5}
	four := link(&Node{key: 4}, three, five)
	one := &Node{key: 1}
	two := link(&Node{key: 2}, one, four)

	top := RotateLeft(two)
	require.Same(t, four, top)
	assert.Nil(t, top.Parent())
	assert.Same(t, two, four.Left())
	assert.Same(t, four, two.Parent())
	assert.Same(t, three, two.Right())
	assert.Same(t, two, three.Parent())
	assert.Same(t, one, two.Left())

	back := RotateRight(top)
	require.Same(t, two, back)
	assert.Nil(t, back.Parent())
	assert.Same(t, four, two.Right())
	assert.Same(t, three, four.Left())
	assert.Same(t, four, three.Parent())

	leaf := &Node{key: 9}
	assert.Same(t, leaf, RotateLeft(leaf))
	assert.Same(t, leaf, RotateRight(leaf))
	assert.Nil(t, RotateLeft(nil))
}

func TestTreeRotationKeepsInOrder(t *testing.T) {
	tree := build(t, 5, 10, 7, 4, 15, 25, 13)
	before := tree.Keys()

	root := tree.Root()
	require.NotNil(t, root.Right())
	require.NoError(t, tree.RotateLeft(root))
	require.NoError(t, tree.Verify())
	assert.Nil(t, tree.Root().Parent())
	assert.False(t, tree.Ordered())

	require.NoError(t, tree.RotateRight(tree.Root()))
	require.NoError(t, tree.Verify())
	assert.Equal(t, before, tree.Keys())
	assert.Equal(t, 7, tree.Len())
}

func TestRotationOfInnerNodeReattaches(t *testing.T) {
	// ascending input builds a right spine
	tree := build(t, 1, 2, 3, 4)
	inner := tree.Root().Right()
	parent := inner.Parent()

	require.NoError(t, tree.RotateLeft(inner))
	require.NoError(t, tree.Verify())
	assert.Equal(t, int64(3), parent.Right().Key())
	assert.Same(t, parent, parent.Right().Parent())
	assert.Equal(t, 3, tree.Height())
}

func TestDrainAfterRotationIsSorted(t *testing.T) {
	tree := build(t, 1, 2, 3, 4, 5, 6)
	require.NoError(t, tree.RotateLeft(tree.Root()))
	require.NoError(t, tree.RotateLeft(tree.Root().Right()))
	assert.False(t, tree.Ordered())

	require.NoError(t, tree.Insert(0))
	assert.True(t, tree.Ordered())
	require.NoError(t, tree.Verify())
	assert.Equal(t, []int64{0, 1, 2, 3, 4, 5, 6}, tree.DrainSorted())
}

func TestBalanceAfterRotation(t *testing.T) {
	tree := build(t, 1, 2, 3)
	assert.Equal(t, 2, tree.Balance())
	assert.Equal(t, 3, tree.Height())

	require.NoError(t, tree.RotateLeft(tree.Root()))
	assert.Equal(t, 0, tree.Balance())
	assert.Equal(t, 2, tree.Height())
}

func TestRotateErrors(t *testing.T) {
	tree := build(t, 1, 2)
	assert.ErrorIs(t, tree.RotateRight(tree.Root()), ErrNoChild)
	assert.ErrorIs(t, tree.RotateLeft(nil), ErrNoChild)

	other := build(t, 1, 2)
	assert.ErrorIs(t, tree.RotateLeft(other.Root()), ErrForeignNode)
}
