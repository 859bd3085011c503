package bplus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllocAppendsWhenFreeListEmpty(t *testing.T) {
	tree := newTestTree(t)

	a := &Node{}
	require.Equal(t, int64(0), tree.allocBlock(a))
	require.Equal(t, int64(testBlockSize), tree.fileSize)

	b := &Node{}
	require.Equal(t, int64(testBlockSize), tree.allocBlock(b))
	require.Equal(t, int64(2*testBlockSize), tree.fileSize)
	require.Equal(t, b.Self, int64(testBlockSize))
}

func TestReleaseInteriorGoesToFreeList(t *testing.T) {
	tree := newTestTree(t)

	a, b, c := &Node{}, &Node{}, &Node{}
	tree.allocBlock(a)
	tree.allocBlock(b)
	tree.allocBlock(c)

	tree.unappendBlock(b)
	require.Equal(t, []int64{b.Self}, tree.freeBlocks)
	require.Equal(t, int64(3*testBlockSize), tree.fileSize)

	// The freed block is handed out again before the file grows.
	d := &Node{}
	require.Equal(t, b.Self, tree.allocBlock(d))
	require.Empty(t, tree.freeBlocks)
	require.Equal(t, int64(3*testBlockSize), tree.fileSize)
}

func TestReleaseTailShrinksFile(t *testing.T) {
	tree := newTestTree(t)

	a, b := &Node{}, &Node{}
	tree.allocBlock(a)
	tree.allocBlock(b)

	tree.unappendBlock(b)
	require.Equal(t, int64(testBlockSize), tree.fileSize)
	require.Empty(t, tree.freeBlocks)
}

func TestReleaseCascadesThroughFreeTail(t *testing.T) {
	tree := newTestTree(t)

	nodes := make([]*Node, 4)
	for i := range nodes {
		nodes[i] = &Node{}
		tree.allocBlock(nodes[i])
	}

	// Free the interior first, then the tail: the shrink must ripple all
	// the way back down to zero.
	tree.unappendBlock(nodes[1])
	tree.unappendBlock(nodes[2])
	tree.unappendBlock(nodes[0])
	require.Equal(t, int64(4*testBlockSize), tree.fileSize)
	require.Len(t, tree.freeBlocks, 3)

	tree.unappendBlock(nodes[3])
	require.Zero(t, tree.fileSize)
	require.Empty(t, tree.freeBlocks)
}
