package bplus

// Node constructors. Each claims a cache slot; the caller owns the slot
// until it flushes or defers the node.

func (t *BPlusTree) newLeaf() *Node {
	n := t.cache.acquire()
	resetNode(n, BlockTypeLeaf)
	return n
}

func (t *BPlusTree) newNonLeaf() *Node {
	n := t.cache.acquire()
	resetNode(n, BlockTypeNonLeaf)
	return n
}

func (t *BPlusTree) newLeafRoot() *Node {
	n := t.cache.acquireRoot()
	resetNode(n, BlockTypeLeaf)
	return n
}

func (t *BPlusTree) newNonLeafRoot() *Node {
	n := t.cache.acquireRoot()
	resetNode(n, BlockTypeNonLeaf)
	return n
}

func resetNode(n *Node, blockType uint16) {
	n.Self = InvalidOffset
	n.Prev = InvalidOffset
	n.Next = InvalidOffset
	n.LastOffset = InvalidOffset
	n.Type = blockType
	n.Count = 0
	for i := range n.keys {
		n.keys[i] = 0
		n.ptrs[i] = 0
	}
}
