package bplus

// updateParentNode propagates a split upward: left and right are the two
// freshly split siblings (still holding their slots), key the promoted
// separator. With no ancestors left on the trace stack a new root is made;
// otherwise the nearest ancestor absorbs the separator.
func (t *BPlusTree) updateParentNode(left, right *Node, key int64) error {
	if len(t.traceNode) == 0 {
		leftOff, rightOff := left.Self, right.Self
		if err := t.flushBlock(left); err != nil {
			return err
		}
		if err := t.flushBlock(right); err != nil {
			return err
		}
		root := t.newNonLeafRoot()
		t.allocBlock(root)
		root.keys[0] = key
		root.ptrs[0] = leftOff
		root.ptrs[1] = rightOff
		root.Count = 1
		off := root.Self
		if err := t.flushBlock(root); err != nil {
			return err
		}
		t.root = off
		t.log.Debugf("new root at offset %d", off)
		return nil
	}

	parent, err := t.fetchBlock(t.popTrace())
	if err != nil {
		t.cacheDefer(left)
		t.cacheDefer(right)
		return err
	}
	return t.insertNonLeaf(parent, left, right, key)
}

// insertNonLeaf places the separator key with children left/right into
// node, splitting it when saturated.
func (t *BPlusTree) insertNonLeaf(node *Node, leftChild, rightChild *Node, key int64) error {
	pos := t.searchInNode(node, key)
	if pos >= 0 {
		panic("bplustree: promoted separator already present in parent")
	}
	pos = -pos - 1

	if node.Count < t.degree {
		if err := t.simpleInsertNonLeaf(node, pos, key, leftChild, rightChild); err != nil {
			return err
		}
		return t.flushBlock(node)
	}

	split := t.degree / 2
	switch {
	case pos < split:
		left := t.newNonLeaf()
		t.allocBlock(left)
		promote, err := t.splitLeftNonLeaf(node, left, pos, key, leftChild, rightChild)
		if err != nil {
			return err
		}
		t.log.Debugf("non-leaf %d split left, new sibling %d", node.Self, left.Self)
		return t.updateParentNode(left, node, promote)
	case pos == split:
		right := t.newNonLeaf()
		t.allocBlock(right)
		promote, err := t.splitRightNonLeaf1(node, right, key, leftChild, rightChild)
		if err != nil {
			return err
		}
		t.log.Debugf("non-leaf %d split right at middle, new sibling %d", node.Self, right.Self)
		return t.updateParentNode(node, right, promote)
	default:
		right := t.newNonLeaf()
		t.allocBlock(right)
		promote, err := t.splitRightNonLeaf2(node, right, pos, key, leftChild, rightChild)
		if err != nil {
			return err
		}
		t.log.Debugf("non-leaf %d split right, new sibling %d", node.Self, right.Self)
		return t.updateParentNode(node, right, promote)
	}
}

// simpleInsertNonLeaf makes room at pos, writes the separator and both
// child offsets, and flushes the children. When the insertion saturates
// the node the shift itself carries the last child into lastOffset.
func (t *BPlusTree) simpleInsertNonLeaf(node *Node, pos int, key int64, leftChild, rightChild *Node) error {
	for i := node.Count; i > pos; i-- {
		node.keys[i] = node.keys[i-1]
	}
	for i := node.Count + 1; i > pos+1; i-- {
		t.setChild(node, i, t.child(node, i-1))
	}
	node.keys[pos] = key
	t.setChild(node, pos, leftChild.Self)
	t.setChild(node, pos+1, rightChild.Self)
	node.Count++

	if err := t.flushBlock(leftChild); err != nil {
		return err
	}
	return t.flushBlock(rightChild)
}
