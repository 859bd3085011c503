package bplus

import "fmt"

// locateLeaf descends from the root to the leaf covering key, pushing each
// visited non-leaf offset onto the trace stack. Offsets, not slots: by the
// time an ancestor is needed again its buffer is long recycled.
func (t *BPlusTree) locateLeaf(key int64) (*Node, error) {
	t.traceNode = t.traceNode[:0]
	n, err := t.fetchBlock(t.root)
	if err != nil {
		return nil, err
	}
	for !n.isLeaf() {
		next := t.child(n, childIndex(t.searchInNode(n, key)))
		t.traceNode = append(t.traceNode, n.Self)
		t.cacheDefer(n)
		if n, err = t.fetchBlock(next); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// popTrace takes the nearest untouched ancestor off the trace stack.
func (t *BPlusTree) popTrace() int64 {
	last := len(t.traceNode) - 1
	off := t.traceNode[last]
	t.traceNode = t.traceNode[:last]
	return off
}

// Search returns the value stored under key.
func (t *BPlusTree) Search(key int64) (int64, error) {
	if t.root == InvalidOffset {
		return 0, fmt.Errorf("key %d: %w", key, ErrKeyNotFound)
	}
	leaf, err := t.locateLeaf(key)
	if err != nil {
		return 0, err
	}
	pos := t.searchInNode(leaf, key)
	if pos < 0 {
		t.cacheDefer(leaf)
		return 0, fmt.Errorf("key %d: %w", key, ErrKeyNotFound)
	}
	value := leaf.ptrs[pos]
	t.cacheDefer(leaf)
	return value, nil
}
