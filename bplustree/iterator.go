package bplus

import (
	"fmt"
	"io"
)

// Iterator walks the leaf chain in ascending key order. It snapshots one
// leaf at a time, so it never holds a cache slot between Next calls.
// Mutating the tree invalidates the iterator.
type Iterator struct {
	tree *BPlusTree
	keys []int64
	vals []int64
	next int64
	idx  int
	err  error
}

// NewIterator returns an iterator positioned before the smallest key.
func (t *BPlusTree) NewIterator() *Iterator {
	it := &Iterator{tree: t, next: InvalidOffset, idx: -1}
	if t.root == InvalidOffset {
		return it
	}

	// The leftmost leaf is reached by always taking child 0.
	offset := t.root
	for {
		n, err := t.fetchBlock(offset)
		if err != nil {
			it.err = err
			return it
		}
		if n.isLeaf() {
			t.cacheDefer(n)
			it.next = offset
			return it
		}
		offset = t.child(n, 0)
		t.cacheDefer(n)
	}
}

// Next advances the iterator. Returns false when exhausted or on error.
func (it *Iterator) Next() bool {
	if it.err != nil {
		return false
	}
	it.idx++
	if it.idx < len(it.keys) {
		return true
	}
	if it.next == InvalidOffset {
		return false
	}
	n, err := it.tree.fetchBlock(it.next)
	if err != nil {
		it.err = err
		it.next = InvalidOffset
		return false
	}
	it.keys = append(it.keys[:0], n.keys[:n.Count]...)
	it.vals = append(it.vals[:0], n.ptrs[:n.Count]...)
	it.next = n.Next
	it.tree.cacheDefer(n)
	it.idx = 0
	return len(it.keys) > 0
}

// Key returns the key at the current position.
func (it *Iterator) Key() int64 { return it.keys[it.idx] }

// Value returns the value at the current position.
func (it *Iterator) Value() int64 { return it.vals[it.idx] }

// Err reports the first I/O error hit while iterating.
func (it *Iterator) Err() error { return it.err }

// ScanLeaves writes every stored value in leaf-chain order to w,
// space-separated on a single line.
func (t *BPlusTree) ScanLeaves(w io.Writer) error {
	it := t.NewIterator()
	first := true
	for it.Next() {
		if !first {
			fmt.Fprint(w, " ")
		}
		fmt.Fprintf(w, "%d", it.Value())
		first = false
	}
	if it.Err() != nil {
		return it.Err()
	}
	_, err := fmt.Fprintln(w)
	return err
}
