package bplus

import (
	"fmt"
	"io"
)

// Dump writes a preorder rendering of the tree to w, one node per line,
// children indented one level deeper than their parent.
func (t *BPlusTree) Dump(w io.Writer) error {
	if t.root == InvalidOffset {
		_, err := fmt.Fprintln(w, "(empty tree)")
		return err
	}
	return t.draw(w, t.root, 0)
}

func (t *BPlusTree) draw(w io.Writer, offset int64, level int) error {
	n, err := t.fetchBlock(offset)
	if err != nil {
		return err
	}

	for i := 0; i < level; i++ {
		fmt.Fprint(w, "    ")
	}
	kind := "leaf"
	if !n.isLeaf() {
		kind = "node"
	}
	fmt.Fprintf(w, "[%s@%d] %v\n", kind, n.Self, n.keys[:n.Count])

	if n.isLeaf() {
		t.cacheDefer(n)
		return nil
	}

	// Snapshot the child offsets so the slot frees before recursing;
	// holding the whole ancestor chain would break the working-set bound.
	children := make([]int64, n.Count+1)
	for i := range children {
		children[i] = t.child(n, i)
	}
	t.cacheDefer(n)

	for _, c := range children {
		if err := t.draw(w, c, level+1); err != nil {
			return err
		}
	}
	return nil
}
