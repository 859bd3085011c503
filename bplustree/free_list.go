package bplus

// allocBlock assigns a block offset to n: a reused free block when one
// exists, otherwise a fresh append at the end of the file.
func (t *BPlusTree) allocBlock(n *Node) int64 {
	if last := len(t.freeBlocks) - 1; last >= 0 {
		off := t.freeBlocks[last]
		t.freeBlocks = t.freeBlocks[:last]
		n.Self = off
		return off
	}
	off := t.fileSize
	t.fileSize += t.blockSize
	n.Self = off
	return off
}

// unappendBlock returns n's block to the free map. Freeing the last block
// shrinks the file instead, and keeps shrinking while the new tail is
// itself free, so a fully emptied tree ends at file size zero.
func (t *BPlusTree) unappendBlock(n *Node) {
	if n.Self+t.blockSize != t.fileSize {
		t.freeBlocks = append(t.freeBlocks, n.Self)
		return
	}
	t.fileSize = n.Self
	for {
		tail := t.fileSize - t.blockSize
		if tail < 0 {
			return
		}
		i := indexOfOffset(t.freeBlocks, tail)
		if i < 0 {
			return
		}
		t.freeBlocks = append(t.freeBlocks[:i], t.freeBlocks[i+1:]...)
		t.fileSize = tail
	}
}

// removeNodeBlock frees n's block and its cache slot.
func (t *BPlusTree) removeNodeBlock(n *Node) {
	t.unappendBlock(n)
	t.cacheDefer(n)
}

func indexOfOffset(offsets []int64, target int64) int {
	for i, off := range offsets {
		if off == target {
			return i
		}
	}
	return -1
}
