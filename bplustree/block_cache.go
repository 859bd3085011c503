package bplus

// blockCache is a fixed pool of MaxCacheNum block buffers plus one
// dedicated root buffer. Slots are explicit: every fetch acquires one,
// every flush or defer releases it, and running out means the working-set
// bound was broken, which is a bug, not a runtime condition.
type blockCache struct {
	slots [MaxCacheNum]*Node
	used  [MaxCacheNum]bool

	rootNode *Node
	rootUsed bool
}

// rootSlot tags the dedicated root buffer.
const rootSlot = MaxCacheNum

func newBlockCache(degree int, blockSize int64) *blockCache {
	c := &blockCache{}
	for i := range c.slots {
		c.slots[i] = newCacheNode(i, degree, blockSize)
	}
	c.rootNode = newCacheNode(rootSlot, degree, blockSize)
	return c
}

func newCacheNode(slot, degree int, blockSize int64) *Node {
	return &Node{
		slot: slot,
		keys: make([]int64, degree),
		ptrs: make([]int64, degree),
		buf:  make([]byte, blockSize),
	}
}

// acquire hands out any free pool slot.
func (c *blockCache) acquire() *Node {
	for i, inUse := range c.used {
		if !inUse {
			c.used[i] = true
			return c.slots[i]
		}
	}
	panic("bplustree: block cache exhausted")
}

// acquireRoot hands out the dedicated root buffer.
func (c *blockCache) acquireRoot() *Node {
	if c.rootUsed {
		panic("bplustree: root buffer already in use")
	}
	c.rootUsed = true
	return c.rootNode
}

// release frees the slot owning n. Slot identity is the node's own handle;
// releasing a foreign or already-free slot is a bug.
func (c *blockCache) release(n *Node) {
	if n.slot == rootSlot {
		if n != c.rootNode || !c.rootUsed {
			panic("bplustree: bad root buffer release")
		}
		c.rootUsed = false
		return
	}
	if n.slot < 0 || n.slot >= MaxCacheNum || c.slots[n.slot] != n {
		panic("bplustree: release of a node outside the pool")
	}
	if !c.used[n.slot] {
		panic("bplustree: double release of a cache slot")
	}
	c.used[n.slot] = false
}

// fetchBlock reads the block at offset into a cache slot. The root block
// goes to its dedicated buffer, everything else to the pool.
func (t *BPlusTree) fetchBlock(offset int64) (*Node, error) {
	var n *Node
	if offset == t.root {
		n = t.cache.acquireRoot()
	} else {
		n = t.cache.acquire()
	}
	if err := t.pager.readBlockAt(offset, n.buf); err != nil {
		t.cache.release(n)
		return nil, err
	}
	if err := t.decodeNode(n, offset); err != nil {
		t.cache.release(n)
		return nil, err
	}
	return n, nil
}

// flushBlock writes n back to its block and releases its slot.
func (t *BPlusTree) flushBlock(n *Node) error {
	t.encodeNode(n)
	err := t.pager.writeBlockAt(n.Self, n.buf)
	t.cache.release(n)
	return err
}

// cacheDefer releases n without writing.
func (t *BPlusTree) cacheDefer(n *Node) {
	t.cache.release(n)
}
