package bplus

import (
	"encoding/binary"
	"fmt"
)

// Block layout, little-endian:
//   - Header (38 bytes): self(8), prev(8), next(8), lastOffset(8),
//     type(2), count(4)
//   - keys[DEGREE] (8 bytes each)
//   - values[DEGREE] for a leaf, child offsets[DEGREE] for a non-leaf
//
// The (DEGREE+1)-th child of a saturated non-leaf lives in the lastOffset
// header field, which is how DEGREE+1 children fit a block that only has
// DEGREE pointer slots.

// encodeNode serializes n into its slot buffer.
func (t *BPlusTree) encodeNode(n *Node) {
	b := n.buf
	binary.LittleEndian.PutUint64(b[0:], uint64(n.Self))
	binary.LittleEndian.PutUint64(b[8:], uint64(n.Prev))
	binary.LittleEndian.PutUint64(b[16:], uint64(n.Next))
	binary.LittleEndian.PutUint64(b[24:], uint64(n.LastOffset))
	binary.LittleEndian.PutUint16(b[32:], n.Type)
	binary.LittleEndian.PutUint32(b[34:], uint32(n.Count))

	off := blockHeaderSize
	for i := 0; i < t.degree; i++ {
		binary.LittleEndian.PutUint64(b[off:], uint64(n.keys[i]))
		off += 8
	}
	for i := 0; i < t.degree; i++ {
		binary.LittleEndian.PutUint64(b[off:], uint64(n.ptrs[i]))
		off += 8
	}
}

// decodeNode rebuilds n from its slot buffer and validates it against the
// expected offset. Any inconsistency is fatal by contract.
func (t *BPlusTree) decodeNode(n *Node, expected int64) error {
	b := n.buf
	n.Self = int64(binary.LittleEndian.Uint64(b[0:]))
	n.Prev = int64(binary.LittleEndian.Uint64(b[8:]))
	n.Next = int64(binary.LittleEndian.Uint64(b[16:]))
	n.LastOffset = int64(binary.LittleEndian.Uint64(b[24:]))
	n.Type = binary.LittleEndian.Uint16(b[32:])
	n.Count = int(binary.LittleEndian.Uint32(b[34:]))

	if n.Self != expected {
		return fmt.Errorf("block at %d claims offset %d: %w", expected, n.Self, ErrCorruptedBlock)
	}
	if n.Type != BlockTypeLeaf && n.Type != BlockTypeNonLeaf {
		return fmt.Errorf("block at %d has type %d: %w", expected, n.Type, ErrCorruptedBlock)
	}
	if n.Count < 0 || n.Count > t.degree {
		return fmt.Errorf("block at %d has count %d: %w", expected, n.Count, ErrCorruptedBlock)
	}

	off := blockHeaderSize
	for i := 0; i < t.degree; i++ {
		n.keys[i] = int64(binary.LittleEndian.Uint64(b[off:]))
		off += 8
	}
	for i := 0; i < t.degree; i++ {
		n.ptrs[i] = int64(binary.LittleEndian.Uint64(b[off:]))
		off += 8
	}

	if n.isLeaf() {
		if err := t.checkLinkOffset(n.Prev, expected); err != nil {
			return err
		}
		if err := t.checkLinkOffset(n.Next, expected); err != nil {
			return err
		}
		if n.LastOffset != InvalidOffset {
			return fmt.Errorf("leaf at %d carries lastOffset %d: %w", expected, n.LastOffset, ErrCorruptedBlock)
		}
		return nil
	}

	if n.Count < t.degree && n.LastOffset != InvalidOffset {
		return fmt.Errorf("unsaturated non-leaf at %d carries lastOffset %d: %w",
			expected, n.LastOffset, ErrCorruptedBlock)
	}
	for i := 0; i <= n.Count; i++ {
		c := t.child(n, i)
		if c == InvalidOffset || c < 0 || c >= t.fileSize || c%t.blockSize != 0 {
			return fmt.Errorf("non-leaf at %d has child offset %d: %w", expected, c, ErrCorruptedBlock)
		}
	}
	return nil
}

// checkLinkOffset validates a prev/next sibling pointer.
func (t *BPlusTree) checkLinkOffset(off, at int64) error {
	if off == InvalidOffset {
		return nil
	}
	if off < 0 || off >= t.fileSize || off%t.blockSize != 0 {
		return fmt.Errorf("leaf at %d has sibling offset %d: %w", at, off, ErrCorruptedBlock)
	}
	return nil
}
