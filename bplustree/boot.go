package bplus

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// The boot sidecar is a stream of 16-byte big-endian unsigned records:
// root offset, block size, file size, then the free-block offsets,
// terminated by the InvalidOffset sentinel. Values occupy the low 8 bytes;
// the high 8 are zero.
const bootRecordSize = 16

type bootState struct {
	root       int64
	blockSize  int64
	fileSize   int64
	freeBlocks []int64
}

func readBootOffset(r io.Reader) (int64, error) {
	var rec [bootRecordSize]byte
	if _, err := io.ReadFull(r, rec[:]); err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(rec[8:])), nil
}

func writeBootOffset(w io.Writer, offset int64) error {
	var rec [bootRecordSize]byte
	binary.BigEndian.PutUint64(rec[8:], uint64(offset))
	_, err := w.Write(rec[:])
	return err
}

// loadBoot reads the boot file at path. A missing file is a fresh tree,
// reported as found == false.
func loadBoot(path string) (bootState, bool, error) {
	var boot bootState

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return boot, false, nil
	}
	if err != nil {
		return boot, false, fmt.Errorf("failed to open boot file %s: %w", path, err)
	}
	defer f.Close()

	for _, dst := range []*int64{&boot.root, &boot.blockSize, &boot.fileSize} {
		if *dst, err = readBootOffset(f); err != nil {
			return boot, false, fmt.Errorf("boot file %s truncated: %w", path, err)
		}
	}
	for {
		offset, err := readBootOffset(f)
		if errors.Is(err, io.EOF) || offset == InvalidOffset {
			break
		}
		if err != nil {
			return boot, false, fmt.Errorf("boot file %s truncated: %w", path, err)
		}
		boot.freeBlocks = append(boot.freeBlocks, offset)
	}
	return boot, true, nil
}

// saveBoot rewrites the boot file from the in-memory tree state.
func (t *BPlusTree) saveBoot() error {
	path := t.bootPath()
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create boot file %s: %w", path, err)
	}

	offsets := make([]int64, 0, 4+len(t.freeBlocks))
	offsets = append(offsets, t.root, t.blockSize, t.fileSize)
	offsets = append(offsets, t.freeBlocks...)
	offsets = append(offsets, InvalidOffset)

	for _, offset := range offsets {
		if err := writeBootOffset(f, offset); err != nil {
			f.Close()
			return fmt.Errorf("failed to write boot file %s: %w", path, err)
		}
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("failed to sync boot file %s: %w", path, err)
	}
	return f.Close()
}
