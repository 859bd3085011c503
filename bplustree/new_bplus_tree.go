package bplus

import (
	"fmt"
	"os"

	"BriarDB/logger"
)

// DefaultBlockSize is used when no Options are given.
const DefaultBlockSize = 4096

// Options configures a tree instance. When the index already has a boot
// file, the persisted block size wins over Options.BlockSize.
type Options struct {
	BlockSize int64
	Logger    logger.Logger
}

func DefaultOptions() *Options {
	return &Options{BlockSize: DefaultBlockSize}
}

// BPlusTree is a disk-resident B+ tree mapping int64 keys to int64 values.
// It is single-threaded: callers must not issue concurrent operations.
type BPlusTree struct {
	fileName  string
	pager     *diskPager
	blockSize int64
	fileSize  int64
	root      int64
	degree    int

	freeBlocks []int64
	traceNode  []int64 // ancestor offsets of the current descent, root first

	cache *blockCache
	log   logger.Logger
}

// NewBPlusTree opens (or creates) the index at fileName and its boot
// sidecar at fileName + ".boot".
func NewBPlusTree(fileName string, opts *Options) (*BPlusTree, error) {
	if fileName == "" {
		return nil, fmt.Errorf("empty index path: %w", ErrIllegalArguments)
	}
	if opts == nil {
		opts = DefaultOptions()
	}
	lg := opts.Logger
	if lg == nil {
		lg = logger.NewSimpleLogger("briardb", os.Stderr)
	}

	t := &BPlusTree{
		fileName:  fileName,
		blockSize: opts.BlockSize,
		root:      InvalidOffset,
		log:       lg,
	}

	boot, found, err := loadBoot(t.bootPath())
	if err != nil {
		return nil, err
	}
	if found {
		t.root = boot.root
		t.blockSize = boot.blockSize
		t.fileSize = boot.fileSize
		t.freeBlocks = boot.freeBlocks
	}

	if t.blockSize <= blockHeaderSize {
		return nil, fmt.Errorf("block size %d: %w", t.blockSize, ErrIllegalArguments)
	}
	t.degree = int((t.blockSize - blockHeaderSize) / 16)
	if t.degree < minDegree {
		return nil, fmt.Errorf("block size %d yields degree %d, need at least %d: %w",
			t.blockSize, t.degree, minDegree, ErrIllegalArguments)
	}

	t.pager, err = newDiskPager(fileName)
	if err != nil {
		return nil, err
	}
	t.cache = newBlockCache(t.degree, t.blockSize)
	t.traceNode = make([]int64, 0, 16)

	if found {
		lg.Infof("index %s reopened: degree=%d blockSize=%d fileSize=%d free=%d",
			fileName, t.degree, t.blockSize, t.fileSize, len(t.freeBlocks))
	} else {
		lg.Infof("index %s created: degree=%d blockSize=%d", fileName, t.degree, t.blockSize)
	}
	return t, nil
}

// Sync persists the boot metadata and forces the index file to disk
// without closing the tree.
func (t *BPlusTree) Sync() error {
	if err := t.saveBoot(); err != nil {
		return err
	}
	return t.pager.sync()
}

// Close persists the boot metadata, trims the index file to its logical
// size and closes it. Safe to call more than once.
func (t *BPlusTree) Close() error {
	if t.pager.closed() {
		return nil
	}
	if err := t.saveBoot(); err != nil {
		return err
	}
	if err := t.pager.truncate(t.fileSize); err != nil {
		return err
	}
	t.log.Infof("index %s closed: fileSize=%d free=%d", t.fileName, t.fileSize, len(t.freeBlocks))
	return t.pager.close()
}

func (t *BPlusTree) bootPath() string { return t.fileName + ".boot" }

// Degree reports the maximum number of keys a node can hold.
func (t *BPlusTree) Degree() int { return t.degree }

// Root reports the root block offset, InvalidOffset for an empty tree.
func (t *BPlusTree) Root() int64 { return t.root }

// FileSize reports the logical index file length in bytes.
func (t *BPlusTree) FileSize() int64 { return t.fileSize }

// FreeBlocks returns a copy of the reusable block offsets.
func (t *BPlusTree) FreeBlocks() []int64 {
	return append([]int64(nil), t.freeBlocks...)
}
