package bplus

import (
	"bytes"
	"encoding/binary"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBootRecordLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeBootOffset(&buf, 0x1234))

	rec := buf.Bytes()
	require.Len(t, rec, bootRecordSize)
	require.Equal(t, make([]byte, 8), rec[:8], "high half is always zero")
	require.Equal(t, uint64(0x1234), binary.BigEndian.Uint64(rec[8:]))

	got, err := readBootOffset(bytes.NewReader(rec))
	require.NoError(t, err)
	require.Equal(t, int64(0x1234), got)
}

func TestBootRoundTrip(t *testing.T) {
	tree := newTestTree(t)
	tree.root = 3 * testBlockSize
	tree.fileSize = 6 * testBlockSize
	tree.freeBlocks = []int64{testBlockSize, 5 * testBlockSize}

	require.NoError(t, tree.saveBoot())

	boot, found, err := loadBoot(tree.bootPath())
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, tree.root, boot.root)
	require.Equal(t, tree.blockSize, boot.blockSize)
	require.Equal(t, tree.fileSize, boot.fileSize)
	require.Equal(t, tree.freeBlocks, boot.freeBlocks)
}

func TestBootFreeListStopsAtSentinel(t *testing.T) {
	tree := newTestTree(t)
	tree.freeBlocks = []int64{2 * testBlockSize}
	require.NoError(t, tree.saveBoot())

	// Trailing garbage past the sentinel must be ignored.
	f, err := os.OpenFile(tree.bootPath(), os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	require.NoError(t, writeBootOffset(f, 999*testBlockSize))
	require.NoError(t, f.Close())

	boot, found, err := loadBoot(tree.bootPath())
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []int64{2 * testBlockSize}, boot.freeBlocks)
}

func TestSyncPersistsBootWithoutClosing(t *testing.T) {
	tree := newTestTree(t)
	for k := int64(1); k <= 10; k++ {
		require.NoError(t, tree.Insert(k, k))
	}
	require.NoError(t, tree.Sync())

	boot, found, err := loadBoot(tree.bootPath())
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, tree.root, boot.root)
	require.Equal(t, tree.fileSize, boot.fileSize)

	// Still usable after syncing.
	v, err := tree.Search(5)
	require.NoError(t, err)
	require.Equal(t, int64(5), v)
}

func TestBootMissingMeansFreshTree(t *testing.T) {
	tree := newTestTree(t)
	require.Equal(t, InvalidOffset, tree.root)
	require.Zero(t, tree.fileSize)
	require.Empty(t, tree.freeBlocks)

	_, found, err := loadBoot(tree.bootPath())
	require.NoError(t, err)
	require.False(t, found)
}

func TestBootTruncatedFails(t *testing.T) {
	tree := newTestTree(t)
	require.NoError(t, tree.saveBoot())

	data, err := os.ReadFile(tree.bootPath())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(tree.bootPath(), data[:bootRecordSize+4], 0644))

	_, _, err = loadBoot(tree.bootPath())
	require.Error(t, err)
}

func TestBootPersistedBlockSizeWins(t *testing.T) {
	tree := newTestTree(t)
	for k := int64(1); k <= 10; k++ {
		require.NoError(t, tree.Insert(k, k))
	}
	path := tree.fileName
	require.NoError(t, tree.Close())

	// Reopen with a different requested block size: the boot value rules.
	reopened, err := NewBPlusTree(path, &Options{BlockSize: 4096, Logger: testLogger()})
	require.NoError(t, err)
	defer reopened.Close()
	require.Equal(t, int64(testBlockSize), reopened.blockSize)
	require.Equal(t, 5, reopened.Degree())

	v, err := reopened.Search(7)
	require.NoError(t, err)
	require.Equal(t, int64(7), v)
}
