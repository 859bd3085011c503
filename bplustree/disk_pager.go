package bplus

import (
	"fmt"
	"os"
)

// diskPager does positioned one-block reads and writes against the index
// file. Offsets are byte offsets, always block aligned.
type diskPager struct {
	file     *os.File
	filePath string
}

func newDiskPager(indexPath string) (*diskPager, error) {
	file, err := os.OpenFile(indexPath, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open index file %s: %w", indexPath, err)
	}
	return &diskPager{file: file, filePath: indexPath}, nil
}

func (p *diskPager) readBlockAt(offset int64, buf []byte) error {
	if p.file == nil {
		return fmt.Errorf("pager file is closed")
	}
	if _, err := p.file.ReadAt(buf, offset); err != nil {
		return fmt.Errorf("failed to read block at %d: %w", offset, err)
	}
	return nil
}

func (p *diskPager) writeBlockAt(offset int64, buf []byte) error {
	if p.file == nil {
		return fmt.Errorf("pager file is closed")
	}
	if _, err := p.file.WriteAt(buf, offset); err != nil {
		return fmt.Errorf("failed to write block at %d: %w", offset, err)
	}
	return nil
}

func (p *diskPager) truncate(size int64) error {
	if p.file == nil {
		return fmt.Errorf("pager file is closed")
	}
	return p.file.Truncate(size)
}

func (p *diskPager) sync() error {
	if p.file == nil {
		return fmt.Errorf("pager file is closed")
	}
	return p.file.Sync()
}

func (p *diskPager) closed() bool { return p.file == nil }

func (p *diskPager) close() error {
	if p.file == nil {
		return nil
	}
	if err := p.file.Sync(); err != nil {
		p.file.Close()
		p.file = nil
		return fmt.Errorf("failed to sync before close: %w", err)
	}
	err := p.file.Close()
	p.file = nil
	return err
}
