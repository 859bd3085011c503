// Inspect a B+ tree index/boot pair.
// Usage: go run ./cmd/inspectidx <path-to-index>
package main

import (
	"fmt"
	"os"

	bplus "BriarDB/bplustree"
	"BriarDB/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <index file>\n", os.Args[0])
		os.Exit(1)
	}
	path := os.Args[1]

	opts := bplus.DefaultOptions()
	opts.Logger = logger.NewSimpleLoggerWithLevel("inspectidx", os.Stderr, logger.LogError)
	tree, err := bplus.NewBPlusTree(path, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer tree.Close()

	fmt.Printf("Index file: %s\n", path)
	fmt.Printf("  degree:      %d\n", tree.Degree())
	fmt.Printf("  file size:   %d\n", tree.FileSize())
	fmt.Printf("  free blocks: %d\n", len(tree.FreeBlocks()))
	if tree.Root() == bplus.InvalidOffset {
		fmt.Println("  root:        (empty tree)")
		return
	}
	fmt.Printf("  root:        %d\n", tree.Root())

	fmt.Println("\nStructure:")
	if err := tree.Dump(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nLeaf chain values:")
	if err := tree.ScanLeaves(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
