// Seed program: builds a fresh index with a contiguous key range.
// Run: go run ./cmd/seed -index data.index -n 1000
// Then inspect: go run ./cmd/inspectidx data.index
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	bplus "BriarDB/bplustree"
	"BriarDB/logger"
)

func main() {
	indexPath := flag.String("index", "data.index", "index file to create")
	blockSize := flag.Int64("block-size", 128, "block size in bytes")
	n := flag.Int64("n", 1000, "number of keys to insert (1..n)")
	flag.Parse()

	tree, err := bplus.NewBPlusTree(*indexPath, &bplus.Options{
		BlockSize: *blockSize,
		Logger:    logger.NewSimpleLogger("seed", os.Stderr),
	})
	if err != nil {
		log.Fatalf("open index: %v", err)
	}

	for k := int64(1); k <= *n; k++ {
		if err := tree.Insert(k, k); err != nil {
			log.Fatalf("insert %d: %v", k, err)
		}
	}

	fmt.Printf("seeded %d keys: degree=%d fileSize=%d blocks=%d\n",
		*n, tree.Degree(), tree.FileSize(), tree.FileSize()/(*blockSize))

	if err := tree.Close(); err != nil {
		log.Fatalf("close index: %v", err)
	}
}
