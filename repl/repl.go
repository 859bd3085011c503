// Package repl is the interactive prompt over a tree: single keys or
// inclusive A-B ranges for insert/remove/search, plus tree dump, leaf walk,
// help and quit.
package repl

import (
	"errors"
	"fmt"
	"io"
	"strings"

	bplus "BriarDB/bplustree"
	"BriarDB/kvcache"

	"github.com/peterh/liner"
)

const helpText = `Commands:
  i N      insert key N (value N)
  i A-B    insert keys A..B
  r N      remove key N
  r A-B    remove keys A..B
  s N      search key N (prints value, -1 when absent)
  s A-B    search keys A..B
  d        dump the tree
  t        walk the leaf chain
  h        this help
  q        quit
`

type REPL struct {
	tree    *bplus.BPlusTree
	lookups *kvcache.Cache // optional
	out     io.Writer
}

func New(tree *bplus.BPlusTree, lookups *kvcache.Cache, out io.Writer) *REPL {
	return &REPL{tree: tree, lookups: lookups, out: out}
}

// Run drives the prompt until q or EOF. Only I/O and corruption errors
// escape; bad input is reported and the loop continues.
func (r *REPL) Run() error {
	l := liner.NewLiner()
	defer l.Close()
	l.SetCtrlCAborts(true)

	for {
		line, err := l.Prompt("briardb> ")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out)
			return nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		l.AppendHistory(line)

		quit, err := r.dispatch(line)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

func (r *REPL) dispatch(line string) (bool, error) {
	fields := strings.Fields(line)
	cmd := strings.ToLower(fields[0])

	switch cmd {
	case "q":
		return true, nil
	case "h":
		fmt.Fprint(r.out, helpText)
		return false, nil
	case "d":
		return false, r.tree.Dump(r.out)
	case "t":
		return false, r.tree.ScanLeaves(r.out)
	case "i", "r", "s":
		if len(fields) != 2 {
			fmt.Fprintf(r.out, "usage: %s N or %s A-B\n", cmd, cmd)
			return false, nil
		}
		lo, hi, err := parseRange(fields[1])
		if err != nil {
			fmt.Fprintf(r.out, "bad argument %q\n", fields[1])
			return false, nil
		}
		switch cmd {
		case "i":
			return false, r.insertRange(lo, hi)
		case "r":
			return false, r.removeRange(lo, hi)
		default:
			return false, r.searchRange(lo, hi)
		}
	default:
		fmt.Fprintf(r.out, "unknown command %q, h for help\n", cmd)
		return false, nil
	}
}

func (r *REPL) insertRange(lo, hi int64) error {
	for k := lo; k <= hi; k++ {
		err := r.tree.Insert(k, k)
		if errors.Is(err, bplus.ErrKeyExists) {
			fmt.Fprintf(r.out, "key %d already exists\n", k)
			continue
		}
		if err != nil {
			return err
		}
		if r.lookups != nil {
			r.lookups.Del(k)
		}
	}
	return nil
}

func (r *REPL) removeRange(lo, hi int64) error {
	for k := lo; k <= hi; k++ {
		if r.lookups != nil {
			r.lookups.Del(k)
		}
		err := r.tree.Remove(k)
		if errors.Is(err, bplus.ErrKeyNotFound) {
			fmt.Fprintf(r.out, "key %d not found\n", k)
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *REPL) searchRange(lo, hi int64) error {
	for k := lo; k <= hi; k++ {
		if r.lookups != nil {
			if v, ok := r.lookups.Get(k); ok {
				fmt.Fprintf(r.out, "key:%d value:%d\n", k, v)
				continue
			}
		}
		v, err := r.tree.Search(k)
		if errors.Is(err, bplus.ErrKeyNotFound) {
			fmt.Fprintf(r.out, "key:%d value:-1\n", k)
			continue
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "key:%d value:%d\n", k, v)
		if r.lookups != nil {
			r.lookups.Put(k, v)
		}
	}
	return nil
}
