package repl

import (
	"fmt"
	"strconv"
	"strings"
)

// parseRange accepts a single integer N (possibly negative) or an
// inclusive range A-B with A <= B.
func parseRange(s string) (int64, int64, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, n, nil
	}
	a, b, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, fmt.Errorf("not a key or range: %q", s)
	}
	lo, err := strconv.ParseInt(a, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad range start: %q", a)
	}
	hi, err := strconv.ParseInt(b, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad range end: %q", b)
	}
	if lo > hi {
		return 0, 0, fmt.Errorf("empty range: %q", s)
	}
	return lo, hi, nil
}
