// Inspect prints a breadth-first dump of a dependency index tree built
// from a demo column, one node per line.
// Usage: go run ./cmd/inspect
package main

import (
	"fmt"
	"os"

	"github.com/Jonas-dot/hyrise/depindex"
	"github.com/Jonas-dot/hyrise/segment"
)

func main() {
	col := segment.NewInt64Segment([]int64{7, 3, 9, 1, 5, 2, 8, 4, 6, 10, 12, 11}, nil)
	idx := depindex.NewIndex(3, []segment.Segment{col})

	fmt.Printf("key_count=%d\n", idx.KeyCount())
	if err := idx.DumpTo(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
