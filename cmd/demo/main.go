// Demo runs a small FD and OD validation scenario end to end and prints
// the resulting violation counts.
// Usage: go run ./cmd/demo
package main

import (
	"fmt"
	"log"

	"github.com/Jonas-dot/hyrise/depindex"
	"github.com/Jonas-dot/hyrise/keyspace"
)

func k(v int64) keyspace.Key { return keyspace.New(keyspace.Int64Col(v)) }

func main() {
	fd := depindex.Empty(3)
	fd.InsertEntry(k(1), k(10), depindex.FD)
	fd.InsertEntry(k(1), k(10), depindex.FD)
	fd.InsertEntry(k(2), k(20), depindex.FD)
	fmt.Printf("FD holds=%v violations=%d\n", fd.Holds(), fd.ViolationCount())

	fd.InsertEntry(k(1), k(11), depindex.FD)
	fmt.Printf("FD after conflicting RHS: holds=%v violations=%d\n", fd.Holds(), fd.ViolationCount())

	od := depindex.Empty(3)
	od.InsertEntry(k(1), k(30), depindex.OD)
	od.InsertEntry(k(2), k(20), depindex.OD)
	od.InsertEntry(k(3), k(10), depindex.OD)
	fmt.Printf("OD (descending RHS) holds=%v violations=%d\n", od.Holds(), od.ViolationCount())

	if rec, ok := od.GetPayload(k(1)); ok {
		log.Printf("lhs=1 max_rhs=%v flag_contribution=%d", rec.MaxRHS, rec.FlagContribution)
	}
}
