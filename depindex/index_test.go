package depindex

import (
	"strings"
	"testing"

	"github.com/Jonas-dot/hyrise/keyspace"
	"github.com/Jonas-dot/hyrise/segment"
)

func lhs(v int64) keyspace.Key { return keyspace.New(keyspace.Int64Col(v)) }
func rhs(v int64) keyspace.Key { return keyspace.New(keyspace.Int64Col(v)) }

func TestNewIndexBulkLoadsThenAcceptsTraffic(t *testing.T) {
	col := segment.NewInt64Segment([]int64{1, 1, 2, 3}, nil)
	idx := NewIndex(3, []segment.Segment{col})

	if idx.KeyCount() != 3 {
		t.Fatalf("expected 3 distinct keys after bulk load, got %d", idx.KeyCount())
	}
	rec, ok := idx.GetPayload(lhs(1))
	if !ok || rec.Count != 2 {
		t.Fatalf("expected bulk-loaded count 2 for key 1, got %+v ok=%v", rec, ok)
	}

	idx.InsertEntry(lhs(1), rhs(100), FD)
	idx.InsertEntry(lhs(1), rhs(200), FD)
	if idx.Holds() {
		t.Fatalf("expected FD violation after two distinct RHS for key 1")
	}
}

func TestGetPayloadCacheReflectsMutation(t *testing.T) {
	idx := Empty(3)
	idx.InsertEntry(lhs(1), rhs(10), FD)

	rec, ok := idx.GetPayload(lhs(1))
	if !ok || len(rec.RHSSet) != 1 {
		t.Fatalf("expected one RHS after first insert")
	}

	idx.InsertEntry(lhs(1), rhs(20), FD)
	rec2, ok := idx.GetPayload(lhs(1))
	if !ok || len(rec2.RHSSet) != 2 {
		t.Fatalf("expected cache to reflect the second RHS, got %+v", rec2)
	}
}

func TestGetPayloadCacheInvalidatesNeighborOnBoundaryChange(t *testing.T) {
	idx := Empty(3)
	idx.InsertEntry(lhs(1), rhs(5), OD)
	idx.InsertEntry(lhs(2), rhs(50), OD)

	pred, ok := idx.GetPayload(lhs(1))
	if !ok || pred.FlagContribution != 0 {
		t.Fatalf("expected key 1 to start with flag 0")
	}

	// Insert a lower RHS for key 2 so that key 1's boundary flag flips.
	idx.InsertEntry(lhs(2), rhs(1), OD)
	// key 2's min_rhs is now 1, which is < key1's max_rhs (5), so the
	// boundary is violated even though key 1 itself was never touched.
	pred2, ok := idx.GetPayload(lhs(1))
	if !ok || pred2.FlagContribution != 1 {
		t.Fatalf("expected key 1's flag contribution to become 1 after key 2's min dropped, got %+v", pred2)
	}
}

func TestInsertKeyAndRemoveKey(t *testing.T) {
	idx := Empty(3)
	if !idx.InsertKey(lhs(9)) {
		t.Fatalf("expected first InsertKey to report new")
	}
	if idx.InsertKey(lhs(9)) {
		t.Fatalf("expected second InsertKey to report existing")
	}
	if !idx.ContainsKey(lhs(9)) {
		t.Fatalf("expected key to be present")
	}

	// Two InsertKey calls raised Count to 2: the first RemoveKey only
	// decrements it, the second fully erases the record.
	if idx.RemoveKey(lhs(9)) {
		t.Fatalf("expected first RemoveKey to only decrement, not remove")
	}
	if !idx.ContainsKey(lhs(9)) {
		t.Fatalf("expected key to still be present after one decrement")
	}
	if !idx.RemoveKey(lhs(9)) {
		t.Fatalf("expected second RemoveKey to fully remove")
	}
	if idx.ContainsKey(lhs(9)) {
		t.Fatalf("expected key to be gone")
	}
	if idx.RemoveKey(lhs(9)) {
		t.Fatalf("expected RemoveKey on an absent key to report false")
	}
}

func TestRemoveKeyDrainsContributionIntoCounter(t *testing.T) {
	idx := Empty(3)
	idx.InsertEntry(lhs(1), rhs(10), FD)
	idx.InsertEntry(lhs(1), rhs(11), FD)
	if idx.ViolationCount() != 1 {
		t.Fatalf("expected a single FD violation from two distinct RHS values, got %d", idx.ViolationCount())
	}

	if !idx.RemoveKey(lhs(1)) {
		t.Fatalf("expected RemoveKey to remove a record created purely via InsertEntry")
	}
	if idx.ContainsKey(lhs(1)) {
		t.Fatalf("expected key to be gone after RemoveKey")
	}
	if idx.ViolationCount() != 0 {
		t.Fatalf("expected RemoveKey to drain the destroyed record's contribution, got %d", idx.ViolationCount())
	}
	if !idx.Holds() {
		t.Fatalf("expected the dependency to hold once the offending record is gone")
	}
}

func TestRemoveKeyRecomputesPredecessorBoundaryFlag(t *testing.T) {
	idx := Empty(3)
	idx.InsertEntry(lhs(1), rhs(5), OD)
	idx.InsertEntry(lhs(2), rhs(1), OD)
	// key 1's max_rhs (5) exceeds key 2's min_rhs (1): boundary violated.
	if idx.Holds() {
		t.Fatalf("expected an OD boundary violation before removing key 2")
	}

	if !idx.RemoveKey(lhs(2)) {
		t.Fatalf("expected RemoveKey to remove key 2")
	}
	// key 1 has no successor left, so its flag_contribution must drop to 0.
	rec, ok := idx.GetPayload(lhs(1))
	if !ok || rec.FlagContribution != 0 {
		t.Fatalf("expected key 1's flag contribution to be recomputed to 0, got %+v ok=%v", rec, ok)
	}
	if !idx.Holds() {
		t.Fatalf("expected the dependency to hold once the boundary's right side is gone")
	}
}

func TestLowerUpperBoundSurface(t *testing.T) {
	idx := Empty(3)
	idx.InsertEntry(lhs(10), rhs(1), FD)
	idx.InsertEntry(lhs(20), rhs(1), FD)
	idx.InsertEntry(lhs(30), rhs(1), FD)

	key, _, ok := idx.LowerBound(lhs(15))
	if !ok || key.Columns[0].I != 20 {
		t.Fatalf("expected LowerBound(15)=20, got %+v ok=%v", key, ok)
	}
	key, _, ok = idx.UpperBound(lhs(20))
	if !ok || key.Columns[0].I != 30 {
		t.Fatalf("expected UpperBound(20)=30, got %+v ok=%v", key, ok)
	}
}

func TestDumpToAndEstimate(t *testing.T) {
	idx := Empty(3)
	idx.InsertEntry(lhs(1), rhs(1), FD)
	var buf strings.Builder
	if err := idx.DumpTo(&buf); err != nil {
		t.Fatalf("DumpTo error: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected non-empty dump")
	}
	if est := idx.EstimateMemoryConsumption(8); est <= 0 {
		t.Fatalf("expected positive memory estimate, got %d", est)
	}
}
