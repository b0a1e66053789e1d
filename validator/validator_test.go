package validator

import (
	"testing"

	"github.com/Jonas-dot/hyrise/keyspace"
)

func lhs(v int64) keyspace.Key { return keyspace.New(keyspace.Int64Col(v)) }
func rhs(v int64) keyspace.Key { return keyspace.New(keyspace.Int64Col(v)) }

func TestScenarioFDHolds(t *testing.T) {
	v := New(3)
	pairs := [][2]int64{{1, 10}, {1, 10}, {2, 20}, {2, 20}, {3, 30}}
	for _, p := range pairs {
		v.InsertEntry(lhs(p[0]), rhs(p[1]), FD)
	}
	if !v.Holds() {
		t.Fatalf("expected FD to hold, violation_count=%d", v.ViolationCount())
	}
}

func TestScenarioFDViolatedThenFixed(t *testing.T) {
	v := New(3)
	v.InsertEntry(lhs(1), rhs(10), FD)
	v.InsertEntry(lhs(1), rhs(11), FD)
	if v.ViolationCount() != 1 {
		t.Fatalf("expected violation_count 1, got %d", v.ViolationCount())
	}
	v.DeleteEntry(lhs(1), rhs(11), FD)
	if v.ViolationCount() != 0 {
		t.Fatalf("expected violation_count 0 after fixing, got %d", v.ViolationCount())
	}
}

func TestScenarioODInOrder(t *testing.T) {
	v := New(3)
	for i := int64(1); i <= 5; i++ {
		v.InsertEntry(lhs(i), rhs(i*10), OD)
	}
	if !v.Holds() {
		t.Fatalf("expected OD to hold, violation_count=%d", v.ViolationCount())
	}
}

func TestScenarioODBrokenBoundary(t *testing.T) {
	v := New(3)
	v.InsertEntry(lhs(1), rhs(30), OD)
	v.InsertEntry(lhs(2), rhs(20), OD)
	v.InsertEntry(lhs(3), rhs(10), OD)
	if got := v.ViolationCount(); got != 2 {
		t.Fatalf("expected violation_count 2, got %d", got)
	}
}

func TestScenarioODAmbiguous(t *testing.T) {
	v := New(3)
	v.InsertEntry(lhs(1), rhs(10), OD)
	v.InsertEntry(lhs(1), rhs(20), OD)
	v.InsertEntry(lhs(1), rhs(30), OD)
	if got := v.ViolationCount(); got != 2 {
		t.Fatalf("expected violation_count 2 (local only), got %d", got)
	}
}

func TestInsertEntryOnNullKeyIsNoOp(t *testing.T) {
	v := New(3)
	null := keyspace.Key{}
	d := v.InsertEntry(null, rhs(1), FD)
	if d.TotalDelta() != 0 {
		t.Fatalf("expected zero deltas for null LHS insert")
	}
	if v.Tree().KeyCount() != 0 {
		t.Fatalf("expected no key to be created for a null LHS")
	}
}

func TestDeleteEntryOnUnknownPairIsNoOp(t *testing.T) {
	v := New(3)
	v.InsertEntry(lhs(1), rhs(10), FD)
	d := v.DeleteEntry(lhs(99), rhs(1), FD)
	if d.TotalDelta() != 0 {
		t.Fatalf("expected zero deltas deleting an unknown lhs")
	}
	d = v.DeleteEntry(lhs(1), rhs(999), FD)
	if d.TotalDelta() != 0 {
		t.Fatalf("expected zero deltas deleting an unknown rhs")
	}
}

func TestUpdateEntryIdentity(t *testing.T) {
	v := New(3)
	v.InsertEntry(lhs(1), rhs(10), OD)
	before := v.ViolationCount()
	d := v.UpdateEntry(lhs(1), rhs(10), rhs(10), OD)
	if d.TotalDelta() != 0 {
		t.Fatalf("expected update(x,v,v) to net to zero delta, got %+v", d)
	}
	if v.ViolationCount() != before {
		t.Fatalf("expected violation count unchanged by identity update")
	}
}

func TestUpdateEntryChangesRHS(t *testing.T) {
	v := New(3)
	v.InsertEntry(lhs(1), rhs(10), FD)
	v.InsertEntry(lhs(1), rhs(20), FD)
	if v.ViolationCount() != 1 {
		t.Fatalf("expected initial violation, got %d", v.ViolationCount())
	}
	v.UpdateEntry(lhs(1), rhs(20), rhs(10), FD)
	if v.ViolationCount() != 0 {
		t.Fatalf("expected violation resolved after update converges to a single RHS, got %d", v.ViolationCount())
	}
}

func TestRoundTripInsertDelete(t *testing.T) {
	v := New(3)
	v.InsertEntry(lhs(5), rhs(50), OD)
	before := v.ViolationCount()
	v.InsertEntry(lhs(7), rhs(70), OD)
	v.DeleteEntry(lhs(7), rhs(70), OD)
	if v.ViolationCount() != before {
		t.Fatalf("expected round trip to restore prior violation count, got %d want %d", v.ViolationCount(), before)
	}
	if v.Tree().ContainsKey(lhs(7)) {
		t.Fatalf("expected key to vanish once its last RHS is removed")
	}
}

func TestBoundaryFlagRecomputesAcrossInsertOrder(t *testing.T) {
	v := New(3)
	// Insert out of LHS order to exercise predecessor-flag recomputation.
	v.InsertEntry(lhs(3), rhs(5), OD)
	v.InsertEntry(lhs(1), rhs(50), OD) // 1's max (50) > 3's min (5): boundary violated
	if got := v.ViolationCount(); got != 1 {
		t.Fatalf("expected 1 boundary violation between lhs 1 and 3, got %d", got)
	}
	v.DeleteEntry(lhs(1), rhs(50), OD)
	v.InsertEntry(lhs(1), rhs(1), OD)
	if got := v.ViolationCount(); got != 0 {
		t.Fatalf("expected boundary violation resolved once lhs 1's max drops below lhs 3's min, got %d", got)
	}
}

func TestRightmostRecordNeverContributesFlag(t *testing.T) {
	v := New(3)
	v.InsertEntry(lhs(1), rhs(1), OD)
	v.InsertEntry(lhs(2), rhs(1000), OD)
	rec, ok := v.Tree().Get(lhs(2))
	if !ok {
		t.Fatalf("expected record for lhs 2")
	}
	if rec.FlagContribution != 0 {
		t.Fatalf("expected rightmost record's flag contribution to be 0, got %d", rec.FlagContribution)
	}
}

func TestCounterConsistencyInvariant(t *testing.T) {
	v := New(3)
	v.InsertEntry(lhs(1), rhs(30), OD)
	v.InsertEntry(lhs(2), rhs(20), OD)
	v.InsertEntry(lhs(3), rhs(10), OD)
	v.InsertEntry(lhs(2), rhs(5), OD)

	var sum int64
	it := v.Tree().NewIterator()
	for it.Valid() {
		rec := it.Value()
		sum += int64(rec.FlagContribution + rec.LocalContribution)
		it.Next()
	}
	if sum != v.ViolationCount() {
		t.Fatalf("P1 violated: sum of contributions %d != violation_count %d", sum, v.ViolationCount())
	}
}

func TestFDFlagsAlwaysZero(t *testing.T) {
	v := New(3)
	v.InsertEntry(lhs(1), rhs(10), FD)
	v.InsertEntry(lhs(1), rhs(11), FD)
	v.InsertEntry(lhs(2), rhs(20), FD)
	v.DeleteEntry(lhs(1), rhs(10), FD)

	it := v.Tree().NewIterator()
	for it.Valid() {
		if it.Value().FlagContribution != 0 {
			t.Fatalf("P2 violated: FD record has nonzero flag_contribution")
		}
		it.Next()
	}
}

func TestLocalContributionLaw(t *testing.T) {
	v := New(3)
	v.InsertEntry(lhs(1), rhs(1), FD)
	v.InsertEntry(lhs(1), rhs(2), FD)
	v.InsertEntry(lhs(1), rhs(3), FD)

	rec, ok := v.Tree().Get(lhs(1))
	if !ok {
		t.Fatalf("expected record for lhs 1")
	}
	want := len(rec.RHSSet) - 1
	if rec.LocalContribution != want {
		t.Fatalf("P4 violated: local_contribution=%d, want max(0,|rhs_set|-1)=%d", rec.LocalContribution, want)
	}
}
