package mvcc

import "testing"

func TestVisibilityScenario(t *testing.T) {
	o := NewOracle(2)
	o.SetBeginCID(0, 1)
	o.SetEndCID(0, MaxCID)
	o.SetBeginCID(1, 3)

	if !o.Visible(0, 2) {
		t.Fatalf("expected row 0 visible at snapshot 2")
	}
	if o.Visible(1, 2) {
		t.Fatalf("expected row 1 invisible at snapshot 2 (begin_cid=3)")
	}
}

func TestVisibleBoundaries(t *testing.T) {
	o := NewOracle(1)
	o.SetBeginCID(0, 5)
	o.SetEndCID(0, 10)

	cases := []struct {
		snapshot uint64
		want     bool
	}{
		{4, false},
		{5, true},
		{9, true},
		{10, false},
	}
	for _, c := range cases {
		if got := o.Visible(0, c.snapshot); got != c.want {
			t.Fatalf("Visible(0,%d) = %v, want %v", c.snapshot, got, c.want)
		}
	}
}

func TestNeverCommittedRowInvisible(t *testing.T) {
	o := NewOracle(1)
	if o.Visible(0, 0) {
		t.Fatalf("expected an uncommitted row (begin_cid=MaxCID) to be invisible")
	}
}

func TestTryLockCompareAndSwap(t *testing.T) {
	o := NewOracle(1)
	if !o.TryLock(0, TIDZero, 42) {
		t.Fatalf("expected first lock attempt to succeed")
	}
	if o.TryLock(0, TIDZero, 7) {
		t.Fatalf("expected second lock attempt (wrong expected tid) to fail")
	}
	if got := o.GetWriterTID(0); got != 42 {
		t.Fatalf("expected writer tid 42, got %d", got)
	}
	o.Unlock(0)
	if got := o.GetWriterTID(0); got != TIDZero {
		t.Fatalf("expected writer tid reset to zero after unlock, got %d", got)
	}
	if !o.TryLock(0, TIDZero, 7) {
		t.Fatalf("expected lock to succeed again after unlock")
	}
}
