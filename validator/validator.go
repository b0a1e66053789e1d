// Package validator implements the online FD/OD validation engine (C5):
// the delta-accounting core that keeps a single global violation counter
// in sync with (LHS, RHS) traffic without ever rescanning the tree.
package validator

import (
	"sync/atomic"

	"github.com/Jonas-dot/hyrise/btree"
	"github.com/Jonas-dot/hyrise/keyspace"
	"github.com/Jonas-dot/hyrise/payload"
)

// Kind distinguishes functional from order dependency traffic. Only OD
// traffic ever touches flag_contribution.
type Kind int

const (
	FD Kind = iota
	OD
)

func (k Kind) String() string {
	if k == OD {
		return "OD"
	}
	return "FD"
}

// Deltas is the exact change a single call made to the global violation
// counter, split by source so callers/tests can inspect either half.
type Deltas struct {
	FlagDelta  int64
	LocalDelta int64
}

// TotalDelta sums both components.
func (d Deltas) TotalDelta() int64 { return d.FlagDelta + d.LocalDelta }

func (d Deltas) add(other Deltas) Deltas {
	return Deltas{FlagDelta: d.FlagDelta + other.FlagDelta, LocalDelta: d.LocalDelta + other.LocalDelta}
}

// Validator owns a Tree of PayloadRecords and a single running violation
// counter, kept correct purely by (new − old) deltas applied at each
// mutation (§4.5). It is not internally synchronized against concurrent
// writers — the single-writer contract lives one layer up.
type Validator struct {
	tree  *btree.Tree
	count int64 // global_violation_count, atomic for relaxed concurrent reads (§9)
}

// New builds a Validator over a Tree with the given minimum degree.
func New(minDegree int) *Validator {
	return &Validator{tree: btree.NewTree(minDegree)}
}

// Tree exposes the underlying key directory for range queries and dumps.
func (v *Validator) Tree() *btree.Tree { return v.tree }

// Holds reports whether the tracked dependency currently holds, i.e. the
// global counter is exactly zero.
func (v *Validator) Holds() bool { return atomic.LoadInt64(&v.count) == 0 }

// ViolationCount returns the current global violation count.
func (v *Validator) ViolationCount() int64 { return atomic.LoadInt64(&v.count) }

// odFlag computes the boundary law: p.flag_contribution given p and its
// successor q. Either being nil, or either extremum being unset, yields 0.
func odFlag(p, q *payload.Record) int {
	if p == nil || q == nil || p.MaxRHS == nil || q.MinRHS == nil {
		return 0
	}
	if keyspace.Compare(*p.MaxRHS, *q.MinRHS) > 0 {
		return 1
	}
	return 0
}

// recomputeFlag recomputes rec's flag_contribution against its successor,
// looked up fresh from the tree by lhs, and returns the resulting delta.
func (v *Validator) recomputeFlag(lhs keyspace.Key, rec *payload.Record) int64 {
	old := rec.FlagContribution
	_, succ, ok := v.tree.SuccessorOf(lhs)
	if !ok {
		succ = nil
	}
	rec.FlagContribution = odFlag(rec, succ)
	rec.BoundaryFlag = rec.FlagContribution
	return int64(rec.FlagContribution - old)
}

// recomputePredecessorFlag recomputes the flag_contribution of the record
// immediately preceding lhs, since lhs's own extrema just changed
// (§4.5 step 6b / step 4b). No-op if there is no predecessor.
func (v *Validator) recomputePredecessorFlag(lhs keyspace.Key) int64 {
	predKey, predRec, ok := v.tree.PredecessorOf(lhs)
	if !ok {
		return 0
	}
	return v.recomputeFlag(predKey, predRec)
}

// recomputeLocal recomputes rec's local_contribution and returns the
// delta.
func recomputeLocal(rec *payload.Record) int64 {
	old := rec.LocalContribution
	rec.LocalContribution = rec.LocalCount()
	return int64(rec.LocalContribution - old)
}

// zeroFDFlag forces flag_contribution to 0 for FD traffic (§4.5 step 5 /
// insert step 5, delete step 5), returning the delta this produced.
func zeroFDFlag(rec *payload.Record) int64 {
	rec.BoundaryFlag = 0
	if rec.FlagContribution == 0 {
		return 0
	}
	d := int64(-rec.FlagContribution)
	rec.FlagContribution = 0
	return d
}

// InsertEntry adds one (lhs, rhs) observation (§4.5 insert_entry). A
// no-op returning zero deltas if lhs cannot be constructed (all-null).
func (v *Validator) InsertEntry(lhs, rhs keyspace.Key, kind Kind) Deltas {
	if lhs.IsNull() {
		return Deltas{}
	}
	var d Deltas
	rec, _ := v.tree.GetOrCreate(lhs)

	rec.InsertRHS(rhs)
	if kind == OD {
		rec.UpdateExtremaOnInsert(rhs)
	}

	d.LocalDelta += recomputeLocal(rec)

	if kind == FD {
		d.FlagDelta += zeroFDFlag(rec)
	} else {
		d.FlagDelta += v.recomputeFlag(lhs, rec)
		d.FlagDelta += v.recomputePredecessorFlag(lhs)
	}

	v.applyDelta(d.TotalDelta())
	return d
}

// DeleteEntry removes one (lhs, rhs) observation (§4.5 delete_entry). A
// no-op returning zero deltas if the pair is unknown.
func (v *Validator) DeleteEntry(lhs, rhs keyspace.Key, kind Kind) Deltas {
	var d Deltas
	rec, ok := v.tree.Get(lhs)
	if !ok {
		return d
	}
	if !rec.RemoveRHS(rhs) {
		return d
	}
	if rec.IsExtremum(rhs) {
		rec.RecomputeExtrema()
	}

	if rec.Empty() {
		d.FlagDelta += int64(-rec.FlagContribution)
		d.LocalDelta += int64(-rec.LocalContribution)
		rec.FlagContribution = 0
		rec.LocalContribution = 0

		// Remove before recomputing the predecessor's flag so its successor
		// lookup skips this record and lands on the new successor.
		v.tree.Remove(lhs)
		if kind == OD {
			d.FlagDelta += v.recomputePredecessorFlag(lhs)
		}
	} else {
		d.LocalDelta += recomputeLocal(rec)
		if kind == OD {
			d.FlagDelta += v.recomputeFlag(lhs, rec)
			d.FlagDelta += v.recomputePredecessorFlag(lhs)
		}
		if kind == FD {
			d.FlagDelta += zeroFDFlag(rec)
		}
	}

	v.applyDelta(d.TotalDelta())
	return d
}

// DestroyRecord force-removes lhs's PayloadRecord regardless of its RHS
// set, draining whatever contribution it currently holds into the global
// counter and recomputing the predecessor's flag against the new
// successor. Used for administrative key removal outside the RHS-set
// lifecycle that insert_entry/delete_entry otherwise drive.
func (v *Validator) DestroyRecord(lhs keyspace.Key) Deltas {
	rec, ok := v.tree.Get(lhs)
	if !ok {
		return Deltas{}
	}
	d := Deltas{FlagDelta: int64(-rec.FlagContribution), LocalDelta: int64(-rec.LocalContribution)}
	rec.FlagContribution = 0
	rec.LocalContribution = 0

	// Remove before recomputing the predecessor's flag so its successor
	// lookup skips this record and lands on the new successor.
	v.tree.Remove(lhs)
	d.FlagDelta += v.recomputePredecessorFlag(lhs)

	v.applyDelta(d.TotalDelta())
	return d
}

// UpdateEntry is delete_entry(lhs, oldRHS) followed by insert_entry(lhs,
// newRHS), with summed deltas (§4.5). oldRHS == newRHS nets to zero.
func (v *Validator) UpdateEntry(lhs, oldRHS, newRHS keyspace.Key, kind Kind) Deltas {
	del := v.DeleteEntry(lhs, oldRHS, kind)
	ins := v.InsertEntry(lhs, newRHS, kind)
	return del.add(ins)
}

func (v *Validator) applyDelta(delta int64) {
	if delta != 0 {
		atomic.AddInt64(&v.count, delta)
	}
}
