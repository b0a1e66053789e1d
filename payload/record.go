// Package payload implements the per-LHS metadata record (C2) tracked by
// the dependency index: the set of distinct RHS values observed for one
// LHS key, its extrema, and the exact contributions it last added to the
// global violation counter.
package payload

import "github.com/Jonas-dot/hyrise/keyspace"

// Record is keyed by LHS. On the validator path it exists iff at least
// one (LHS, RHS) pair with that LHS is currently tracked; records created
// by the bulk loader or by InsertKey exist with an empty RHSSet and a
// positive Count (I5).
type Record struct {
	// RHSSet is the set of distinct RHS keys observed for this LHS,
	// keyed by their canonical byte encoding for idempotent insertion.
	RHSSet map[string]keyspace.Key

	// MinRHS / MaxRHS are the extrema of RHSSet when non-empty. OD only.
	MinRHS *keyspace.Key
	MaxRHS *keyspace.Key

	// Count is the bulk-load multiplicity of the LHS: how many rows had
	// this LHS at load time. Retained for backward-compatible queries; not
	// load-bearing for FD/OD correctness (see LegacyCountViolations).
	Count int64

	// BoundaryFlag is 1 iff max_rhs(this) > min_rhs(next LHS in order).
	// OD only; always 0 for FD and for the rightmost key (I3).
	BoundaryFlag int

	// FlagContribution / LocalContribution are the exact values this
	// record last added to the global violation counter, so the
	// validator can subtract-old/add-new without ever rescanning the
	// tree.
	FlagContribution  int
	LocalContribution int
}

// New returns an empty Record ready for validator traffic.
func New() *Record {
	return &Record{RHSSet: make(map[string]keyspace.Key)}
}

// Empty reports whether the record's RHS set has become empty, at which
// point the validator destroys it (§4.5 lifecycle).
func (r *Record) Empty() bool { return len(r.RHSSet) == 0 }

// InsertRHS adds v to the RHS set. Insertion is idempotent (set
// semantics): returns false if v was already present.
func (r *Record) InsertRHS(v keyspace.Key) bool {
	key := string(v.Bytes())
	if _, ok := r.RHSSet[key]; ok {
		return false
	}
	r.RHSSet[key] = v
	return true
}

// RemoveRHS removes v from the RHS set. Returns false if v was absent.
func (r *Record) RemoveRHS(v keyspace.Key) bool {
	key := string(v.Bytes())
	if _, ok := r.RHSSet[key]; !ok {
		return false
	}
	delete(r.RHSSet, key)
	return true
}

// UpdateExtremaOnInsert extends MinRHS/MaxRHS to include v, without
// rescanning RHSSet. Called on the insert path (§4.5 step 3).
func (r *Record) UpdateExtremaOnInsert(v keyspace.Key) {
	if r.MinRHS == nil || keyspace.Compare(v, *r.MinRHS) < 0 {
		c := v
		r.MinRHS = &c
	}
	if r.MaxRHS == nil || keyspace.Compare(v, *r.MaxRHS) > 0 {
		c := v
		r.MaxRHS = &c
	}
}

// RecomputeExtrema rescans RHSSet for min/max. Only invoked on the delete
// path when the removed value was an extremum (§4.2).
func (r *Record) RecomputeExtrema() {
	r.MinRHS, r.MaxRHS = nil, nil
	for _, v := range r.RHSSet {
		v := v
		if r.MinRHS == nil || keyspace.Compare(v, *r.MinRHS) < 0 {
			c := v
			r.MinRHS = &c
		}
		if r.MaxRHS == nil || keyspace.Compare(v, *r.MaxRHS) > 0 {
			c := v
			r.MaxRHS = &c
		}
	}
}

// LocalCount computes local_count = max(0, |rhs_set| - 1) (I1, §4.2).
func (r *Record) LocalCount() int {
	n := len(r.RHSSet) - 1
	if n < 0 {
		return 0
	}
	return n
}

// LegacyCountViolations returns Count-1 (or 0), the bulk-load-era
// "local violations" figure computed from row multiplicity rather than
// distinct RHS values. It is informational only and never contributes to
// the global violation counter — see spec.md §9's Open Question and
// SPEC_FULL.md §4 for why the two notions are kept apart.
func (r *Record) LegacyCountViolations() int64 {
	if r.Count <= 0 {
		return 0
	}
	return r.Count - 1
}

// IsExtremum reports whether v equals the record's current min or max RHS.
// Used by the delete path to decide whether RecomputeExtrema is needed.
func (r *Record) IsExtremum(v keyspace.Key) bool {
	if r.MinRHS != nil && keyspace.Equal(v, *r.MinRHS) {
		return true
	}
	if r.MaxRHS != nil && keyspace.Equal(v, *r.MaxRHS) {
		return true
	}
	return false
}
