// Package depindex assembles the dependency validation index's full
// external surface (§6) out of the Tree, Validator and bulk loader: the
// single entry point a host embeds. The VisibilityOracle (package mvcc)
// is not part of it; a host uses that package directly.
package depindex

import (
	"io"

	"github.com/Jonas-dot/hyrise/btree"
	"github.com/Jonas-dot/hyrise/keyspace"
	"github.com/Jonas-dot/hyrise/loader"
	"github.com/Jonas-dot/hyrise/payload"
	"github.com/Jonas-dot/hyrise/segment"
	"github.com/Jonas-dot/hyrise/validator"
)

// Kind re-exports validator.Kind so callers need not import both
// packages for the common case of choosing FD or OD traffic.
type Kind = validator.Kind

const (
	FD = validator.FD
	OD = validator.OD
)

// Deltas re-exports validator.Deltas.
type Deltas = validator.Deltas

// Index is the dependency validation index (§6 "Exposed surface of the
// index"). It owns a Validator (and therefore a Tree) and a bounded read
// cache in front of payload lookups.
type Index struct {
	v     *validator.Validator
	cache *payloadCache
}

// NewIndex bulk-constructs an Index from one or more equal-length column
// segments forming the composite LHS key (§6 new_index, §4.7 bulk loader).
func NewIndex(minDegree int, columns []segment.Segment) *Index {
	idx := &Index{v: validator.New(minDegree), cache: newPayloadCache()}
	res := loader.Load(columns)
	loader.Populate(idx.v.Tree(), res.Groups)
	return idx
}

// Empty returns an Index with no bulk-loaded data, ready for validator
// traffic from scratch.
func Empty(minDegree int) *Index {
	return &Index{v: validator.New(minDegree), cache: newPayloadCache()}
}

// InsertEntry / DeleteEntry / UpdateEntry drive the validation engine.
// Any record whose contribution changed is evicted from the read cache
// rather than patched in place.
func (idx *Index) InsertEntry(lhs, rhs keyspace.Key, kind Kind) Deltas {
	d := idx.v.InsertEntry(lhs, rhs, kind)
	idx.invalidateAround(lhs)
	return d
}

func (idx *Index) DeleteEntry(lhs, rhs keyspace.Key, kind Kind) Deltas {
	d := idx.v.DeleteEntry(lhs, rhs, kind)
	idx.invalidateAround(lhs)
	return d
}

func (idx *Index) UpdateEntry(lhs, oldRHS, newRHS keyspace.Key, kind Kind) Deltas {
	d := idx.v.UpdateEntry(lhs, oldRHS, newRHS, kind)
	idx.invalidateAround(lhs)
	return d
}

// invalidateAround drops the cache entries for lhs and its immediate
// neighbors, since OD boundary-flag recomputation can silently change a
// neighbor's contribution without that neighbor's own key ever being
// passed to a public call.
func (idx *Index) invalidateAround(lhs keyspace.Key) {
	idx.cache.invalidate(string(lhs.Bytes()))
	if pk, _, ok := idx.v.Tree().PredecessorOf(lhs); ok {
		idx.cache.invalidate(string(pk.Bytes()))
	}
	if sk, _, ok := idx.v.Tree().SuccessorOf(lhs); ok {
		idx.cache.invalidate(string(sk.Bytes()))
	}
}

// InsertKey ensures key has a PayloadRecord, tracked by multiplicity
// rather than RHS traffic: a fresh record starts at Count 1, a repeat
// insert increments it. Reports whether it was newly created (§6
// insert_key).
func (idx *Index) InsertKey(key keyspace.Key) bool {
	rec, wasNew := idx.v.Tree().GetOrCreate(key)
	if wasNew {
		rec.Count = 1
		idx.cache.invalidate(string(key.Bytes()))
	} else {
		rec.Count++
	}
	return wasNew
}

// RemoveKey is InsertKey's inverse: it decrements key's Count, and only
// once Count reaches zero does it destroy the PayloadRecord outright,
// bypassing the usual RHS-set lifecycle (§6 remove_key). Destruction
// drains any remaining flag/local contribution into the global counter
// and recomputes the predecessor's boundary flag, the same accounting
// delete_entry applies when it empties a record naturally. Reports
// whether the record was fully removed.
func (idx *Index) RemoveKey(key keyspace.Key) bool {
	rec, ok := idx.v.Tree().Get(key)
	if !ok {
		return false
	}
	if rec.Count > 1 {
		rec.Count--
		return false
	}
	rec.Count = 0
	idx.v.DestroyRecord(key)
	idx.invalidateAround(key)
	return true
}

// ContainsKey reports whether key currently has a PayloadRecord.
func (idx *Index) ContainsKey(key keyspace.Key) bool { return idx.v.Tree().ContainsKey(key) }

// KeyCount returns the number of distinct LHS keys tracked.
func (idx *Index) KeyCount() int { return idx.v.Tree().KeyCount() }

// Holds reports whether the tracked dependency currently holds.
func (idx *Index) Holds() bool { return idx.v.Holds() }

// ViolationCount returns the current global violation count.
func (idx *Index) ViolationCount() int64 { return idx.v.ViolationCount() }

// LowerBound / UpperBound expose ordered range queries directly (§6).
func (idx *Index) LowerBound(key keyspace.Key) (keyspace.Key, *payload.Record, bool) {
	return idx.v.Tree().LowerBound(key)
}

func (idx *Index) UpperBound(key keyspace.Key) (keyspace.Key, *payload.Record, bool) {
	return idx.v.Tree().UpperBound(key)
}

// GetPayload returns key's PayloadRecord, consulting the read cache
// first (§6 get_payload).
func (idx *Index) GetPayload(key keyspace.Key) (*payload.Record, bool) {
	bkey := string(key.Bytes())
	if rec, ok := idx.cache.get(bkey); ok {
		return rec, true
	}
	rec, ok := idx.v.Tree().Get(key)
	if ok {
		idx.cache.set(bkey, rec)
	}
	return rec, ok
}

// EstimateMemoryConsumption reports the tree's estimated footprint for
// the given average encoded key width.
func (idx *Index) EstimateMemoryConsumption(avgKeyBytes int) int64 {
	return btree.EstimateMemoryConsumption(int64(idx.v.Tree().KeyCount()), avgKeyBytes)
}

// DumpTo writes a human-readable rendering of the underlying tree to w.
func (idx *Index) DumpTo(w io.Writer) error {
	return idx.v.Tree().DumpTo(w)
}
