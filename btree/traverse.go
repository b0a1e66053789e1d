package btree

import (
	"github.com/Jonas-dot/hyrise/keyspace"
	"github.com/Jonas-dot/hyrise/payload"
)

// SuccessorOf returns the entry immediately after key in ascending order,
// crossing a leaf boundary via next-links if key is the last entry of its
// own leaf. key need not itself be present. Used by the validator to
// recompute a boundary flag without a full scan (§4.5).
func (t *Tree) SuccessorOf(key keyspace.Key) (keyspace.Key, *payload.Record, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	leaf := t.findLeafLocked(key)
	for leaf != nil {
		i := leaf.upperBound(key)
		if i < len(leaf.keys) {
			return leaf.keys[i], leaf.recs[i], true
		}
		leaf = leaf.next
	}
	return keyspace.Key{}, nil, false
}

// PredecessorOf returns the entry immediately before key, crossing a leaf
// boundary via prev-links if needed.
func (t *Tree) PredecessorOf(key keyspace.Key) (keyspace.Key, *payload.Record, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	leaf := t.findLeafLocked(key)
	for leaf != nil {
		i := leaf.lowerBound(key) - 1
		if i >= 0 {
			return leaf.keys[i], leaf.recs[i], true
		}
		leaf = leaf.prev
	}
	return keyspace.Key{}, nil, false
}

// PredecessorMaxRHS is the left-neighbor lookup the original C++ index
// exposed as get_left_neighbor_max_key: the MaxRHS of the LHS
// immediately preceding key, if one exists and already has an RHS set.
func (t *Tree) PredecessorMaxRHS(key keyspace.Key) (keyspace.Key, bool) {
	_, rec, ok := t.PredecessorOf(key)
	if !ok || rec == nil || rec.MaxRHS == nil {
		return keyspace.Key{}, false
	}
	return *rec.MaxRHS, true
}
