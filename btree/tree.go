package btree

import (
	"sync"

	"github.com/Jonas-dot/hyrise/keyspace"
	"github.com/Jonas-dot/hyrise/payload"
)

// Tree is the order-preserving key directory (C4). It owns its Nodes and
// their payloads exclusively; leaf back/forward links are non-owning
// observing references bounded by the Tree's own lifetime (§3 Ownership).
//
// Per §5, the Tree is not internally synchronized against writer/writer
// races — a single logical writer is assumed. The embedded mutex exists
// only to let a host serialize concurrent reads against the single
// writer when it has not already done so with its own epoch scheme; it
// is not a substitute for the single-writer contract.
type Tree struct {
	mu   sync.RWMutex
	root *Node
	t    int
	size int
}

// NewTree builds an empty Tree with minimum degree t. t < 2 is replaced
// with DefaultMinDegree (§3: "default 3").
func NewTree(t int) *Tree {
	if t < 2 {
		t = DefaultMinDegree
	}
	return &Tree{t: t}
}

// KeyCount returns the number of distinct LHS keys currently tracked.
func (t *Tree) KeyCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.size
}

// ContainsKey reports whether key has a PayloadRecord in the tree.
func (t *Tree) ContainsKey(key keyspace.Key) bool {
	_, ok := t.Get(key)
	return ok
}

// Get returns the PayloadRecord for key, if present.
func (t *Tree) Get(key keyspace.Key) (*payload.Record, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	leaf := t.findLeafLocked(key)
	if leaf == nil {
		return nil, false
	}
	pos, found := leaf.search(key)
	if !found {
		return nil, false
	}
	return leaf.recs[pos], true
}

// findLeafLocked descends from the root to the leaf that would contain
// key, using the exact-routing rule required by the separator convention:
// children[i] holds every key strictly less than a copy of the key that
// begins children[i+1] — so descent must route on "first separator
// strictly greater than key", not "first separator >= key". Caller must
// hold at least a read lock.
func (t *Tree) findLeafLocked(key keyspace.Key) *Node {
	n := t.root
	for n != nil && !n.leaf {
		i := n.upperBound(key)
		if i >= len(n.children) {
			i = len(n.children) - 1
		}
		n = n.children[i]
	}
	return n
}

// LowerBound returns the first entry whose key is >= target, walking
// across leaf boundaries via neighbor links if the target's own leaf runs
// out (§4.4).
func (t *Tree) LowerBound(target keyspace.Key) (keyspace.Key, *payload.Record, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	leaf := t.findLeafLocked(target)
	for leaf != nil {
		i := leaf.lowerBound(target)
		if i < len(leaf.keys) {
			return leaf.keys[i], leaf.recs[i], true
		}
		leaf = leaf.next
	}
	return keyspace.Key{}, nil, false
}

// UpperBound returns the first entry whose key is > target.
func (t *Tree) UpperBound(target keyspace.Key) (keyspace.Key, *payload.Record, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	leaf := t.findLeafLocked(target)
	for leaf != nil {
		i := leaf.upperBound(target)
		if i < len(leaf.keys) {
			return leaf.keys[i], leaf.recs[i], true
		}
		leaf = leaf.next
	}
	return keyspace.Key{}, nil, false
}

// LeftmostLeaf / RightmostLeaf descend to the first/last leaf (§4.4).
func (t *Tree) LeftmostLeaf() *Node {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n := t.root
	for n != nil && !n.leaf {
		n = n.children[0]
	}
	return n
}

func (t *Tree) RightmostLeaf() *Node {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n := t.root
	for n != nil && !n.leaf {
		n = n.children[len(n.children)-1]
	}
	return n
}
