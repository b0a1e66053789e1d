package btree

import (
	"github.com/Jonas-dot/hyrise/keyspace"
	"github.com/Jonas-dot/hyrise/payload"
)

// Iterator walks entries in ascending key order over the leaf-link chain.
// It holds no lock across calls: callers iterating while a writer may be
// active must arrange their own snapshot isolation, per the tree's
// single-writer contract (§5).
type Iterator struct {
	leaf *Node
	pos  int
}

// SeekGE returns an Iterator positioned at the first entry >= target.
func (t *Tree) SeekGE(target keyspace.Key) *Iterator {
	t.mu.RLock()
	leaf := t.findLeafLocked(target)
	t.mu.RUnlock()
	it := &Iterator{}
	for leaf != nil {
		i := leaf.lowerBound(target)
		if i < len(leaf.keys) {
			it.leaf, it.pos = leaf, i
			return it
		}
		leaf = leaf.next
	}
	return it
}

// NewIterator returns an Iterator positioned at the first entry overall.
// Remove never prunes an emptied leaf, so the leftmost leaf can be present
// but empty; skip forward over any such leaves the same way SeekGE does.
func (t *Tree) NewIterator() *Iterator {
	leaf := t.LeftmostLeaf()
	for leaf != nil && len(leaf.keys) == 0 {
		leaf = leaf.next
	}
	return &Iterator{leaf: leaf, pos: 0}
}

// Valid reports whether the iterator is positioned on an entry.
func (it *Iterator) Valid() bool {
	return it.leaf != nil && it.pos < len(it.leaf.keys)
}

// Key returns the current entry's key. Valid must be true.
func (it *Iterator) Key() keyspace.Key { return it.leaf.keys[it.pos] }

// Value returns the current entry's record. Valid must be true.
func (it *Iterator) Value() *payload.Record { return it.leaf.recs[it.pos] }

// Next advances to the following entry, crossing leaf boundaries as
// needed.
func (it *Iterator) Next() {
	if it.leaf == nil {
		return
	}
	it.pos++
	for it.pos >= len(it.leaf.keys) && it.leaf.next != nil {
		it.leaf = it.leaf.next
		it.pos = 0
	}
}

// Close releases the iterator's references, leaving it invalid. No
// resources are pinned, so clearing its position is all it does; it is
// kept for parity with the buffer-pool-backed iterator it is grounded on.
func (it *Iterator) Close() {
	it.leaf = nil
	it.pos = 0
}
