package btree

import (
	"github.com/Jonas-dot/hyrise/keyspace"
	"github.com/Jonas-dot/hyrise/payload"
)

// GetOrCreate returns the PayloadRecord for key, creating an empty one and
// growing the tree if key is not yet present. The second return reports
// whether a new record was created (§4.5 insert path step 1).
func (t *Tree) GetOrCreate(key keyspace.Key) (*payload.Record, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.root == nil {
		t.root = newLeaf()
	}
	rec, wasNew, promoted, right := t.insertRecursive(t.root, key)
	if right != nil {
		newRoot := newInternal()
		newRoot.keys = []keyspace.Key{*promoted}
		newRoot.children = []*Node{t.root, right}
		newRoot.rebuildHints()
		t.root = newRoot
	}
	if wasNew {
		t.size++
	}
	return rec, wasNew
}

// insertRecursive descends to the leaf that should own key, inserting a
// fresh Record if none exists yet, then splits any node left holding more
// than maxKeys(t) entries on the way back up, one level at a time, until
// the unwind reaches the root. No node is ever left overflowing once its
// parent has finished handling the split it produced, so by the time this
// call returns the whole path satisfies the same never-descend-into-a-full-
// child guarantee a pre-split-on-the-way-down walk would (see DESIGN.md).
func (t *Tree) insertRecursive(n *Node, key keyspace.Key) (rec *payload.Record, wasNew bool, promoted *keyspace.Key, right *Node) {
	if n.leaf {
		pos, found := n.search(key)
		if found {
			return n.recs[pos], false, nil, nil
		}
		rec = payload.New()
		n.keys = append(n.keys, keyspace.Key{})
		copy(n.keys[pos+1:], n.keys[pos:])
		n.keys[pos] = key
		n.recs = append(n.recs, nil)
		copy(n.recs[pos+1:], n.recs[pos:])
		n.recs[pos] = rec
		n.rebuildHints()
		if n.entryCount() > maxKeys(t.t) {
			mid, r := t.splitLeaf(n)
			return rec, true, &mid, r
		}
		return rec, true, nil, nil
	}

	i := n.upperBound(key)
	if i >= len(n.children) {
		i = len(n.children) - 1
	}
	childRec, childNew, cPromoted, cRight := t.insertRecursive(n.children[i], key)
	if cRight == nil {
		return childRec, childNew, nil, nil
	}
	insertSeparator(n, i, *cPromoted, cRight)
	n.rebuildHints()
	if n.entryCount() > maxKeys(t.t) {
		mid, r := t.splitInternal(n)
		return childRec, childNew, &mid, r
	}
	return childRec, childNew, nil, nil
}

// insertSeparator inserts key as separator i (with its new right child at
// i+1) into an internal node. The node may end up one entry over
// maxKeys(t); the caller's own overflow check then splits it.
func insertSeparator(n *Node, i int, key keyspace.Key, right *Node) {
	n.keys = append(n.keys, keyspace.Key{})
	copy(n.keys[i+1:], n.keys[i:])
	n.keys[i] = key

	n.children = append(n.children, nil)
	copy(n.children[i+2:], n.children[i+1:])
	n.children[i+1] = right
}

// splitLeaf halves an overflowing leaf, threading the new right sibling
// into the leaf-link chain (I7) and returning the separator to promote:
// the right half's first key, which is copied — not moved — into the
// parent since leaf payloads stay leaf-exclusive.
func (t *Tree) splitLeaf(n *Node) (keyspace.Key, *Node) {
	mid := len(n.keys) / 2
	right := newLeaf()
	right.keys = append(right.keys, n.keys[mid:]...)
	right.recs = append(right.recs, n.recs[mid:]...)

	right.next = n.next
	right.prev = n
	if n.next != nil {
		n.next.prev = right
	}
	n.next = right

	n.keys = n.keys[:mid]
	n.recs = n.recs[:mid]

	n.rebuildHints()
	right.rebuildHints()
	return right.keys[0], right
}

// splitInternal halves an overflowing internal node. Unlike splitLeaf,
// the median separator is removed from the node and promoted, since
// internal keys carry no payload of their own to duplicate.
func (t *Tree) splitInternal(n *Node) (keyspace.Key, *Node) {
	mid := len(n.keys) / 2
	promote := n.keys[mid]

	right := newInternal()
	right.keys = append(right.keys, n.keys[mid+1:]...)
	right.children = append(right.children, n.children[mid+1:]...)

	n.keys = n.keys[:mid]
	n.children = n.children[:mid+1]

	n.rebuildHints()
	right.rebuildHints()
	return promote, right
}
