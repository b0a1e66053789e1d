package btree

import (
	"sort"

	"github.com/Jonas-dot/hyrise/keyspace"
)

// rebuildHints samples up to 16 evenly spaced entry heads (§4.3). Called
// after any mutation of n.keys.
func (n *Node) rebuildHints() {
	count := len(n.keys)
	n.nHints = 0
	if count == 0 {
		n.hintStep = 0
		return
	}
	stride := count / (hintSlots + 1)
	if stride < 1 {
		stride = 1
	}
	n.hintStep = stride
	for i := 0; i < hintSlots; i++ {
		idx := (i + 1) * stride
		if idx >= count {
			break
		}
		n.hints[i] = keyspace.Head(n.keys[idx])
		n.nHints++
	}
}

// hintRange narrows the search range for key using the hint array: find
// the smallest i with hints[i] >= h, the smallest j >= i with hints[j] !=
// h, and restrict to [i*stride, (j+1)*stride). The hash is not
// order-preserving, so this only narrows the subsequent binary search —
// it never replaces the final full-key comparison.
func (n *Node) hintRange(key keyspace.Key) (lo, hi int) {
	count := len(n.keys)
	if n.nHints == 0 || n.hintStep == 0 {
		return 0, count
	}
	h := keyspace.Head(key)
	i := 0
	for i < n.nHints && n.hints[i] < h {
		i++
	}
	j := i
	for j < n.nHints && n.hints[j] == h {
		j++
	}
	lo = i * n.hintStep
	hi = (j + 1) * n.hintStep
	if hi > count {
		hi = count
	}
	if lo > hi {
		lo = hi
	}
	return lo, hi
}

// search performs hint-narrowed binary search for key within the node's
// own keys, returning the position and whether an exact match was found
// (§4.3 Node.search).
func (n *Node) search(key keyspace.Key) (pos int, found bool) {
	lo, hi := n.hintRange(key)
	// hints are sampled key heads in key order, not sorted by head value
	// (the fingerprint is non-order-preserving), so the narrowed range can
	// undershoot the key's real position. A miss inside it is confirmed
	// against the full range before the key is declared absent.
	pos = lo + sort.Search(hi-lo, func(i int) bool {
		return keyspace.Compare(n.keys[lo+i], key) >= 0
	})
	if pos < len(n.keys) && keyspace.Equal(n.keys[pos], key) {
		return pos, true
	}
	if lo != 0 || hi != len(n.keys) {
		full := sort.Search(len(n.keys), func(i int) bool {
			return keyspace.Compare(n.keys[i], key) >= 0
		})
		if full < len(n.keys) && keyspace.Equal(n.keys[full], key) {
			return full, true
		}
		return full, false
	}
	return pos, false
}

// lowerBound returns the index of the first key >= target within this
// node, over the full key range without hint narrowing. Used by the
// leaf-level range queries (LowerBound, SeekGE, PredecessorOf); internal
// descent routes on upperBound instead.
func (n *Node) lowerBound(target keyspace.Key) int {
	return sort.Search(len(n.keys), func(i int) bool {
		return keyspace.Compare(n.keys[i], target) >= 0
	})
}

// upperBound returns the index of the first key > target.
func (n *Node) upperBound(target keyspace.Key) int {
	return sort.Search(len(n.keys), func(i int) bool {
		return keyspace.Compare(n.keys[i], target) > 0
	})
}
