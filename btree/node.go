// Package btree implements the order-preserving key directory (C3, C4):
// a B+Tree keyed by keyspace.Key whose leaves carry payload.Record values
// and are linked into a doubly-linked list for neighbor traversal.
//
// Following spec.md's Data Model (I6/I7) rather than the mixed layout of
// the Hyrise C++ original this system was distilled from: payloads live
// exclusively in leaves; internal entries are pure separator keys used only
// to route descent. This keeps leaf-link traversal a complete, ascending
// walk over every LHS key, which the validator's boundary-flag law (§4.5)
// depends on. See DESIGN.md for the discrepancy with original_source/.
package btree

import (
	"github.com/Jonas-dot/hyrise/keyspace"
	"github.com/Jonas-dot/hyrise/payload"
)

// DefaultMinDegree is the minimum degree t used when a Tree is built
// without an explicit one (§3: "default 3").
const DefaultMinDegree = 3

const hintSlots = 16

// Node is a leaf or internal B+Tree node (C3). Leaf nodes carry keys and
// payload records in parallel slices; internal nodes carry separator keys
// and children. Every node samples up to 16 entry heads into hints for
// hint-narrowed binary search (§4.3).
type Node struct {
	leaf bool

	keys []keyspace.Key    // sorted ascending; separators if internal
	recs []*payload.Record // leaf-only; recs[i] is the payload for keys[i]

	children []*Node // internal-only; len(children) == len(keys)+1

	prev, next *Node // leaf-only neighbor links (I7); non-owning by convention

	hints    [hintSlots]uint32
	nHints   int
	hintStep int
}

func newLeaf() *Node {
	return &Node{leaf: true}
}

func newInternal() *Node {
	return &Node{leaf: false}
}

// maxKeys and minKeys derive the classic B-tree occupancy bounds from a
// minimum degree t: each node holds up to 2t-1 entries.
func maxKeys(t int) int { return 2*t - 1 }
func minKeys(t int) int { return t - 1 }

// entryCount returns the number of populated slots — keys — in the node.
func (n *Node) entryCount() int { return len(n.keys) }
