// Package loader implements the bulk loader (C7): given one or more
// equal-length column segments, it builds an offset permutation sorted
// by composite key, segregates nulls, groups equal keys, and populates
// the tree with count-only PayloadRecords ready for validator traffic.
// Grounded on the storage engine's own sort.Slice-based row ordering,
// generalized from a single named column to a composite key tuple.
package loader

import (
	"sort"

	"github.com/kelindar/bitmap"

	"github.com/Jonas-dot/hyrise/btree"
	"github.com/Jonas-dot/hyrise/keyspace"
	"github.com/Jonas-dot/hyrise/segment"
)

// Group is one run of equal composite keys in the sorted offset
// permutation, as handed to the tree in a single insert (§4.7 step 2).
type Group struct {
	Key        keyspace.Key
	StartIndex int // cursor into SortedOffsets
	Count      int64
}

// Result is the outcome of a bulk load: the sorted offset permutation,
// the groups derived from it, and the offsets of rows with a null
// composite key, tracked in a bitmap rather than a slice.
type Result struct {
	SortedOffsets []int
	Groups        []Group
	NullPositions bitmap.Bitmap
}

// Load builds a Result from columns, one segment per key component, all
// of equal Size(). Rows with any null component are segregated into
// NullPositions and excluded from Groups.
func Load(columns []segment.Segment) Result {
	if len(columns) == 0 {
		return Result{}
	}
	n := columns[0].Size()

	var res Result
	res.SortedOffsets = make([]int, 0, n)
	keys := make(map[int]keyspace.Key, n)

	for offset := 0; offset < n; offset++ {
		cols := make([]keyspace.Column, len(columns))
		isNull := false
		for i, seg := range columns {
			v, ok := seg.ValueAt(offset)
			if !ok {
				isNull = true
				break
			}
			cols[i] = v
		}
		if isNull {
			res.NullPositions.Set(uint32(offset))
			continue
		}
		key := keyspace.New(cols...)
		keys[offset] = key
		res.SortedOffsets = append(res.SortedOffsets, offset)
	}

	sort.SliceStable(res.SortedOffsets, func(i, j int) bool {
		return keyspace.Less(keys[res.SortedOffsets[i]], keys[res.SortedOffsets[j]])
	})

	res.Groups = groupByKey(res.SortedOffsets, keys)
	return res
}

// groupByKey walks the sorted offsets, coalescing consecutive equal keys
// into a single Group (§4.7 step 2).
func groupByKey(sorted []int, keys map[int]keyspace.Key) []Group {
	var groups []Group
	start := 0
	for start < len(sorted) {
		key := keys[sorted[start]]
		end := start + 1
		for end < len(sorted) && keyspace.Equal(keys[sorted[end]], key) {
			end++
		}
		groups = append(groups, Group{Key: key, StartIndex: start, Count: int64(end - start)})
		start = end
	}
	return groups
}

// Populate inserts every group's key into tree as a fresh PayloadRecord
// with Count set to the group's row multiplicity. rhs_set starts empty:
// validator traffic populates it afterward (§4.7 step 2). Leaf neighbor
// links need no separate linking pass here since Tree.GetOrCreate
// maintains them incrementally on every split (§4.7 step 3).
func Populate(tree *btree.Tree, groups []Group) {
	for _, g := range groups {
		rec, _ := tree.GetOrCreate(g.Key)
		rec.Count = g.Count
	}
}
