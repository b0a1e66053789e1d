package btree

import (
	"fmt"
	"io"
)

// DumpTo writes a human-readable, breadth-first rendering of the tree to
// w, one line per node, grounded on the original index inspector's
// InspectIndexFileTo dump (§9 Supplemented Features). Intended for the
// inspect command and for debugging, not for machine parsing.
func (t *Tree) DumpTo(w io.Writer) error {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.root == nil {
		_, err := fmt.Fprintln(w, "(empty tree)")
		return err
	}

	level := []*Node{t.root}
	depth := 0
	for len(level) > 0 {
		var next []*Node
		for _, n := range level {
			kind := "internal"
			if n.leaf {
				kind = "leaf"
			}
			if _, err := fmt.Fprintf(w, "depth=%d %s keys=%d [", depth, kind, len(n.keys)); err != nil {
				return err
			}
			for i, k := range n.keys {
				if i > 0 {
					if _, err := fmt.Fprint(w, " "); err != nil {
						return err
					}
				}
				if _, err := fmt.Fprint(w, k.String()); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintln(w, "]"); err != nil {
				return err
			}
			next = append(next, n.children...)
		}
		level = next
		depth++
	}
	return nil
}
