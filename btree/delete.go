package btree

import "github.com/Jonas-dot/hyrise/keyspace"

// Remove deletes key's entry from its leaf. Underfull nodes are left in
// place rather than borrowed from or merged with a sibling — the tree
// tolerates nodes below minKeys(t) rather than pay rebalancing's cost on
// every delete (§4.4, an explicit relaxation of classic B-tree deletion).
// Reports whether key was present.
func (t *Tree) Remove(key keyspace.Key) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	leaf := t.findLeafLocked(key)
	if leaf == nil {
		return false
	}
	pos, found := leaf.search(key)
	if !found {
		return false
	}
	leaf.keys = append(leaf.keys[:pos], leaf.keys[pos+1:]...)
	leaf.recs = append(leaf.recs[:pos], leaf.recs[pos+1:]...)
	leaf.rebuildHints()
	t.size--
	return true
}
