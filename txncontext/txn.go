// Package txncontext supplies a reference implementation of the opaque
// Transaction context contract (§6): a non-zero transaction id and the
// snapshot CID it reads at. Grounded on the transaction manager's own
// atomic ID issuance and active-transaction bookkeeping.
package txncontext

import "sync/atomic"

// Context is one transaction's identity and read snapshot. The index
// never constructs or inspects these beyond the two accessors; commit
// and rollback are entirely the host's concern.
type Context struct {
	id  uint64
	cid uint64
}

// TransactionID returns the non-zero unique id.
func (c *Context) TransactionID() uint64 { return c.id }

// SnapshotCID returns the CID at which this transaction reads.
func (c *Context) SnapshotCID() uint64 { return c.cid }

// Manager issues Contexts with monotonically increasing transaction ids
// and hands out the current commit-id counter as each one's snapshot.
type Manager struct {
	nextTxnID uint64
	nextCID   uint64
}

// NewManager returns a Manager whose first issued transaction id is 1
// (0 is reserved as TIDZero, meaning "no writer"). Snapshots taken before
// any commit read at CID 0 ("before any commit"); the first Commit
// returns CID 1.
func NewManager() *Manager {
	return &Manager{nextTxnID: 0, nextCID: 0}
}

// Begin issues a new Context reading at the current commit-id frontier.
func (m *Manager) Begin() *Context {
	id := atomic.AddUint64(&m.nextTxnID, 1)
	cid := atomic.LoadUint64(&m.nextCID)
	return &Context{id: id, cid: cid}
}

// Commit advances the commit-id frontier and returns the CID this commit
// was assigned. Rows written under this commit should have their
// begin_cid set to the returned value.
func (m *Manager) Commit() uint64 {
	return atomic.AddUint64(&m.nextCID, 1)
}
