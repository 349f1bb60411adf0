package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"sync/atomic"

	"github.com/npillmayer/styledom/dom/styling"
	"github.com/npillmayer/tyse/core/dimen"
)

// --- Style slot ------------------------------------------------------------

// borrowCell guards a node's style slot with reader/writer borrows.
// state counts live read borrows; cellWriter marks an exclusive write
// borrow. Borrow requests never block: if a borrow cannot be granted
// immediately, the request is refused and the caller retries through its
// own scheduling. Granularity is a single slot, so borrows on different
// nodes never contend.
type borrowCell struct {
	state int32 // 0 = free, >0 = reader count, cellWriter = writer
	data  styling.StyleData
}

const cellWriter int32 = -1

func (c *borrowCell) tryBorrow() bool {
	for {
		s := atomic.LoadInt32(&c.state)
		if s == cellWriter {
			return false
		}
		if atomic.CompareAndSwapInt32(&c.state, s, s+1) {
			return true
		}
	}
}

func (c *borrowCell) release() {
	atomic.AddInt32(&c.state, -1)
}

func (c *borrowCell) tryBorrowMut() bool {
	return atomic.CompareAndSwapInt32(&c.state, 0, cellWriter)
}

func (c *borrowCell) releaseMut() {
	atomic.StoreInt32(&c.state, 0)
}

// BorrowData requests a shared read borrow of this node's style slot.
// Any number of concurrent readers is permitted, but none concurrently
// with a writer: while the slot is write-borrowed, ok is false. The
// request never blocks.
//
// A granted borrow must be returned by calling release exactly once.
// Callers must not mutate the slot data through a read borrow.
func (n Node) BorrowData() (data *styling.StyleData, release func(), ok bool) {
	slot := &n.rec().slot
	if !slot.tryBorrow() {
		return nil, nil, false
	}
	return &slot.data, slot.release, true
}

// MutateData requests an exclusive write borrow of this node's style
// slot. It is refused while any borrow (read or write) on this same slot
// is live; borrows on other nodes' slots are unaffected. The request
// never blocks.
//
// A granted borrow must be returned by calling release exactly once.
func (n Node) MutateData() (data *styling.StyleData, release func(), ok bool) {
	slot := &n.rec().slot
	if !slot.tryBorrowMut() {
		return nil, nil, false
	}
	return &slot.data, slot.releaseMut, true
}

// --- Resolver-managed flags ------------------------------------------------

// nodeFlags are plain bookkeeping cells toggled by the style resolver
// during traversal to drive incremental work-skipping. The document core
// never infers them; it merely stores them. Updates use atomics since
// disjoint-subtree traversal may run concurrently.
type nodeFlags struct {
	bits uint32
}

const (
	flagDirtyDescendants uint32 = 1 << iota
	flagHasStyleData
)

func (f *nodeFlags) set(bit uint32) {
	for {
		old := atomic.LoadUint32(&f.bits)
		if atomic.CompareAndSwapUint32(&f.bits, old, old|bit) {
			return
		}
	}
}

func (f *nodeFlags) clear(bit uint32) {
	for {
		old := atomic.LoadUint32(&f.bits)
		if atomic.CompareAndSwapUint32(&f.bits, old, old&^bit) {
			return
		}
	}
}

func (f *nodeFlags) has(bit uint32) bool {
	return atomic.LoadUint32(&f.bits)&bit != 0
}

// HasDirtyDescendants reports the resolver-managed dirty-descendants
// flag of this node.
func (n Node) HasDirtyDescendants() bool {
	return n.rec().flags.has(flagDirtyDescendants)
}

// SetDirtyDescendants raises the dirty-descendants flag.
func (n Node) SetDirtyDescendants() {
	n.rec().flags.set(flagDirtyDescendants)
}

// UnsetDirtyDescendants clears the dirty-descendants flag.
func (n Node) UnsetDirtyDescendants() {
	n.rec().flags.clear(flagDirtyDescendants)
}

// HasStyleData reports the resolver-managed has-style-data flag of this
// node. It is a plain cell: it does not inspect the style slot.
func (n Node) HasStyleData() bool {
	return n.rec().flags.has(flagHasStyleData)
}

// SetHasStyleData raises the has-style-data flag.
func (n Node) SetHasStyleData() {
	n.rec().flags.set(flagHasStyleData)
}

// UnsetHasStyleData clears the has-style-data flag.
func (n Node) UnsetHasStyleData() {
	n.rec().flags.clear(flagHasStyleData)
}

// --- Layout handle ---------------------------------------------------------

// LayoutID is an opaque identifier assigned to a node by an external
// layout engine. The document core does not interpret it; it only stores
// and returns it, so that a node's box can be looked up after layout.
type LayoutID uint64

// layoutCell stores a LayoutID, distinguishing "unset". The layout pass
// runs after styling completes, so the cell is uncontended in practice,
// but it follows the same single-writer convention as the style slot.
type layoutCell struct {
	v uint64 // 0 = unset, otherwise LayoutID+1
}

// SetLayoutID stores the layout engine's identifier for this node.
func (n Node) SetLayoutID(id LayoutID) {
	atomic.StoreUint64(&n.rec().layout.v, uint64(id)+1)
}

// LayoutID returns the layout engine's identifier for this node, with
// ok=false as long as no identifier has been assigned.
func (n Node) LayoutID() (LayoutID, bool) {
	v := atomic.LoadUint64(&n.rec().layout.v)
	if v == 0 {
		return 0, false
	}
	return LayoutID(v - 1), true
}

// Rect is a node's box as computed by the layout engine, in device
// units.
type Rect struct {
	X, Y dimen.DU // position of the top-left corner
	W, H dimen.DU // width and height
}

// BoxLookup resolves a layout handle to the box the layout engine
// computed for it. Implemented by the external layout engine.
type BoxLookup interface {
	Box(LayoutID) (Rect, bool)
}

// Bounds returns this node's box by resolving its layout handle through
// the given lookup. ok is false if no handle has been assigned yet or
// the lookup does not know the handle.
func (n Node) Bounds(boxes BoxLookup) (Rect, bool) {
	id, ok := n.LayoutID()
	if !ok {
		return Rect{}, false
	}
	return boxes.Box(id)
}
