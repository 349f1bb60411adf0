/*
Package styling defines the capability set a style resolver requires.

A tree-style resolution algorithm is generic over the document it
traverses: it needs navigation in document order, attribute
introspection during rule matching, borrow access to a per-node slot for
its computed output, and two bookkeeping flags to drive incremental
work-skipping. It does not care how the document is stored. This package
expresses that contract as an explicit interface boundary, with package
dom providing the arena-backed implementation (asserted there at compile
time). Following the module's tree conventions, the interfaces are
generic over the concrete node type, so resolver code stays free of
interface wrapping on the hot path.

The adapter is traversal-agnostic: none of the operations spawns work,
blocks or suspends. Navigation misses return ok=false, borrow contention
returns ok=false immediately, and the flags are plain cells which the
resolver sets and clears itself; they are never inferred.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package styling

import (
	"github.com/npillmayer/styledom/dom/style"
	"github.com/npillmayer/styledom/dom/style/cssom"
)

// StyleData is the payload of a node's style slot: the resolver's
// computed output for this node. Access is always guarded by a borrow,
// see ElemNode.
type StyleData struct {
	Styles *style.PropertyMap // computed styles, nil until resolved
}

// Iterator is a lazy sequence of nodes, as produced by
// TreeNode.TraversalChildren.
type Iterator[N any] interface {
	Next() (N, bool) // next node, or ok=false when exhausted
}

// TreeNode is the navigation part of the resolver capability set.
// All operations are read-only over structure that is frozen after
// document construction, so they are safe to call from concurrently
// traversing goroutines without synchronization.
type TreeNode[N comparable] interface {
	Parent() (N, bool)                 // structural parent; none at the document root
	FirstChild() (N, bool)             // first child in document order
	LastChild() (N, bool)              // last child in document order
	NextSibling(k int) (N, bool)       // sibling k positions to the right
	PreviousSibling(k int) (N, bool)   // sibling k positions to the left
	NextElementSibling() (N, bool)     // next sibling of element kind
	PreviousElementSibling() (N, bool) // previous sibling of element kind
	ChildCount() int
	TraversalChildren() Iterator[N] // children in document order
	IsElement() bool
	IsText() bool
	IsDocumentRoot() bool
}

// ElemNode is the full resolver capability set: navigation, attribute
// introspection, style-slot borrows and the two resolver-managed flags.
//
// The borrow operations are non-blocking: if the requested borrow cannot
// be granted immediately, ok is false and the caller must retry through
// its own scheduling. A granted borrow must be returned by calling the
// release function exactly once. Borrows are scoped to a single node's
// slot; they never affect other nodes.
type ElemNode[N comparable] interface {
	TreeNode[N]

	LocalName() string // tag name; panics on non-elements
	Namespace() string // namespace; panics on non-elements
	HasIdentifier(name string) bool
	HasClass(name string) bool
	EachClass(callback func(class string))
	EachAttrName(callback func(name string))

	BorrowData() (data *StyleData, release func(), ok bool) // shared read borrow
	MutateData() (data *StyleData, release func(), ok bool) // exclusive write borrow

	HasDirtyDescendants() bool
	SetDirtyDescendants()
	UnsetDirtyDescendants()
	HasStyleData() bool
	SetHasStyleData()
	UnsetHasStyleData()
}

// Context is the shared read-only context a resolver carries during its
// traversal: configuration plus the style rule sets to apply. One
// Context instance is shared by every concurrently traversing task.
type Context struct {
	UserAgent cssom.StyleSheet // user-agent default rules, may be nil
	Author    cssom.StyleSheet // author / document rules, may be nil
}

// ResolveFunc is the shape of an external style resolution algorithm:
// handed a root node and a shared context, it produces no return value
// but leaves the style slots of the subtree populated as a side effect.
type ResolveFunc[N comparable] func(ctx *Context, root N) error
