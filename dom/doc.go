/*
Package dom implements an arena-backed document tree for styling and layout.

Overview

Styling a document involves a foreign algorithm, the style resolver,
walking
the document tree, matching rules against elements and attaching computed
style data to every node. The resolver may fan out over disjoint subtrees
concurrently. To serve it, nodes need a stable identity, children in
document order, and a way to hand out per-node mutable style storage
without a tree-wide lock.

We therefore do not hand the resolver the HTML parse tree directly.
Instead a Document owns a flat arena of node records, indexed by dense
integer identities which are assigned during a single depth-first walk
over the parse tree (thus identity order equals document order). Each
record keeps parent, position-in-parent and an ordered child list as
plain indices, so navigation is index arithmetic on fields that are
frozen after construction and safe to read from any goroutine. The parse
tree (package golang.org/x/net/html) is kept around as the nodes'
payload: tag names, attributes and text are always read through it.

Clients navigate with type Node, a copyable value of document reference
plus identity. Handles never own data; equality is identity equality.

The only mutable per-node state is the style slot (plus two bookkeeping
flags and an opaque layout handle). Slots follow a non-blocking borrow
discipline with slot-level granularity, see BorrowData and MutateData.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'styledom.dom'.
func tracer() tracing.Trace {
	return tracing.Select("styledom.dom")
}
