package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// ChildIterator is a lazy sequence over the children of a node, in
// document order. It is the traversal primitive handed to the style
// resolver for its tree walk.
//
// Iterators are cheap: no child handles are materialized up front. An
// exhausted iterator may be re-used by calling Rewind.
type ChildIterator struct {
	parent Node
	pos    int
}

// Children returns an iterator over this node's children in document
// order.
func (n Node) Children() *ChildIterator {
	return &ChildIterator{parent: n}
}

// Next returns the next child, or ok=false when the child list is
// exhausted.
func (it *ChildIterator) Next() (Node, bool) {
	ch, ok := it.parent.Child(it.pos)
	if !ok {
		return Node{}, false
	}
	it.pos++
	return ch, true
}

// Rewind restarts the iterator at the first child.
func (it *ChildIterator) Rewind() {
	it.pos = 0
}
