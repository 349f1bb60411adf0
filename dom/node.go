package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"

	"golang.org/x/net/html"
)

// NodeID is the identity of a node within its document's arena.
// Identities are dense integers, assigned in document order during
// construction. Identity 0 is reserved for the document root.
type NodeID uint32

// noParent marks the document root, the only node without a parent.
const noParent = ^NodeID(0)

// nodeRecord is one slot of the arena. The structural fields (parent,
// selfPos, children, h) are written once during construction and read-only
// thereafter; this is what makes lock-free concurrent navigation safe.
// slot, flags and layout are the only fields mutated after construction.
type nodeRecord struct {
	parent   NodeID     // identity of the parent, noParent for the root
	selfPos  int        // index of this node in the parent's child list
	children []NodeID   // child identities in document order
	h        *html.Node // payload: the corresponding parse tree node
	slot     borrowCell // style slot, independently lockable
	flags    nodeFlags  // resolver-managed bookkeeping flags
	layout   layoutCell // opaque handle assigned by the layout engine
}

// Node is a handle for navigating a document: a document reference plus a
// node identity. Handles are copyable values and never own node data;
// any number of handles may reference the same node. Two handles are
// equal iff they reference the same node of the same document.
//
// The zero Node is invalid and is used as the "none" result of navigation
// operations, always accompanied by a false flag.
type Node struct {
	doc *Document
	id  NodeID
}

// Valid is false for the zero Node, i.e. the "none" result of a
// navigation miss.
func (n Node) Valid() bool {
	return n.doc != nil
}

// ID returns the node's identity within its document.
func (n Node) ID() NodeID {
	return n.id
}

// Document returns the document this handle points into.
func (n Node) Document() *Document {
	return n.doc
}

// HTMLNode returns the parse tree node which is this node's payload.
func (n Node) HTMLNode() *html.Node {
	return n.rec().h
}

func (n Node) String() string {
	if !n.Valid() {
		return "(Node none)"
	}
	return fmt.Sprintf("(Node #%d %s)", n.id, n.name())
}

// name returns a short diagnostic name, similar to W3C node names.
func (n Node) name() string {
	switch h := n.rec().h; h.Type {
	case html.DocumentNode:
		return "#document"
	case html.ElementNode:
		return h.Data
	case html.TextNode:
		return "#text"
	case html.CommentNode:
		return "#comment"
	case html.DoctypeNode:
		return "#doctype"
	}
	return "#unknown"
}

func (n Node) rec() *nodeRecord {
	return &n.doc.nodes[n.id]
}

// --- Navigation ------------------------------------------------------------

// Parent returns the structural parent. The document root is the only
// node without one.
func (n Node) Parent() (Node, bool) {
	p := n.rec().parent
	if p == noParent {
		return Node{}, false
	}
	return Node{doc: n.doc, id: p}, true
}

// PositionInParent returns the index of this node within its parent's
// ordered child list (0 for the document root). It always holds that
//
//     parent.Child(n.PositionInParent()) == n
//
func (n Node) PositionInParent() int {
	return n.rec().selfPos
}

// ChildCount returns the number of children of this node.
func (n Node) ChildCount() int {
	return len(n.rec().children)
}

// Child returns the i'th child in document order.
func (n Node) Child(i int) (Node, bool) {
	children := n.rec().children
	if i < 0 || i >= len(children) {
		return Node{}, false
	}
	return Node{doc: n.doc, id: children[i]}, true
}

// FirstChild returns the first child in document order, if any.
func (n Node) FirstChild() (Node, bool) {
	return n.Child(0)
}

// LastChild returns the last child in document order, if any.
func (n Node) LastChild() (Node, bool) {
	return n.Child(len(n.rec().children) - 1)
}

// forward returns the node k positions after this one in the parent's
// child list. Following the original layout there is no sibling linked
// list; siblings are computed from selfPos and the parent's children.
func (n Node) forward(k int) (Node, bool) {
	rec := n.rec()
	if rec.parent == noParent {
		return Node{}, false
	}
	return Node{doc: n.doc, id: rec.parent}.Child(rec.selfPos + k)
}

func (n Node) backward(k int) (Node, bool) {
	rec := n.rec()
	if rec.parent == noParent || rec.selfPos < k {
		return Node{}, false
	}
	return Node{doc: n.doc, id: rec.parent}.Child(rec.selfPos - k)
}

// NextSibling returns the sibling k positions to the right, or none if
// the parent's child list is exceeded. The document root has no siblings.
func (n Node) NextSibling(k int) (Node, bool) {
	return n.forward(k)
}

// PreviousSibling returns the sibling k positions to the left, or none.
func (n Node) PreviousSibling(k int) (Node, bool) {
	return n.backward(k)
}

// NextElementSibling returns the next sibling of element kind, skipping
// text, comment, etc. nodes in between. Cost is linear in the number of
// skipped siblings; we accept this instead of maintaining a separate
// element-only sibling chain.
func (n Node) NextElementSibling() (Node, bool) {
	for k := 1; ; k++ {
		sib, ok := n.forward(k)
		if !ok {
			return Node{}, false
		}
		if sib.IsElement() {
			return sib, true
		}
	}
}

// PreviousElementSibling returns the preceding sibling of element kind,
// see NextElementSibling.
func (n Node) PreviousElementSibling() (Node, bool) {
	for k := 1; ; k++ {
		sib, ok := n.backward(k)
		if !ok {
			return Node{}, false
		}
		if sib.IsElement() {
			return sib, true
		}
	}
}

// --- Node classification ---------------------------------------------------

// IsElement is true for nodes with an element payload.
func (n Node) IsElement() bool {
	return n.rec().h.Type == html.ElementNode
}

// IsText is true for nodes with a text payload.
func (n Node) IsText() bool {
	return n.rec().h.Type == html.TextNode
}

// IsDocumentRoot is true only for identity 0, the synthetic root
// wrapping the document.
func (n Node) IsDocumentRoot() bool {
	return n.id == 0
}

// Text returns the text content of a text node, or "" for any other
// node kind.
func (n Node) Text() string {
	if h := n.rec().h; h.Type == html.TextNode {
		return h.Data
	}
	return ""
}

// LocalName returns the tag name of an element. Calling it on a
// non-element is a contract violation and panics.
func (n Node) LocalName() string {
	h := n.rec().h
	if h.Type != html.ElementNode {
		panic(fmt.Sprintf("dom: LocalName called on non-element %s", n.name()))
	}
	return h.Data
}

// Namespace returns the namespace of an element ("" for plain HTML).
// Calling it on a non-element is a contract violation and panics.
func (n Node) Namespace() string {
	h := n.rec().h
	if h.Type != html.ElementNode {
		panic(fmt.Sprintf("dom: Namespace called on non-element %s", n.name()))
	}
	return h.Namespace
}

// ShadowRoot is an explicitly unsupported capability: this document type
// does not model shadow trees. Calling it indicates a caller bug and
// panics.
func (n Node) ShadowRoot() Node {
	panic("dom: shadow trees are not supported")
}
