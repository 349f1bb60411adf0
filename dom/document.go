package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ErrParse is returned by the document constructors if the upstream HTML
// parse failed. A document cannot exist without a valid parse tree, so
// there is no recovery path.
var ErrParse = errors.New("document construction from failed parse")

// Document is an arena of node records, built once from an HTML parse
// tree. It owns all node data for the lifetime of styling and layout.
//
// The tree structure is frozen after construction: parents, children and
// sibling positions will never change. Only the per-node style slots,
// bookkeeping flags and layout handles are mutated later, and those are
// synchronized individually (see Node.BorrowData et al.).
type Document struct {
	nodes   []nodeRecord // the arena; index == node identity
	htmlDoc *html.Node   // the parse tree the arena was built from
}

// FromTree builds a document from a parse tree. root must not be nil:
// handing in a missing tree is a caller bug and will panic. Use FromHTML
// for the error-returning path through the parser.
//
// The document takes ownership of the parse tree. If root is not a
// DocumentNode, a synthetic document node is created to wrap it, so that
// identity 0 always denotes the document root.
func FromTree(root *html.Node) *Document {
	if root == nil {
		panic("dom: cannot build document from nil parse tree")
	}
	if root.Type != html.DocumentNode {
		wrapper := &html.Node{Type: html.DocumentNode}
		wrapper.AppendChild(root)
		root = wrapper
	}
	doc := &Document{htmlDoc: root}
	doc.nodes = make([]nodeRecord, 0, 64)
	doc.appendSubtree(root, 0, noParent)
	tracer().Debugf("document arena built with %d nodes", len(doc.nodes))
	return doc
}

// FromHTML parses HTML from r and builds a document arena from the
// resulting parse tree. A parser failure is wrapped into ErrParse.
func FromHTML(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrParse, err.Error())
	}
	return FromTree(root), nil
}

// FromHTMLString is a convenience wrapper around FromHTML.
func FromHTMLString(h string) (*Document, error) {
	return FromHTML(strings.NewReader(h))
}

// appendSubtree walks the parse tree depth-first, reserving the next arena
// slot for every node visited. Children are filled in recursively before
// the parent's child list is sealed, as their identities have to be known
// first. Identity order therefore is pre-order, i.e. document order.
func (doc *Document) appendSubtree(h *html.Node, position int, parent NodeID) NodeID {
	id := NodeID(len(doc.nodes))
	doc.nodes = append(doc.nodes, nodeRecord{
		parent:  parent,
		selfPos: position,
		h:       h,
	})
	var children []NodeID
	pos := 0
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		children = append(children, doc.appendSubtree(ch, pos, id))
		pos++
	}
	doc.nodes[id].children = children
	return id
}

// NodeCount returns the number of nodes in the document, including the
// document root. Node identities are dense over [0,NodeCount).
func (doc *Document) NodeCount() int {
	return len(doc.nodes)
}

// Root returns a handle for the document root, i.e. identity 0.
func (doc *Document) Root() Node {
	return Node{doc: doc, id: 0}
}

// RootElement returns the document's root element, which is the first
// element child of the document root (doctype and comment nodes are
// skipped). For a document without any element content ok will be false.
func (doc *Document) RootElement() (Node, bool) {
	for _, ch := range doc.nodes[0].children {
		if doc.nodes[ch].h.Type == html.ElementNode {
			return Node{doc: doc, id: ch}, true
		}
	}
	return Node{}, false
}

// NodeWithID returns a handle for a given node identity.
func (doc *Document) NodeWithID(id NodeID) (Node, bool) {
	if int(id) >= len(doc.nodes) {
		return Node{}, false
	}
	return Node{doc: doc, id: id}, true
}

// HTMLDocument returns the parse tree this document was built from.
func (doc *Document) HTMLDocument() *html.Node {
	return doc.htmlDoc
}
