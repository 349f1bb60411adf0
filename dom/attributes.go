package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"golang.org/x/net/html"
)

// Attributes is a read-only view onto the attribute list of an element.
// All lookups are linear scans over the parse tree's attribute slice;
// attribute counts are small and we do not precompute sets.
//
// An Attributes view for a non-element node is legal: every query simply
// comes up empty there, rather than failing.
type Attributes struct {
	n Node
}

// Attributes returns an introspection view onto this node's attributes.
func (n Node) Attributes() Attributes {
	return Attributes{n: n}
}

// attrs returns the underlying attribute list, nil for non-elements.
func (a Attributes) attrs() []html.Attribute {
	h := a.n.rec().h
	if h.Type != html.ElementNode {
		return nil
	}
	return h.Attr
}

// Value returns the value of the attribute with the given key.
func (a Attributes) Value(key string) (string, bool) {
	for _, attr := range a.attrs() {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// HasIdentifier is true iff the element carries an 'id' attribute whose
// value equals name.
func (a Attributes) HasIdentifier(name string) bool {
	v, ok := a.Value("id")
	return ok && v == name
}

// HasClass is true iff name occurs in the whitespace-separated value of
// the element's 'class' attribute. The class list is scanned on every
// call.
func (a Attributes) HasClass(name string) bool {
	found := false
	a.EachClass(func(class string) {
		if class == name {
			found = true
		}
	})
	return found
}

// EachClass calls the callback once for every class of the element's
// 'class' attribute, in source order.
func (a Attributes) EachClass(callback func(class string)) {
	for _, attr := range a.attrs() {
		if attr.Key != "class" {
			continue
		}
		eachASCIIField(attr.Val, callback)
	}
}

// EachAttrName calls the callback once for every attribute of the
// element, in attribute-list order.
func (a Attributes) EachAttrName(callback func(name string)) {
	for _, attr := range a.attrs() {
		callback(attr.Key)
	}
}

// eachASCIIField splits s on runs of ASCII whitespace, calling the
// callback for every field. CSS class lists are defined in terms of ASCII
// whitespace, so we do not use strings.Fields (Unicode) here.
func eachASCIIField(s string, callback func(field string)) {
	start := -1
	for i := 0; i < len(s); i++ {
		if isASCIISpace(s[i]) {
			if start >= 0 {
				callback(s[start:i])
				start = -1
			}
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		callback(s[start:])
	}
}

func isASCIISpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// --- Delegates on Node -----------------------------------------------------
//
// The resolver capability set (package styling) expects introspection
// directly on the node type, so the Attributes queries are mirrored here.

// HasIdentifier is a shorthand for n.Attributes().HasIdentifier(name).
func (n Node) HasIdentifier(name string) bool {
	return n.Attributes().HasIdentifier(name)
}

// HasClass is a shorthand for n.Attributes().HasClass(name).
func (n Node) HasClass(name string) bool {
	return n.Attributes().HasClass(name)
}

// EachClass is a shorthand for n.Attributes().EachClass(callback).
func (n Node) EachClass(callback func(class string)) {
	n.Attributes().EachClass(callback)
}

// EachAttrName is a shorthand for n.Attributes().EachAttrName(callback).
func (n Node) EachAttrName(callback func(name string)) {
	n.Attributes().EachAttrName(callback)
}
