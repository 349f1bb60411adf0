/*
Package cssom abstracts the style-rule context handed to a style resolver.

A style resolver walks a document tree with a shared read-only context in
hand, part of which is the set of style rules to apply. To de-couple the
resolver and the document core from any concrete CSS parser, the rule set
is abstracted by the interfaces of this package. Clients provide a
concrete implementation (e.g., see package douceuradapter).

Having this interface imposes a performance hit. However, this module
will never trade modularity and clarity for performance. Clients in need
for a production grade browser engine (where performance is key) should
opt for headless versions of the main browser projects.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cssom

import "github.com/npillmayer/styledom/dom/style"

// StyleSheet is an interface to abstract away a stylesheet-implementation.
//
// See interface Rule.
type StyleSheet interface {
	AppendRules(StyleSheet) // append rules from another stylesheet
	Empty() bool            // does this stylesheet contain any rules?
	Rules() []Rule          // all the rules of a stylesheet
}

// Rule is the type stylesheets consist of.
//
// See interface StyleSheet.
type Rule interface {
	Selector() string            // the prelude / selectors of the rule
	Properties() []string        // property keys, e.g. "margin-top"
	Value(string) style.Property // property value for key, e.g. "15px"
	IsImportant(string) bool     // is property key marked as important?
}
