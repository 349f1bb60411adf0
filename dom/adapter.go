package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"github.com/npillmayer/styledom/dom/styling"
)

// Node implements the full resolver capability set. A style resolver
// written against package styling can therefore be instantiated with
// dom.Node without knowing about the arena.
var _ styling.ElemNode[Node] = Node{}

// TraversalChildren returns the children iterator in the shape the
// resolver capability set expects.
//
// Interface styling.TreeNode
func (n Node) TraversalChildren() styling.Iterator[Node] {
	return n.Children()
}
