/*
Package walker implements concurrent operations on arena document trees.

Overview

The document core itself never spawns work: it is traversal-agnostic by
design, safe to be driven by a scheduler that walks disjoint subtrees in
parallel. This package is such a scheduler. Clients create a Walker for
a (sub-)tree, chain search- and processing-steps, and collect the
resulting selection of nodes through a Promise.

Operations are carried out by concurrent worker goroutines, organized as
a pipeline of filter stages, one stage per chained operation. Filters
read nodes from an input channel and put processed nodes on an output
channel, a little pipes&filter design. Since arena identities are
assigned in document order, the final selection is ordered simply by
sorting on node identity.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package walker

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'styledom.walker'.
func tracer() tracing.Trace {
	return tracing.Select("styledom.walker")
}
