package walker

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"

	"github.com/npillmayer/styledom/dom"
)

// ErrInvalidFilter is thrown if a pipeline filter step is defunct.
var ErrInvalidFilter = errors.New("filter stage is invalid")

// ErrEmptyTree is thrown if a Walker is called with an invalid start node.
// Refer to the documentation of NewWalker() for details about this
// scenario.
var ErrEmptyTree = errors.New("cannot walk empty tree")

// ErrNoMoreFiltersAccepted is thrown if a client already called Promise(),
// but tried to re-use a walker with another filter.
var ErrNoMoreFiltersAccepted = errors.New("in promise mode; will not accept new filters; use a new walker")

// Walker holds information for operating on an arena document tree:
// finding nodes and doing work on them. Clients usually create a Walker
// for a (sub-)tree to search for a selection of nodes matching certain
// criteria, and then perform some operation on this selection.
//
// A Walker will eventually return two client-level values: a slice of
// node handles and the last error occured. These are accessed through a
// Promise-object, which represents future values for the two fields.
//
// A typical usage of a Walker looks like this ("FindNodesAndDoSomething()"
// is a placeholder for a chain of function calls, see below):
//
//    w := walker.NewWalker(node)
//    futureResult := w.FindNodesAndDoSomething(...).Promise()
//    nodes, err := futureResult()
//
// ATTENTION: clients must call Promise() as the final link of the
// expression chain, even if they do not expect the expression to return
// a non-empty set of nodes. Firstly, they need to check for errors, and
// secondly, without fetching the (possibly empty) result set by calling
// the promise, the Walker may leak goroutines.
type Walker struct {
	initial   dom.Node  // initial node of the (sub-)tree
	pipe      *pipeline // pipeline of filters to perform work on tree nodes
	promising bool      // client has called Promise()
}

// NewWalker creates a Walker for the initial node of a (sub-)tree.
// The first subsequent call to a node filter function will have this
// initial node as input.
//
// If initial is the invalid zero node, NewWalker will return a
// nil-Walker, resulting in a NOP-pipeline of operations, an empty set of
// nodes and ErrEmptyTree.
func NewWalker(initial dom.Node) *Walker {
	if !initial.Valid() {
		return nil
	}
	tracer().Debugf("new tree-walker, initial node = %v", initial)
	return &Walker{initial: initial, pipe: newPipeline()}
}

// appendFilterForTask will create a new filter for a task and append that
// filter at the end of the pipeline. If processing has not been started
// yet, it will be started.
func (w *Walker) appendFilterForTask(task workerTask, filterdata interface{}, buflen int) error {
	if w.promising {
		return ErrNoMoreFiltersAccepted
	}
	f := newFilter(task, filterdata, buflen)
	if w.pipe.empty() { // quick check, may be false positive when in if-block
		w.startProcessing() // this will check again, and startup if pipe empty
	}
	w.pipe.appendFilter(f) // insert filter into the running pipeline
	return nil
}

// startProcessing should be called as soon as the first filter is
// inserted into the pipeline. It will put the initial tree node onto the
// front input channel.
func (w *Walker) startProcessing() {
	doStart := false
	w.pipe.RLock()
	if w.pipe.emptyUnlocked() { // no processing up to now => start with initial node
		w.pipe.pushSync(w.initial) // input is buffered, will return immediately
		doStart = true             // yes, we will have to start the pipeline
	}
	w.pipe.RUnlock()
	if doStart { // ok to be outside mutex as other goroutines will check pipe.empty()
		w.pipe.startProcessing() // must be outside of mutex lock
	}
}

// Promise is a future synchronisation point. Walkers perform their tasks
// asynchronously: clients will not receive the resulting node list
// immediately, but rather get handed a Promise. Calling the Promise (a
// function type) will block until all concurrent operations on the tree
// nodes have finished, and yield the selection and the last error.
//
// The selection is a set (no duplicates) and sorted by node identity,
// which for arena documents equals document order.
func (w *Walker) Promise() func() ([]dom.Node, error) {
	if w == nil {
		// empty Walker => return nil set and an error
		return func() ([]dom.Node, error) {
			return nil, ErrEmptyTree
		}
	}
	if w.pipe.empty() {
		// no filters chained => nothing flowed, nothing to wait for
		return func() ([]dom.Node, error) {
			return nil, nil
		}
	}
	// drain the result channel and the error channel
	w.promising = true // will block calls to establish new filters
	errch := w.pipe.errors
	results := w.pipe.results
	counter := &w.pipe.queuecount
	signal := make(chan struct{})
	var selection []dom.Node
	var lasterror error
	go func() {
		defer close(signal)
		selection, lasterror = waitForCompletion(results, errch, counter)
	}()
	return func() ([]dom.Node, error) {
		<-signal
		return selection, lasterror
	}
}

// ---------------------------------------------------------------------------

// Predicate is a function type to match against nodes of a tree. It is
// used as an argument for various Walker functions to collect a
// selection of nodes. A non-match is signalled by returning the invalid
// zero node.
type Predicate func(test dom.Node) (match dom.Node, err error)

// Whatever is a predicate to match anything (see type Predicate).
// It is useful to match the first node in a given direction.
func Whatever() Predicate {
	return func(test dom.Node) (dom.Node, error) {
		return test, nil
	}
}

// NodeIsLeaf is a predicate to match leafs of a tree.
func NodeIsLeaf() Predicate {
	return func(test dom.Node) (dom.Node, error) {
		if test.ChildCount() == 0 {
			return test, nil
		}
		return dom.Node{}, nil
	}
}

// NodeIsElement is a predicate to match element-kind nodes.
func NodeIsElement() Predicate {
	return func(test dom.Node) (dom.Node, error) {
		if test.IsElement() {
			return test, nil
		}
		return dom.Node{}, nil
	}
}

// NodeIsText is a predicate to match text-kind nodes.
func NodeIsText() Predicate {
	return func(test dom.Node) (dom.Node, error) {
		if test.IsText() {
			return test, nil
		}
		return dom.Node{}, nil
	}
}

// ---------------------------------------------------------------------------

// Parent returns the parent node.
//
// If w is nil, Parent will return nil.
func (w *Walker) Parent() *Walker {
	if w == nil {
		return nil
	}
	if err := w.appendFilterForTask(parentTask, nil, 0); err != nil {
		tracer().Errorf(err.Error())
		panic(err)
	}
	return w
}

// parentTask is a very simple filter task to retrieve the parent of a
// tree node. For the document root, parentTask will not produce a result.
func parentTask(node dom.Node, isBuffered bool, udata userdata, emit func(dom.Node),
	buffer func(dom.Node, interface{})) error {
	//
	if p, ok := node.Parent(); ok {
		emit(p) // forward parent node to next pipeline stage
	}
	return nil
}

// AncestorWith finds an ancestor matching the given predicate.
// The search does not include the start node.
//
// If w is nil, AncestorWith will return nil.
func (w *Walker) AncestorWith(predicate Predicate) *Walker {
	if w == nil {
		return nil
	}
	if predicate == nil {
		w.pipe.errors <- ErrInvalidFilter
		return w
	}
	if err := w.appendFilterForTask(ancestorWith, predicate, 0); err != nil {
		tracer().Errorf(err.Error())
		panic(err)
	}
	return w
}

// ancestorWith searches iteratively for an ancestor node matching a
// predicate.
func ancestorWith(node dom.Node, isBuffered bool, udata userdata, emit func(dom.Node),
	buffer func(dom.Node, interface{})) error {
	//
	predicate := udata.filterdata.(Predicate)
	anc, ok := node.Parent()
	for ok {
		matched, err := predicate(anc)
		if err != nil {
			return err
		}
		if matched.Valid() {
			emit(matched) // put ancestor on output channel for next pipeline stage
			return nil
		}
		anc, ok = anc.Parent()
	}
	return nil // no matching ancestor found, not an error
}

// DescendentsWith finds descendents matching a predicate.
// The search does not include the start node.
//
// If w is nil, DescendentsWith will return nil.
func (w *Walker) DescendentsWith(predicate Predicate) *Walker {
	if w == nil {
		return nil
	}
	if predicate == nil {
		w.pipe.errors <- ErrInvalidFilter
		return w
	}
	if err := w.appendFilterForTask(descendentsWith, predicate, 32); err != nil {
		tracer().Errorf(err.Error())
		panic(err)
	}
	return w
}

func descendentsWith(node dom.Node, isBuffered bool, udata userdata, emit func(dom.Node),
	buffer func(dom.Node, interface{})) error {
	//
	if isBuffered {
		predicate := udata.filterdata.(Predicate)
		matched, err := predicate(node)
		tracer().Debugf("predicate for node %v returned: %v, err=%v", node, matched, err)
		if err != nil {
			return err // do not descend further
		}
		if matched.Valid() {
			emit(matched) // found one, put on output channel for next pipeline stage
		}
		bufferChildrenOf(node, buffer)
	} else {
		bufferChildrenOf(node, buffer) // the start node itself is not tested
	}
	return nil
}

// bufferChildrenOf re-schedules all children of a node on a filter
// stage's buffer queue, together with their parent and position.
func bufferChildrenOf(node dom.Node, buffer func(dom.Node, interface{})) {
	for i := 0; i < node.ChildCount(); i++ {
		if ch, ok := node.Child(i); ok {
			buffer(ch, parentAndPosition{node, i})
		}
	}
}

// AllDescendents traverses all descendents.
// The traversal does not include the start node.
// This is just a wrapper around w.DescendentsWith(Whatever()).
//
// If w is nil, AllDescendents will return nil.
func (w *Walker) AllDescendents() *Walker {
	return w.DescendentsWith(Whatever())
}

// Filter calls a client-provided predicate on each node of the current
// selection. The predicate should return the input node if it is
// accepted and the invalid zero node otherwise.
//
// If w is nil, Filter will return nil.
func (w *Walker) Filter(f Predicate) *Walker {
	if w == nil {
		return nil
	}
	if f == nil {
		w.pipe.errors <- ErrInvalidFilter
		return w
	}
	if err := w.appendFilterForTask(clientFilter, f, 0); err != nil {
		tracer().Errorf(err.Error())
		panic(err)
	}
	return w
}

func clientFilter(node dom.Node, isBuffered bool, udata userdata, emit func(dom.Node),
	buffer func(dom.Node, interface{})) error {
	//
	userfunc := udata.filterdata.(Predicate)
	matched, err := userfunc(node)
	if err != nil {
		return err
	}
	if matched.Valid() {
		emit(matched) // forward filtered node to next pipeline stage
	}
	return nil
}

// Action is a function type to operate on tree nodes. Resulting nodes
// will be pushed to the next pipeline stage, if no error occured.
// parent is the invalid zero node for the start node of a traversal.
type Action func(n dom.Node, parent dom.Node, position int) (dom.Node, error)

// ad-hoc container to accompany a node on a buffer queue
type parentAndPosition struct {
	parent   dom.Node
	position int
}

// TopDown traverses a tree starting at (and including) a start node.
// The traversal guarantees that parents are always processed before
// their children.
//
// If the action function returns an error for a node, descending the
// branch below this node is aborted.
//
// If w is nil, TopDown will return nil.
func (w *Walker) TopDown(action Action) *Walker {
	if w == nil {
		return nil
	}
	if action == nil {
		w.pipe.errors <- ErrInvalidFilter
		return w
	}
	if err := w.appendFilterForTask(topDown, action, 32); err != nil {
		tracer().Errorf(err.Error())
		panic(err)
	}
	return w
}

func topDown(node dom.Node, isBuffered bool, udata userdata, emit func(dom.Node),
	buffer func(dom.Node, interface{})) error {
	//
	if isBuffered { // node was received from the buffer queue
		action := udata.filterdata.(Action)
		var parent dom.Node
		var position int
		if udata.nodelocal != nil {
			pp := udata.nodelocal.(parentAndPosition)
			parent, position = pp.parent, pp.position
		}
		result, err := action(node, parent, position)
		tracer().Debugf("action for node %v returned: %v, err=%v", node, result, err)
		if err != nil {
			return err // do not descend further
		}
		if result.Valid() {
			emit(result) // result -> next pipeline stage
		}
		bufferChildrenOf(node, buffer) // hand over node as parent
	} else {
		buffer(node, nil) // simply move incoming nodes over to the buffer queue
	}
	return nil
}

type bottomUpFilterData struct {
	action       Action
	childrenDone *countMap
}

// BottomUp traverses a tree starting at (and including) all the current
// nodes. Usually clients will select all of a tree's leafs before
// calling BottomUp(). The traversal guarantees that parents are not
// processed before all of their children.
//
// If the action function returns an error for a node, the parent is
// processed regardless.
//
// If w is nil, BottomUp will return nil.
func (w *Walker) BottomUp(action Action) *Walker {
	if w == nil {
		return nil
	}
	if action == nil {
		w.pipe.errors <- ErrInvalidFilter
		return w
	}
	filterdata := &bottomUpFilterData{
		action:       action,
		childrenDone: newCountMap(),
	}
	if err := w.appendFilterForTask(bottomUp, filterdata, 32); err != nil {
		tracer().Errorf(err.Error())
		panic(err)
	}
	return w
}

func bottomUp(node dom.Node, isBuffered bool, udata userdata, emit func(dom.Node),
	buffer func(dom.Node, interface{})) error {
	//
	fdata := udata.filterdata.(*bottomUpFilterData)
	if node.ChildCount() > 0 { // check if all children have been processed
		if int(fdata.childrenDone.get(node.ID())) < node.ChildCount() {
			return nil // drop this node until the last child is processed
		}
	}
	if isBuffered { // node was received from the buffer queue
		parent, hasParent := node.Parent()
		position := 0
		if hasParent {
			position = node.PositionInParent()
		}
		result, err := fdata.action(node, parent, position)
		if err == nil && result.Valid() {
			emit(result) // result node -> next pipeline stage
		}
		if hasParent { // if this is not a root node
			fdata.childrenDone.inc(parent.ID()) // one more child done (i.e., this node)
			buffer(parent, nil)                 // possibly continue processing with parent
		}
	} else {
		buffer(node, nil) // move start nodes over to the buffer queue
	}
	return nil
}
