package walker

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"runtime"
	"sort"
	"sync"

	"github.com/npillmayer/styledom/dom"
)

// Tree operations are carried out by concurrent worker goroutines. As
// operations may be chained, a pipeline of filter stages is constructed,
// one stage per chained operation. Filters read nodes from an input
// channel and put processed nodes on an output channel.
//
// An overall counter tracks the number of active work-packages (i.e.,
// nodes) in the pipeline. As soon as the number drops to zero, a
// watchdog closes all channels and the workers terminate.
//
// Every filter performs a specific task, reflected by a workerTask
// function. Filter tasks may use additional data, provided as an untyped
// filterdata argument; tasks are responsible for decoding their specific
// filterdata. Errors occuring in filter tasks are sent to a
// pipeline-global error channel.

// Minimum and maximum number of concurrent workers for a filter stage.
const (
	minWorkerCount int = 3
	maxWorkerCount int = 10
)

// Maximum length of the internal buffer channel of a filter.
const maxBufferLength int = 128

// Workers are tasked with a series of workerTasks.
//
// node: input tree node
// isBuffered: was the input node taken from this stage's buffer queue?
// udata: per-stage and per-node additional data
// emit: function to emit a result node to the next stage
// buffer: function to re-schedule a node on the local buffer queue
type workerTask func(node dom.Node, isBuffered bool, udata userdata,
	emit func(dom.Node), buffer func(dom.Node, interface{})) error

// nodePackage is the type which is transported through a pipeline.
//
// nodelocal lets stages store arbitrary data together with a node on
// their buffer queue. It does not travel to the next stage.
type nodePackage struct {
	node      dom.Node    // tree node
	nodelocal interface{} // arbitrary stage-local data
}

// userdata is a container managed by the pipeline mechanism. It carries
// two kinds of data for a task: information global to a filter stage
// (filterdata) and information accompanying a single node (nodelocal).
type userdata struct {
	filterdata interface{}
	nodelocal  interface{}
}

// filter is a stage of the overall pipeline, processing input nodes and
// producing result nodes. Filters perform concurrently.
type filter struct {
	results    chan nodePackage // results of this filter stage
	queue      chan nodePackage // helper queue, if necessary
	task       workerTask       // the task this filter performs
	filterdata interface{}      // user-provided information needed to perform the task
	env        *filterenv       // connection to the outside world
}

// filterenv holds information about the outside world to be referenced
// by a filter: input workload, error destination and the counter for the
// overall work on a pipeline.
type filterenv struct {
	input        <-chan nodePackage // work to do for this filter, connected to the predecessor
	errors       chan<- error       // where errors are reported to
	queuecounter *sync.WaitGroup    // counter for the overall work load
}

// newFilter creates a new pipeline stage, i.e. a filter fed from an
// input channel (workload). The filter will put processed nodes into an
// output channel (results). Tasks needing to re-schedule nodes get a
// buffer queue of length buflen.
func newFilter(task workerTask, filterdata interface{}, buflen int) *filter {
	f := &filter{}
	if buflen > 0 {
		if buflen > maxBufferLength {
			buflen = maxBufferLength
		}
		f.queue = make(chan nodePackage, buflen)
	}
	f.task = task
	f.filterdata = filterdata
	return f
}

// start sets an environment for a filter and launches its workers.
// Returns the results channel, which is the input for the next stage.
func (f *filter) start(env *filterenv) chan nodePackage {
	f.env = env
	f.results = make(chan nodePackage, 3) // output channel has to be in place before workers start
	n := runtime.NumCPU()
	if n > maxWorkerCount {
		n = maxWorkerCount
	} else if n < minWorkerCount {
		n = minWorkerCount
	}
	for i := 0; i < n; i++ {
		wno := i + 1
		if f.queue == nil {
			go filterWorker(f, wno) // startup worker no. #wno
		} else {
			go filterWorkerWithQueue(f, wno) // startup worker no. #wno
		}
	}
	return f.results
}

// shutdown closes the filter's channels. Must only be called by the
// pipeline watchdog, after the workload counter has drained: then all
// workers are idle and no sends are in flight.
func (f *filter) shutdown() {
	close(f.results)
	if f.queue != nil {
		close(f.queue)
	}
}

// filterWorker is the default worker function for a stage without a
// buffer queue. Each worker is identified through a worker number wno.
func filterWorker(f *filter, wno int) {
	emit := func(node dom.Node) { // worker will use this to hand a result to the next stage
		f.pushResult(node)
	}
	for pkg := range f.env.input { // get workpackages until drained
		udata := userdata{filterdata: f.filterdata}
		if err := f.task(pkg.node, false, udata, emit, nil); err != nil {
			f.env.errors <- err // signal error to caller
		}
		tracer().Debugf("filter stage worker #%d finished task for %v", wno, pkg.node)
		f.env.queuecounter.Done() // worker has finished a workpackage
	}
}

// filterWorkerWithQueue is a worker function which additionally listens
// on the stage's buffer queue. The buffer queue is used by tasks to
// re-schedule nodes until they are completely processed.
func filterWorkerWithQueue(f *filter, wno int) {
	emit := func(node dom.Node) {
		f.pushResult(node)
	}
	buffer := func(node dom.Node, nodelocal interface{}) {
		f.pushBuffer(node, nodelocal)
	}
	for {
		var pkg nodePackage
		var isBuffered bool
		select { // get upstream workpackages and buffered workpackages until drained
		case pkg = <-f.env.input:
			isBuffered = false
		case pkg = <-f.queue:
			isBuffered = true
		}
		if !pkg.node.Valid() {
			break // channels are closed and drained, no more work to do
		}
		udata := userdata{filterdata: f.filterdata, nodelocal: pkg.nodelocal}
		if err := f.task(pkg.node, isBuffered, udata, emit, buffer); err != nil {
			f.env.errors <- err // signal error to caller
		}
		tracer().Debugf("filter stage worker #%d finished buffered task for %v", wno, pkg.node)
		f.env.queuecounter.Done() // worker has finished a workpackage
	}
}

// pushResult puts a node on the results channel of a filter stage
// (non-blocking). It is used by filter workers to communicate a result
// to the next stage of the pipeline.
func (f *filter) pushResult(node dom.Node) {
	f.env.queuecounter.Add(1)
	select { // try to send it synchronously without blocking
	case f.results <- nodePackage{node: node}:
	default: // nope, we'll have to go async
		go func(node dom.Node) {
			f.results <- nodePackage{node: node}
		}(node)
	}
}

// pushBuffer puts a node on the buffer queue of a filter (non-blocking).
func (f *filter) pushBuffer(node dom.Node, nodelocal interface{}) {
	f.env.queuecounter.Add(1) // overall workload increases
	pkg := nodePackage{node: node, nodelocal: nodelocal}
	select { // try to send it synchronously without blocking
	case f.queue <- pkg:
	default: // nope, we'll have to go async
		go func(pkg nodePackage) {
			f.queue <- pkg
		}(pkg)
	}
}

// pipeline is a chain of filters to perform tasks on nodes.
// Filter stages are connected by channels.
type pipeline struct {
	sync.RWMutex                  // to synchronize access to various fields
	queuecount   sync.WaitGroup   // overall count of work packages
	errors       chan error       // collector channel for error messages
	stages       []*filter        // chain of stages/filters
	input        chan nodePackage // initial workload
	results      chan nodePackage // where the final output of the pipeline goes to
	running      bool             // is this pipeline processing?
}

// newPipeline creates an empty pipeline.
func newPipeline() *pipeline {
	pipe := &pipeline{}
	pipe.errors = make(chan error, 20)
	pipe.input = make(chan nodePackage, 10)
	pipe.results = pipe.input // short-circuit, will be filled with filters
	return pipe
}

// empty is true if the pipeline has no filter stages yet.
func (pipe *pipeline) empty() bool {
	pipe.RLock()
	defer pipe.RUnlock()
	return len(pipe.stages) == 0
}

// emptyUnlocked is empty() for callers already holding the lock.
func (pipe *pipeline) emptyUnlocked() bool {
	return len(pipe.stages) == 0
}

// appendFilter appends a filter as the last stage of the pipeline.
// Connects input- and output-channels appropriately and sets an
// environment for the filter.
func (pipe *pipeline) appendFilter(f *filter) {
	tracer().Debugf("append tree filter stage")
	pipe.Lock()
	defer pipe.Unlock()
	pipe.stages = append(pipe.stages, f)
	env := &filterenv{ // now set the environment for the filter
		errors:       pipe.errors,
		queuecounter: &pipe.queuecount,
		input:        pipe.results, // current output is input to the new stage
	}
	pipe.results = f.start(env) // remember the new final output
}

// startProcessing starts a pipeline's watchdog goroutine, which waits
// for the overall number of work packages to drop to zero and then
// closes all channels, terminating the workers.
// Pre-requisite: at least one node in the front input channel.
func (pipe *pipeline) startProcessing() {
	pipe.Lock()
	defer pipe.Unlock()
	if !pipe.running {
		pipe.running = true
		go func() { // cleanup function
			pipe.queuecount.Wait() // wait for empty queues
			close(pipe.errors)
			close(pipe.input)
			pipe.RLock()
			stages := append([]*filter(nil), pipe.stages...)
			pipe.RUnlock()
			for _, f := range stages {
				f.shutdown()
			}
		}()
	}
}

// pushSync synchronously puts a node on the input channel of a pipeline.
func (pipe *pipeline) pushSync(node dom.Node) {
	pipe.queuecount.Add(1)
	pipe.input <- nodePackage{node: node} // input q is buffered
}

// waitForCompletion blocks until all work packages of a pipeline are
// done. It receives the results of the final filter stage and collects
// them into a slice of node handles. The slice is a set (no duplicates)
// and sorted by node identity, i.e. in document order.
func waitForCompletion(results <-chan nodePackage, errch <-chan error,
	counter *sync.WaitGroup) ([]dom.Node, error) {
	//
	var selection []dom.Node
	seen := make(map[dom.Node]struct{}) // suppress duplicate results
	for pkg := range results {          // drain the results channel
		if _, dup := seen[pkg.node]; !dup {
			seen[pkg.node] = struct{}{}
			selection = append(selection, pkg.node)
		}
		counter.Done() // we removed a value => count down
	}
	var lasterror error
	for err := range errch { // drain the error channel
		if err != nil {
			lasterror = err // throw away all errors but the last one
		}
	}
	sort.Slice(selection, func(i, j int) bool { // identity order is document order
		return selection[i].ID() < selection[j].ID()
	})
	return selection, lasterror
}
