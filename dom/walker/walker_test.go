package walker_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/styledom/dom"
	"github.com/npillmayer/styledom/dom/walker"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func fragmentDoc(t *testing.T, h string) *dom.Document {
	ctx := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(h), ctx)
	if err != nil || len(nodes) == 0 {
		t.Fatalf("cannot parse fragment: %v", err)
	}
	return dom.FromTree(nodes[0])
}

// Test fixture: identities are assigned in document order, i.e.
// 0 = #document, 1 = div, 2 = p, 3 = "a", 4 = span, 5 = "b".
const fixture = `<div><p>a</p><span>b</span></div>`

func TestWalkerOnInvalidNode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "styledom.walker")
	defer teardown()
	//
	w := walker.NewWalker(dom.Node{})
	future := w.AllDescendents().Promise()
	nodes, err := future()
	if !errors.Is(err, walker.ErrEmptyTree) {
		t.Errorf("expected walking an invalid node to yield ErrEmptyTree, is %v", err)
	}
	if len(nodes) > 0 {
		t.Errorf("expected empty selection, have %d nodes", len(nodes))
	}
}

func TestWalkerNoFilters(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "styledom.walker")
	defer teardown()
	//
	doc := fragmentDoc(t, fixture)
	nodes, err := walker.NewWalker(doc.Root()).Promise()()
	if err != nil {
		t.Errorf("expected no error from an empty pipeline, have %v", err)
	}
	if len(nodes) > 0 {
		t.Errorf("expected empty selection from an empty pipeline, have %d", len(nodes))
	}
}

func TestWalkerAllDescendents(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "styledom.walker")
	defer teardown()
	//
	doc := fragmentDoc(t, fixture)
	nodes, err := walker.NewWalker(doc.Root()).AllDescendents().Promise()()
	if err != nil {
		t.Fatalf("expected walker to succeed, didn't: %v", err)
	}
	if len(nodes) != 5 {
		t.Fatalf("expected 5 descendents of the document root, have %d", len(nodes))
	}
	for i, n := range nodes {
		if n.ID() != dom.NodeID(i+1) {
			t.Errorf("expected selection in document order, node %d has identity %d",
				i, n.ID())
		}
	}
}

func TestWalkerDescendentsWith(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "styledom.walker")
	defer teardown()
	//
	doc := fragmentDoc(t, fixture)
	nodes, err := walker.NewWalker(doc.Root()).
		DescendentsWith(walker.NodeIsElement()).Promise()()
	if err != nil {
		t.Fatalf("expected walker to succeed, didn't: %v", err)
	}
	if len(nodes) != 3 {
		t.Fatalf("expected 3 element descendents, have %d", len(nodes))
	}
	names := []string{"div", "p", "span"}
	for i, n := range nodes {
		if n.LocalName() != names[i] {
			t.Errorf("expected element %d to be %s, is %s", i, names[i], n.LocalName())
		}
	}
}

func TestWalkerParent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "styledom.walker")
	defer teardown()
	//
	doc := fragmentDoc(t, fixture)
	div, _ := doc.RootElement()
	p, _ := div.FirstChild()
	nodes, err := walker.NewWalker(p).Parent().Promise()()
	if err != nil {
		t.Fatalf("expected walker to succeed, didn't: %v", err)
	}
	if len(nodes) != 1 || nodes[0] != div {
		t.Errorf("expected selection to be the div, is %v", nodes)
	}
}

func TestWalkerAncestorWith(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "styledom.walker")
	defer teardown()
	//
	doc := fragmentDoc(t, fixture)
	div, _ := doc.RootElement()
	p, _ := div.FirstChild()
	text, _ := p.FirstChild()
	isDiv := func(n dom.Node) (dom.Node, error) {
		if n.IsElement() && n.LocalName() == "div" {
			return n, nil
		}
		return dom.Node{}, nil
	}
	nodes, err := walker.NewWalker(text).AncestorWith(isDiv).Promise()()
	if err != nil {
		t.Fatalf("expected walker to succeed, didn't: %v", err)
	}
	if len(nodes) != 1 || nodes[0] != div {
		t.Errorf("expected ancestor selection to be the div, is %v", nodes)
	}
}

func TestWalkerFilter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "styledom.walker")
	defer teardown()
	//
	doc := fragmentDoc(t, fixture)
	nodes, err := walker.NewWalker(doc.Root()).
		AllDescendents().
		Filter(walker.NodeIsText()).Promise()()
	if err != nil {
		t.Fatalf("expected walker to succeed, didn't: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected 2 text nodes, have %d", len(nodes))
	}
	if nodes[0].Text() != "a" || nodes[1].Text() != "b" {
		t.Errorf("expected texts [a b] in document order, are %v", nodes)
	}
}

func TestWalkerTopDown(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "styledom.walker")
	defer teardown()
	//
	doc := fragmentDoc(t, fixture)
	var mx sync.Mutex
	seq := make(map[dom.NodeID]int)
	visit := func(n dom.Node, parent dom.Node, position int) (dom.Node, error) {
		mx.Lock()
		defer mx.Unlock()
		seq[n.ID()] = len(seq)
		return n, nil
	}
	nodes, err := walker.NewWalker(doc.Root()).TopDown(visit).Promise()()
	if err != nil {
		t.Fatalf("expected walker to succeed, didn't: %v", err)
	}
	if len(nodes) != doc.NodeCount() {
		t.Fatalf("expected all %d nodes to be visited, have %d", doc.NodeCount(), len(nodes))
	}
	for _, n := range nodes {
		parent, ok := n.Parent()
		if !ok {
			continue
		}
		if seq[parent.ID()] >= seq[n.ID()] {
			t.Errorf("expected parent of %v to be visited before it, wasn't", n)
		}
	}
}

func TestWalkerBottomUp(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "styledom.walker")
	defer teardown()
	//
	doc := fragmentDoc(t, fixture)
	var mx sync.Mutex
	seq := make(map[dom.NodeID]int)
	visit := func(n dom.Node, parent dom.Node, position int) (dom.Node, error) {
		mx.Lock()
		defer mx.Unlock()
		seq[n.ID()] = len(seq)
		return n, nil
	}
	nodes, err := walker.NewWalker(doc.Root()).
		DescendentsWith(walker.NodeIsLeaf()).
		BottomUp(visit).Promise()()
	if err != nil {
		t.Fatalf("expected walker to succeed, didn't: %v", err)
	}
	if len(nodes) != doc.NodeCount() {
		t.Fatalf("expected all %d nodes to be visited, have %d", doc.NodeCount(), len(nodes))
	}
	for _, n := range nodes {
		for i := 0; i < n.ChildCount(); i++ {
			ch, _ := n.Child(i)
			if seq[ch.ID()] >= seq[n.ID()] {
				t.Errorf("expected child %v to be visited before %v, wasn't", ch, n)
			}
		}
	}
}

func TestWalkerPredicateError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "styledom.walker")
	defer teardown()
	//
	doc := fragmentDoc(t, fixture)
	boom := errors.New("boom")
	failing := func(n dom.Node) (dom.Node, error) {
		return dom.Node{}, boom
	}
	_, err := walker.NewWalker(doc.Root()).DescendentsWith(failing).Promise()()
	if !errors.Is(err, boom) {
		t.Errorf("expected predicate error to surface through the promise, is %v", err)
	}
}
