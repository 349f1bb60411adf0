package domdbg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/styledom/dom"
	"github.com/npillmayer/styledom/dom/style"
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

func TestTextDump(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "styledom.dom")
	defer teardown()
	//
	doc := fragmentDoc(t, `<div id="main" class="left bright"><p>hello</p></div>`)
	var buf bytes.Buffer
	if err := Text(&buf, doc); err != nil {
		t.Fatalf("cannot dump document: %v", err)
	}
	out := buf.String()
	t.Logf("\n%s", out)
	if !strings.Contains(out, "#document") {
		t.Errorf("expected dump to contain the document root, doesn't")
	}
	if !strings.Contains(out, "div#main.left.bright") {
		t.Errorf("expected dump to contain div#main.left.bright, doesn't")
	}
	if !strings.Contains(out, "#text") {
		t.Errorf("expected dump to contain a text node, doesn't")
	}
}

func TestGraphVizDump(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "styledom.dom")
	defer teardown()
	//
	doc := fragmentDoc(t, `<div><p>hello</p></div>`)
	div, _ := doc.RootElement()
	data, release, ok := div.MutateData()
	if !ok {
		t.Fatalf("cannot borrow style slot")
	}
	pmap := style.NewPropertyMap()
	pmap.Add("margin-top", "10px")
	data.Styles = pmap
	release()
	var buf bytes.Buffer
	ToGraphViz(doc, &buf, nil)
	out := buf.String()
	if !strings.HasPrefix(out, "digraph") {
		t.Errorf("expected DOT output to start with digraph, doesn't")
	}
	if !strings.Contains(out, "margin-top") {
		t.Errorf("expected DOT output to include the margin-top style, doesn't")
	}
	if !strings.Contains(out, "->") {
		t.Errorf("expected DOT output to contain edges, doesn't")
	}
}
