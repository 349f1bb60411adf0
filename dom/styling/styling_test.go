package styling_test

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/styledom/dom"
	"github.com/npillmayer/styledom/dom/style"
	"github.com/npillmayer/styledom/dom/style/cssom/douceuradapter"
	"github.com/npillmayer/styledom/dom/styling"
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

// toyResolve is a miniature style resolution algorithm, written purely
// against the capability set: it matches rules by tag name only and
// deposits the computed styles in the nodes' style slots.
func toyResolve(ctx *styling.Context, n dom.Node) error {
	if n.IsElement() {
		pmap := style.NewPropertyMap()
		for _, rule := range ctx.Author.Rules() {
			if strings.TrimSpace(rule.Selector()) != n.LocalName() {
				continue
			}
			for _, key := range rule.Properties() {
				pmap.Add(key, rule.Value(key))
			}
		}
		if pmap.Size() > 0 {
			data, release, ok := n.MutateData()
			if !ok {
				return nil // slot busy, a real resolver would re-schedule
			}
			data.Styles = pmap
			release()
			n.SetHasStyleData()
		}
	}
	it := n.TraversalChildren()
	for ch, ok := it.Next(); ok; ch, ok = it.Next() {
		if err := toyResolve(ctx, ch); err != nil {
			return err
		}
	}
	return nil
}

var _ styling.ResolveFunc[dom.Node] = toyResolve

func TestResolveAgainstCapabilitySet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "styledom.dom")
	defer teardown()
	//
	doc := fragmentDoc(t, `<div class="content"><p>hello</p><span>world</span></div>`)
	sheet, err := douceuradapter.Parse(`p { margin-top: 10px; color: red; }`)
	if err != nil {
		t.Fatalf("cannot parse CSS: %v", err)
	}
	ctx := &styling.Context{Author: sheet}
	if err = toyResolve(ctx, doc.Root()); err != nil {
		t.Fatalf("expected resolver to succeed, didn't: %v", err)
	}
	div, _ := doc.RootElement()
	p, _ := div.FirstChild()
	if !p.HasStyleData() {
		t.Fatalf("expected p to carry style data, doesn't")
	}
	if div.HasStyleData() {
		t.Errorf("expected div to carry no style data, does")
	}
	data, release, ok := p.BorrowData()
	if !ok {
		t.Fatalf("expected read borrow on p's slot, refused")
	}
	defer release()
	if v, _ := data.Styles.Property("margin-top"); v != "10px" {
		t.Errorf("expected computed margin-top to be 10px, is %v", v)
	}
	if v := data.Styles.GetPropertyValue("color"); v != "red" {
		t.Errorf("expected computed color to be red, is %v", v)
	}
}
