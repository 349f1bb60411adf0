package dom

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestAttributesValue(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "styledom.dom")
	defer teardown()
	//
	doc := fragmentDoc(t, `<div id="main" title="greeting">hi</div>`)
	div, _ := doc.RootElement()
	v, ok := div.Attributes().Value("title")
	if !ok || v != "greeting" {
		t.Errorf("expected title attribute to be greeting, is %q", v)
	}
	if _, ok = div.Attributes().Value("lang"); ok {
		t.Errorf("expected no lang attribute, found one")
	}
}

func TestAttributesHasIdentifier(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "styledom.dom")
	defer teardown()
	//
	doc := fragmentDoc(t, `<div id="main">hi</div>`)
	div, _ := doc.RootElement()
	if !div.HasIdentifier("main") {
		t.Errorf("expected div to have identifier main, hasn't")
	}
	if div.HasIdentifier("mai") {
		t.Errorf("expected identifier match to compare full values, didn't")
	}
	txt, _ := div.FirstChild()
	if txt.HasIdentifier("main") {
		t.Errorf("expected text node to have no identifier, has one")
	}
}

func TestAttributesHasClass(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "styledom.dom")
	defer teardown()
	//
	doc := fragmentDoc(t, "<div class=\"a b\t\nc\">hi</div>")
	div, _ := doc.RootElement()
	for _, class := range []string{"a", "b", "c"} {
		if !div.HasClass(class) {
			t.Errorf("expected div to have class %s, hasn't", class)
		}
	}
	if div.HasClass("ab") {
		t.Errorf("expected class match to compare whole fields, didn't")
	}
	if div.HasClass("") {
		t.Errorf("expected empty class name not to match, did")
	}
}

func TestAttributesEachClass(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "styledom.dom")
	defer teardown()
	//
	doc := fragmentDoc(t, `<div class="  left   bright ">hi</div>`)
	div, _ := doc.RootElement()
	var classes []string
	div.EachClass(func(class string) {
		classes = append(classes, class)
	})
	if len(classes) != 2 || classes[0] != "left" || classes[1] != "bright" {
		t.Errorf("expected classes [left bright] in source order, are %v", classes)
	}
}

func TestAttributesEachAttrName(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "styledom.dom")
	defer teardown()
	//
	doc := fragmentDoc(t, `<div id="main" class="left" title="x">hi</div>`)
	div, _ := doc.RootElement()
	var names []string
	div.EachAttrName(func(name string) {
		names = append(names, name)
	})
	if len(names) != 3 {
		t.Fatalf("expected 3 attribute names, have %v", names)
	}
	if names[0] != "id" || names[1] != "class" || names[2] != "title" {
		t.Errorf("expected attribute names in list order, are %v", names)
	}
}

func TestAttributesOnNonElement(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "styledom.dom")
	defer teardown()
	//
	doc := fragmentDoc(t, `<div>hi</div>`)
	div, _ := doc.RootElement()
	txt, _ := div.FirstChild()
	if txt.HasClass("hi") {
		t.Errorf("expected text node to have no classes, has one")
	}
	called := false
	txt.EachAttrName(func(string) { called = true })
	if called {
		t.Errorf("expected text node to have no attributes, has some")
	}
}
