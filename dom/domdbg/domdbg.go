/*
Package domdbg implements helpers to debug an arena-backed document tree.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>


*/
package domdbg

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"os/exec"
	"strings"
	"testing"
	"text/template"

	"github.com/npillmayer/styledom/dom"
	"github.com/npillmayer/styledom/dom/style"
	tp "github.com/xlab/treeprint"
)

// Text writes an indented text representation of a document tree to w.
// Elements are labelled with their local name, id and classes, text
// nodes with a shortened version of their content.
func Text(w io.Writer, doc *dom.Document) error {
	if doc == nil {
		return nil
	}
	printer := tp.New()
	printer.SetValue(label(doc.Root()))
	branch(doc.Root(), printer)
	_, err := io.WriteString(w, printer.String())
	return err
}

func branch(n dom.Node, printer tp.Tree) {
	for i := 0; i < n.ChildCount(); i++ {
		ch, _ := n.Child(i)
		branch(ch, printer.AddBranch(label(ch)))
	}
}

// label produces a node description in the manner of CSS selectors,
// e.g. "div#main.left.bright".
func label(n dom.Node) string {
	switch {
	case !n.Valid():
		return "(none)"
	case n.IsDocumentRoot():
		return "#document"
	case n.IsText():
		return "#text " + shortText(n)
	case n.IsElement():
		l := n.LocalName()
		if id, ok := n.Attributes().Value("id"); ok && id != "" {
			l += "#" + id
		}
		n.EachClass(func(class string) {
			l += "." + class
		})
		return l
	}
	return n.String()
}

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname       string
	StyleGroups    []string
	NodeTmpl       *template.Template
	EdgeTmpl       *template.Template
	StylegroupTmpl *template.Template
	PgedgeTmpl     *template.Template
}

var defaultGroups = []string{
	style.PGMargins,
	style.PGPadding,
	style.PGBorder,
	style.PGDisplay,
}

// ToGraphViz outputs a diagram for a document tree. The diagram is in
// GraphViz (DOT) format. Clients have to provide the document, a Writer,
// and an optional list of style parameter groups. The diagram will
// include all styles belonging to one of the parameter groups, for
// nodes which carry style data and are not currently write-locked.
//
// If the client does not provide a list of style groups, the following
// default will be used:
//
//     - Margins
//     - Padding
//     - Border
//     - Display
//
func ToGraphViz(doc *dom.Document, w io.Writer, styleGroups []string) {
	tmpl, err := template.New("dom").Parse(graphHeadTmpl)
	if err != nil {
		panic(err)
	}
	gparams := graphParamsType{Fontname: "Helvetica"}
	gparams.NodeTmpl, _ = template.New("domnode").Funcs(
		template.FuncMap{
			"shortstring": shortText,
			"label":       label,
		}).Parse(domNodeTmpl)
	gparams.EdgeTmpl = template.Must(template.New("domedge").Parse(domEdgeTmpl))
	gparams.StylegroupTmpl = template.Must(template.New("stylegroup").Parse(styleGroupTmpl))
	gparams.PgedgeTmpl = template.Must(template.New("pgedge").Parse(pgEdgeTmpl))
	gparams.StyleGroups = styleGroups
	if styleGroups == nil {
		gparams.StyleGroups = defaultGroups
	}
	err = tmpl.Execute(w, gparams)
	if err != nil {
		panic(err)
	}
	nodes(doc.Root(), w, &gparams)
	w.Write([]byte("}\n"))
}

// Dotty is a helper for testing. Given a document and a testing.T, it
// will create a GraphViz image of the document tree and write it to a
// file in the current folder, choosing a unique file name.
// The image is in SVG format.
//
// If an error occurs, t.Error(…) will be set, causing the test to fail.
//
func Dotty(doc *dom.Document, t *testing.T) {
	tmpfile, err := ioutil.TempFile(".", "dom.*.dot")
	if err != nil {
		t.Error(err)
		return
	}
	defer func() {
		tmpfile.Close()
		os.Remove(tmpfile.Name()) // clean up
	}()
	t.Logf("writing document digraph to %s\n", tmpfile.Name())
	ToGraphViz(doc, tmpfile, nil)
	outOption := fmt.Sprintf("-o%s.svg", tmpfile.Name())
	cmd := exec.Command("dot", "-Tsvg", outOption, tmpfile.Name())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	t.Log("writing document tree image\n")
	if err := cmd.Run(); err != nil {
		t.Error(err.Error())
	}
}

type node struct {
	N    dom.Node
	Name string
}

// graphName gives GraphViz identifiers for tree nodes. Identities are
// dense, so the identity by itself makes a unique name.
func graphName(n dom.Node) string {
	return fmt.Sprintf("node%05d", n.ID())
}

func nodes(n dom.Node, w io.Writer, gparams *graphParamsType) {
	domNode(n, w, gparams)
	for i := 0; i < n.ChildCount(); i++ {
		ch, _ := n.Child(i)
		nodes(ch, w, gparams)
		domEdge(n, ch, w, gparams)
	}
}

func domNode(n dom.Node, w io.Writer, gparams *graphParamsType) {
	if err := gparams.NodeTmpl.Execute(w, &node{n, graphName(n)}); err != nil {
		panic(err)
	}
	domStyles(n, w, gparams)
}

// domStyles dumps the style property groups attached to a node, if any.
// Style data is read through a non-blocking borrow: a node currently
// write-locked by a styling worker is silently skipped.
func domStyles(n dom.Node, w io.Writer, gparams *graphParamsType) {
	data, release, ok := n.BorrowData()
	if !ok {
		return
	}
	defer release()
	if data.Styles == nil {
		return
	}
	for _, s := range gparams.StyleGroups {
		pg := data.Styles.Group(s)
		if pg == nil {
			continue
		}
		if err := gparams.StylegroupTmpl.Execute(w, pg); err != nil {
			panic(err)
		}
		pgEdge(n, pg, w, gparams)
	}
}

type edge struct {
	N1, N2 node
}

func domEdge(n1 dom.Node, n2 dom.Node, w io.Writer, gparams *graphParamsType) {
	e := edge{node{n1, graphName(n1)}, node{n2, graphName(n2)}}
	if err := gparams.EdgeTmpl.Execute(w, e); err != nil {
		panic(err)
	}
}

type pgedge struct {
	Name      string
	PropGroup *style.PropertyGroup
}

func pgEdge(n dom.Node, pg *style.PropertyGroup, w io.Writer, gparams *graphParamsType) {
	name := graphName(n)
	if err := gparams.PgedgeTmpl.Execute(w, pgedge{name, pg}); err != nil {
		panic(err)
	}
}

func shortText(n dom.Node) string {
	txt := n.Text()
	s := "\"\\\""
	if len(txt) > 10 {
		s += txt[:10] + "...\\\"\""
	} else {
		s += txt + "\\\"\""
	}
	s = strings.Replace(s, "\n", `\\n`, -1)
	s = strings.Replace(s, "\t", `\\t`, -1)
	s = strings.Replace(s, " ", "␣", -1)
	return s
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [{{ .Fontname }} = "helvetica" fontsize=14] ;
   node [fontname = "{{ .Fontname }}" fontsize=14] ;
   edge [fontname = "{{ .Fontname }}" fontsize=14] ;
`

const domNodeTmpl = `{{ if .N.IsText }}
{{ .Name }}	[ label={{ shortstring .N }} shape=box style=filled fillcolor=grey95 fontname="Courier" fontsize=11.0 ] ;
{{ else }}
{{ .Name }}	[ label={{ printf "%q" (label .N) }} shape=ellipse style=filled fillcolor=lightblue3 ] ;
{{ end }}
`

const styleGroupTmpl = `{{ printf "pg%p" . }} [ style="filled" penwidth=1 fillcolor="ivory3" shape="Mrecord" fontsize=12
    label=<<table border="0" cellborder="0" cellpadding="2" cellspacing="0" bgcolor="ivory3">
      <tr><td bgcolor="azure4" align="center" colspan="2"><font color="white">{{ .Name }}</font></td></tr>
      {{ range .Properties }}
      <tr><td align="right">{{ .Key }}:</td><td>{{ .Value }}</td></tr>
      {{ else }}
      <tr><td colspan="2">no styles</td></tr>
      {{ end }}
    </table>> ] ;
`

const domEdgeTmpl = `{{ .N1.Name }} -> {{ .N2.Name }} [weight=1] ;
`

const pgEdgeTmpl = `{{ .Name }} -> {{ printf "pg%p" .PropGroup }} [dir=none weight=1 style="dashed"] ;
`
