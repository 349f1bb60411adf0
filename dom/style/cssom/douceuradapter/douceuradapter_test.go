package douceuradapter

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const miniCSS = `
p {
    margin-top: 10px;
    color: red !important;
}
`

func TestParseStylesheet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "styledom.style")
	defer teardown()
	//
	sheet, err := Parse(miniCSS)
	require.NoError(t, err, "cannot parse CSS")
	require.False(t, sheet.Empty(), "expected stylesheet to contain rules")
	rules := sheet.Rules()
	require.Len(t, rules, 1, "expected a single rule")
	rule := rules[0]
	require.Equal(t, "p", strings.TrimSpace(rule.Selector()))
	props := rule.Properties()
	require.Len(t, props, 2, "expected 2 declarations")
	require.EqualValues(t, "10px", rule.Value("margin-top"))
	require.False(t, rule.IsImportant("margin-top"))
	require.True(t, rule.IsImportant("color"))
	require.EqualValues(t, "", rule.Value("padding-top"),
		"expected unknown key to map to the null style")
}

func TestAppendRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "styledom.style")
	defer teardown()
	//
	sheet, err := Parse(`p { color: red; }`)
	require.NoError(t, err)
	other, err := Parse(`b { font-weight: bold; }`)
	require.NoError(t, err)
	sheet.AppendRules(other)
	require.Len(t, sheet.Rules(), 2, "expected rules of both sheets")
}

func TestExtractStyleElements(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "styledom.style")
	defer teardown()
	//
	const page = `<html><head>
<style>p { margin-top: 10px; }</style>
</head><body>
<style>b { color: blue; }</style>
<p>hello <b>world</b></p>
</body></html>`
	h, err := html.Parse(strings.NewReader(page))
	require.NoError(t, err, "cannot parse HTML")
	sheets := ExtractStyleElements(h)
	require.Len(t, sheets, 2, "expected one sheet from head and one from body")
	require.Len(t, sheets[0].Rules(), 1)
	require.EqualValues(t, "10px", sheets[0].Rules()[0].Value("margin-top"))
}
