package markdown

import (
	"strings"
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestGrammarPriority(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marktext.markdown")
	defer teardown()
	//
	g := NewGrammar()
	for i, x := range []struct {
		text string
		kind Kind
		span string
	}{
		{"**bold**", Bold, "**bold**"},
		{"*it*", Italic, "*it*"},
		{"__bold__", Bold, "__bold__"},
		{"~~gone~~", Strike, "~~gone~~"},
		{"* *x*", UnorderedListItem, "* *x*"},
		{"***", Rule, "***"},
		{"---", Rule, "---"},
		{"-+-", Text, ""},
		{"# head", Header, "# head"},
		{"####### x", Text, ""},
		{"> quoted", Quote, "> quoted"},
		{"x `code` y", InlineCode, "`code`"},
		{"x ` code` y", Text, ""},
		{"[a](b)", Link, "[a](b)"},
		{"![a](b)", Image, "![a](b)"},
		{"1. one", OrderedListItem, "1. one"},
		{"```go\nfmt```", BlockCode, "```go\nfmt```"},
		{"``` go```", Text, ""},
		{"a *b\nc* d", Text, ""},
		{"![a](b) c](d)", Image, "![a](b) c](d)"},
		{"![a](b) ]() x", Image, "![a](b)"},
		{"![a](b\n)", Text, ""},
		{"`a\n`b`", InlineCode, "`b`"},
		{"[a](b [c](d)", Link, "[a](b [c](d)"},
		{"[a](b\n[c](d)", Link, "[c](d)"},
	} {
		m, ok := g.Find(x.text, 0)
		if x.kind == Text {
			assert.False(t, ok, "#%d: no match expected for %q, got %v", i, x.text, m.Category)
			continue
		}
		if assert.True(t, ok, "#%d: expected match for %q", i, x.text) {
			assert.Equal(t, x.kind, m.Category, "#%d: %q", i, x.text)
			assert.Equal(t, x.span, x.text[m.Start:m.End], "#%d", i)
		}
	}
}

func TestGrammarLeftmost(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marktext.markdown")
	defer teardown()
	//
	g := NewGrammar()
	text := "a [link](u) and *it* then **b**"
	matches := g.FindAll(text)
	if assert.Len(t, matches, 3) {
		assert.Equal(t, Link, matches[0].Category)
		assert.Equal(t, Italic, matches[1].Category)
		assert.Equal(t, Bold, matches[2].Category)
		assert.Equal(t, "**b**", text[matches[2].Start:matches[2].End])
	}
	m, ok := g.Find(text, 12)
	assert.True(t, ok)
	assert.Equal(t, Italic, m.Category)
	assert.Equal(t, 16, m.Start)
}

func TestGrammarLineAnchors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marktext.markdown")
	defer teardown()
	//
	g := NewGrammar()
	text := "x - no item\n- item"
	m, ok := g.Find(text, 1)
	assert.True(t, ok)
	assert.Equal(t, UnorderedListItem, m.Category)
	assert.Equal(t, 12, m.Start)
	// a header marker in the middle of a line is not a header
	_, ok = g.Find("text # no header", 0)
	assert.False(t, ok)
}

func TestFieldExtraction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marktext.markdown")
	defer teardown()
	//
	g := NewGrammar()
	img, ok := g.image(`![logo](img.png "The Logo")`)
	assert.True(t, ok)
	assert.Equal(t, "logo", img.alt)
	assert.Equal(t, "img.png", img.url)
	assert.Equal(t, "The Logo", img.title)
	img, ok = g.image(`![  ](a.png)`)
	assert.True(t, ok)
	assert.Equal(t, "", img.alt)
	assert.Equal(t, -1, img.titleStart)
	ol, ok := g.ordered("12. Buy milk")
	assert.True(t, ok)
	assert.Equal(t, "12.", ol.order)
	assert.Equal(t, "Buy milk", ol.title)
	_, ok = g.link("](x)")
	assert.False(t, ok)
	assert.Equal(t, 3, headerLevel("### x"))
}

func TestUnclosedLinesScanInLinearTime(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marktext.markdown")
	defer teardown()
	//
	for _, unit := range []string{"![a](", "`a ", "[a](b ", "*a ", "__a ", "~~a "} {
		text := strings.Repeat(unit, 20000)
		start := time.Now()
		plain := Clear(text)
		elapsed := time.Since(start)
		assert.Less(t, elapsed, 2*time.Second, "clearing %q×20000 took %s", unit, elapsed)
		if strings.IndexAny(unit, "*_~") < 0 {
			assert.Equal(t, text, plain, "%q×20000 must stay literal", unit)
		}
	}
}
