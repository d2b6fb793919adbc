package markdown

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestParseEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marktext.markdown")
	defer teardown()
	//
	doc := Parse("")
	assert.True(t, doc.IsEmpty())
	assert.Equal(t, "", Clear(""))
}

func TestParseHeader(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marktext.markdown")
	defer teardown()
	//
	doc := Parse("### Title")
	want := []Element{{Kind: Header, Level: 3, Text: "Title", Open: "### "}}
	if diff := cmp.Diff(want, doc.Elements); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
	doc = Parse("####### x")
	want = []Element{{Kind: Text, Text: "####### x"}}
	if diff := cmp.Diff(want, doc.Elements); diff != "" {
		t.Errorf("7 hashes must not be a header (-want +got):\n%s", diff)
	}
}

func TestParseOrderedListItem(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marktext.markdown")
	defer teardown()
	//
	doc := Parse("12. Buy milk")
	want := []Element{{
		Kind:     OrderedListItem,
		Order:    "12.",
		Text:     "Buy milk",
		Children: []Element{{Kind: Text, Text: "Buy milk"}},
		Open:     "12. ",
	}}
	if diff := cmp.Diff(want, doc.Elements); diff != "" {
		t.Errorf("ordered list item mismatch (-want +got):\n%s", diff)
	}
	doc = Parse("3. *very* important")
	ol := doc.Elements[0]
	assert.Equal(t, "3.", ol.Order)
	if assert.Len(t, ol.Children, 2) {
		assert.Equal(t, Italic, ol.Children[0].Kind)
		assert.Equal(t, "very", ol.Children[0].Text)
	}
}

func TestParseNested(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marktext.markdown")
	defer teardown()
	//
	doc := Parse("**_bold italic_**")
	if !assert.Len(t, doc.Elements, 1) {
		t.FailNow()
	}
	bold := doc.Elements[0]
	assert.Equal(t, Bold, bold.Kind)
	if assert.Len(t, bold.Children, 1) {
		assert.Equal(t, Italic, bold.Children[0].Kind)
		assert.Equal(t, "bold italic", bold.Children[0].Text)
	}
	//
	doc = Parse("> a *famous* quote")
	want := []Element{{
		Kind: Quote,
		Text: "a *famous* quote",
		Children: []Element{
			{Kind: Text, Text: "a "},
			{Kind: Italic, Text: "famous", Children: []Element{{Kind: Text, Text: "famous"}}, Open: "*", Close: "*"},
			{Kind: Text, Text: " quote"},
		},
		Open: "> ",
	}}
	if diff := cmp.Diff(want, doc.Elements); diff != "" {
		t.Errorf("quote mismatch (-want +got):\n%s", diff)
	}
}

func TestParseList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marktext.markdown")
	defer teardown()
	//
	doc := Parse("- item *one*\n- two")
	kinds := []Kind{}
	for _, e := range doc.Elements {
		kinds = append(kinds, e.Kind)
	}
	assert.Equal(t, []Kind{UnorderedListItem, Text, UnorderedListItem}, kinds)
	assert.Equal(t, "item *one*", doc.Elements[0].Text)
	assert.Equal(t, "\n", doc.Elements[1].Text)
	assert.Equal(t, "two", doc.Elements[2].Text)
}

func TestParseLinkAndImage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marktext.markdown")
	defer teardown()
	//
	doc := Parse("see [docs](http://x.org) now")
	want := []Element{
		{Kind: Text, Text: "see "},
		{Kind: Link, Text: "docs", URL: "http://x.org", Open: "[", Close: "](http://x.org)"},
		{Kind: Text, Text: " now"},
	}
	if diff := cmp.Diff(want, doc.Elements); diff != "" {
		t.Errorf("link mismatch (-want +got):\n%s", diff)
	}
	doc = Parse(`![logo](img.png "The Logo")`)
	want = []Element{{
		Kind:  Image,
		Text:  "The Logo",
		URL:   "img.png",
		Alt:   "logo",
		Open:  `![logo](img.png "`,
		Close: `")`,
	}}
	if diff := cmp.Diff(want, doc.Elements); diff != "" {
		t.Errorf("image mismatch (-want +got):\n%s", diff)
	}
	doc = Parse("![ ](a.png)")
	if assert.Len(t, doc.Elements, 1) {
		img := doc.Elements[0]
		assert.Equal(t, Image, img.Kind)
		assert.Equal(t, "", img.Alt)
		assert.Equal(t, "a.png", img.URL)
		assert.Equal(t, "", img.Plain())
	}
}

func TestParseFencedCode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marktext.markdown")
	defer teardown()
	//
	doc := Parse("```*a* `b`\nline **2**```")
	want := []Element{
		{Kind: BlockCode, Code: CodeStart, Text: "*a* `b`\n", Open: "```"},
		{Kind: BlockCode, Code: CodeEnd, Text: "line **2**", Close: "```"},
	}
	if diff := cmp.Diff(want, doc.Elements); diff != "" {
		t.Errorf("fenced code must not be parsed further (-want +got):\n%s", diff)
	}
	doc = Parse("x ```go fmt.Println()``` y")
	if assert.Len(t, doc.Elements, 3) {
		assert.Equal(t, CodeSingle, doc.Elements[1].Code)
		assert.Equal(t, "go fmt.Println()", doc.Elements[1].Text)
	}
	doc = Parse("```a\nb\nc\n```")
	if assert.Len(t, doc.Elements, 3) {
		assert.Equal(t, CodeMiddle, doc.Elements[1].Code)
		assert.Equal(t, "c\n", doc.Elements[2].Text)
	}
}

func TestParseRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marktext.markdown")
	defer teardown()
	//
	doc := Parse("a\n---\nb")
	if assert.Len(t, doc.Elements, 3) {
		assert.Equal(t, Rule, doc.Elements[1].Kind)
		assert.Equal(t, " ", doc.Elements[1].Text)
		assert.Equal(t, "---", doc.Elements[1].Markup())
	}
	assert.Equal(t, "a\n \nb", doc.Plain())
}

func TestParseDegradesBrokenFields(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marktext.markdown")
	defer teardown()
	//
	doc := Parse("](x)")
	want := []Element{{Kind: Text, Text: "](x)"}}
	if diff := cmp.Diff(want, doc.Elements); diff != "" {
		t.Errorf("degraded link mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "](x)", Clear("](x)"))
}

var roundTrip = []string{
	"",
	"plain text only",
	"### Title",
	"####### x",
	"12. Buy milk",
	"**_bold italic_**",
	"> a *famous* quote",
	"- item *one*\n- two\n+ three ~~four~~",
	"a\n---\nb\n***\n___",
	"see [docs](http://x.org) now, [[x](y) or ](z)",
	"![logo](img.png \"The Logo\") and ![](bare.png)",
	"```go\nfunc main() {\n\t*p = `x`\n}\n```",
	"*unclosed and **also ~~unclosed",
	"`code` and ` not code` and ``double``",
	"1. first\n2. **second**\n\n> quote with [link](u)\n# Header *not parsed*",
	"emoji ✨ *unicode ünïcödé* text",
	"[](x) ![a](b)",
	"x\n\n\n",
}

func TestMarkupRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "marktext.markdown")
	defer teardown()
	//
	for i, x := range roundTrip {
		doc := Parse(x)
		assert.Equal(t, x, doc.Markup(), "#%d: markup of parse tree must reproduce input", i)
		for _, e := range doc.Elements {
			checkContainer(t, e)
		}
	}
}

// checkContainer asserts that the children of an element are a parse of its text.
func checkContainer(t *testing.T, e Element) {
	if !e.Kind.IsContainer() {
		assert.Empty(t, e.Children, "%s must not have children", e.Kind)
		return
	}
	markup := ""
	for _, c := range e.Children {
		markup += c.Markup()
		checkContainer(t, c)
	}
	assert.Equal(t, e.Text, markup, "children of %v must cover its text", e)
}
