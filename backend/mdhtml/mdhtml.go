/*
Package mdhtml renders parsed markdown documents as HTML.

Rendering produces a tree of golang.org/x/net/html nodes, rooted in an
<article> element. Consecutive list items are grouped into lists, the lines of
a fenced code block into a single <pre><code> element. The tree may be
serialized with Write or queried with CSS selectors:

	root := mdhtml.Render(markdown.Parse(text))
	links, err := mdhtml.Select(root, "blockquote a[href]")

CSS selectors are implemented by github.com/andybalholm/cascadia.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package mdhtml

import (
	"bytes"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/marktext/core"
	"github.com/npillmayer/marktext/input/markdown"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// tracer traces with key 'marktext.html'.
func tracer() tracing.Trace {
	return tracing.Select("marktext.html")
}

// Render creates an HTML tree for a parsed document.
func Render(doc markdown.MarkdownText) *html.Node {
	r := renderer{root: element(atom.Article)}
	for i := range doc.Elements {
		r.top(&doc.Elements[i])
	}
	r.flush()
	return r.root
}

// Write renders a parsed document and writes it as HTML to w.
func Write(w io.Writer, doc markdown.MarkdownText) error {
	if err := html.Render(w, Render(doc)); err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot write HTML")
	}
	return nil
}

// String renders a parsed document as an HTML string.
func String(doc markdown.MarkdownText) string {
	var buf bytes.Buffer
	if err := Write(&buf, doc); err != nil {
		tracer().Errorf(err.Error())
	}
	return buf.String()
}

// Select returns all nodes below root matching a CSS selector.
func Select(root *html.Node, selector string) ([]*html.Node, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "invalid CSS selector %q", selector)
	}
	nodes := sel.MatchAll(root)
	tracer().Debugf("selector %q matched %d nodes", selector, len(nodes))
	return nodes, nil
}

// InnerText returns the text between the start and end tags of a node.
func InnerText(n *html.Node) string {
	var output func(*bytes.Buffer, *html.Node)
	output = func(buf *bytes.Buffer, n *html.Node) {
		switch n.Type {
		case html.TextNode:
			buf.WriteString(n.Data)
			return
		case html.CommentNode:
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			output(buf, child)
		}
	}
	var buf bytes.Buffer
	output(&buf, n)
	return buf.String()
}

// --- Rendering -------------------------------------------------------------

// renderer keeps the state needed for grouping top-level elements: the list
// currently open, white space seen after its last item and the code block
// currently open.
type renderer struct {
	root    *html.Node
	list    *html.Node
	pending []*html.Node
	code    *html.Node
}

func (r *renderer) top(e *markdown.Element) {
	if tag := listTag(e.Kind); tag != 0 {
		if r.list == nil || r.list.DataAtom != tag {
			r.flush()
			r.list = element(tag)
			r.root.AppendChild(r.list)
		} else {
			r.pending = nil // white space between items of a list
		}
		r.list.AppendChild(listItem(e))
		return
	}
	if r.list != nil && e.Kind == markdown.Text && strings.TrimSpace(e.Text) == "" {
		r.pending = append(r.pending, text(e.Text))
		return
	}
	r.flush()
	if e.Kind == markdown.BlockCode {
		r.codeLine(e)
		return
	}
	renderElement(r.root, e)
}

// flush closes an open list.
func (r *renderer) flush() {
	for _, n := range r.pending {
		r.root.AppendChild(n)
	}
	r.pending = nil
	r.list = nil
}

func (r *renderer) codeLine(e *markdown.Element) {
	switch e.Code {
	case markdown.CodeStart, markdown.CodeSingle:
		r.code = codeBlock(r.root)
	case markdown.CodeMiddle, markdown.CodeEnd:
		if r.code == nil {
			tracer().Errorf("code line %q outside of a code block", e.Text)
			r.code = codeBlock(r.root)
		}
	}
	r.code.AppendChild(text(e.Text))
	if e.Code == markdown.CodeEnd || e.Code == markdown.CodeSingle {
		r.code = nil
	}
}

var headers = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

func renderElement(parent *html.Node, e *markdown.Element) {
	var n *html.Node
	switch e.Kind {
	case markdown.Text:
		parent.AppendChild(text(e.Text))
		return
	case markdown.UnorderedListItem, markdown.OrderedListItem:
		n = element(listTag(e.Kind))
		n.AppendChild(listItem(e))
	case markdown.Header:
		level := e.Level
		if level < 1 || level > len(headers) {
			level = 1
		}
		n = element(headers[level-1])
		n.AppendChild(text(e.Text))
	case markdown.Quote:
		n = element(atom.Blockquote)
		renderChildren(n, e)
	case markdown.Italic:
		n = element(atom.Em)
		renderChildren(n, e)
	case markdown.Bold:
		n = element(atom.Strong)
		renderChildren(n, e)
	case markdown.Strike:
		n = element(atom.Del)
		renderChildren(n, e)
	case markdown.Rule:
		n = element(atom.Hr)
	case markdown.InlineCode:
		n = element(atom.Code)
		n.AppendChild(text(e.Text))
	case markdown.Link:
		n = element(atom.A, html.Attribute{Key: "href", Val: e.URL})
		n.AppendChild(text(e.Text))
	case markdown.Image:
		attrs := []html.Attribute{{Key: "src", Val: e.URL}}
		if e.Alt != "" {
			attrs = append(attrs, html.Attribute{Key: "alt", Val: e.Alt})
		}
		if e.Text != "" {
			attrs = append(attrs, html.Attribute{Key: "title", Val: e.Text})
		}
		n = element(atom.Img, attrs...)
	case markdown.BlockCode:
		codeBlock(parent).AppendChild(text(e.Text))
		return
	default:
		tracer().Errorf("cannot render element of kind %s", e.Kind)
		return
	}
	parent.AppendChild(n)
}

func renderChildren(n *html.Node, e *markdown.Element) {
	if len(e.Children) == 0 {
		n.AppendChild(text(e.Text))
		return
	}
	for i := range e.Children {
		renderElement(n, &e.Children[i])
	}
}

func listTag(k markdown.Kind) atom.Atom {
	switch k {
	case markdown.UnorderedListItem:
		return atom.Ul
	case markdown.OrderedListItem:
		return atom.Ol
	}
	return 0
}

func listItem(e *markdown.Element) *html.Node {
	var li *html.Node
	if e.Kind == markdown.OrderedListItem {
		li = element(atom.Li, html.Attribute{Key: "value", Val: strings.TrimSuffix(e.Order, ".")})
	} else {
		li = element(atom.Li)
	}
	renderChildren(li, e)
	return li
}

// codeBlock appends <pre><code></code></pre> to parent and returns the code node.
func codeBlock(parent *html.Node) *html.Node {
	pre := element(atom.Pre)
	code := element(atom.Code)
	pre.AppendChild(code)
	parent.AppendChild(pre)
	return code
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
