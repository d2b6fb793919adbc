/*
Package xpathadapter implements an xpath.NodeNavigator for parsed markdown.

We use this library for XPath queries:

	github.com/antchfx/xpath

The document is the root node. Every element of the document tree is an
element node named after its kind ("text", "ul", "header", "quote", "italic",
"bold", "strike", "rule", "code", "link", "ol", "blockcode", "image"). Element
fields are available as attributes:

	level   header level
	url     link and image target
	order   ordinal label of an ordered list item
	alt     image alt text
	pos     position of a line within a fenced code block

The value of an element is its plain text. Example:

	elems, err := xpathadapter.Select(doc, "//quote/bold[italic]")

For a description of the various methods of interface xpath.NodeNavigator
please refer to the documentation of antchfx/xpath. It is not replicated here.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package xpathadapter

import (
	"errors"
	"strconv"

	"github.com/antchfx/xpath"
	"github.com/npillmayer/marktext/core"
	"github.com/npillmayer/marktext/input/markdown"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'marktext.markdown'.
func tracer() tracing.Trace {
	return tracing.Select("marktext.markdown")
}

// Elements do not link to their parents, so the navigator keeps the path from
// the root to the current element.
type frame struct {
	siblings []markdown.Element
	index    int
}

type attribute struct {
	key, value string
}

// NodeNavigator navigates the element tree of a markdown document.
type NodeNavigator struct {
	doc   *markdown.MarkdownText
	path  []frame // empty for the root node
	attrs []attribute
	attr  int // attributes index
}

// NewNavigator creates a new xpath.NodeNavigator for a parsed document.
func NewNavigator(doc *markdown.MarkdownText) *NodeNavigator {
	return &NodeNavigator{
		doc:  doc,
		attr: -1,
	}
}

// CurrentElement returns the element a navigator is positioned on, or nil
// for the document node.
func CurrentElement(nav xpath.NodeNavigator) (*markdown.Element, error) {
	mynav, ok := nav.(*NodeNavigator)
	if !ok {
		return nil, errors.New("navigator is not of type xpathadapter.NodeNavigator")
	}
	return mynav.current(), nil
}

// Select returns all elements of a document matching an XPath expression.
// Nodes which are not elements, e.g. attributes, are skipped.
func Select(doc *markdown.MarkdownText, expr string) ([]*markdown.Element, error) {
	x, err := xpath.Compile(expr)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "invalid XPath expression %q", expr)
	}
	var elems []*markdown.Element
	it := x.Select(NewNavigator(doc))
	for it.MoveNext() {
		nav := it.Current()
		if nav.NodeType() != xpath.ElementNode {
			continue
		}
		if e, _ := CurrentElement(nav); e != nil {
			elems = append(elems, e)
		}
	}
	tracer().Debugf("XPath %q selected %d elements", expr, len(elems))
	return elems, nil
}

func (nav *NodeNavigator) current() *markdown.Element {
	if len(nav.path) == 0 {
		return nil
	}
	top := nav.path[len(nav.path)-1]
	return &top.siblings[top.index]
}

func (nav *NodeNavigator) top() *frame {
	return &nav.path[len(nav.path)-1]
}

func (nav *NodeNavigator) NodeType() xpath.NodeType {
	if len(nav.path) == 0 {
		return xpath.RootNode
	}
	if nav.attr != -1 {
		return xpath.AttributeNode
	}
	return xpath.ElementNode
}

func (nav *NodeNavigator) LocalName() string {
	if nav.attr != -1 {
		return nav.attrs[nav.attr].key
	}
	if e := nav.current(); e != nil {
		return e.Kind.String()
	}
	return ""
}

func (*NodeNavigator) Prefix() string {
	return ""
}

func (nav *NodeNavigator) Value() string {
	if nav.attr != -1 {
		return nav.attrs[nav.attr].value
	}
	if e := nav.current(); e != nil {
		return e.Plain()
	}
	return nav.doc.Plain()
}

func (nav *NodeNavigator) Copy() xpath.NodeNavigator {
	n := *nav
	n.path = append([]frame(nil), nav.path...)
	return &n
}

func (nav *NodeNavigator) MoveToRoot() {
	nav.path = nav.path[:0]
	nav.attr = -1
}

func (nav *NodeNavigator) MoveToParent() bool {
	if nav.attr != -1 {
		nav.attr = -1 // move from attributes to element
		return true
	}
	if len(nav.path) == 0 {
		return false
	}
	nav.path = nav.path[:len(nav.path)-1]
	return true
}

func (nav *NodeNavigator) MoveToNextAttribute() bool {
	if nav.attr == -1 {
		e := nav.current()
		if e == nil {
			return false
		}
		nav.attrs = attributes(e)
	}
	if nav.attr >= len(nav.attrs)-1 {
		return false
	}
	nav.attr++
	return true
}

func (nav *NodeNavigator) MoveToChild() bool {
	if nav.attr != -1 {
		return false
	}
	children := nav.doc.Elements
	if e := nav.current(); e != nil {
		children = e.Children
	}
	if len(children) == 0 {
		return false
	}
	nav.path = append(nav.path, frame{siblings: children})
	return true
}

func (nav *NodeNavigator) MoveToFirst() bool {
	if nav.attr != -1 || len(nav.path) == 0 || nav.top().index == 0 {
		return false
	}
	nav.top().index = 0
	return true
}

func (nav *NodeNavigator) String() string {
	return nav.Value()
}

func (nav *NodeNavigator) MoveToNext() bool {
	if nav.attr != -1 || len(nav.path) == 0 {
		return false
	}
	top := nav.top()
	if top.index+1 >= len(top.siblings) { // was last child of parent
		return false
	}
	top.index++
	return true
}

func (nav *NodeNavigator) MoveToPrevious() bool {
	if nav.attr != -1 || len(nav.path) == 0 {
		return false
	}
	top := nav.top()
	if top.index == 0 {
		return false
	}
	top.index--
	return true
}

func (nav *NodeNavigator) MoveTo(other xpath.NodeNavigator) bool {
	n, ok := other.(*NodeNavigator)
	if !ok || n.doc != nav.doc {
		return false
	}
	nav.path = append([]frame(nil), n.path...)
	nav.attrs = n.attrs
	nav.attr = n.attr
	return true
}

var _ xpath.NodeNavigator = &NodeNavigator{}

// attributes lists the fields of an element which are set.
func attributes(e *markdown.Element) []attribute {
	var attrs []attribute
	switch e.Kind {
	case markdown.Header:
		attrs = append(attrs, attribute{"level", strconv.Itoa(e.Level)})
	case markdown.Link:
		attrs = append(attrs, attribute{"url", e.URL})
	case markdown.OrderedListItem:
		attrs = append(attrs, attribute{"order", e.Order})
	case markdown.Image:
		attrs = append(attrs, attribute{"url", e.URL})
		if e.Alt != "" {
			attrs = append(attrs, attribute{"alt", e.Alt})
		}
	case markdown.BlockCode:
		attrs = append(attrs, attribute{"pos", e.Code.String()})
	}
	return attrs
}
