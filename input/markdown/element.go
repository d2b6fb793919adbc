package markdown

import (
	"fmt"
	"strings"
)

// Kind tags the variants of Element.
type Kind int8

// Element kinds. The order of the constants is not the priority of the
// grammar; see NewGrammar for that.
const (
	Text Kind = iota
	UnorderedListItem
	Header
	Quote
	Italic
	Bold
	Strike
	Rule
	InlineCode
	Link
	OrderedListItem
	BlockCode
	Image
)

var kindNames = [...]string{
	"text", "ul", "header", "quote", "italic", "bold", "strike",
	"rule", "code", "link", "ol", "blockcode", "image",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", k)
	}
	return kindNames[k]
}

// KindFromString is the inverse of Kind.String.
func KindFromString(s string) (Kind, bool) {
	for i, n := range kindNames {
		if n == s {
			return Kind(i), true
		}
	}
	return Text, false
}

// IsContainer is true for kinds whose body is parsed recursively.
func (k Kind) IsContainer() bool {
	switch k {
	case UnorderedListItem, Quote, Italic, Bold, Strike, OrderedListItem:
		return true
	}
	return false
}

// CodePosition tells where a line of block code sits within its fenced block.
type CodePosition int8

const (
	NoCode     CodePosition = iota
	CodeStart               // first line of a multi-line block
	CodeMiddle              // inner line
	CodeEnd                 // last line
	CodeSingle              // block consisting of a single line
)

func (p CodePosition) String() string {
	switch p {
	case CodeStart:
		return "start"
	case CodeMiddle:
		return "middle"
	case CodeEnd:
		return "end"
	case CodeSingle:
		return "single"
	}
	return "none"
}

// Element is a node of a parsed markdown document. It is a tagged union:
// Kind selects which of the optional fields are meaningful.
//
// Text is the body of the construct with delimiters stripped. For containers
// Children hold the parse of exactly that body. Open and Close are the
// delimiters which have been stripped, i.e. Open+Text+Close is the source
// of the element (rules excepted, see Markup).
type Element struct {
	Kind     Kind
	Text     string
	Children []Element
	Level    int          // Header: 1…6
	URL      string       // Link, Image
	Order    string       // OrderedListItem: ordinal label, e.g. "12."
	Alt      string       // Image: alt text, empty if absent
	Code     CodePosition // BlockCode
	Open     string
	Close    string
}

// Markup re-creates the markdown source of an element.
func (e Element) Markup() string {
	if e.Kind == Rule { // Text is synthetic
		return e.Open + e.Close
	}
	return e.Open + e.Text + e.Close
}

// Plain returns the plain text of an element, as a reader would see it.
func (e Element) Plain() string {
	var b strings.Builder
	e.writePlain(&b)
	return b.String()
}

func (e Element) writePlain(b *strings.Builder) {
	if e.Kind.IsContainer() && len(e.Children) > 0 {
		for _, c := range e.Children {
			c.writePlain(b)
		}
		return
	}
	b.WriteString(e.Text)
}

func (e Element) String() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	switch e.Kind {
	case Header:
		fmt.Fprintf(&b, "[%d]", e.Level)
	case OrderedListItem:
		fmt.Fprintf(&b, "[%s]", e.Order)
	case Link:
		fmt.Fprintf(&b, "[%s]", e.URL)
	case Image:
		fmt.Fprintf(&b, "[%s|%s]", e.URL, e.Alt)
	case BlockCode:
		fmt.Fprintf(&b, "[%s]", e.Code)
	}
	fmt.Fprintf(&b, "(%q", e.Text)
	if len(e.Children) > 0 {
		fmt.Fprintf(&b, ", %d children", len(e.Children))
	}
	b.WriteByte(')')
	return b.String()
}

// --- Documents -------------------------------------------------------------

// MarkdownText is a parsed document: a sequence of elements covering the
// input without gaps or overlaps.
type MarkdownText struct {
	Elements []Element
}

// IsEmpty is true for a document without elements.
func (md MarkdownText) IsEmpty() bool {
	return len(md.Elements) == 0
}

// Markup re-creates the markdown source of a document.
func (md MarkdownText) Markup() string {
	var b strings.Builder
	for _, e := range md.Elements {
		b.WriteString(e.Markup())
	}
	return b.String()
}

// Plain returns the plain text of a document. It is identical to the result
// of Clear for the document's source.
func (md MarkdownText) Plain() string {
	var b strings.Builder
	for _, e := range md.Elements {
		e.writePlain(&b)
	}
	return b.String()
}

// Walk calls f for every element of the document in pre-order. depth is 0
// for top-level elements. If f returns false, the children of the element
// are skipped.
func (md MarkdownText) Walk(f func(e *Element, depth int) bool) {
	walk(md.Elements, 0, f)
}

func walk(elems []Element, depth int, f func(*Element, int) bool) {
	for i := range elems {
		if f(&elems[i], depth) {
			walk(elems[i].Children, depth+1, f)
		}
	}
}
