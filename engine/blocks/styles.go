package blocks

import (
	"strings"

	"github.com/npillmayer/cords"
	"github.com/npillmayer/cords/styled"
	"github.com/npillmayer/marktext/input/markdown"
)

// Markup is the style of a run of plain text: the set of element kinds the
// run is nested in, plus the attributes relevant for display.
type Markup struct {
	kinds uint16 // bit set of markdown.Kind
	Level int    // header level, if any
	URL   string // link or image target, if any
}

// MarkupOf computes the style for text nested in a trail of elements.
func MarkupOf(trail []*markdown.Element) Markup {
	var m Markup
	for _, e := range trail {
		m.kinds |= 1 << uint(e.Kind)
		switch e.Kind {
		case markdown.Header:
			m.Level = e.Level
		case markdown.Link, markdown.Image:
			m.URL = e.URL
		}
	}
	return m
}

// Has is true if text of this style is nested in an element of kind k.
func (m Markup) Has(k markdown.Kind) bool {
	return m.kinds&(1<<uint(k)) != 0
}

// String is part of interface cords.styled.Style.
func (m Markup) String() string {
	var names []string
	for k := markdown.Text; k <= markdown.Image; k++ {
		if m.Has(k) {
			names = append(names, k.String())
		}
	}
	if len(names) == 0 {
		return "<plain>"
	}
	return "<" + strings.Join(names, "+") + ">"
}

// Equals is part of interface cords.styled.Style, not intended for client usage.
func (m Markup) Equals(other styled.Style) bool {
	if o, ok := other.(Markup); ok {
		return o == m
	}
	return false
}

var _ styled.Style = Markup{}

// ---------------------------------------------------------------------------

// Styled returns the plain text of a block, styled with the markup of the
// elements it stems from.
func (b *Block) Styled() *styled.Text {
	cb := cords.NewBuilder()
	for _, e := range b.Elements {
		collectText(e, nil, cb)
	}
	text := styled.TextFromCord(cb.Cord())
	_ = text.Raw().EachLeaf(func(l cords.Leaf, pos uint64) error {
		leaf := l.(*Leaf)
		text.Style(MarkupOf(leaf.trail), pos, pos+l.Weight())
		return nil
	})
	return text
}

// Run is a run of block text with a single markup style.
type Run struct {
	Text     string
	Position int // position within the block's plain text
	Markup   Markup
}

// ForEachStyleRun applies a function to each run of the same markup for a
// block's text.
func (b *Block) ForEachStyleRun(f func(run Run) error) error {
	return b.Styled().EachStyleRun(func(content string, sty styled.Style, pos uint64) error {
		r := Run{Text: content, Position: int(pos)}
		if m, ok := sty.(Markup); ok {
			r.Markup = m
		}
		return f(r)
	})
}
