package blocks

import (
	"fmt"
	"strings"

	"github.com/npillmayer/cords"
	"github.com/npillmayer/marktext/core"
	"github.com/npillmayer/marktext/engine/search"
	"github.com/npillmayer/marktext/input/markdown"
)

// Text returns the plain text of the document as a cord. The fragment
// organization of the cord reflects the element tree: every leaf holds the
// plain text of a single element without children.
func (d *Document) Text() cords.Cord {
	if d.text.IsVoid() && len(d.plain) > 0 {
		b := cords.NewBuilder()
		for i := range d.Blocks {
			for _, e := range d.Blocks[i].Elements {
				collectText(e, nil, b)
			}
		}
		d.text = b.Cord()
	}
	return d.text
}

func collectText(e *markdown.Element, trail []*markdown.Element, b *cords.Builder) {
	trail = append(trail[:len(trail):len(trail)], e)
	if e.Kind.IsContainer() && len(e.Children) > 0 {
		for i := range e.Children {
			collectText(&e.Children[i], trail, b)
		}
		return
	}
	if e.Text == "" {
		return
	}
	leaf := &Leaf{
		trail:   trail,
		length:  uint64(len(e.Text)),
		content: e.Text,
	}
	b.Append(leaf)
}

// ElementAt returns the innermost element producing the plain text at
// position pos, together with its ancestors, outermost first.
func (d *Document) ElementAt(pos int) (*markdown.Element, []*markdown.Element, error) {
	if pos < 0 || pos >= len(d.plain) {
		return nil, nil, core.Error(core.EOUTOFRANGE, "position %d outside of plain text [0,%d)", pos, len(d.plain))
	}
	l, _, err := d.Text().Index(uint64(pos))
	if err != nil {
		tracer().Errorf("cannot index plain text at %d: %v", pos, err)
		return nil, nil, core.ErrorWithCode(err, core.EINTERNAL)
	}
	leaf := l.(*Leaf)
	tracer().Debugf("position %d is in leaf %s", pos, leaf.dbgString())
	return leaf.Element(), leaf.trail[:len(leaf.trail)-1], nil
}

// ElementsIn returns the innermost elements producing the plain text in r,
// in document order. This is used to find the elements hit by a search.
func (d *Document) ElementsIn(r search.Range) []*markdown.Element {
	if r.Start < 0 {
		r.Start = 0
	}
	if r.End > len(d.plain) {
		r.End = len(d.plain)
	}
	if r.IsEmpty() {
		return nil
	}
	var elems []*markdown.Element
	_ = d.Text().EachLeaf(func(l cords.Leaf, pos uint64) error {
		leafRange := search.Range{Start: int(pos), End: int(pos + l.Weight())}
		if leafRange.Start < r.End && r.Start < leafRange.End {
			elems = append(elems, l.(*Leaf).Element())
		}
		return nil
	})
	return elems
}

// ---------------------------------------------------------------------------

// Leaf is the leaf type for cords of plain document text.
type Leaf struct {
	trail   []*markdown.Element // path from a top-level element
	length  uint64
	content string
}

// Element returns the element this leaf's text stems from.
func (l Leaf) Element() *markdown.Element {
	return l.trail[len(l.trail)-1]
}

// Trail returns the element this leaf's text stems from, together with its
// ancestors, outermost first.
func (l Leaf) Trail() []*markdown.Element {
	return l.trail
}

// Weight of a leaf is its string length in bytes.
func (l Leaf) Weight() uint64 {
	return l.length
}

func (l Leaf) String() string {
	return l.content
}

// Split splits a leaf at position i, resulting in 2 new leafs.
func (l Leaf) Split(i uint64) (cords.Leaf, cords.Leaf) {
	left := &Leaf{
		trail:   l.trail,
		length:  i,
		content: l.content[:i],
	}
	right := &Leaf{
		trail:   l.trail,
		length:  l.length - i,
		content: l.content[i:],
	}
	return left, right
}

// Substring returns a string segment of the leaf's text fragment.
func (l Leaf) Substring(i, j uint64) []byte {
	return []byte(l.content)[i:j]
}

var _ cords.Leaf = Leaf{}

func (l Leaf) dbgString() string {
	kinds := make([]string, len(l.trail))
	for i, e := range l.trail {
		kinds[i] = e.Kind.String()
	}
	cont := strings.Replace(l.String(), "\n", "_", -1)
	return fmt.Sprintf("{<%s> \"%s\"}", strings.Join(kinds, "/"), cont)
}
