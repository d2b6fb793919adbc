package blocks

import (
	"strings"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/npillmayer/cords"
	"github.com/npillmayer/marktext/core"
	"github.com/npillmayer/marktext/engine/search"
	"github.com/npillmayer/marktext/input/markdown"
)

// BlockKind is the type of a block.
type BlockKind int8

const (
	TextBlock   BlockKind = iota // run of text elements
	ImageBlock                   // a single image
	ScrollBlock                  // lines of a fenced code block
)

func (k BlockKind) String() string {
	switch k {
	case TextBlock:
		return "text"
	case ImageBlock:
		return "image"
	case ScrollBlock:
		return "scroll"
	}
	return "block?"
}

// Block is a displayable part of a document.
type Block struct {
	Kind     BlockKind
	Elements []*markdown.Element // top-level elements of the block
	Plain    string              // plain text of the block
	Offset   int                 // plain length of all preceding blocks
	Bounds   search.Range        // [Offset, Offset+len(Plain))
}

// Span returns the block's coordinates for search hit mapping.
func (b *Block) Span() search.Span {
	return search.Span{Bounds: b.Bounds, Offset: b.Offset}
}

// Document is a parsed markdown document partitioned into blocks.
type Document struct {
	Blocks []Block
	source markdown.MarkdownText
	plain  string
	index  *redblacktree.Tree // block offset -> block index
	text   cords.Cord         // lazily created by Text()
}

// Partition splits a parsed document into blocks. Consecutive top-level
// elements other than images and code form a text block. Every image forms an
// image block, every fenced code block a scroll block.
func Partition(doc markdown.MarkdownText) *Document {
	d := &Document{
		source: doc,
		index:  redblacktree.NewWithIntComparator(),
	}
	elems := doc.Elements
	var plain strings.Builder
	for i := 0; i < len(elems); {
		kind, j := TextBlock, i+1
		switch elems[i].Kind {
		case markdown.Image:
			kind = ImageBlock
		case markdown.BlockCode:
			kind = ScrollBlock
			for elems[j-1].Code != markdown.CodeSingle && elems[j-1].Code != markdown.CodeEnd &&
				j < len(elems) && elems[j].Kind == markdown.BlockCode {
				j++
			}
		default:
			for j < len(elems) && elems[j].Kind != markdown.Image && elems[j].Kind != markdown.BlockCode {
				j++
			}
		}
		d.add(kind, elems[i:j], &plain)
		i = j
	}
	d.plain = plain.String()
	tracer().Debugf("partitioned document into %d blocks", len(d.Blocks))
	return d
}

func (d *Document) add(kind BlockKind, elems []markdown.Element, plain *strings.Builder) {
	b := Block{Kind: kind, Offset: plain.Len()}
	start := plain.Len()
	for i := range elems {
		b.Elements = append(b.Elements, &elems[i])
		plain.WriteString(elems[i].Plain())
	}
	b.Plain = plain.String()[start:]
	b.Bounds = search.Range{Start: b.Offset, End: plain.Len()}
	d.index.Put(b.Offset, len(d.Blocks)) // empty blocks are shadowed by their successor
	d.Blocks = append(d.Blocks, b)
}

// Source returns the parsed document the blocks have been created from.
func (d *Document) Source() markdown.MarkdownText {
	return d.source
}

// Plain returns the plain text of the document. It equals the result of
// markdown.Clear for the document's source text.
func (d *Document) Plain() string {
	return d.plain
}

// Len returns the length of the plain text in bytes.
func (d *Document) Len() int {
	return len(d.plain)
}

// Spans returns the coordinates of all blocks, for search hit mapping.
func (d *Document) Spans() []search.Span {
	spans := make([]search.Span, len(d.Blocks))
	for i := range d.Blocks {
		spans[i] = d.Blocks[i].Span()
	}
	return spans
}

// Bounds returns the bounds of all blocks.
func (d *Document) Bounds() []search.Range {
	return search.Bounds(d.Spans())
}

// BlockAt returns the index of the block containing plain-text position pos.
func (d *Document) BlockAt(pos int) (int, error) {
	if pos < 0 || pos >= len(d.plain) {
		return -1, core.Error(core.EOUTOFRANGE, "position %d outside of plain text [0,%d)", pos, len(d.plain))
	}
	node, found := d.index.Floor(pos)
	if !found {
		return -1, core.Error(core.EINTERNAL, "no block for position %d", pos)
	}
	inx := node.Value.(int)
	if !d.Blocks[inx].Bounds.Contains(pos) {
		return -1, core.Error(core.EINTERNAL, "block %d does not contain position %d", inx, pos)
	}
	return inx, nil
}
