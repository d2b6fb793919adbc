package markdown

import (
	"strings"
)

// Clear strips all markdown from a text, using the default grammar.
func Clear(text string) string {
	return defaultGrammar.Clear(text)
}

// Clear strips all markdown from a text, leaving what a reader would see.
// Rules are replaced by a single space, links and images by their title.
// The result is the coordinate space for searching a document, and equals
// g.Parse(text).Plain().
func (g *Grammar) Clear(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(text))
	g.clear(text, &b)
	return b.String()
}

func (g *Grammar) clear(text string, b *strings.Builder) {
	sc := g.scanner(text)
	pos := 0
	for {
		m, ok := sc.next(pos)
		if !ok {
			break
		}
		b.WriteString(text[pos:m.Start])
		g.clearSpan(m.Category, text[m.Start:m.End], b)
		pos = m.End
	}
	b.WriteString(text[pos:])
}

func (g *Grammar) clearSpan(kind Kind, span string, b *strings.Builder) {
	switch kind {
	case UnorderedListItem, Quote:
		g.clear(span[2:], b)
	case Bold, Strike:
		g.clear(span[2:len(span)-2], b)
	case Italic:
		g.clear(span[1:len(span)-1], b)
	case Header:
		b.WriteString(span[headerLevel(span)+1:])
	case Rule:
		b.WriteByte(' ')
	case InlineCode:
		b.WriteString(span[1 : len(span)-1])
	case Link:
		if parts, ok := g.link(span); ok {
			b.WriteString(parts.title)
		} else {
			b.WriteString(span)
		}
	case OrderedListItem:
		if parts, ok := g.ordered(span); ok {
			g.clear(parts.title, b)
		} else {
			b.WriteString(span)
		}
	case Image:
		if parts, ok := g.image(span); ok {
			b.WriteString(parts.title)
		} else {
			b.WriteString(span)
		}
	case BlockCode:
		b.WriteString(span[len(fenceMarker) : len(span)-len(fenceMarker)])
	default:
		b.WriteString(span)
	}
}
