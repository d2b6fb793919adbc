package markdown

import (
	"strings"
)

// defaultGrammar is used by the package-level functions. It is never mutated.
var defaultGrammar = NewGrammar()

// Parse parses a markdown text with the default grammar.
func Parse(text string) MarkdownText {
	return defaultGrammar.Parse(text)
}

// Parse converts a markdown text into a sequence of elements. Text between
// constructs becomes Text elements. Parse never fails: markup which does not
// match any construct is literal text.
func (g *Grammar) Parse(text string) MarkdownText {
	return MarkdownText{Elements: g.elements(text)}
}

func (g *Grammar) elements(text string) []Element {
	if text == "" {
		return nil
	}
	var elems []Element
	sc := g.scanner(text)
	pos := 0
	for {
		m, ok := sc.next(pos)
		if !ok {
			break
		}
		if m.Start > pos {
			elems = append(elems, Element{Kind: Text, Text: text[pos:m.Start]})
		}
		elems = append(elems, g.convert(m.Category, text[m.Start:m.End])...)
		pos = m.End
	}
	if pos < len(text) {
		elems = append(elems, Element{Kind: Text, Text: text[pos:]})
	}
	return elems
}

// convert turns the span of a match into elements. All kinds but block code
// produce a single element.
func (g *Grammar) convert(kind Kind, span string) []Element {
	switch kind {
	case UnorderedListItem, Quote:
		return g.container(kind, span, 2, 0)
	case Header:
		level := headerLevel(span)
		return []Element{{Kind: Header, Level: level, Open: span[:level+1], Text: span[level+1:]}}
	case Italic:
		return g.container(kind, span, 1, 1)
	case Bold, Strike:
		return g.container(kind, span, 2, 2)
	case Rule:
		return []Element{{Kind: Rule, Text: " ", Open: span}}
	case InlineCode:
		return []Element{{Kind: InlineCode, Open: span[:1], Text: span[1 : len(span)-1], Close: span[len(span)-1:]}}
	case Link:
		parts, ok := g.link(span)
		if !ok {
			return degrade(kind, span)
		}
		return []Element{{
			Kind:  Link,
			Text:  parts.title,
			URL:   parts.url,
			Open:  span[:parts.titleStart],
			Close: span[parts.titleEnd:],
		}}
	case OrderedListItem:
		parts, ok := g.ordered(span)
		if !ok {
			return degrade(kind, span)
		}
		return []Element{{
			Kind:     OrderedListItem,
			Order:    parts.order,
			Text:     parts.title,
			Children: g.elements(parts.title),
			Open:     span[:parts.titleStart],
		}}
	case Image:
		parts, ok := g.image(span)
		if !ok {
			return degrade(kind, span)
		}
		img := Element{Kind: Image, URL: parts.url, Alt: parts.alt}
		if parts.titleStart < 0 {
			img.Open = span
		} else {
			img.Text = parts.title
			img.Open = span[:parts.titleStart]
			img.Close = span[parts.titleEnd:]
		}
		return []Element{img}
	case BlockCode:
		return codeLines(span)
	}
	return degrade(kind, span)
}

// container creates an element whose body is parsed recursively. open and
// close are the widths of the delimiters.
func (g *Grammar) container(kind Kind, span string, open, close int) []Element {
	body := span[open : len(span)-close]
	return []Element{{
		Kind:     kind,
		Text:     body,
		Children: g.elements(body),
		Open:     span[:open],
		Close:    span[len(span)-close:],
	}}
}

// codeLines splits a fenced block into one element per line. Lines keep
// their line terminator. The fence markers go to the first and the last line.
func codeLines(span string) []Element {
	body := span[len(fenceMarker) : len(span)-len(fenceMarker)]
	lines := strings.SplitAfter(body, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 1 {
		return []Element{{Kind: BlockCode, Code: CodeSingle, Text: body, Open: fenceMarker, Close: fenceMarker}}
	}
	elems := make([]Element, len(lines))
	for i, line := range lines {
		elems[i] = Element{Kind: BlockCode, Code: CodeMiddle, Text: line}
	}
	elems[0].Code, elems[0].Open = CodeStart, fenceMarker
	last := len(elems) - 1
	elems[last].Code, elems[last].Close = CodeEnd, fenceMarker
	return elems
}

// degrade handles a construct whose fields could not be extracted. The span is
// kept as literal text.
func degrade(kind Kind, span string) []Element {
	tracer().Errorf(errFields(kind, span).Error())
	return []Element{{Kind: Text, Text: span}}
}
