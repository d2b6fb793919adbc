package markdown

import (
	"regexp"
	"strings"
)

// Match is a match of the pattern engine: the construct and its span
// [Start, End) in the text searched.
type Match struct {
	Category Kind
	Start    int
	End      int
}

type rule struct {
	category Kind
	match    matcher
}

// Grammar is the combined, prioritized grammar of markdown constructs,
// together with the field patterns used to take a matched span apart.
//
// A Grammar is immutable after creation and may be shared between goroutines.
type Grammar struct {
	rules       []rule
	linkFields  *regexp.Regexp // [title](url)
	orderFields *regexp.Regexp // 12. title
	imageURL    *regexp.Regexp // url part of `url "title"`
	imageTitle  *regexp.Regexp // title part of `url "title"`
}

// NewGrammar creates the grammar. Constructs are tried in the order
// unordered list item, header, quote, italic, bold, strike, rule, inline code,
// link, ordered list item, image, fenced code block. The leftmost match wins;
// for matches starting at the same position the construct earlier in this
// order wins.
func NewGrammar() *Grammar {
	g := &Grammar{
		linkFields:  regexp.MustCompile(`\[(.*)\]\((.*)\)`),
		orderFields: regexp.MustCompile(`^(\d+\.) (.+)$`),
		imageURL:    regexp.MustCompile(`^(.*? )`),
		imageTitle:  regexp.MustCompile(`"(.*?)"`),
	}
	g.rules = []rule{
		{UnorderedListItem, lineRule(regexp.MustCompile(`(?m)^[*+\-] .+$`))},
		{Header, lineRule(regexp.MustCompile(`(?m)^#{1,6} .+?$`))},
		{Quote, lineRule(regexp.MustCompile(`(?m)^> .+?$`))},
		{Italic, either(delimited('*', 1), delimited('_', 1))},
		{Bold, either(delimited('*', 2), delimited('_', 2))},
		{Strike, delimited('~', 2)},
		{Rule, lineRule(regexp.MustCompile(`(?m)^(?:---|___|\*\*\*)$`))},
		{InlineCode, inlineCode},
		{Link, link},
		{OrderedListItem, lineRule(regexp.MustCompile(`(?m)^\d+\. .+$`))},
		{Image, image},
		{BlockCode, fencedCode},
	}
	return g
}

// Find returns the next match of any construct starting at or after from.
func (g *Grammar) Find(text string, from int) (Match, bool) {
	return g.scanner(text).next(from)
}

// FindAll returns all non-overlapping matches in text, left to right.
func (g *Grammar) FindAll(text string) []Match {
	var matches []Match
	sc := g.scanner(text)
	for pos := 0; ; {
		m, ok := sc.next(pos)
		if !ok {
			break
		}
		matches = append(matches, m)
		pos = m.End
	}
	return matches
}

// --- Scanner ---------------------------------------------------------------

// scanner walks a single text. It remembers the last match of every rule:
// a rule's leftmost match at or after a position p stays the same for every
// position between the previous search position and p.
type scanner struct {
	g      *Grammar
	text   string
	recent []recentMatch
}

type recentMatch struct {
	start, end int
	state      int8
}

const (
	unknown int8 = iota
	found
	exhausted
)

func (g *Grammar) scanner(text string) *scanner {
	return &scanner{
		g:      g,
		text:   text,
		recent: make([]recentMatch, len(g.rules)),
	}
}

func (sc *scanner) next(from int) (Match, bool) {
	if from < 0 {
		from = 0
	}
	best := -1
	for i, r := range sc.g.rules {
		rm := &sc.recent[i]
		if rm.state == exhausted {
			continue
		}
		if rm.state == unknown || rm.start < from {
			s, e, ok := r.match(sc.text, from)
			if !ok {
				rm.state = exhausted
				continue
			}
			rm.start, rm.end, rm.state = s, e, found
		}
		if best < 0 || rm.start < sc.recent[best].start {
			best = i
		}
	}
	if best < 0 {
		return Match{}, false
	}
	rm := sc.recent[best]
	return Match{Category: sc.g.rules[best].category, Start: rm.start, End: rm.end}, true
}

// --- Field extraction ------------------------------------------------------

// Fields are extracted from a matched span in a second stage. The grammar
// guarantees the field patterns to match; if one does not, the span is
// treated as literal text.

type linkParts struct {
	title, url           string
	titleStart, titleEnd int
}

func (g *Grammar) link(span string) (linkParts, bool) {
	loc := g.linkFields.FindStringSubmatchIndex(span)
	if loc == nil {
		return linkParts{}, false
	}
	return linkParts{
		title:      span[loc[2]:loc[3]],
		url:        span[loc[4]:loc[5]],
		titleStart: loc[2],
		titleEnd:   loc[3],
	}, true
}

type orderedParts struct {
	order, title string
	titleStart   int
}

func (g *Grammar) ordered(span string) (orderedParts, bool) {
	loc := g.orderFields.FindStringSubmatchIndex(span)
	if loc == nil {
		return orderedParts{}, false
	}
	return orderedParts{
		order:      span[loc[2]:loc[3]],
		title:      span[loc[4]:loc[5]],
		titleStart: loc[4],
	}, true
}

type imageParts struct {
	alt, url, title      string
	titleStart, titleEnd int // -1 if there is no title
}

// image splits ![alt](url "title"). A blank alt text is reported as absent.
func (g *Grammar) image(span string) (imageParts, bool) {
	loc := g.linkFields.FindStringSubmatchIndex(span)
	if loc == nil {
		return imageParts{}, false
	}
	parts := imageParts{
		alt:        span[loc[2]:loc[3]],
		url:        span[loc[4]:loc[5]],
		titleStart: -1,
		titleEnd:   -1,
	}
	if strings.TrimSpace(parts.alt) == "" {
		parts.alt = ""
	}
	urlTitle, offset := parts.url, loc[4]
	if !strings.Contains(urlTitle, `"`) {
		return parts, true
	}
	if m := g.imageURL.FindStringSubmatch(urlTitle); m != nil {
		parts.url = strings.TrimSpace(m[1])
	} else {
		parts.url = strings.TrimSpace(urlTitle[:strings.IndexByte(urlTitle, '"')])
	}
	if t := g.imageTitle.FindStringSubmatchIndex(urlTitle); t != nil {
		parts.title = urlTitle[t[2]:t[3]]
		parts.titleStart, parts.titleEnd = offset+t[2], offset+t[3]
	}
	return parts, true
}

// headerLevel counts the leading hash marks of a header span.
func headerLevel(span string) int {
	level := 0
	for level < len(span) && span[level] == '#' {
		level++
	}
	return level
}
