package search

import (
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/marktext/core/parameters"
	"golang.org/x/text/language"
	"golang.org/x/text/search"
)

// Finder finds all occurrences of a query in a text, using language-specific
// collation rules. A Finder is safe for concurrent use.
type Finder struct {
	lang             language.Tag
	matcher          *search.Matcher
	ignoreCase       bool
	ignoreDiacritics bool
	wholeWords       bool
}

// defaultFinder matches case-insensitively, without language specifics.
var defaultFinder = newFinder(language.Und, true, false, false)

// NewFinder creates a finder configured by the search parameters of regs.
// If regs is nil, defaults are used.
func NewFinder(regs *parameters.Registers) *Finder {
	if regs == nil {
		regs = parameters.NewRegisters()
	}
	lang, err := language.Parse(regs.S(parameters.P_SEARCHLANGUAGE))
	if err != nil {
		tracer().Errorf("search language %q: %v; using undetermined language",
			regs.S(parameters.P_SEARCHLANGUAGE), err)
		lang = language.Und
	}
	return newFinder(lang,
		regs.B(parameters.P_IGNORECASE),
		regs.B(parameters.P_IGNOREDIACRITICS),
		regs.B(parameters.P_WHOLEWORDS))
}

func newFinder(lang language.Tag, ignoreCase, ignoreDiacritics, wholeWords bool) *Finder {
	var opts []search.Option
	if ignoreCase {
		opts = append(opts, search.IgnoreCase)
	}
	if ignoreDiacritics {
		opts = append(opts, search.IgnoreDiacritics)
	}
	return &Finder{
		lang:             lang,
		matcher:          search.New(lang, opts...),
		ignoreCase:       ignoreCase,
		ignoreDiacritics: ignoreDiacritics,
		wholeWords:       wholeWords,
	}
}

// Language returns the language tag the finder uses for collation.
func (f *Finder) Language() language.Tag {
	return f.lang
}

// Find returns the ranges of all non-overlapping occurrences of query in
// haystack, from left to right. Unless diacritics are ignored, a match is
// the query itself, possibly in a different case. Collation would skip
// ignorable code points (e.g. U+200B or NUL) inside a match; such matches are
// rejected. When diacritics are ignored a match may differ in length from the
// query. An empty query or haystack has no occurrences.
func (f *Finder) Find(haystack, query string) []Range {
	if query == "" || haystack == "" {
		return nil
	}
	pattern := f.matcher.CompileString(query)
	var hits []Range
	for pos := 0; pos < len(haystack); {
		s, e := pattern.IndexString(haystack[pos:])
		if s < 0 || e <= s {
			break
		}
		hit := Range{Start: pos + s, End: pos + e}
		if !f.literal(haystack[hit.Start:hit.End], query) {
			_, size := utf8.DecodeRuneInString(haystack[hit.Start:])
			pos = hit.Start + size
			continue
		}
		hits = append(hits, hit)
		pos = hit.End
	}
	if f.wholeWords && len(hits) > 0 {
		hits = wholeWords(haystack, hits)
	}
	tracer().Debugf("found %d occurrences of %q", len(hits), query)
	return hits
}

// literal is true if a collation match is the query itself, up to case if
// case is ignored.
func (f *Finder) literal(match, query string) bool {
	switch {
	case f.ignoreDiacritics:
		return true
	case f.ignoreCase:
		return strings.EqualFold(match, query)
	}
	return match == query
}

// IndexesOf returns the start offsets of all non-overlapping occurrences of
// query in haystack, ignoring case. An empty query or haystack has no
// occurrences.
//
//	IndexesOf("abcabcabc", "abc")   // [0 3 6]
//	IndexesOf("ABC", "abc")         // [0]
func IndexesOf(haystack, query string) []int {
	return defaultFinder.IndexesOf(haystack, query)
}

// IndexesOf returns the start offsets of all matches of f.Find.
func (f *Finder) IndexesOf(haystack, query string) []int {
	hits := f.Find(haystack, query)
	offsets := make([]int, len(hits))
	for i, h := range hits {
		offsets[i] = h.Start
	}
	return offsets
}
