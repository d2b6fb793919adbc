package search

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax29"
)

// wordBoundaries returns the positions of UAX#29 word boundaries in text,
// including 0 and len(text).
func wordBoundaries(text string) []int {
	boundaries := []int{0}
	pos := 0
	eachWordSegment(text, func(seg string) {
		pos += len(seg)
		boundaries = append(boundaries, pos)
	})
	if boundaries[len(boundaries)-1] != len(text) {
		boundaries = append(boundaries, len(text))
	}
	return boundaries
}

// eachWordSegment calls f for every UAX#29 word segment of text, including
// segments of white space and punctuation.
func eachWordSegment(text string, f func(seg string)) {
	words := segment.NewSegmenter(uax29.NewWordBreaker(1))
	words.Init(strings.NewReader(text))
	for words.Next() {
		f(string(words.Bytes()))
	}
	if err := words.Err(); err != nil {
		tracer().Errorf("word segmentation: %v", err)
	}
}

// isWord is true for segments containing at least one letter or digit.
func isWord(seg string) bool {
	for _, r := range seg {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// wholeWords keeps hits which start and end at word boundaries.
func wholeWords(text string, hits []Range) []Range {
	if !utf8.ValidString(text) {
		tracer().Infof("text is not valid UTF-8, cannot filter for whole words")
		return hits
	}
	boundaries := wordBoundaries(text)
	isBoundary := func(pos int) bool {
		i := sort.SearchInts(boundaries, pos)
		return i < len(boundaries) && boundaries[i] == pos
	}
	kept := hits[:0]
	for _, h := range hits {
		if isBoundary(h.Start) && isBoundary(h.End) {
			kept = append(kept, h)
		}
	}
	return kept
}
