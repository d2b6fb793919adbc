package markdown

import (
	"regexp"
	"strings"
)

// A matcher finds the leftmost occurrence of a construct starting at or after
// position from. It may inspect bytes before from, e.g. to reject an emphasis
// marker which is part of a longer run.
type matcher func(text string, from int) (start, end int, ok bool)

// lineStart returns the first line start at or after pos.
func lineStart(text string, pos int) int {
	if pos <= 0 {
		return 0
	}
	if pos >= len(text) {
		return len(text)
	}
	if text[pos-1] == '\n' {
		return pos
	}
	i := strings.IndexByte(text[pos:], '\n')
	if i < 0 {
		return len(text)
	}
	return pos + i + 1
}

// endOfLine returns the position of the newline ending the line containing
// pos, or len(text) for the last line.
func endOfLine(text string, pos int) int {
	if i := strings.IndexByte(text[pos:], '\n'); i >= 0 {
		return pos + i
	}
	return len(text)
}

func isLineStart(text string, pos int) bool {
	return pos == 0 || text[pos-1] == '\n'
}

// isSpace reports white space in the sense of regular expression class \s.
func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// lineRule matches a (?m)-anchored regular expression. Matching starts at
// the next line start, as '^' must not match in the middle of a line.
func lineRule(re *regexp.Regexp) matcher {
	return func(text string, from int) (int, int, bool) {
		ls := lineStart(text, from)
		if ls >= len(text) {
			return 0, 0, false
		}
		loc := re.FindStringIndex(text[ls:])
		if loc == nil {
			return 0, 0, false
		}
		return ls + loc[0], ls + loc[1], true
	}
}

// either combines matchers for alternatives of the same construct.
// On equal start positions the first matcher wins.
func either(matchers ...matcher) matcher {
	return func(text string, from int) (int, int, bool) {
		found := false
		var start, end int
		for _, m := range matchers {
			if s, e, ok := m(text, from); ok && (!found || s < start) {
				start, end, found = s, e, true
			}
		}
		return start, end, found
	}
}

// --- Emphasis --------------------------------------------------------------

// delimited matches emphasis-like constructs: a run of exactly width marker
// bytes, at least one byte of content and a closing run of width markers.
// The opening run must neither be preceded by the marker nor be followed by
// the marker or a newline. The closing run is the nearest run not followed by
// the marker. Emphasis does not span lines.
func delimited(marker byte, width int) matcher {
	return func(text string, from int) (int, int, bool) {
		for s := from; s < len(text); s++ {
			i := strings.IndexByte(text[s:], marker)
			if i < 0 {
				break
			}
			s += i
			if !opensRun(text, s, marker, width) {
				continue
			}
			if e, ok := closeRun(text, s, marker, width); ok {
				return s, e, true
			}
			// closers for later openings on this line have been candidates already
			s = endOfLine(text, s)
		}
		return 0, 0, false
	}
}

func isRun(text string, pos int, marker byte, width int) bool {
	if pos+width > len(text) {
		return false
	}
	for k := 0; k < width; k++ {
		if text[pos+k] != marker {
			return false
		}
	}
	return true
}

func opensRun(text string, s int, marker byte, width int) bool {
	if s+width >= len(text) || !isRun(text, s, marker, width) {
		return false
	}
	if s > 0 && text[s-1] == marker {
		return false
	}
	c := text[s+width]
	return c != marker && c != '\n'
}

// closeRun returns the end position of the closing run for an opening run
// at s.
func closeRun(text string, s int, marker byte, width int) (int, bool) {
	for c := s + width + 1; c+width <= len(text); c++ {
		if text[c] == '\n' {
			return 0, false
		}
		if text[c] != marker || !isRun(text, c, marker, width) {
			continue
		}
		if c+width == len(text) || text[c+width] != marker {
			return c + width, true
		}
	}
	return 0, false
}

// --- Code ------------------------------------------------------------------

// inlineCode matches `code`: the backtick is not part of a longer run and
// there is no white space just inside either backtick.
func inlineCode(text string, from int) (int, int, bool) {
	for s := from; s < len(text); s++ {
		i := strings.IndexByte(text[s:], '`')
		if i < 0 {
			break
		}
		s += i
		if s+1 >= len(text) || (s > 0 && text[s-1] == '`') {
			continue
		}
		if c := text[s+1]; c == '`' || isSpace(c) {
			continue
		}
		c := s + 2
		for ; c < len(text) && text[c] != '\n'; c++ {
			if text[c] != '`' || (c+1 < len(text) && text[c+1] == '`') || isSpace(text[c-1]) {
				continue
			}
			return s, c + 1, true
		}
		s = c // no later opening on this line can be closed either
	}
	return 0, 0, false
}

const fenceMarker = "```"

// fencedCode matches a fenced block: three backticks directly followed by a
// non-space byte, up to the nearest three backticks. Fenced blocks may span
// lines.
func fencedCode(text string, from int) (int, int, bool) {
	for s := from; s < len(text); s++ {
		i := strings.Index(text[s:], fenceMarker)
		if i < 0 {
			break
		}
		s += i
		if s+3 >= len(text) || isSpace(text[s+3]) {
			continue
		}
		j := strings.Index(text[s+4:], fenceMarker)
		if j < 0 { // no later opening can be closed either
			break
		}
		return s, s + 4 + j + 3, true
	}
	return 0, 0, false
}

// --- Links and images ------------------------------------------------------

// link matches [title](url), where the title contains no brackets and the
// url at least one byte. At a line start, [[…](url) with an optional url
// is accepted as well.
func link(text string, from int) (int, int, bool) {
	for s := from; s < len(text); s++ {
		i := strings.IndexAny(text[s:], "[]")
		if i < 0 {
			break
		}
		s += i
		exhausted := false
		if text[s] == '[' {
			e, ok, noParen := bracketedLink(text, s)
			if ok {
				return s, e, true
			}
			exhausted = noParen
		}
		if isLineStart(text, s) {
			if e, ok := lineStartLink(text, s); ok {
				return s, e, true
			}
		}
		if exhausted { // later openings on this line would need a ')' as well
			s = endOfLine(text, s)
		}
	}
	return 0, 0, false
}

// bracketedLink returns the end of a link opening at s. noParen reports a
// failure because there is no ')' up to the end of the line.
func bracketedLink(text string, s int) (end int, ok bool, noParen bool) {
	j := strings.IndexAny(text[s+1:], "[]\n")
	if j < 0 {
		return 0, false, false
	}
	j += s + 1
	if text[j] != ']' || j+2 >= len(text) || text[j+1] != '(' || text[j+2] == '\n' {
		return 0, false, false
	}
	end, ok = closingParen(text, j+3)
	return end, ok, !ok
}

func lineStartLink(text string, s int) (int, bool) {
	r := s
	for r < len(text) && text[r] == '[' {
		r++
	}
	if r+1 >= len(text) || text[r] != ']' || text[r+1] != '(' {
		return 0, false
	}
	return closingParen(text, r+2)
}

// closingParen finds the first ')' at or after pos on the same line and
// returns the position after it.
func closingParen(text string, pos int) (int, bool) {
	for c := pos; c < len(text); c++ {
		switch text[c] {
		case '\n':
			return 0, false
		case ')':
			return c + 1, true
		}
	}
	return 0, false
}

// image matches ![alt](url). The alt text extends to the last "](" on the
// line which is followed by a non-empty url and a closing parenthesis.
func image(text string, from int) (int, int, bool) {
	for s := from; s < len(text); s++ {
		i := strings.Index(text[s:], "![")
		if i < 0 {
			break
		}
		s += i
		eol := endOfLine(text, s)
		if e, ok := imageEnd(text, s+2, eol); ok {
			return s, e, true
		}
		s = eol // later openings on this line have no target either
	}
	return 0, 0, false
}

// imageEnd scans text[from:eol] from right to left for the last "](" with a
// non-empty url up to the nearest ')'. It returns the position after the ')'.
func imageEnd(text string, from, eol int) (int, bool) {
	paren := -1 // nearest ')' right of q
	for q := eol - 1; q >= from; q-- {
		switch text[q] {
		case ')':
			paren = q
		case ']':
			if q+1 < eol && text[q+1] == '(' && paren > q+2 {
				return paren + 1, true
			}
		}
	}
	return 0, false
}
