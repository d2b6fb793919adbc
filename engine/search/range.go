package search

import "fmt"

// Range is a half-open range [Start, End) of byte positions.
type Range struct {
	Start, End int
}

// Len returns the number of bytes in r.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty is true for a range without bytes.
func (r Range) IsEmpty() bool {
	return r.End <= r.Start
}

// Contains reports whether pos is in r.
func (r Range) Contains(pos int) bool {
	return pos >= r.Start && pos < r.End
}

// Within reports whether r lies completely inside bounds.
func (r Range) Within(bounds Range) bool {
	return r.Start >= bounds.Start && r.End <= bounds.End
}

// Shift moves r by delta.
func (r Range) Shift(delta int) Range {
	return Range{Start: r.Start + delta, End: r.End + delta}
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Hits converts occurrence offsets of a string of length n into ranges.
// All occurrences are taken to be n bytes long. For hits of differing length
// use the ranges returned by Finder.Find.
func Hits(offsets []int, n int) []Range {
	if len(offsets) == 0 {
		return nil
	}
	ranges := make([]Range, len(offsets))
	for i, o := range offsets {
		ranges[i] = Range{Start: o, End: o + n}
	}
	return ranges
}

// GroupByBounds assigns ranges to bounds. The result has one group per bound,
// holding the ranges lying completely inside the bound, in their original
// order. A range straddling the border of two bounds is in neither group;
// ranges are never split or duplicated.
func GroupByBounds(ranges []Range, bounds []Range) [][]Range {
	groups := make([][]Range, len(bounds))
	for i, b := range bounds {
		for _, r := range ranges {
			if r.Within(b) {
				groups[i] = append(groups[i], r)
			}
		}
	}
	return groups
}

// Localize translates ranges into a coordinate space starting at offset.
func Localize(ranges []Range, offset int) []Range {
	if len(ranges) == 0 {
		return nil
	}
	local := make([]Range, len(ranges))
	for i, r := range ranges {
		local[i] = r.Shift(-offset)
	}
	return local
}

// --- Mapping to blocks -----------------------------------------------------

// Span describes a block of a document in plain-text coordinates.
// Offset is the plain length of all preceding blocks, which usually
// is Bounds.Start.
type Span struct {
	Bounds Range
	Offset int
}

// Bounds extracts the bounds of a list of spans.
func Bounds(spans []Span) []Range {
	bounds := make([]Range, len(spans))
	for i, s := range spans {
		bounds[i] = s.Bounds
	}
	return bounds
}

// MapHits groups global hits by the spans containing them and translates
// them into span-local coordinates.
func MapHits(hits []Range, spans []Span) [][]Range {
	groups := GroupByBounds(hits, Bounds(spans))
	for i, g := range groups {
		groups[i] = Localize(g, spans[i].Offset)
	}
	return groups
}

// MapFocus finds the span containing a hit and returns the index of the span
// together with the hit in span-local coordinates. If no span contains the
// hit, ok is false and nothing should be highlighted.
func MapFocus(hit Range, spans []Span) (span int, local Range, ok bool) {
	for i, s := range spans {
		if hit.Within(s.Bounds) {
			return i, hit.Shift(-s.Offset), true
		}
	}
	return -1, Range{}, false
}
