package search

// Session is the search state of a single document: the plain text, the
// block spans, the current query with its hits and the position of the hit
// in focus. Sessions are not safe for concurrent use.
type Session struct {
	finder   *Finder
	plain    string
	spans    []Span
	query    string
	hits     []Range
	position int // index of the focused hit, -1 if none
}

// NewSession creates a search session for a document's plain text and the
// spans of its blocks. If finder is nil, a case-insensitive finder is used.
func NewSession(plain string, spans []Span, finder *Finder) *Session {
	if finder == nil {
		finder = defaultFinder
	}
	return &Session{
		finder:   finder,
		plain:    plain,
		spans:    spans,
		position: -1,
	}
}

// Search looks for all occurrences of query and focuses the first one.
// It returns the number of hits.
func (s *Session) Search(query string) int {
	s.query = query
	s.hits = s.finder.Find(s.plain, query)
	s.position = -1
	if len(s.hits) > 0 {
		s.position = 0
	}
	tracer().Infof("search for %q: %d hits", query, len(s.hits))
	return len(s.hits)
}

// Query returns the current query.
func (s *Session) Query() string {
	return s.query
}

// Count returns the number of hits of the current query.
func (s *Session) Count() int {
	return len(s.hits)
}

// Hits returns all hits in global coordinates.
func (s *Session) Hits() []Range {
	return s.hits
}

// Current returns the position and range of the focused hit.
func (s *Session) Current() (int, Range, bool) {
	if s.position < 0 {
		return -1, Range{}, false
	}
	return s.position, s.hits[s.position], true
}

// Next moves the focus to the next hit. The focus stays on the last hit when
// there is no next one.
func (s *Session) Next() (Range, bool) {
	return s.moveTo(s.position + 1)
}

// Prev moves the focus to the previous hit. The focus stays on the first hit
// when there is no previous one.
func (s *Session) Prev() (Range, bool) {
	return s.moveTo(s.position - 1)
}

func (s *Session) moveTo(pos int) (Range, bool) {
	if len(s.hits) == 0 {
		return Range{}, false
	}
	if pos < 0 {
		pos = 0
	} else if pos >= len(s.hits) {
		pos = len(s.hits) - 1
	}
	s.position = pos
	return s.hits[pos], true
}

// Highlights returns the hits per block, in block-local coordinates.
func (s *Session) Highlights() [][]Range {
	return MapHits(s.hits, s.spans)
}

// Focus returns the block of the focused hit and the hit in block-local
// coordinates. ok is false if there is no focused hit or the hit straddles
// two blocks.
func (s *Session) Focus() (block int, local Range, ok bool) {
	if s.position < 0 {
		return -1, Range{}, false
	}
	return MapFocus(s.hits[s.position], s.spans)
}

// Reset clears query and hits.
func (s *Session) Reset() {
	s.query = ""
	s.hits = nil
	s.position = -1
}
