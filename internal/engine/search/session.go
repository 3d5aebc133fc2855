package search

import "github.com/dshills/kiln/internal/engine/document"

// Session is one incremental find interaction over a document.
type Session struct {
	doc     *document.Document
	last    int
	dir     Direction
	overlay *Overlay
}

// NewSession starts a find session.
func NewSession(doc *document.Document) *Session {
	return &Session{doc: doc, last: -1, dir: Forward}
}

// Edit restarts the search from the top after the query changed.
func (s *Session) Edit(query string) (Match, bool) {
	s.last = -1
	s.dir = Forward
	return s.step(query)
}

// Next moves to the next match after the current one.
func (s *Session) Next(query string) (Match, bool) {
	s.dir = Forward
	return s.step(query)
}

// Prev moves to the previous match. Without a current match it searches
// forward from the top.
func (s *Session) Prev(query string) (Match, bool) {
	s.dir = Backward
	return s.step(query)
}

// Done removes the overlay and forgets the current match.
func (s *Session) Done() {
	s.clear()
	s.last = -1
	s.dir = Forward
}

// Overlay returns the active overlay, or nil.
func (s *Session) Overlay() *Overlay {
	return s.overlay
}

func (s *Session) step(query string) (Match, bool) {
	s.clear()
	if s.last == -1 {
		s.dir = Forward
	}

	m, ok := Find(s.doc, query, s.dir, s.last)
	if !ok {
		return Match{}, false
	}
	s.last = m.Line
	s.overlay = Highlight(s.doc, m)
	return m, true
}

func (s *Session) clear() {
	if s.overlay != nil {
		s.overlay.Restore(s.doc)
		s.overlay = nil
	}
}
