// Package search finds text in a document and paints the current match.
//
// Find is stateless. Session layers the incremental find loop on top of it:
// it remembers the last match and direction and keeps at most one match
// overlay painted at a time.
package search

import (
	"bytes"

	"github.com/dshills/kiln/internal/engine/document"
	"github.com/dshills/kiln/internal/renderer/highlight"
)

// Direction is the order in which rows are visited.
type Direction int

// Search directions.
const (
	Forward  Direction = 1
	Backward Direction = -1
)

// Match is a found occurrence of a query.
type Match struct {
	// Line is the row index.
	Line int
	// Col is the raw column of the match start.
	Col int
	// RCol is the rendered column of the match start.
	RCol int
	// Len is the match length in rendered bytes.
	Len int
}

// Find searches the rendered text of each row for query, starting with the
// row after last in direction dir and wrapping around the document. Every
// row, last included, is visited at most once. last may be -1 to start at
// the first row.
func Find(doc *document.Document, query string, dir Direction, last int) (Match, bool) {
	n := doc.NumRows()
	if query == "" || n == 0 {
		return Match{}, false
	}
	if dir != Backward {
		dir = Forward
	}
	if last < -1 || last > n {
		last = -1
		if dir == Backward {
			last = n
		}
	}

	needle := []byte(query)
	current := last
	for range n {
		current += int(dir)
		if current < 0 {
			current = n - 1
		} else if current >= n {
			current = 0
		}

		row := doc.Row(current)
		if rx := bytes.Index(row.Render(), needle); rx >= 0 {
			return Match{
				Line: current,
				Col:  row.RxToCx(rx),
				RCol: rx,
				Len:  len(needle),
			}, true
		}
	}
	return Match{}, false
}

// Overlay records the classes a match highlight replaced.
type Overlay struct {
	Row   int
	Saved []highlight.Class
}

// Highlight paints m with class Match and returns the overlay needed to
// undo it.
func Highlight(doc *document.Document, m Match) *Overlay {
	row := doc.Row(m.Line)
	if row == nil {
		return nil
	}
	o := &Overlay{
		Row:   m.Line,
		Saved: append([]highlight.Class(nil), row.Highlight()...),
	}
	doc.Paint(m.Line, m.RCol, m.Len, highlight.Match)
	return o
}

// Restore writes the saved classes back. It reports false when the row is
// gone or was re-rendered since the overlay was taken.
func (o *Overlay) Restore(doc *document.Document) bool {
	if o == nil {
		return false
	}
	return doc.RestoreHighlight(o.Row, o.Saved)
}
