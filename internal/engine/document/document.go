package document

import (
	"bufio"
	"bytes"
	"errors"
	"io"

	"github.com/dshills/kiln/internal/renderer/highlight"
	"github.com/dshills/kiln/internal/syntax"
)

// Errors returned by document operations.
var (
	ErrRowOutOfRange = errors.New("row out of range")
)

// Document is an ordered collection of rows with dirty tracking and an
// optional filetype profile.
type Document struct {
	rows    []*Row
	dirty   int
	syntax  *syntax.Profile
	tabStop int
}

// New creates an empty document.
func New(opts ...Option) *Document {
	d := &Document{tabStop: DefaultTabStop}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// FromLines creates a document with one row per line. The result is not
// dirty.
func FromLines(lines []string, opts ...Option) *Document {
	d := New(opts...)
	d.rows = make([]*Row, 0, len(lines))
	for _, line := range lines {
		d.appendRow([]byte(line))
	}
	return d
}

// ReadFrom creates a document from r. Each line loses its trailing run of
// '\n' and '\r' bytes. The result is not dirty.
func ReadFrom(r io.Reader, opts ...Option) (*Document, error) {
	d := New(opts...)
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			d.appendRow(bytes.TrimRight(line, "\r\n"))
		}
		if errors.Is(err, io.EOF) {
			return d, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func (d *Document) appendRow(text []byte) {
	at := len(d.rows)
	row := newRow(at, d.tabStop, text)
	row.scan(d.syntax, d.startState(at))
	d.rows = append(d.rows, row)
}

// NumRows returns the number of rows.
func (d *Document) NumRows() int { return len(d.rows) }

// Row returns the row at index at, or nil when at is out of range.
func (d *Document) Row(at int) *Row {
	if at < 0 || at >= len(d.rows) {
		return nil
	}
	return d.rows[at]
}

// TabStop returns the tab stop used for rendering.
func (d *Document) TabStop() int { return d.tabStop }

// Dirty returns the number of edits since the last reset.
func (d *Document) Dirty() int { return d.dirty }

// ResetDirty marks the document as saved.
func (d *Document) ResetDirty() { d.dirty = 0 }

// Syntax returns the selected profile, or nil.
func (d *Document) Syntax() *syntax.Profile { return d.syntax }

// SetSyntax selects p (which may be nil) and re-highlights every row.
func (d *Document) SetSyntax(p *syntax.Profile) {
	d.syntax = p
	for i, row := range d.rows {
		row.scan(p, d.startState(i))
	}
}

// SelectSyntax selects the first profile in reg matching filename and
// re-highlights every row. With no match, or an empty filename, no profile
// is selected. It reports whether a profile was found.
func (d *Document) SelectSyntax(reg *syntax.Registry, filename string) bool {
	p := reg.Match(filename)
	d.SetSyntax(p)
	return p != nil
}

// Bytes returns every row followed by a newline.
func (d *Document) Bytes() []byte {
	n := 0
	for _, row := range d.rows {
		n += len(row.raw) + 1
	}
	buf := make([]byte, 0, n)
	for _, row := range d.rows {
		buf = append(buf, row.raw...)
		buf = append(buf, '\n')
	}
	return buf
}

// WriteTo writes Bytes to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(d.Bytes())
	return int64(n), err
}

// Paint sets the classes of render bytes [from, from+n) on row at. The
// range is clipped to the row. Paint does not count as an edit; the next
// change to the row replaces the painted classes.
func (d *Document) Paint(at, from, n int, c highlight.Class) {
	row := d.Row(at)
	if row == nil || n <= 0 {
		return
	}
	from = max(from, 0)
	to := min(from+n, len(row.hl))
	for i := from; i < to; i++ {
		row.hl[i] = c
	}
}

// RestoreHighlight copies saved back over the classes of row at. It does
// nothing and returns false when the row no longer exists or its render
// length changed.
func (d *Document) RestoreHighlight(at int, saved []highlight.Class) bool {
	row := d.Row(at)
	if row == nil || len(saved) != len(row.hl) {
		return false
	}
	copy(row.hl, saved)
	return true
}

// startState is the comment state row at starts in.
func (d *Document) startState(at int) bool {
	if at <= 0 || at > len(d.rows) {
		return false
	}
	return d.rows[at-1].openComment
}

// highlightFrom re-scans row at and then walks forward while the next row
// was last scanned with a start state that no longer matches its
// predecessor's output.
func (d *Document) highlightFrom(at int) {
	for i := at; i >= 0 && i < len(d.rows); i++ {
		d.rows[i].scan(d.syntax, d.startState(i))
		next := i + 1
		if next >= len(d.rows) || d.rows[next].inComment == d.rows[i].openComment {
			return
		}
	}
}

// settle re-highlights row at only if its start state is stale.
func (d *Document) settle(at int) {
	if at < 0 || at >= len(d.rows) {
		return
	}
	if d.rows[at].inComment != d.startState(at) {
		d.highlightFrom(at)
	}
}

func (d *Document) renumber(from int) {
	for i := from; i < len(d.rows); i++ {
		d.rows[i].index = i
	}
}
