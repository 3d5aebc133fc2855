package document

import (
	"slices"

	"github.com/dshills/kiln/internal/renderer/highlight"
)

// InsertRow inserts a row holding a copy of text before row at. at may be
// NumRows to append.
func (d *Document) InsertRow(at int, text []byte) error {
	if at < 0 || at > len(d.rows) {
		return ErrRowOutOfRange
	}
	d.rows = slices.Insert(d.rows, at, newRow(at, d.tabStop, text))
	d.renumber(at + 1)
	d.highlightFrom(at)
	d.dirty++
	return nil
}

// DeleteRow removes row at. Out of range indexes are ignored.
func (d *Document) DeleteRow(at int) {
	if at < 0 || at >= len(d.rows) {
		return
	}
	d.rows = slices.Delete(d.rows, at, at+1)
	d.renumber(at)
	d.settle(at)
	d.dirty++
}

// RowInsertChar inserts c into row at before column col. col is clamped to
// the row.
func (d *Document) RowInsertChar(at, col int, c byte) {
	row := d.Row(at)
	if row == nil {
		return
	}
	col = min(max(col, 0), len(row.raw))

	raw := make([]byte, 0, len(row.raw)+1)
	raw = append(raw, row.raw[:col]...)
	raw = append(raw, c)
	raw = append(raw, row.raw[col:]...)
	d.replaceRaw(at, raw)
	d.dirty++
}

// RowDeleteChar removes the byte at column col of row at. Out of range
// positions are ignored.
func (d *Document) RowDeleteChar(at, col int) {
	row := d.Row(at)
	if row == nil || col < 0 || col >= len(row.raw) {
		return
	}
	d.rowDeleteRange(at, col, col+1)
}

// RowAppendString appends s to row at.
func (d *Document) RowAppendString(at int, s []byte) {
	row := d.Row(at)
	if row == nil {
		return
	}
	d.replaceRaw(at, slices.Concat(row.raw, s))
	d.dirty++
}

func (d *Document) rowDeleteRange(at, from, to int) {
	row := d.rows[at]
	d.replaceRaw(at, slices.Concat(row.raw[:from], row.raw[to:]))
	d.dirty++
}

func (d *Document) replaceRaw(at int, raw []byte) {
	d.rows[at].setRaw(raw)
	d.highlightFrom(at)
}

// clamp limits p to an editable position. Line NumRows is the virtual
// line after the end of the document and only has column 0.
func (d *Document) clamp(p Point) Point {
	p.Line = min(max(p.Line, 0), len(d.rows))
	if p.Line == len(d.rows) {
		p.Col = 0
		return p
	}
	p.Col = min(max(p.Col, 0), len(d.rows[p.Line].raw))
	return p
}

// InsertChar inserts c at p and returns the cursor after it. Typing on the
// virtual line past the end first appends a row.
func (d *Document) InsertChar(p Point, c byte) Point {
	p = d.clamp(p)
	if p.Line == len(d.rows) {
		_ = d.InsertRow(p.Line, nil)
	}
	d.RowInsertChar(p.Line, p.Col, c)
	return Point{Line: p.Line, Col: p.Col + 1}
}

// InsertNewline splits the line at p. The new line starts with the leading
// spaces and tabs of the split line, up to p.Col, and the returned cursor
// sits after that indentation.
func (d *Document) InsertNewline(p Point) Point {
	p = d.clamp(p)
	if p.Col == 0 {
		_ = d.InsertRow(p.Line, nil)
		return Point{Line: p.Line + 1}
	}

	raw := d.rows[p.Line].raw
	indent := countIndent(raw, p.Col)

	next := make([]byte, 0, indent+len(raw)-p.Col)
	next = append(next, raw[:indent]...)
	next = append(next, raw[p.Col:]...)
	_ = d.InsertRow(p.Line+1, next)

	d.replaceRaw(p.Line, slices.Clone(raw[:p.Col]))
	return Point{Line: p.Line + 1, Col: indent}
}

// DeleteChar deletes the byte before p. At the start of a line it joins
// the line onto the previous one.
func (d *Document) DeleteChar(p Point) Point {
	p = d.clamp(p)
	if p.Line == len(d.rows) || (p.Line == 0 && p.Col == 0) {
		return p
	}
	if p.Col == 0 {
		return d.join(p.Line)
	}
	d.RowDeleteChar(p.Line, p.Col-1)
	return Point{Line: p.Line, Col: p.Col - 1}
}

// DeleteWord deletes backward from p over one run of bytes of the same
// kind as the byte before p, either whitespace or non-whitespace. At the
// start of a line it joins like DeleteChar.
func (d *Document) DeleteWord(p Point) Point {
	p = d.clamp(p)
	if p.Line == len(d.rows) || (p.Line == 0 && p.Col == 0) {
		return p
	}
	if p.Col == 0 {
		return d.join(p.Line)
	}

	raw := d.rows[p.Line].raw
	space := highlight.IsSpace(raw[p.Col-1])
	start := p.Col - 1
	for start > 0 && highlight.IsSpace(raw[start-1]) == space {
		start--
	}
	d.rowDeleteRange(p.Line, start, p.Col)
	return Point{Line: p.Line, Col: start}
}

// join appends row at onto row at-1, removes row at, and returns the old
// end of row at-1.
func (d *Document) join(at int) Point {
	col := len(d.rows[at-1].raw)
	d.RowAppendString(at-1, d.rows[at].raw)
	d.DeleteRow(at)
	return Point{Line: at - 1, Col: col}
}

// countIndent counts the leading spaces and tabs of raw, at most limit.
func countIndent(raw []byte, limit int) int {
	n := 0
	for n < limit && n < len(raw) && (raw[n] == ' ' || raw[n] == '\t') {
		n++
	}
	return n
}
