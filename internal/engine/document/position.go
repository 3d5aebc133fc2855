package document

import "fmt"

// Point is a cursor position. Line is the row index (cy) and Col is the
// raw byte column (cx). Both are 0-indexed.
type Point struct {
	Line int
	Col  int
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Col)
}

// CxToRx converts a raw column to a rendered column. cx is clamped to the
// row size.
func (r *Row) CxToRx(cx int) int {
	cx = min(max(cx, 0), len(r.raw))
	ts := r.tabStop
	rx := 0
	for _, c := range r.raw[:cx] {
		if c == '\t' {
			rx += (ts - 1) - rx%ts
		}
		rx++
	}
	return rx
}

// RxToCx converts a rendered column back to the raw column whose cell
// covers it. Columns past the end of the line map to the row size.
func (r *Row) RxToCx(rx int) int {
	ts := r.tabStop
	cur := 0
	for cx, c := range r.raw {
		if c == '\t' {
			cur += (ts - 1) - cur%ts
		}
		cur++
		if cur > rx {
			return cx
		}
	}
	return len(r.raw)
}
