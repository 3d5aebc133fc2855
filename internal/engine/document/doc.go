// Package document holds the editable text of one file as a slice of rows.
//
// Each Row keeps three views of a line:
//
//   - raw: the bytes as stored on disk, without the trailing newline
//   - render: raw with every tab expanded to the next tab stop
//   - highlight: one highlight.Class per render byte
//
// The Document owns row order, so it also owns the cross-row part of
// syntax highlighting. Whenever a row is re-scanned and its open block
// comment state changes, the following rows are re-scanned in order until
// one ends in the same state it did before.
//
// Basic usage:
//
//	doc := document.FromLines([]string{"int main() {", "}"})
//	doc.SelectSyntax(syntax.DefaultRegistry(), "main.c")
//
//	p := doc.InsertChar(document.Point{Line: 1, Col: 0}, ' ')
//	p = doc.InsertNewline(p)
//
//	buf := doc.Bytes() // every row followed by '\n'
//
// Coordinates:
//
// A Point addresses raw bytes (cx). Rendered columns (rx) are only used for
// display and are converted with Row.CxToRx and Row.RxToCx.
//
// A Document is not safe for concurrent use.
package document
