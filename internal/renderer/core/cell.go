package core

// Cell is one terminal cell.
type Cell struct {
	Rune  rune
	Style Style
}

// EmptyCell is a blank cell in the default style.
func EmptyCell() Cell {
	return Cell{Rune: ' ', Style: DefaultStyle()}
}

// Size is a screen size in cells.
type Size struct {
	Rows, Cols int
}
