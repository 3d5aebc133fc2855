// Package renderer draws the editor screen: the visible document rows,
// the status bar and the message bar.
//
// The renderer owns the scroll offsets. Each frame it scrolls so the
// cursor is visible, then redraws every cell through a backend.Backend.
package renderer
