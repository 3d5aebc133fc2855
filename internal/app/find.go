package app

import (
	"github.com/dshills/kiln/internal/engine/document"
	"github.com/dshills/kiln/internal/engine/search"
	"github.com/dshills/kiln/internal/renderer/backend"
)

// find runs an incremental search. Arrows move between matches; Escape
// restores the cursor and scroll position.
func (e *Editor) find() {
	savedCur := e.cur
	savedRowoff, savedColoff := e.renderer.Offsets()

	session := search.NewSession(e.doc)
	found := false

	query, ok := e.prompt("Search: %s (Use ESC/Arrows/Enter)", func(input string, ev backend.Event) {
		var m search.Match

		switch ev.Key {
		case backend.KeyEnter, backend.KeyEscape:
			session.Done()
			return
		case backend.KeyRight, backend.KeyDown:
			m, found = session.Next(input)
		case backend.KeyLeft, backend.KeyUp:
			m, found = session.Prev(input)
		default:
			m, found = session.Edit(input)
		}

		if found {
			e.cur = document.Point{Line: m.Line, Col: m.Col}
			_, coloff := e.renderer.Offsets()
			e.renderer.SetOffsets(m.Line, coloff)
		}
	})

	if !ok {
		e.cur = savedCur
		e.renderer.SetOffsets(savedRowoff, savedColoff)
		return
	}
	if !found {
		e.setStatus("Match not found: %s", query)
	}
}
