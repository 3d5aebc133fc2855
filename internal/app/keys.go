package app

import (
	"go.uber.org/zap"

	"github.com/dshills/kiln/internal/renderer/backend"
)

// processKey applies one key press to the document. It returns ErrQuit
// when the editor should exit.
func (e *Editor) processKey(ev backend.Event) error {
	switch ev.Key {
	case backend.KeyEnter:
		e.cur = e.doc.InsertNewline(e.cur)

	case backend.KeyCtrlS:
		if err := e.Save(); err != nil {
			e.logger.Debug("save failed", zap.Error(err))
		}

	case backend.KeyCtrlQ:
		if e.doc.Dirty() > 0 && e.quitTimes > 0 {
			e.setStatus("WARNING!!! File has unsaved changes. Press Ctrl-Q %d more times to quit.", e.quitTimes)
			e.quitTimes--
			return nil
		}
		return ErrQuit

	case backend.KeyHome:
		e.cur.Col = 0

	case backend.KeyEnd:
		if row := e.doc.Row(e.cur.Line); row != nil {
			e.cur.Col = row.Size()
		}

	case backend.KeyCtrlF:
		e.find()

	case backend.KeyBackspace:
		e.cur = e.doc.DeleteChar(e.cur)

	case backend.KeyDelete:
		e.moveCursor(backend.KeyRight)
		e.cur = e.doc.DeleteChar(e.cur)

	case backend.KeyCtrlW:
		e.cur = e.doc.DeleteWord(e.cur)

	case backend.KeyPageUp, backend.KeyPageDown:
		e.page(ev.Key)

	case backend.KeyUp, backend.KeyDown, backend.KeyLeft, backend.KeyRight:
		e.moveCursor(ev.Key)

	case backend.KeyCtrlL, backend.KeyEscape:

	case backend.KeyTab:
		e.cur = e.doc.InsertChar(e.cur, '\t')

	case backend.KeyRune:
		if c, ok := printable(ev.Rune); ok {
			e.cur = e.doc.InsertChar(e.cur, c)
		}
	}

	e.quitTimes = e.cfg.Editor.QuitTimes
	return nil
}

// printable reports whether r is a printable ASCII character.
func printable(r rune) (byte, bool) {
	if r < ' ' || r >= 0x7f {
		return 0, false
	}
	return byte(r), true
}

// moveCursor moves one step. Left and Right wrap across row ends; the
// column is clamped to the new row's length.
func (e *Editor) moveCursor(k backend.Key) {
	row := e.doc.Row(e.cur.Line)

	switch k {
	case backend.KeyLeft:
		if e.cur.Col != 0 {
			e.cur.Col--
		} else if e.cur.Line > 0 {
			e.cur.Line--
			e.cur.Col = e.doc.Row(e.cur.Line).Size()
		}
	case backend.KeyRight:
		if row != nil && e.cur.Col < row.Size() {
			e.cur.Col++
		} else if row != nil {
			e.cur.Line++
			e.cur.Col = 0
		}
	case backend.KeyUp:
		if e.cur.Line != 0 {
			e.cur.Line--
		}
	case backend.KeyDown:
		if e.cur.Line < e.doc.NumRows() {
			e.cur.Line++
		}
	}

	rowLen := 0
	if row := e.doc.Row(e.cur.Line); row != nil {
		rowLen = row.Size()
	}
	if e.cur.Col > rowLen {
		e.cur.Col = rowLen
	}
}

// page moves the cursor a screenful from the edge of the viewport.
func (e *Editor) page(k backend.Key) {
	rows := e.renderer.ScreenRows()
	rowoff, _ := e.renderer.Offsets()

	step := backend.KeyDown
	if k == backend.KeyPageUp {
		step = backend.KeyUp
		e.cur.Line = rowoff
	} else {
		e.cur.Line = min(rowoff+rows-1, e.doc.NumRows())
	}

	for range rows {
		e.moveCursor(step)
	}
}
