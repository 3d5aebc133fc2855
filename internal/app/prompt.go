package app

import "github.com/dshills/kiln/internal/renderer/backend"

// promptFunc sees the buffer after every key the prompt reads.
type promptFunc func(input string, ev backend.Event)

// prompt reads a line in the message bar. format must contain one %s for
// the input so far. It returns false if the user pressed Escape. Enter is
// accepted only with non-empty input.
//
// Interrupts read while prompting are queued for the main loop.
func (e *Editor) prompt(format string, callback promptFunc) (string, bool) {
	var buf []byte

	for {
		e.setStatus(format, buf)
		e.refresh()

		ev := e.backend.PollEvent()
		switch ev.Type {
		case backend.EventResize:
			e.renderer.Resize(ev.Width, ev.Height)
			continue
		case backend.EventInterrupt:
			e.pending = append(e.pending, ev)
			continue
		case backend.EventNone:
			e.pending = append(e.pending, ev)
			ev = backend.KeyEvent(backend.KeyEscape)
		}

		switch ev.Key {
		case backend.KeyEscape:
			e.setStatus("")
			if callback != nil {
				callback(string(buf), ev)
			}
			return "", false

		case backend.KeyEnter:
			if len(buf) != 0 {
				e.setStatus("")
				if callback != nil {
					callback(string(buf), ev)
				}
				return string(buf), true
			}

		case backend.KeyBackspace:
			if len(buf) != 0 {
				buf = buf[:len(buf)-1]
			}

		case backend.KeyRune:
			if c, ok := printable(ev.Rune); ok {
				buf = append(buf, c)
			}
		}

		if callback != nil {
			callback(string(buf), ev)
		}
	}
}
