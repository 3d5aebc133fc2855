// Package backend abstracts the terminal the editor draws on and reads
// keys from.
package backend

import "github.com/dshills/kiln/internal/renderer/core"

// EventType identifies the type of backend event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventInterrupt
)

// Event is a terminal event.
type Event struct {
	Type EventType

	// Key event fields. Rune is set for KeyRune.
	Key  Key
	Rune rune
	Mod  ModMask

	// Resize event fields.
	Width, Height int

	// Data is the payload of an interrupt event.
	Data any
}

// KeyEvent returns a key event for a special key.
func KeyEvent(k Key) Event {
	return Event{Type: EventKey, Key: k}
}

// RuneEvent returns a key event for a printable character.
func RuneEvent(r rune) Event {
	return Event{Type: EventKey, Key: KeyRune, Rune: r}
}

// InterruptEvent returns an interrupt event carrying data.
func InterruptEvent(data any) Event {
	return Event{Type: EventInterrupt, Data: data}
}

// Key is a logical key.
type Key int

// Keys the editor distinguishes. KeyBackspace covers both DEL (127) and
// the ASCII backspace byte (8) that some terminals send instead.
const (
	KeyNone Key = iota
	KeyRune
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlF
	KeyCtrlL
	KeyCtrlQ
	KeyCtrlS
	KeyCtrlW
)

var keyNames = map[Key]string{
	KeyNone:      "none",
	KeyRune:      "rune",
	KeyEscape:    "esc",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pgup",
	KeyPageDown:  "pgdn",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyCtrlF:     "ctrl-f",
	KeyCtrlL:     "ctrl-l",
	KeyCtrlQ:     "ctrl-q",
	KeyCtrlS:     "ctrl-s",
	KeyCtrlW:     "ctrl-w",
}

// String returns a short key name.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// ModMask represents modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
)

// Has returns true if the mask contains the given modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// Backend is a display surface with an event queue.
type Backend interface {
	// Init prepares the backend. It must be called first.
	Init() error

	// Shutdown restores the terminal.
	Shutdown()

	// Size returns the current dimensions in cells.
	Size() (width, height int)

	// SetCell sets one cell. Positions off screen are ignored.
	SetCell(x, y int, cell core.Cell)

	// Clear blanks the screen.
	Clear()

	// Show flushes pending changes to the display.
	Show()

	// ShowCursor places the cursor.
	ShowCursor(x, y int)

	// HideCursor hides the cursor.
	HideCursor()

	// PollEvent blocks until the next event.
	PollEvent() Event

	// PostEvent queues an event. It is safe to call from any goroutine.
	PostEvent(event Event)
}
