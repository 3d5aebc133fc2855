package app

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/dshills/kiln/internal/config"
	"github.com/dshills/kiln/internal/engine/document"
	"github.com/dshills/kiln/internal/renderer/backend"
	"github.com/dshills/kiln/internal/renderer/highlight"
)

func newTestEditor(t *testing.T, quitTimes int) (*Editor, *backend.NullBackend) {
	t.Helper()
	cfg := config.Default()
	cfg.Editor.QuitTimes = quitTimes

	b := backend.NewNullBackend(40, 10)
	e, err := New(Options{Backend: b, Config: cfg})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return e, b
}

func post(b *backend.NullBackend, events ...backend.Event) {
	for _, ev := range events {
		b.PostEvent(ev)
	}
}

func typeText(b *backend.NullBackend, s string) {
	for _, r := range s {
		b.PostEvent(backend.RuneEvent(r))
	}
}

func key(k backend.Key) backend.Event {
	return backend.KeyEvent(k)
}

func run(t *testing.T, e *Editor) {
	t.Helper()
	if err := e.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}

func rows(doc *document.Document) []string {
	out := make([]string, doc.NumRows())
	for i := range out {
		out[i] = doc.Row(i).String()
	}
	return out
}

func TestNewRequiresBackend(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Error("New() without a backend should fail")
	}
}

func TestEditingSession(t *testing.T) {
	e, b := newTestEditor(t, 0)

	typeText(b, "hello")
	post(b, key(backend.KeyEnter))
	typeText(b, "wor")
	post(b, key(backend.KeyTab))
	typeText(b, "ld")
	post(b, backend.RuneEvent('é'), key(backend.KeyCtrlQ))
	run(t, e)

	got := rows(e.Document())
	if len(got) != 2 || got[0] != "hello" || got[1] != "wor\tld" {
		t.Errorf("rows = %q", got)
	}
	if cur := e.Cursor(); cur != (document.Point{Line: 1, Col: 6}) {
		t.Errorf("cursor = %v, want 1:6", cur)
	}
	if b.Line(0) != "hello" || b.Line(1) != "wor ld" {
		t.Errorf("screen = %q / %q", b.Line(0), b.Line(1))
	}
}

func TestStartupMessage(t *testing.T) {
	e, _ := newTestEditor(t, 0)
	if e.Message() != helpMessage {
		t.Errorf("Message() = %q", e.Message())
	}
}

func TestQuitConfirmation(t *testing.T) {
	e, _ := newTestEditor(t, 2)
	quit := key(backend.KeyCtrlQ)

	if err := e.processKey(quit); err != ErrQuit {
		t.Fatalf("clean document should quit at once, got %v", err)
	}

	e.processKey(backend.RuneEvent('x'))
	for _, want := range []string{"Press Ctrl-Q 2 more times", "Press Ctrl-Q 1 more times"} {
		if err := e.processKey(quit); err != nil {
			t.Fatalf("processKey() = %v, want nil", err)
		}
		if !strings.Contains(e.Message(), want) {
			t.Errorf("Message() = %q, want %q", e.Message(), want)
		}
	}
	if err := e.processKey(quit); err != ErrQuit {
		t.Errorf("third press = %v, want ErrQuit", err)
	}

	// Any other key resets the count.
	e.quitTimes = 0
	e.processKey(key(backend.KeyLeft))
	if e.quitTimes != 2 {
		t.Errorf("quitTimes = %d, want 2", e.quitTimes)
	}
}

func TestMoveCursor(t *testing.T) {
	tests := []struct {
		name  string
		start document.Point
		keys  []backend.Key
		want  document.Point
	}{
		{"left wraps to previous row end", document.Point{Line: 1, Col: 0}, []backend.Key{backend.KeyLeft}, document.Point{Line: 0, Col: 5}},
		{"left at origin", document.Point{}, []backend.Key{backend.KeyLeft}, document.Point{}},
		{"right wraps to next row", document.Point{Line: 0, Col: 5}, []backend.Key{backend.KeyRight}, document.Point{Line: 1, Col: 0}},
		{"right onto virtual row", document.Point{Line: 2, Col: 4}, []backend.Key{backend.KeyRight}, document.Point{Line: 3, Col: 0}},
		{"right past end", document.Point{Line: 3, Col: 0}, []backend.Key{backend.KeyRight}, document.Point{Line: 3, Col: 0}},
		{"down clamps column", document.Point{Line: 0, Col: 5}, []backend.Key{backend.KeyDown}, document.Point{Line: 1, Col: 2}},
		{"up at top", document.Point{Line: 0, Col: 1}, []backend.Key{backend.KeyUp}, document.Point{Line: 0, Col: 1}},
		{"down to virtual row", document.Point{Line: 2, Col: 3}, []backend.Key{backend.KeyDown, backend.KeyDown}, document.Point{Line: 3, Col: 0}},
		{"home", document.Point{Line: 0, Col: 3}, []backend.Key{backend.KeyHome}, document.Point{Line: 0, Col: 0}},
		{"end", document.Point{Line: 2, Col: 0}, []backend.Key{backend.KeyEnd}, document.Point{Line: 2, Col: 4}},
		{"end on virtual row", document.Point{Line: 3, Col: 0}, []backend.Key{backend.KeyEnd}, document.Point{Line: 3, Col: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEditor(t, 0)
			e.doc = document.FromLines([]string{"hello", "ab", "wxyz"})
			e.cur = tt.start

			for _, k := range tt.keys {
				if err := e.processKey(key(k)); err != nil {
					t.Fatalf("processKey(%v) = %v", k, err)
				}
			}
			if e.cur != tt.want {
				t.Errorf("cursor = %v, want %v", e.cur, tt.want)
			}
		})
	}
}

func TestDeleteKeys(t *testing.T) {
	tests := []struct {
		name  string
		start document.Point
		k     backend.Key
		want  []string
		cur   document.Point
	}{
		{"backspace", document.Point{Line: 0, Col: 3}, backend.KeyBackspace, []string{"fo bar", "baz"}, document.Point{Line: 0, Col: 2}},
		{"delete", document.Point{Line: 0, Col: 0}, backend.KeyDelete, []string{"oo bar", "baz"}, document.Point{Line: 0, Col: 0}},
		{"delete joins rows", document.Point{Line: 0, Col: 7}, backend.KeyDelete, []string{"foo barbaz"}, document.Point{Line: 0, Col: 7}},
		{"ctrl-w", document.Point{Line: 0, Col: 7}, backend.KeyCtrlW, []string{"foo ", "baz"}, document.Point{Line: 0, Col: 4}},
		{"backspace at row end", document.Point{Line: 0, Col: 7}, backend.KeyBackspace, []string{"foo ba", "baz"}, document.Point{Line: 0, Col: 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEditor(t, 0)
			e.doc = document.FromLines([]string{"foo bar", "baz"})
			e.cur = tt.start

			e.processKey(key(tt.k))

			if got := rows(e.doc); strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("rows = %q, want %q", got, tt.want)
			}
			if e.cur != tt.cur {
				t.Errorf("cursor = %v, want %v", e.cur, tt.cur)
			}
		})
	}
}

func TestIgnoredKeys(t *testing.T) {
	e, _ := newTestEditor(t, 0)
	e.doc = document.FromLines([]string{"abc"})

	for _, ev := range []backend.Event{key(backend.KeyCtrlL), key(backend.KeyEscape), backend.RuneEvent(0x1b), backend.RuneEvent('ü')} {
		e.processKey(ev)
	}
	if e.doc.Dirty() != 0 || e.doc.Row(0).String() != "abc" {
		t.Error("ignored keys should not edit the document")
	}
}

func TestPageDown(t *testing.T) {
	e, b := newTestEditor(t, 0)
	lines := make([]string, 30)
	for i := range lines {
		lines[i] = "line"
	}
	e.doc = document.FromLines(lines)

	post(b, key(backend.KeyPageDown), key(backend.KeyCtrlQ))
	run(t, e)

	// 10 screen lines leave 8 text rows: the cursor goes to the bottom of
	// the viewport, then a screenful further.
	if e.cur.Line != 15 {
		t.Errorf("cursor line = %d, want 15", e.cur.Line)
	}
}

func TestPageUp(t *testing.T) {
	e, b := newTestEditor(t, 0)
	lines := make([]string, 30)
	for i := range lines {
		lines[i] = "line"
	}
	e.doc = document.FromLines(lines)
	e.cur = document.Point{Line: 20}

	post(b, key(backend.KeyPageUp), key(backend.KeyCtrlQ))
	run(t, e)

	// Scrolling put row 20 at the bottom, so the viewport starts at 13.
	if e.cur.Line != 5 {
		t.Errorf("cursor line = %d, want 5", e.cur.Line)
	}
}

func TestResizeEvent(t *testing.T) {
	e, b := newTestEditor(t, 0)

	b.Resize(30, 6)
	post(b, key(backend.KeyCtrlQ))
	run(t, e)

	if e.renderer.ScreenRows() != 4 || e.renderer.ScreenCols() != 30 {
		t.Errorf("screen = %dx%d, want 4x30", e.renderer.ScreenRows(), e.renderer.ScreenCols())
	}
}

func TestClosedBackendQuits(t *testing.T) {
	e, b := newTestEditor(t, 0)
	post(b, backend.Event{Type: backend.EventNone})
	run(t, e)
}

func TestFind(t *testing.T) {
	lines := []string{"alpha", "beta", "gamma beta"}

	tests := []struct {
		name    string
		events  func(b *backend.NullBackend)
		want    document.Point
		message string
	}{
		{
			name: "enter keeps match",
			events: func(b *backend.NullBackend) {
				post(b, key(backend.KeyCtrlF))
				typeText(b, "beta")
				post(b, key(backend.KeyEnter))
			},
			want: document.Point{Line: 1, Col: 0},
		},
		{
			name: "arrow to next match",
			events: func(b *backend.NullBackend) {
				post(b, key(backend.KeyCtrlF))
				typeText(b, "beta")
				post(b, key(backend.KeyDown), key(backend.KeyEnter))
			},
			want: document.Point{Line: 2, Col: 6},
		},
		{
			name: "arrow back wraps",
			events: func(b *backend.NullBackend) {
				post(b, key(backend.KeyCtrlF))
				typeText(b, "beta")
				post(b, key(backend.KeyUp), key(backend.KeyEnter))
			},
			want: document.Point{Line: 2, Col: 6},
		},
		{
			name: "escape restores cursor",
			events: func(b *backend.NullBackend) {
				post(b, key(backend.KeyDown), key(backend.KeyRight), key(backend.KeyCtrlF))
				typeText(b, "gamma")
				post(b, key(backend.KeyEscape))
			},
			want: document.Point{Line: 1, Col: 1},
		},
		{
			name: "not found",
			events: func(b *backend.NullBackend) {
				post(b, key(backend.KeyCtrlF))
				typeText(b, "zzz")
				post(b, key(backend.KeyEnter))
			},
			want:    document.Point{},
			message: "Match not found: zzz",
		},
		{
			name: "backspace edits query",
			events: func(b *backend.NullBackend) {
				post(b, key(backend.KeyCtrlF))
				typeText(b, "gx")
				post(b, key(backend.KeyBackspace), key(backend.KeyEnter))
			},
			want: document.Point{Line: 2, Col: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, b := newTestEditor(t, 0)
			e.doc = document.FromLines(lines)

			tt.events(b)
			post(b, key(backend.KeyCtrlQ))
			run(t, e)

			if e.cur != tt.want {
				t.Errorf("cursor = %v, want %v", e.cur, tt.want)
			}
			if tt.message != "" && e.Message() != tt.message {
				t.Errorf("Message() = %q, want %q", e.Message(), tt.message)
			}
			for i := 0; i < e.doc.NumRows(); i++ {
				for _, c := range e.doc.Row(i).Highlight() {
					if c == highlight.Match {
						t.Fatalf("row %d still has a match overlay", i)
					}
				}
			}
			if e.doc.Dirty() != 0 {
				t.Error("find should not modify the document")
			}
		})
	}
}

func TestFindDefersInterrupts(t *testing.T) {
	e, b := newTestEditor(t, 0)
	e.doc = document.FromLines([]string{"abc"})

	post(b, key(backend.KeyCtrlF), backend.InterruptEvent("other"), key(backend.KeyEscape), key(backend.KeyCtrlQ))
	run(t, e)

	if len(e.pending) != 0 {
		t.Errorf("pending = %v, want drained", e.pending)
	}
}

func TestOperationError(t *testing.T) {
	err := &OperationError{Op: "save", Target: "/x", Err: os.ErrPermission}
	if err.Error() != "save /x: permission denied" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, os.ErrPermission) {
		t.Error("errors.Is should see the wrapped cause")
	}

	bare := &OperationError{Op: "init"}
	if bare.Error() != "init" {
		t.Errorf("Error() = %q", bare.Error())
	}

	var nilErr *OperationError
	if nilErr.Error() != "" || nilErr.Unwrap() != nil {
		t.Error("nil OperationError should be empty")
	}
}
