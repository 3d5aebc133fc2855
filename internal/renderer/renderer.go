package renderer

import (
	"fmt"
	"time"

	"github.com/dshills/kiln/internal/engine/document"
	"github.com/dshills/kiln/internal/renderer/backend"
	"github.com/dshills/kiln/internal/renderer/core"
	"github.com/dshills/kiln/internal/renderer/highlight"
)

// Defaults for Options.
const (
	DefaultStatusTimeout = 5 * time.Second
	DefaultVersion       = "0.0.1"
)

// Options configures the renderer.
type Options struct {
	// StatusTimeout is how long a status message stays visible.
	StatusTimeout time.Duration

	// Version is shown on the welcome line.
	Version string

	// Theme styles highlight classes. Nil uses highlight.DefaultTheme.
	Theme *highlight.Theme
}

// Message is a status message and the time it was set.
type Message struct {
	Text string
	Time time.Time
}

// Frame is everything needed to draw one screen.
type Frame struct {
	Doc      *document.Document
	Filename string
	Cursor   document.Point
	Message  Message
}

// Renderer draws frames to a backend.
type Renderer struct {
	backend backend.Backend
	opts    Options
	theme   *highlight.Theme
	now     func() time.Time

	width, height int

	rowoff int
	coloff int
	rx     int
}

// New creates a renderer sized to the backend.
func New(b backend.Backend, opts Options) *Renderer {
	if opts.StatusTimeout <= 0 {
		opts.StatusTimeout = DefaultStatusTimeout
	}
	if opts.Version == "" {
		opts.Version = DefaultVersion
	}
	r := &Renderer{
		backend: b,
		opts:    opts,
		theme:   opts.Theme,
		now:     time.Now,
	}
	if r.theme == nil {
		r.theme = highlight.DefaultTheme()
	}
	r.width, r.height = b.Size()
	return r
}

// SetTheme replaces the highlight theme.
func (r *Renderer) SetTheme(t *highlight.Theme) {
	if t == nil {
		t = highlight.DefaultTheme()
	}
	r.theme = t
}

// Theme returns the current theme.
func (r *Renderer) Theme() *highlight.Theme {
	return r.theme
}

// SetStatusTimeout changes how long status messages stay visible.
func (r *Renderer) SetStatusTimeout(d time.Duration) {
	if d > 0 {
		r.opts.StatusTimeout = d
	}
}

// Resize records a new screen size.
func (r *Renderer) Resize(width, height int) {
	r.width, r.height = width, height
}

// ScreenRows returns the number of text rows, excluding the two bars.
func (r *Renderer) ScreenRows() int {
	return max(r.height-2, 0)
}

// ScreenCols returns the number of text columns.
func (r *Renderer) ScreenCols() int {
	return max(r.width, 0)
}

// Offsets returns the first visible row and render column.
func (r *Renderer) Offsets() (rowoff, coloff int) {
	return r.rowoff, r.coloff
}

// SetOffsets restores previously saved scroll offsets.
func (r *Renderer) SetOffsets(rowoff, coloff int) {
	r.rowoff, r.coloff = max(rowoff, 0), max(coloff, 0)
}

// Scroll adjusts the offsets so the cursor is on screen and returns the
// cursor's render column.
func (r *Renderer) Scroll(doc *document.Document, cur document.Point) int {
	r.rx = 0
	if row := doc.Row(cur.Line); row != nil {
		r.rx = row.CxToRx(cur.Col)
	}

	rows, cols := r.ScreenRows(), r.ScreenCols()
	if cur.Line < r.rowoff {
		r.rowoff = cur.Line
	}
	if cur.Line >= r.rowoff+rows {
		r.rowoff = cur.Line - rows + 1
	}
	if r.rx < r.coloff {
		r.coloff = r.rx
	}
	if r.rx >= r.coloff+cols {
		r.coloff = r.rx - cols + 1
	}
	return r.rx
}

// Render scrolls and draws a frame.
func (r *Renderer) Render(f Frame) {
	r.Scroll(f.Doc, f.Cursor)

	r.backend.HideCursor()
	r.drawRows(f.Doc)
	r.drawStatusBar(f)
	r.drawMessageBar(f.Message)
	r.backend.ShowCursor(r.rx-r.coloff, f.Cursor.Line-r.rowoff)
	r.backend.Show()
}

func (r *Renderer) drawRows(doc *document.Document) {
	rows, cols := r.ScreenRows(), r.ScreenCols()
	for y := 0; y < rows; y++ {
		x := 0
		filerow := y + r.rowoff
		if row := doc.Row(filerow); row != nil {
			x = r.drawRow(y, row)
		} else if doc.NumRows() == 0 && y == rows/3 {
			x = r.drawWelcome(y)
		} else {
			r.put(0, y, '~', core.DefaultStyle())
			x = 1
		}
		r.clearTo(x, y, cols, core.DefaultStyle())
	}
}

// drawRow draws the visible slice of a row and returns the next column.
func (r *Renderer) drawRow(y int, row *document.Row) int {
	render, hl := row.Render(), row.Highlight()
	cols := r.ScreenCols()

	x := 0
	for j := r.coloff; j < len(render) && x < cols; j++ {
		c := render[j]
		if isControl(c) {
			r.put(x, y, controlSymbol(c), core.DefaultStyle().Reverse())
		} else {
			class := highlight.Normal
			if j < len(hl) {
				class = hl[j]
			}
			r.put(x, y, rune(c), r.theme.StyleFor(class))
		}
		x++
	}
	return x
}

func (r *Renderer) drawWelcome(y int) int {
	cols := r.ScreenCols()
	welcome := fmt.Sprintf("Kiln editor -- version %s", r.opts.Version)
	if len(welcome) > cols {
		welcome = welcome[:cols]
	}

	x := 0
	if padding := (cols - len(welcome)) / 2; padding > 0 {
		r.put(0, y, '~', core.DefaultStyle())
		x = padding
		r.clearTo(1, y, x, core.DefaultStyle())
	}
	return r.putString(x, y, welcome, core.DefaultStyle())
}

func (r *Renderer) drawStatusBar(f Frame) {
	y := r.ScreenRows()
	cols := r.ScreenCols()
	style := core.DefaultStyle().Reverse()

	left, right := StatusText(f)
	if len(left) > cols {
		left = left[:cols]
	}
	x := r.putString(0, y, left, style)
	for x < cols {
		if cols-x == len(right) {
			x = r.putString(x, y, right, style)
			break
		}
		r.put(x, y, ' ', style)
		x++
	}
}

// StatusText returns the left and right halves of the status bar.
func StatusText(f Frame) (left, right string) {
	name := f.Filename
	if name == "" {
		name = "[No Name]"
	}
	if len(name) > 20 {
		name = name[:20]
	}
	modified := ""
	if f.Doc.Dirty() > 0 {
		modified = "(modified)"
	}
	left = fmt.Sprintf("%s - %d lines %s", name, f.Doc.NumRows(), modified)

	ft := "no ft"
	if p := f.Doc.Syntax(); p != nil {
		ft = p.Name()
	}
	right = fmt.Sprintf("%s | %d/%d", ft, f.Cursor.Line+1, f.Doc.NumRows())
	return left, right
}

func (r *Renderer) drawMessageBar(m Message) {
	y := r.ScreenRows() + 1
	cols := r.ScreenCols()

	text := m.Text
	if len(text) > cols {
		text = text[:cols]
	}
	x := (cols - len(text)) / 2
	r.clearTo(0, y, x, core.DefaultStyle())
	if text != "" && r.now().Sub(m.Time) < r.opts.StatusTimeout {
		x = r.putString(x, y, text, core.DefaultStyle().Underline())
	}
	r.clearTo(x, y, cols, core.DefaultStyle())
}

func (r *Renderer) put(x, y int, ch rune, style core.Style) {
	r.backend.SetCell(x, y, core.Cell{Rune: ch, Style: style})
}

// putString draws s byte by byte and returns the next column.
func (r *Renderer) putString(x, y int, s string, style core.Style) int {
	for i := 0; i < len(s); i++ {
		r.put(x, y, rune(s[i]), style)
		x++
	}
	return x
}

func (r *Renderer) clearTo(from, y, to int, style core.Style) {
	for x := from; x < to; x++ {
		r.put(x, y, ' ', style)
	}
}

// isControl reports whether c is an ASCII control byte.
func isControl(c byte) bool {
	return c < ' ' || c == 0x7f
}

// controlSymbol returns the printable stand-in for a control byte:
// '@'+c for 0..26 and '?' otherwise.
func controlSymbol(c byte) rune {
	if c <= 26 {
		return rune('@' + c)
	}
	return '?'
}
