package document

import (
	"github.com/dshills/kiln/internal/renderer/highlight"
	"github.com/dshills/kiln/internal/syntax"
)

// Row is one line of a Document.
//
// The slices returned by Raw, Render and Highlight alias the row's storage
// and must not be modified. They are replaced on the next edit of the row.
type Row struct {
	index   int
	tabStop int

	raw    []byte
	render []byte
	hl     []highlight.Class

	// inComment is the start state of the last scan, openComment its result.
	inComment   bool
	openComment bool
}

func newRow(index, tabStop int, text []byte) *Row {
	r := &Row{
		index:   index,
		tabStop: tabStop,
		raw:     append([]byte(nil), text...),
	}
	r.update()
	return r
}

// Index returns the position of the row in its document.
func (r *Row) Index() int { return r.index }

// Size returns the length of the raw text.
func (r *Row) Size() int { return len(r.raw) }

// Raw returns the row text without its newline.
func (r *Row) Raw() []byte { return r.raw }

// Render returns the tab-expanded text.
func (r *Row) Render() []byte { return r.render }

// Highlight returns one class per Render byte.
func (r *Row) Highlight() []highlight.Class { return r.hl }

// OpenComment reports whether the row ends inside a block comment.
func (r *Row) OpenComment() bool { return r.openComment }

// String returns the raw text.
func (r *Row) String() string { return string(r.raw) }

// update rebuilds render from raw. The highlight is resized but not
// rescanned; callers follow with scan or Document.highlightFrom.
func (r *Row) update() {
	tabs := 0
	for _, c := range r.raw {
		if c == '\t' {
			tabs++
		}
	}

	render := make([]byte, 0, len(r.raw)+tabs*(r.tabStop-1))
	for _, c := range r.raw {
		if c != '\t' {
			render = append(render, c)
			continue
		}
		render = append(render, ' ')
		for len(render)%r.tabStop != 0 {
			render = append(render, ' ')
		}
	}
	r.render = render

	if len(r.hl) != len(render) {
		r.hl = make([]highlight.Class, len(render))
	}
}

// scan classifies the row starting in the given comment state and reports
// whether its open comment state changed.
func (r *Row) scan(p *syntax.Profile, inComment bool) bool {
	was := r.openComment
	r.hl, r.openComment = highlight.Scan(r.render, p, inComment, r.hl)
	r.inComment = inComment
	return was != r.openComment
}

func (r *Row) setRaw(raw []byte) {
	r.raw = raw
	r.update()
}
