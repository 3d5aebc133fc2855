package document

import "github.com/dshills/kiln/internal/syntax"

// DefaultTabStop is the tab stop used when none is configured.
const DefaultTabStop = 4

// Option configures a Document.
type Option func(*Document)

// WithTabStop sets the tab stop. Values below 1 are ignored.
func WithTabStop(n int) Option {
	return func(d *Document) {
		if n > 0 {
			d.tabStop = n
		}
	}
}

// WithSyntax sets the initial filetype profile.
func WithSyntax(p *syntax.Profile) Option {
	return func(d *Document) {
		d.syntax = p
	}
}
