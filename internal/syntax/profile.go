// Package syntax provides filetype profiles and the registry that selects
// one for a filename.
//
// A Profile is immutable once constructed. Profiles are shared read-only
// between documents and are never modified by the highlighter.
package syntax

import (
	"path/filepath"
	"strings"
)

// Flags toggles optional highlighting rules for a profile.
type Flags uint8

// Profile flags.
const (
	HighlightNumbers Flags = 1 << iota
	HighlightStrings
)

// Has returns true if f contains flag.
func (f Flags) Has(flag Flags) bool {
	return f&flag != 0
}

// SecondaryMarker terminates the source form of a keyword that belongs
// to the secondary (type) class, e.g. "int|".
const SecondaryMarker = '|'

// Keyword is a parsed keyword entry.
type Keyword struct {
	// Text is the keyword without the secondary marker.
	Text string

	// Secondary is true for type-like keywords.
	Secondary bool
}

// ParseKeyword parses the source form of a keyword.
func ParseKeyword(src string) Keyword {
	if n := len(src); n > 0 && src[n-1] == SecondaryMarker {
		return Keyword{Text: src[:n-1], Secondary: true}
	}
	return Keyword{Text: src}
}

// Definition is the declarative description of a filetype.
type Definition struct {
	// Name is the filetype name shown in the status bar.
	Name string

	// Match holds patterns tested against a filename. A pattern starting
	// with '.' must equal the extension; any other pattern matches as a
	// substring of the filename.
	Match []string

	// Keywords in source form. A trailing SecondaryMarker selects the
	// secondary class.
	Keywords []string

	// LineComment starts a comment running to the end of the row.
	LineComment string

	// BlockCommentStart and BlockCommentEnd delimit multi-row comments.
	// Block comments are only recognized when both are set.
	BlockCommentStart string
	BlockCommentEnd   string

	Flags Flags
}

// Profile is a compiled, read-only Definition.
type Profile struct {
	def      Definition
	keywords []Keyword
}

// NewProfile compiles a definition. Empty keywords are dropped.
func NewProfile(def Definition) *Profile {
	p := &Profile{
		def: Definition{
			Name:              def.Name,
			Match:             append([]string(nil), def.Match...),
			Keywords:          append([]string(nil), def.Keywords...),
			LineComment:       def.LineComment,
			BlockCommentStart: def.BlockCommentStart,
			BlockCommentEnd:   def.BlockCommentEnd,
			Flags:             def.Flags,
		},
		keywords: make([]Keyword, 0, len(def.Keywords)),
	}
	for _, src := range def.Keywords {
		kw := ParseKeyword(src)
		if kw.Text == "" {
			continue
		}
		p.keywords = append(p.keywords, kw)
	}
	return p
}

// Name returns the filetype name.
func (p *Profile) Name() string {
	return p.def.Name
}

// Definition returns a copy of the definition the profile was built from.
func (p *Profile) Definition() Definition {
	d := p.def
	d.Match = append([]string(nil), p.def.Match...)
	d.Keywords = append([]string(nil), p.def.Keywords...)
	return d
}

// Keywords returns the parsed keywords in declaration order.
// The returned slice must not be modified.
func (p *Profile) Keywords() []Keyword {
	return p.keywords
}

// LineComment returns the single-line comment marker, or "".
func (p *Profile) LineComment() string {
	return p.def.LineComment
}

// BlockComment returns the block comment delimiters and whether both are set.
func (p *Profile) BlockComment() (start, end string, ok bool) {
	start, end = p.def.BlockCommentStart, p.def.BlockCommentEnd
	return start, end, start != "" && end != ""
}

// Flags returns the profile flags.
func (p *Profile) Flags() Flags {
	return p.def.Flags
}

// Matches reports whether any of the profile's patterns match filename.
func (p *Profile) Matches(filename string) bool {
	if filename == "" {
		return false
	}
	ext := filepath.Ext(filename)
	for _, pattern := range p.def.Match {
		if pattern == "" {
			continue
		}
		if pattern[0] == '.' {
			if ext != "" && ext == pattern {
				return true
			}
			continue
		}
		if strings.Contains(filename, pattern) {
			return true
		}
	}
	return false
}
