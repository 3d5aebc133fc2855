package highlight

import (
	"strings"

	"github.com/dshills/kiln/internal/syntax"
)

// separators is the fixed punctuation set that ends a word.
const separators = ",.()+-/*=~%<>[];"

// IsSpace reports whether c is ASCII whitespace.
func IsSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// IsSeparator reports whether c ends a word for keyword and number
// recognition.
func IsSeparator(c byte) bool {
	return IsSpace(c) || c == 0 || strings.IndexByte(separators, c) >= 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Scan classifies render and returns one class per byte together with
// whether the row ends inside an open block comment.
//
// inComment is the open-comment state the previous row ended with. dst is
// reused when it has enough capacity. A nil profile yields an all-Normal
// row that never leaves a comment open.
func Scan(render []byte, p *syntax.Profile, inComment bool, dst []Class) ([]Class, bool) {
	hl := resize(dst, len(render))
	if p == nil {
		return hl, false
	}

	keywords := p.Keywords()
	lineComment := p.LineComment()
	blockStart, blockEnd, block := p.BlockComment()
	flags := p.Flags()

	inComment = inComment && block
	prevSep := true
	var inString byte

	i := 0
	for i < len(render) {
		c := render[i]
		prev := Normal
		if i > 0 {
			prev = hl[i-1]
		}

		if block && inString == 0 {
			if inComment {
				hl[i] = BlockComment
				if hasPrefixAt(render, i, blockEnd) {
					fill(hl[i:i+len(blockEnd)], BlockComment)
					i += len(blockEnd)
					inComment = false
					prevSep = true
					continue
				}
				i++
				continue
			} else if hasPrefixAt(render, i, blockStart) {
				fill(hl[i:i+len(blockStart)], BlockComment)
				i += len(blockStart)
				inComment = true
				continue
			}
		}

		if lineComment != "" && inString == 0 && hasPrefixAt(render, i, lineComment) {
			fill(hl[i:], Comment)
			break
		}

		if flags.Has(syntax.HighlightStrings) {
			if inString != 0 {
				hl[i] = String
				if c == '\\' && i+1 < len(render) {
					hl[i+1] = String
					i += 2
					continue
				}
				if c == inString {
					inString = 0
				}
				i++
				prevSep = true
				continue
			} else if c == '"' || c == '\'' {
				inString = c
				hl[i] = String
				i++
				continue
			}
		}

		if flags.Has(syntax.HighlightNumbers) &&
			((isDigit(c) && (prevSep || prev == Number)) || (c == '.' && prev == Number)) {
			hl[i] = Number
			i++
			prevSep = false
			continue
		}

		if prevSep {
			if n, class, ok := matchKeyword(render, i, keywords); ok {
				fill(hl[i:i+n], class)
				i += n
				prevSep = false
				continue
			}
		}

		prevSep = IsSeparator(c)
		i++
	}

	return hl, inComment
}

// matchKeyword finds the first keyword starting at render[i] that is
// followed by a separator or the end of the row.
func matchKeyword(render []byte, i int, keywords []syntax.Keyword) (int, Class, bool) {
	for _, kw := range keywords {
		n := len(kw.Text)
		if !hasPrefixAt(render, i, kw.Text) {
			continue
		}
		if i+n < len(render) && !IsSeparator(render[i+n]) {
			continue
		}
		if kw.Secondary {
			return n, Keyword2, true
		}
		return n, Keyword1, true
	}
	return 0, Normal, false
}

func hasPrefixAt(b []byte, i int, prefix string) bool {
	if prefix == "" || len(b)-i < len(prefix) {
		return false
	}
	return string(b[i:i+len(prefix)]) == prefix
}

func fill(hl []Class, c Class) {
	for i := range hl {
		hl[i] = c
	}
}

func resize(dst []Class, n int) []Class {
	if cap(dst) < n {
		return make([]Class, n)
	}
	dst = dst[:n]
	clear(dst)
	return dst
}
