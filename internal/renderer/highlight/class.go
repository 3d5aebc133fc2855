// Package highlight classifies rendered row text for syntax highlighting.
//
// Scan is a single left-to-right pass over one row. The only state that
// crosses rows is whether the row ends inside an unterminated block
// comment; callers feed that into the next row's scan.
package highlight

// Class is the highlight classification of one rendered byte.
type Class uint8

// Highlight classes.
const (
	Normal Class = iota
	Comment
	BlockComment
	Keyword1
	Keyword2
	String
	Number
	Match

	classCount
)

var classNames = [classCount]string{
	Normal:       "normal",
	Comment:      "comment",
	BlockComment: "block_comment",
	Keyword1:     "keyword1",
	Keyword2:     "keyword2",
	String:       "string",
	Number:       "number",
	Match:        "match",
}

// String returns the configuration name of the class.
func (c Class) String() string {
	if c < classCount {
		return classNames[c]
	}
	return "unknown"
}

// ParseClass returns the class with the given configuration name.
func ParseClass(name string) (Class, bool) {
	for i, n := range classNames {
		if n == name {
			return Class(i), true
		}
	}
	return Normal, false
}

// Classes returns every class in declaration order.
func Classes() []Class {
	out := make([]Class, classCount)
	for i := range out {
		out[i] = Class(i)
	}
	return out
}

// ANSIColor returns the SGR foreground code used to draw the class on a
// plain ANSI terminal.
func (c Class) ANSIColor() int {
	switch c {
	case Comment, BlockComment:
		return 36
	case Keyword1:
		return 33
	case Keyword2, Number:
		return 32
	case String:
		return 35
	case Match:
		return 34
	default:
		return 37
	}
}
