// Package core holds the drawing types shared by the renderer and its
// backends.
package core

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Attribute is a set of text attributes.
type Attribute uint16

// Text attribute flags.
const (
	AttrNone      Attribute = 0
	AttrBold      Attribute = 1 << iota
	AttrDim                 // faint text
	AttrItalic              // italic text
	AttrUnderline           // underlined text
	AttrReverse             // swap fg/bg
)

// Has reports whether the set contains attr.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// Color is either the terminal default, a palette index, or a true color.
type Color struct {
	R, G, B uint8
	// Indexed means R holds a palette index and G, B are ignored.
	Indexed bool
	// Default is the terminal's own color.
	Default bool
}

// ColorDefault is the terminal's default color.
var ColorDefault = Color{Default: true}

// ColorFromRGB creates a true color.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromIndex creates a palette color.
func ColorFromIndex(index uint8) Color {
	return Color{R: index, Indexed: true}
}

// ColorFromHex parses "#rgb" or "#rrggbb". The leading '#' is optional.
func ColorFromHex(hex string) (Color, error) {
	hex = strings.TrimSpace(hex)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return ColorFromRGB(r, g, b), nil
}

// IsDefault reports whether c is the terminal default.
func (c Color) IsDefault() bool {
	return c.Default
}

// Equals compares two colors, ignoring fields the mode does not use.
func (c Color) Equals(other Color) bool {
	switch {
	case c.Default || other.Default:
		return c.Default == other.Default
	case c.Indexed != other.Indexed:
		return false
	case c.Indexed:
		return c.R == other.R
	default:
		return c.R == other.R && c.G == other.G && c.B == other.B
	}
}

// String returns "default", "idx(n)" or "#RRGGBB".
func (c Color) String() string {
	switch {
	case c.Default:
		return "default"
	case c.Indexed:
		return fmt.Sprintf("idx(%d)", c.R)
	default:
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
}

// Style is the visual style of a cell.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultStyle uses the terminal defaults with no attributes.
func DefaultStyle() Style {
	return Style{Foreground: ColorDefault, Background: ColorDefault}
}

// NewStyle creates a style with the given foreground.
func NewStyle(fg Color) Style {
	return Style{Foreground: fg, Background: ColorDefault}
}

// WithForeground returns s with a new foreground.
func (s Style) WithForeground(fg Color) Style {
	s.Foreground = fg
	return s
}

// WithBackground returns s with a new background.
func (s Style) WithBackground(bg Color) Style {
	s.Background = bg
	return s
}

// Bold adds the bold attribute.
func (s Style) Bold() Style {
	s.Attributes |= AttrBold
	return s
}

// Italic adds the italic attribute.
func (s Style) Italic() Style {
	s.Attributes |= AttrItalic
	return s
}

// Underline adds the underline attribute.
func (s Style) Underline() Style {
	s.Attributes |= AttrUnderline
	return s
}

// Reverse adds the reverse video attribute.
func (s Style) Reverse() Style {
	s.Attributes |= AttrReverse
	return s
}

// Equals compares two styles.
func (s Style) Equals(other Style) bool {
	return s.Foreground.Equals(other.Foreground) &&
		s.Background.Equals(other.Background) &&
		s.Attributes == other.Attributes
}
