package highlight

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/kiln/internal/renderer/core"
)

// Theme maps highlight classes to display styles.
type Theme struct {
	// Name is the display name of the theme.
	Name string

	// Styles holds the style for each class. Classes without an entry
	// draw with the default style.
	Styles map[Class]core.Style
}

// StyleFor returns the style for a class.
func (t *Theme) StyleFor(c Class) core.Style {
	if t != nil {
		if style, ok := t.Styles[c]; ok {
			return style
		}
	}
	return core.DefaultStyle()
}

// Clone returns a deep copy of the theme.
func (t *Theme) Clone() *Theme {
	out := &Theme{Name: t.Name, Styles: make(map[Class]core.Style, len(t.Styles))}
	for c, s := range t.Styles {
		out.Styles[c] = s
	}
	return out
}

// WithColors returns a copy of the theme whose foreground colors are
// overridden by colors, keyed by class name ("keyword1", "string", ...)
// with "#rrggbb" values.
func (t *Theme) WithColors(colors map[string]string) (*Theme, error) {
	out := t.Clone()

	names := make([]string, 0, len(colors))
	for name := range colors {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		class, ok := ParseClass(name)
		if !ok {
			return nil, fmt.Errorf("unknown highlight class %q", name)
		}
		color, err := core.ColorFromHex(colors[name])
		if err != nil {
			return nil, fmt.Errorf("theme color for %s: %w", name, err)
		}
		style, ok := out.Styles[class]
		if !ok {
			style = core.DefaultStyle()
		}
		out.Styles[class] = style.WithForeground(color)
	}

	return out, nil
}

// ThemeByName returns a built-in theme. Matching ignores case.
func ThemeByName(name string) (*Theme, bool) {
	switch strings.ToLower(name) {
	case "", "ansi", "default":
		return DefaultTheme(), true
	case "monokai":
		return MonokaiTheme(), true
	case "dracula":
		return DraculaTheme(), true
	default:
		return nil, false
	}
}

// DefaultTheme draws every class with the terminal palette color given by
// Class.ANSIColor, so it looks the same on 16-color terminals.
func DefaultTheme() *Theme {
	styles := make(map[Class]core.Style, classCount)
	for _, c := range Classes() {
		if c == Normal {
			styles[c] = core.DefaultStyle()
			continue
		}
		styles[c] = core.NewStyle(core.ColorFromIndex(uint8(c.ANSIColor() - 30)))
	}
	return &Theme{Name: "ANSI", Styles: styles}
}

// MonokaiTheme returns a Monokai-inspired theme.
func MonokaiTheme() *Theme {
	pink := core.ColorFromRGB(249, 38, 114)
	green := core.ColorFromRGB(166, 226, 46)
	yellow := core.ColorFromRGB(230, 219, 116)
	blue := core.ColorFromRGB(102, 217, 239)
	purple := core.ColorFromRGB(174, 129, 255)
	comment := core.ColorFromRGB(117, 113, 94)

	return &Theme{
		Name: "Monokai",
		Styles: map[Class]core.Style{
			Normal:       core.DefaultStyle(),
			Comment:      core.NewStyle(comment),
			BlockComment: core.NewStyle(comment),
			Keyword1:     core.NewStyle(pink),
			Keyword2:     core.NewStyle(blue).Italic(),
			String:       core.NewStyle(yellow),
			Number:       core.NewStyle(purple),
			Match:        core.NewStyle(green).Reverse(),
		},
	}
}

// DraculaTheme returns a Dracula-inspired theme.
func DraculaTheme() *Theme {
	pink := core.ColorFromRGB(255, 121, 198)
	green := core.ColorFromRGB(80, 250, 123)
	yellow := core.ColorFromRGB(241, 250, 140)
	purple := core.ColorFromRGB(189, 147, 249)
	cyan := core.ColorFromRGB(139, 233, 253)
	comment := core.ColorFromRGB(98, 114, 164)

	return &Theme{
		Name: "Dracula",
		Styles: map[Class]core.Style{
			Normal:       core.DefaultStyle(),
			Comment:      core.NewStyle(comment),
			BlockComment: core.NewStyle(comment),
			Keyword1:     core.NewStyle(pink),
			Keyword2:     core.NewStyle(cyan).Italic(),
			String:       core.NewStyle(yellow),
			Number:       core.NewStyle(purple),
			Match:        core.NewStyle(green).Reverse(),
		},
	}
}
