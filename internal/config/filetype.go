package config

import (
	"fmt"

	"github.com/dshills/kiln/internal/syntax"
)

// decodeFiletypes reads the filetypes array. Entries in types become
// secondary keywords.
func decodeFiletypes(v values) ([]syntax.Definition, error) {
	val := v.get("filetypes")
	if val == nil {
		return nil, nil
	}
	list, ok := val.([]any)
	if !ok {
		return nil, typeError("filetypes", "array of tables", val)
	}

	defs := make([]syntax.Definition, 0, len(list))
	for i, item := range list {
		path := fmt.Sprintf("filetypes[%d]", i)
		m, ok := item.(map[string]any)
		if !ok {
			return nil, typeError(path, "table", item)
		}
		def, err := decodeFiletype(path, values(m))
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func decodeFiletype(path string, v values) (syntax.Definition, error) {
	var def syntax.Definition
	var err error

	if def.Name, err = v.getString("name"); err != nil {
		return def, prefixed(err, path)
	}
	if def.Match, err = v.getStringSlice("match"); err != nil {
		return def, prefixed(err, path)
	}
	if def.Keywords, err = v.getStringSlice("keywords"); err != nil {
		return def, prefixed(err, path)
	}
	types, err := v.getStringSlice("types")
	if err != nil {
		return def, prefixed(err, path)
	}
	for _, t := range types {
		def.Keywords = append(def.Keywords, t+string(syntax.SecondaryMarker))
	}
	if def.LineComment, err = v.getString("line_comment"); err != nil {
		return def, prefixed(err, path)
	}
	if def.BlockCommentStart, err = v.getString("block_comment_start"); err != nil {
		return def, prefixed(err, path)
	}
	if def.BlockCommentEnd, err = v.getString("block_comment_end"); err != nil {
		return def, prefixed(err, path)
	}

	numbers, err := v.getBool("numbers", true)
	if err != nil {
		return def, prefixed(err, path)
	}
	strs, err := v.getBool("strings", true)
	if err != nil {
		return def, prefixed(err, path)
	}
	if numbers {
		def.Flags |= syntax.HighlightNumbers
	}
	if strs {
		def.Flags |= syntax.HighlightStrings
	}
	return def, nil
}

// prefixed qualifies the path of a setting error found inside a table.
func prefixed(err error, path string) error {
	switch e := err.(type) {
	case *TypeError:
		e.Path = path + "." + e.Path
	case *ValidationError:
		e.Path = path + "." + e.Path
	}
	return err
}

// Profiles returns the configured filetypes as profiles.
func (c *Config) Profiles() []*syntax.Profile {
	out := make([]*syntax.Profile, len(c.Filetypes))
	for i, def := range c.Filetypes {
		out[i] = syntax.NewProfile(def)
	}
	return out
}
