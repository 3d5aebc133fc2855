package lua

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/kiln/internal/syntax"
)

// FiletypeFunc is the name of the global scripts call to declare a
// filetype.
const FiletypeFunc = "filetype"

// InstallFiletypeAPI registers the filetype function. Every successful
// call passes the declared definition to collect.
func (s *State) InstallFiletypeAPI(collect func(syntax.Definition)) {
	s.RegisterFunc(FiletypeFunc, func(L *lua.LState) int {
		def, err := definitionFromTable(L.CheckTable(1))
		if err != nil {
			L.RaiseError("%s: %v", FiletypeFunc, err)
			return 0
		}
		collect(def)
		return 0
	})
}

// LoadFiletypes runs scripts in order in one sandboxed state and returns
// the filetypes they declare, in declaration order.
func LoadFiletypes(paths []string, opts ...StateOption) ([]syntax.Definition, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	s := NewState(opts...)
	defer s.Close()

	var defs []syntax.Definition
	s.InstallFiletypeAPI(func(def syntax.Definition) {
		defs = append(defs, def)
	})

	for _, path := range paths {
		if err := s.DoFile(path); err != nil {
			return nil, fmt.Errorf("script %s: %w", path, err)
		}
	}
	return defs, nil
}

func definitionFromTable(t *lua.LTable) (syntax.Definition, error) {
	var def syntax.Definition
	var err error

	if def.Name, err = stringField(t, "name"); err != nil {
		return def, err
	}
	if def.Name == "" {
		return def, fmt.Errorf("name is required")
	}
	if def.Match, err = stringsField(t, "match"); err != nil {
		return def, err
	}
	if def.Keywords, err = stringsField(t, "keywords"); err != nil {
		return def, err
	}
	types, err := stringsField(t, "types")
	if err != nil {
		return def, err
	}
	for _, typ := range types {
		def.Keywords = append(def.Keywords, typ+string(syntax.SecondaryMarker))
	}
	if def.LineComment, err = stringField(t, "line_comment"); err != nil {
		return def, err
	}

	block, err := stringsField(t, "block_comment")
	if err != nil {
		return def, err
	}
	// A missing marker leaves block comments off; the profile only
	// enables them when both are set.
	if len(block) > 0 {
		def.BlockCommentStart = block[0]
	}
	if len(block) > 1 {
		def.BlockCommentEnd = block[1]
	}

	numbers, err := boolField(t, "numbers", true)
	if err != nil {
		return def, err
	}
	strs, err := boolField(t, "strings", true)
	if err != nil {
		return def, err
	}
	if numbers {
		def.Flags |= syntax.HighlightNumbers
	}
	if strs {
		def.Flags |= syntax.HighlightStrings
	}
	return def, nil
}

func stringField(t *lua.LTable, name string) (string, error) {
	switch v := t.RawGetString(name).(type) {
	case *lua.LNilType:
		return "", nil
	case lua.LString:
		return string(v), nil
	default:
		return "", fmt.Errorf("%s must be a string, got %s", name, v.Type())
	}
}

// stringsField accepts a single string or an array of strings.
func stringsField(t *lua.LTable, name string) ([]string, error) {
	switch v := t.RawGetString(name).(type) {
	case *lua.LNilType:
		return nil, nil
	case lua.LString:
		return []string{string(v)}, nil
	case *lua.LTable:
		out := make([]string, 0, v.Len())
		for i := 1; i <= v.Len(); i++ {
			s, ok := v.RawGetInt(i).(lua.LString)
			if !ok {
				return nil, fmt.Errorf("%s[%d] must be a string", name, i)
			}
			out = append(out, string(s))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s must be a list of strings, got %s", name, v.Type())
	}
}

func boolField(t *lua.LTable, name string, def bool) (bool, error) {
	switch v := t.RawGetString(name).(type) {
	case *lua.LNilType:
		return def, nil
	case lua.LBool:
		return bool(v), nil
	default:
		return false, fmt.Errorf("%s must be a boolean, got %s", name, v.Type())
	}
}
