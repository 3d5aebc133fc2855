package loader

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// NewJSONLoader creates a JSON loader for path.
func NewJSONLoader(path string) *FileLoader {
	return NewJSONLoaderWithFS(DefaultFS(), path)
}

// NewJSONLoaderWithFS creates a JSON loader with a custom file system.
func NewJSONLoaderWithFS(fsys FileSystem, path string) *FileLoader {
	return &FileLoader{fs: fsys, path: path, format: "json", decode: decodeJSON}
}

func decodeJSON(source string, data []byte) (map[string]any, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Path: source, Message: "invalid JSON"}
	}
	result := gjson.ParseBytes(data)
	if !result.IsObject() {
		return nil, &ParseError{Path: source, Message: fmt.Sprintf("top level is %s, want an object", result.Type)}
	}
	config, _ := result.Value().(map[string]any)
	return config, nil
}
