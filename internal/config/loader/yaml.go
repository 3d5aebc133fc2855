package loader

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// NewYAMLLoader creates a YAML loader for path.
func NewYAMLLoader(path string) *FileLoader {
	return NewYAMLLoaderWithFS(DefaultFS(), path)
}

// NewYAMLLoaderWithFS creates a YAML loader with a custom file system.
func NewYAMLLoaderWithFS(fsys FileSystem, path string) *FileLoader {
	return &FileLoader{fs: fsys, path: path, format: "yaml", decode: decodeYAML}
}

func decodeYAML(source string, data []byte) (map[string]any, error) {
	var config map[string]any
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	normalized, ok := normalizeYAML(config).(map[string]any)
	if !ok && config != nil {
		return nil, &ParseError{Path: source, Message: fmt.Sprintf("top level is %T, want a mapping", config)}
	}
	return normalized, nil
}

// normalizeYAML converts map[any]any nodes, which yaml produces for
// non-string keys, into map[string]any.
func normalizeYAML(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k, val := range v {
			v[k] = normalizeYAML(val)
		}
		return v
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return out
	case []any:
		for i, val := range v {
			v[i] = normalizeYAML(val)
		}
		return v
	default:
		return v
	}
}
