package config

import (
	"fmt"
	"time"

	"github.com/dshills/kiln/internal/config/loader"
)

// values wraps a merged settings map with typed getters. Missing settings
// return the zero value and no error.
type values map[string]any

func typeError(path, expected string, val any) error {
	return &TypeError{Path: path, Expected: expected, Actual: fmt.Sprintf("%T", val)}
}

func (v values) get(path string) any {
	val, _ := loader.GetByPath(v, path)
	return val
}

func (v values) getString(path string) (string, error) {
	val := v.get(path)
	if val == nil {
		return "", nil
	}
	s, ok := val.(string)
	if !ok {
		return "", typeError(path, "string", val)
	}
	return s, nil
}

func (v values) getInt(path string) (int, error) {
	switch val := v.get(path).(type) {
	case nil:
		return 0, nil
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		if val != float64(int(val)) {
			return 0, typeError(path, "integer", val)
		}
		return int(val), nil
	default:
		return 0, typeError(path, "integer", val)
	}
}

func (v values) getBool(path string, def bool) (bool, error) {
	val := v.get(path)
	if val == nil {
		return def, nil
	}
	b, ok := val.(bool)
	if !ok {
		return false, typeError(path, "boolean", val)
	}
	return b, nil
}

// getDuration accepts duration strings ("500ms") and integer milliseconds.
func (v values) getDuration(path string) (time.Duration, error) {
	switch val := v.get(path).(type) {
	case nil:
		return 0, nil
	case time.Duration:
		return val, nil
	case string:
		d, err := time.ParseDuration(val)
		if err != nil {
			return 0, &ValidationError{Path: path, Message: "invalid duration", Value: val}
		}
		return d, nil
	case int:
		return time.Duration(val) * time.Millisecond, nil
	case int64:
		return time.Duration(val) * time.Millisecond, nil
	case float64:
		return time.Duration(val) * time.Millisecond, nil
	default:
		return 0, typeError(path, "duration", val)
	}
}

func (v values) getStringSlice(path string) ([]string, error) {
	return toStringSlice(path, v.get(path))
}

func toStringSlice(path string, val any) ([]string, error) {
	switch val := val.(type) {
	case nil:
		return nil, nil
	case []string:
		return append([]string(nil), val...), nil
	case []any:
		out := make([]string, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, &TypeError{Path: path, Expected: "string array", Actual: fmt.Sprintf("array with %T element", item)}
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, typeError(path, "string array", val)
	}
}

func (v values) getMap(path string) (map[string]any, error) {
	val := v.get(path)
	if val == nil {
		return nil, nil
	}
	m, ok := val.(map[string]any)
	if !ok {
		return nil, typeError(path, "table", val)
	}
	return m, nil
}
