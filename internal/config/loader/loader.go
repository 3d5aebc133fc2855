// Package loader reads configuration sources into nested maps.
//
// Files are decoded by extension: TOML (.toml), YAML (.yaml, .yml) and
// JSON (.json). Environment variables with a prefix form one more source.
// Sources are combined with DeepMerge, later sources winning.
package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for config files with an unknown
// extension.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Loader is the interface for configuration sources.
type Loader interface {
	// Load reads the source. It returns nil, nil when the source does not
	// exist.
	Load() (map[string]any, error)
}

// FileSystem abstracts file reads so tests can use fstest.MapFS.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFS reads from the real file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// DefaultFS returns the OS file system.
func DefaultFS() FileSystem {
	return OSFS{}
}

// decodeFunc turns file contents into a map. source names the input in
// errors.
type decodeFunc func(source string, data []byte) (map[string]any, error)

// FileLoader loads one config file with a fixed format.
type FileLoader struct {
	fs     FileSystem
	path   string
	format string
	decode decodeFunc
}

// Path returns the file the loader reads.
func (l *FileLoader) Path() string { return l.path }

// Format returns the format name ("toml", "yaml" or "json").
func (l *FileLoader) Format() string { return l.format }

// Load reads the configured file. A missing file is not an error.
func (l *FileLoader) Load() (map[string]any, error) {
	data, err := l.fs.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", l.path, err)
	}
	return l.decode(l.path, data)
}

// LoadFromReader decodes r in the loader's format.
func (l *FileLoader) LoadFromReader(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return l.decode("<reader>", data)
}

// ForPath returns a loader for path chosen by its extension.
func ForPath(path string) (*FileLoader, error) {
	return ForPathWithFS(DefaultFS(), path)
}

// ForPathWithFS is ForPath with a custom file system.
func ForPathWithFS(fsys FileSystem, path string) (*FileLoader, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return NewTOMLLoaderWithFS(fsys, path), nil
	case ".yaml", ".yml":
		return NewYAMLLoaderWithFS(fsys, path), nil
	case ".json":
		return NewJSONLoaderWithFS(fsys, path), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// ParseError is returned when a config file cannot be decoded.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
