package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dshills/kiln/internal/config/loader"
	"github.com/dshills/kiln/internal/renderer/highlight"
	"github.com/dshills/kiln/internal/syntax"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "KILN_"

// Setting limits.
const (
	MinTabStop = 1
	MaxTabStop = 16
)

// EditorConfig holds editing settings.
type EditorConfig struct {
	// TabStop is the rendered width of a tab.
	TabStop int

	// QuitTimes is how many extra Ctrl-Q presses quit with unsaved changes.
	QuitTimes int

	// StatusTimeout is how long a status message stays visible.
	StatusTimeout time.Duration
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string

	// File is the log file. Empty disables logging.
	File string
}

// ThemeConfig selects a theme and overrides its colors.
type ThemeConfig struct {
	// Name is a built-in theme name.
	Name string

	// Colors maps class names to "#rrggbb".
	Colors map[string]string
}

// Config is a loaded, validated configuration snapshot.
type Config struct {
	// Path is the config file, or "" when none was given.
	Path string

	Editor    EditorConfig
	Logging   LoggingConfig
	Theme     ThemeConfig
	Filetypes []syntax.Definition

	// Scripts are Lua filetype scripts, resolved against the config
	// file's directory.
	Scripts []string
}

// Defaults returns the built-in settings as a nested map.
func Defaults() map[string]any {
	return map[string]any{
		"editor": map[string]any{
			"tab_stop":       4,
			"quit_times":     3,
			"status_timeout": "5s",
		},
		"logging": map[string]any{
			"level": "info",
			"file":  "",
		},
		"theme": map[string]any{
			"name": "default",
		},
	}
}

// Default returns the configuration with no file and no environment.
func Default() *Config {
	cfg, err := decode("", values(Defaults()))
	if err != nil {
		panic(fmt.Sprintf("config: invalid defaults: %v", err))
	}
	return cfg
}

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	fs  loader.FileSystem
	env loader.Loader
}

// WithFileSystem reads the config file from fsys.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(o *loadOptions) {
		o.fs = fsys
	}
}

// WithEnv replaces the environment layer. A nil loader disables it.
func WithEnv(env loader.Loader) Option {
	return func(o *loadOptions) {
		o.env = env
	}
}

// NewEnvLoader returns the KILN_ environment loader used by Load.
func NewEnvLoader() *loader.EnvLoader {
	return loader.NewEnvLoaderWithMapping(EnvPrefix, map[string]string{
		"KILN_LOG_LEVEL": "logging.level",
		"KILN_LOG_FILE":  "logging.file",
		"KILN_THEME":     "theme.name",
	})
}

// Load merges the defaults, the file at path (if path is not empty) and
// the environment, then validates the result. A missing file is not an
// error.
func Load(path string, opts ...Option) (*Config, error) {
	o := loadOptions{fs: loader.DefaultFS(), env: NewEnvLoader()}
	for _, opt := range opts {
		opt(&o)
	}

	data := Defaults()

	if path != "" {
		l, err := loader.ForPathWithFS(o.fs, path)
		if err != nil {
			return nil, err
		}
		file, err := l.Load()
		if err != nil {
			return nil, err
		}
		data = loader.DeepMerge(data, file)
	}

	if o.env != nil {
		env, err := o.env.Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		data = loader.DeepMerge(data, env)
	}

	return decode(path, values(data))
}

func decode(path string, v values) (*Config, error) {
	cfg := &Config{Path: path}
	var err error

	if cfg.Editor.TabStop, err = v.getInt("editor.tab_stop"); err != nil {
		return nil, err
	}
	if cfg.Editor.QuitTimes, err = v.getInt("editor.quit_times"); err != nil {
		return nil, err
	}
	if cfg.Editor.StatusTimeout, err = v.getDuration("editor.status_timeout"); err != nil {
		return nil, err
	}
	if cfg.Logging.Level, err = v.getString("logging.level"); err != nil {
		return nil, err
	}
	if cfg.Logging.File, err = v.getString("logging.file"); err != nil {
		return nil, err
	}
	if cfg.Theme, err = decodeTheme(v); err != nil {
		return nil, err
	}
	if cfg.Filetypes, err = decodeFiletypes(v); err != nil {
		return nil, err
	}
	if cfg.Scripts, err = v.getStringSlice("scripts"); err != nil {
		return nil, err
	}
	for i, script := range cfg.Scripts {
		if path != "" && !filepath.IsAbs(script) {
			cfg.Scripts[i] = filepath.Join(filepath.Dir(path), script)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeTheme(v values) (ThemeConfig, error) {
	m, err := v.getMap("theme")
	if err != nil {
		return ThemeConfig{}, err
	}

	tc := ThemeConfig{Name: "default", Colors: make(map[string]string)}
	for key, val := range m {
		s, ok := val.(string)
		if !ok {
			return ThemeConfig{}, typeError("theme."+key, "string", val)
		}
		if key == "name" {
			tc.Name = s
			continue
		}
		tc.Colors[key] = s
	}
	return tc, nil
}

var logLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "warning": true, "error": true,
}

// Validate checks setting values.
func (c *Config) Validate() error {
	if c.Editor.TabStop < MinTabStop || c.Editor.TabStop > MaxTabStop {
		return &ValidationError{
			Path:    "editor.tab_stop",
			Message: fmt.Sprintf("must be between %d and %d", MinTabStop, MaxTabStop),
			Value:   c.Editor.TabStop,
		}
	}
	if c.Editor.QuitTimes < 0 {
		return &ValidationError{Path: "editor.quit_times", Message: "must not be negative", Value: c.Editor.QuitTimes}
	}
	if c.Editor.StatusTimeout <= 0 {
		return &ValidationError{Path: "editor.status_timeout", Message: "must be positive", Value: c.Editor.StatusTimeout}
	}
	if !logLevels[strings.ToLower(c.Logging.Level)] {
		return &ValidationError{Path: "logging.level", Message: "unknown level", Value: c.Logging.Level}
	}
	if _, err := c.HighlightTheme(); err != nil {
		return &ValidationError{Path: "theme", Message: err.Error(), Value: c.Theme.Name}
	}
	for i, def := range c.Filetypes {
		if def.Name == "" {
			return &ValidationError{Path: fmt.Sprintf("filetypes[%d].name", i), Message: "is required", Value: ""}
		}
		if len(def.Match) == 0 {
			return &ValidationError{Path: fmt.Sprintf("filetypes[%d].match", i), Message: "needs at least one pattern", Value: def.Name}
		}
	}
	return nil
}

// HighlightTheme builds the configured theme.
func (c *Config) HighlightTheme() (*highlight.Theme, error) {
	theme, ok := highlight.ThemeByName(c.Theme.Name)
	if !ok {
		return nil, fmt.Errorf("unknown theme %q", c.Theme.Name)
	}
	if len(c.Theme.Colors) == 0 {
		return theme, nil
	}
	return theme.WithColors(c.Theme.Colors)
}
