// Package app ties the document, renderer, backend and configuration
// together into the interactive editor.
//
// Everything that touches the document runs on the goroutine that calls
// Run. Other goroutines, such as the config watcher, only post backend
// events.
package app

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/kiln/internal/config"
	"github.com/dshills/kiln/internal/config/watcher"
	"github.com/dshills/kiln/internal/engine/document"
	"github.com/dshills/kiln/internal/plugin/lua"
	"github.com/dshills/kiln/internal/renderer"
	"github.com/dshills/kiln/internal/renderer/backend"
	"github.com/dshills/kiln/internal/syntax"
)

// Version is the editor version shown on the welcome line.
const Version = "0.1.0"

// helpMessage is the status message shown at startup.
const helpMessage = "HELP: Ctrl-S = save | Ctrl-Q = quit | Ctrl-F = find"

// Options configures an Editor.
type Options struct {
	// Backend is the terminal. Required.
	Backend backend.Backend

	// Config is the loaded configuration. Nil uses config.Default().
	Config *config.Config

	// Logger receives diagnostics. Nil disables logging.
	Logger *zap.Logger

	// WatchConfig reloads the configuration when its file changes.
	WatchConfig bool
}

// Editor is a single-document editor session.
type Editor struct {
	backend  backend.Backend
	renderer *renderer.Renderer
	logger   *zap.Logger

	cfg        *config.Config
	loadConfig func(path string) (*config.Config, error)
	registry   *syntax.Registry
	watch      bool
	watcher    *watcher.Watcher

	doc      *document.Document
	filename string
	cur      document.Point

	message   renderer.Message
	quitTimes int

	// pending holds events read while a prompt was active that must be
	// handled by the main loop.
	pending []backend.Event

	now func() time.Time
}

// New creates an editor with an empty document.
func New(opts Options) (*Editor, error) {
	if opts.Backend == nil {
		return nil, errors.New("app: backend is required")
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	theme, err := cfg.HighlightTheme()
	if err != nil {
		return nil, &OperationError{Op: "load", Target: "theme", Err: err}
	}

	e := &Editor{
		backend: opts.Backend,
		renderer: renderer.New(opts.Backend, renderer.Options{
			StatusTimeout: cfg.Editor.StatusTimeout,
			Version:       Version,
			Theme:         theme,
		}),
		logger: logger.Named("app"),
		cfg:    cfg,
		loadConfig: func(path string) (*config.Config, error) {
			return config.Load(path)
		},
		watch:     opts.WatchConfig,
		quitTimes: cfg.Editor.QuitTimes,
		now:       time.Now,
	}

	if e.registry, err = buildRegistry(cfg, logger); err != nil {
		return nil, &OperationError{Op: "load", Target: "filetype scripts", Err: err}
	}
	e.doc = e.newDocument()
	e.setStatus(helpMessage)
	return e, nil
}

// buildRegistry orders profiles as config filetypes, then Lua script
// filetypes, then the built-ins.
func buildRegistry(cfg *config.Config, logger *zap.Logger) (*syntax.Registry, error) {
	scripted, err := lua.LoadFiletypes(cfg.Scripts, lua.WithLogger(logger.Named("lua")))
	if err != nil {
		return nil, err
	}

	profiles := cfg.Profiles()
	for _, def := range scripted {
		profiles = append(profiles, syntax.NewProfile(def))
	}

	builtins := syntax.DefaultRegistry()
	for _, p := range profiles {
		def := p.Definition()
		if _, ok := builtins.Lookup(def.Name); ok {
			logger.Info("filetype overrides built-in", zap.String("name", def.Name), zap.Strings("match", def.Match))
			continue
		}
		logger.Debug("filetype registered", zap.String("name", def.Name), zap.Strings("match", def.Match))
	}
	return builtins.With(profiles...), nil
}

func (e *Editor) newDocument() *document.Document {
	return document.New(document.WithTabStop(e.cfg.Editor.TabStop))
}

// Document returns the open document.
func (e *Editor) Document() *document.Document {
	return e.doc
}

// Filename returns the document's file name, or "".
func (e *Editor) Filename() string {
	return e.filename
}

// Cursor returns the cursor position.
func (e *Editor) Cursor() document.Point {
	return e.cur
}

// Message returns the current status message text.
func (e *Editor) Message() string {
	return e.message.Text
}

// Run initializes the backend and processes events until the user quits.
func (e *Editor) Run() error {
	if err := e.backend.Init(); err != nil {
		return &OperationError{Op: "init", Target: "terminal", Err: err}
	}
	defer e.backend.Shutdown()
	e.renderer.Resize(e.backend.Size())

	if e.watch {
		if e.watcher = e.startWatcher(); e.watcher != nil {
			defer e.watcher.Close()
		}
	}

	e.logger.Info("editor started", zap.String("file", e.filename))
	for {
		e.refresh()
		if err := e.handleEvent(e.nextEvent()); err != nil {
			if errors.Is(err, ErrQuit) {
				e.logger.Info("editor stopped")
				return nil
			}
			return err
		}
	}
}

func (e *Editor) nextEvent() backend.Event {
	if len(e.pending) > 0 {
		ev := e.pending[0]
		e.pending = e.pending[1:]
		return ev
	}
	return e.backend.PollEvent()
}

func (e *Editor) handleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return e.processKey(ev)
	case backend.EventResize:
		e.renderer.Resize(ev.Width, ev.Height)
	case backend.EventInterrupt:
		return e.handleInterrupt(ev)
	case backend.EventNone:
		// The event source is gone.
		return ErrQuit
	}
	return nil
}

func (e *Editor) refresh() {
	e.renderer.Render(renderer.Frame{
		Doc:      e.doc,
		Filename: e.filename,
		Cursor:   e.cur,
		Message:  e.message,
	})
}

func (e *Editor) setStatus(format string, args ...any) {
	e.message = renderer.Message{Text: fmt.Sprintf(format, args...), Time: e.now()}
}
