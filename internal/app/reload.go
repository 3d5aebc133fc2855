package app

import (
	"slices"

	"go.uber.org/zap"

	"github.com/dshills/kiln/internal/config"
	"github.com/dshills/kiln/internal/config/watcher"
	"github.com/dshills/kiln/internal/renderer/backend"
)

// reloadRequest is the interrupt payload posted by the config watcher.
type reloadRequest struct {
	path string
}

// startWatcher watches the config file and its scripts. Failures are
// logged and leave live reload disabled.
func (e *Editor) startWatcher() *watcher.Watcher {
	if e.cfg.Path == "" {
		return nil
	}

	w, err := watcher.New(watcher.WithLogger(e.logger.Named("watcher")))
	if err != nil {
		e.logger.Warn("config watcher unavailable", zap.Error(err))
		return nil
	}
	w.OnChange(func(ev watcher.Event) {
		e.backend.PostEvent(backend.InterruptEvent(reloadRequest{path: ev.Path}))
	})
	if err := e.watchFiles(w); err != nil {
		e.logger.Warn("watching config", zap.Error(err))
		_ = w.Close()
		return nil
	}
	w.Start()
	return w
}

func (e *Editor) watchFiles(w *watcher.Watcher) error {
	if err := w.Watch(e.cfg.Path); err != nil {
		return err
	}
	for _, script := range e.cfg.Scripts {
		if err := w.Watch(script); err != nil {
			return err
		}
	}
	return nil
}

// quitRequest is the interrupt payload posted by RequestQuit.
type quitRequest struct{}

// RequestQuit asks the running editor to exit without saving. It is safe
// to call from any goroutine.
func (e *Editor) RequestQuit() {
	e.backend.PostEvent(backend.InterruptEvent(quitRequest{}))
}

// unwatchDropped stops watching scripts that old listed and the current
// config does not.
func (e *Editor) unwatchDropped(old *config.Config) {
	for _, script := range old.Scripts {
		if script == e.cfg.Path || slices.Contains(e.cfg.Scripts, script) {
			continue
		}
		if err := e.watcher.Unwatch(script); err != nil {
			e.logger.Debug("unwatch script", zap.String("path", script), zap.Error(err))
		}
	}
}

func (e *Editor) handleInterrupt(ev backend.Event) error {
	switch req := ev.Data.(type) {
	case reloadRequest:
		e.logger.Info("config changed", zap.String("path", req.path))
		e.reload()
	case quitRequest:
		return ErrQuit
	}
	return nil
}

// reload re-reads the configuration and applies it to the open document.
// On error the previous configuration stays in effect. The tab stop of an
// open document does not change.
func (e *Editor) reload() {
	cfg, err := e.loadConfig(e.cfg.Path)
	if err != nil {
		e.logger.Warn("config reload failed", zap.Error(err))
		e.setStatus("Config error: %v", err)
		return
	}
	theme, err := cfg.HighlightTheme()
	if err != nil {
		e.setStatus("Config error: %v", err)
		return
	}
	reg, err := buildRegistry(cfg, e.logger)
	if err != nil {
		e.logger.Warn("filetype scripts failed", zap.Error(err))
		e.setStatus("Config error: %v", err)
		return
	}

	old := e.cfg
	e.cfg = cfg
	e.registry = reg
	e.quitTimes = cfg.Editor.QuitTimes
	e.renderer.SetTheme(theme)
	e.renderer.SetStatusTimeout(cfg.Editor.StatusTimeout)
	if e.watcher != nil {
		e.unwatchDropped(old)
		if err := e.watchFiles(e.watcher); err != nil {
			e.logger.Warn("watching config", zap.Error(err))
		}
	}
	if e.filename != "" {
		e.doc.SelectSyntax(reg, e.filename)
	}
	e.setStatus("Configuration reloaded")
}
