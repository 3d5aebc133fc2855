package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dshills/kiln/internal/config"
	"github.com/dshills/kiln/internal/config/watcher"
	"github.com/dshills/kiln/internal/renderer/backend"
	"github.com/dshills/kiln/internal/syntax"
)

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newConfigEditor(t *testing.T, path string) (*Editor, *backend.NullBackend) {
	t.Helper()
	load := func(p string) (*config.Config, error) {
		return config.Load(p, config.WithEnv(nil))
	}
	cfg, err := load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	b := backend.NewNullBackend(40, 10)
	e, err := New(Options{Backend: b, Config: cfg})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	e.loadConfig = load
	return e, b
}

func TestReload(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "kiln.toml")
	writeConfig(t, cfgPath, "[editor]\nquit_times = 0\n")

	e, b := newConfigEditor(t, cfgPath)
	if err := e.Open(filepath.Join(dir, "build.foo")); err != nil {
		t.Fatal(err)
	}
	if e.Document().Syntax() != nil {
		t.Fatal("no profile should match .foo yet")
	}

	writeConfig(t, cfgPath, `[editor]
quit_times = 5
tab_stop = 2

[theme]
name = "monokai"

[[filetypes]]
name = "foo"
match = [".foo"]
keywords = ["task"]
`)
	post(b, backend.InterruptEvent(reloadRequest{path: cfgPath}), key(backend.KeyCtrlQ))
	run(t, e)

	if s := e.Document().Syntax(); s == nil || s.Name() != "foo" {
		t.Errorf("syntax = %v, want foo", s)
	}
	if e.Message() != "Configuration reloaded" {
		t.Errorf("Message() = %q", e.Message())
	}
	if e.cfg.Editor.QuitTimes != 5 {
		t.Errorf("QuitTimes = %d, want 5", e.cfg.Editor.QuitTimes)
	}
	if e.renderer.Theme().Name != "Monokai" {
		t.Errorf("theme = %q, want Monokai", e.renderer.Theme().Name)
	}
	if e.Document().TabStop() != 4 {
		t.Errorf("open document tab stop = %d, want 4", e.Document().TabStop())
	}
}

func TestReloadKeepsConfigOnError(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "kiln.toml")
	writeConfig(t, cfgPath, "[editor]\nquit_times = 0\n")

	e, b := newConfigEditor(t, cfgPath)
	old := e.cfg

	writeConfig(t, cfgPath, "[editor]\ntab_stop = 99\n")
	post(b, backend.InterruptEvent(reloadRequest{path: cfgPath}), key(backend.KeyCtrlQ))
	run(t, e)

	if e.cfg != old {
		t.Error("failed reload should keep the previous config")
	}
	if !strings.HasPrefix(e.Message(), "Config error: ") {
		t.Errorf("Message() = %q", e.Message())
	}
}

func TestScriptFiletypes(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "ft.lua")
	writeConfig(t, script, `filetype{ name = "ini", match = ".ini", line_comment = ";" }`)
	cfgPath := filepath.Join(dir, "kiln.toml")
	writeConfig(t, cfgPath, "scripts = [\"ft.lua\"]\n\n[[filetypes]]\nname = \"conf\"\nmatch = [\".ini\", \".conf\"]\n")

	e, _ := newConfigEditor(t, cfgPath)

	// Config filetypes come before script filetypes.
	if p := e.registry.Match("a.ini"); p == nil || p.Name() != "conf" {
		t.Errorf("Match(a.ini) = %v, want conf", p)
	}
	if err := e.Open(filepath.Join(dir, "x.c")); err != nil {
		t.Fatal(err)
	}
	if s := e.Document().Syntax(); s == nil || s.Name() != "c" {
		t.Errorf("syntax = %v, want c", s)
	}

	writeConfig(t, script, `filetype{ name = "dot", match = ".dot" }`)
	e.reload()
	if p := e.registry.Match("g.dot"); p == nil || p.Name() != "dot" {
		t.Errorf("Match(g.dot) after reload = %v, want dot", p)
	}
}

func TestBrokenScript(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "bad.lua")
	writeConfig(t, script, `filetype{ match = ".x" }`)

	cfg := config.Default()
	cfg.Scripts = []string{script}
	_, err := New(Options{Backend: backend.NewNullBackend(10, 5), Config: cfg})
	if err == nil {
		t.Fatal("New() with a broken script should fail")
	}
}

func TestUnknownInterruptIgnored(t *testing.T) {
	e, b := newTestEditor(t, 0)
	before := e.Message()

	post(b, backend.InterruptEvent(42), key(backend.KeyCtrlQ))
	run(t, e)

	if e.Message() != before {
		t.Errorf("Message() = %q, want %q", e.Message(), before)
	}
}

func TestRequestQuit(t *testing.T) {
	e, b := newTestEditor(t, 3)
	typeText(b, "unsaved")
	e.RequestQuit()
	run(t, e)

	if e.Document().Dirty() == 0 {
		t.Error("document should still be dirty")
	}
}

func TestReloadUnwatchesDroppedScripts(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "ft.lua")
	writeConfig(t, script, `filetype{ name = "ini", match = ".ini" }`)
	cfgPath := filepath.Join(dir, "kiln.toml")
	writeConfig(t, cfgPath, "scripts = [\"ft.lua\"]\n")

	e, _ := newConfigEditor(t, cfgPath)
	w, err := watcher.New()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	e.watcher = w
	if err := e.watchFiles(w); err != nil {
		t.Fatal(err)
	}

	writeConfig(t, cfgPath, "[editor]\ntab_stop = 8\n")
	e.reload()

	if w.IsWatching(script) {
		t.Error("dropped script should no longer be watched")
	}
	if !w.IsWatching(cfgPath) {
		t.Error("config file should still be watched")
	}
}

func TestBuildRegistryReportsOverrides(t *testing.T) {
	cfg := config.Default()
	cfg.Filetypes = []syntax.Definition{
		{Name: "c", Match: []string{".c"}},
		{Name: "ini", Match: []string{".ini"}},
	}
	core, logs := observer.New(zap.DebugLevel)

	reg, err := buildRegistry(cfg, zap.New(core))
	if err != nil {
		t.Fatalf("buildRegistry() error = %v", err)
	}
	if p := reg.Match("x.c"); p == nil || len(p.Keywords()) != 0 {
		t.Error("configured c profile should win over the built-in")
	}

	overrides := logs.FilterMessage("filetype overrides built-in").All()
	if len(overrides) != 1 || overrides[0].ContextMap()["name"] != "c" {
		t.Errorf("override entries = %v, want one for c", overrides)
	}
	if logs.FilterMessage("filetype registered").Len() != 1 {
		t.Error("ini should be logged as registered")
	}
}
