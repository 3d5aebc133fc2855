// Package main is the entry point for the Kiln editor.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/dshills/kiln/internal/app"
	"github.com/dshills/kiln/internal/config"
	"github.com/dshills/kiln/internal/renderer/backend"
)

// Build information (set via ldflags).
var (
	commit = "unknown"
	date   = "unknown"
)

type options struct {
	configPath string
	logPath    string
	logLevel   string
	file       string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: kiln must be run in a terminal")
		return 1
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		return 1
	}

	// Flags win over the config file and environment.
	logCfg := app.LoggerConfig{Level: cfg.Logging.Level, Path: cfg.Logging.File}
	if opts.logPath != "" {
		logCfg.Path = opts.logPath
	}
	if opts.logLevel != "" {
		logCfg.Level = opts.logLevel
	}
	logger, err := app.NewLogger(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	logger.Named("config").Info("configuration loaded",
		zap.String("path", cfg.Path),
		zap.Int("filetypes", len(cfg.Filetypes)),
		zap.Strings("scripts", cfg.Scripts),
	)

	screen, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}

	editor, err := app.New(app.Options{
		Backend:     screen,
		Config:      cfg,
		Logger:      logger,
		WatchConfig: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	if opts.file != "" {
		if err := editor.Open(opts.file); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)
	go func() {
		if _, ok := <-signals; ok {
			editor.RequestQuit()
		}
	}()

	if err := editor.Run(); err != nil {
		logger.Error("editor failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion, showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file (.toml, .yaml, .json)")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logPath, "log", "", "Write logs to this file")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Kiln - a small terminal text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: kiln [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  Ctrl-S save   Ctrl-Q quit   Ctrl-F find\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Kiln %s\n", app.Version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.logLevel {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		os.Exit(2)
	}

	if flag.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Error: kiln edits one file at a time")
		os.Exit(2)
	}
	opts.file = flag.Arg(0)
	return opts
}
