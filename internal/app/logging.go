package app

import (
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerConfig configures the application logger.
type LoggerConfig struct {
	// Level is debug, info, warn (or warning) or error, in any case.
	Level string

	// Path is the log file. The terminal belongs to the editor, so an
	// empty path disables logging.
	Path string

	// Development selects zap's human-readable console encoder.
	Development bool
}

// ParseLogLevel parses a level name. Unknown names map to info.
func ParseLogLevel(s string) zapcore.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// NewLogger builds a logger writing to cfg.Path. Every entry carries a
// per-run session id.
func NewLogger(cfg LoggerConfig) (*zap.Logger, error) {
	if cfg.Path == "" {
		return zap.NewNop(), nil
	}

	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(ParseLogLevel(cfg.Level))
	zc.OutputPaths = []string{cfg.Path}
	zc.ErrorOutputPaths = []string{cfg.Path}

	l, err := zc.Build()
	if err != nil {
		return nil, &OperationError{Op: "open log", Target: cfg.Path, Err: err}
	}
	return l.With(zap.String("session", uuid.NewString())), nil
}
