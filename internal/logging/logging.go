// Package logging builds the process logger. The TUI owns the terminal, so
// logs only ever go to a file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the log sink and verbosity.
type Options struct {
	// Path of the log file. Empty yields a no-op logger.
	Path string

	// Level is debug, info, warn or error. Empty means info.
	Level string

	// Debug switches to zap's development encoder and debug level.
	Debug bool
}

// DefaultPath returns $XDG_STATE_HOME/wordmap/wordmap.log, falling back to
// ~/.local/state.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, "wordmap", "wordmap.log"), nil
}

// New creates a logger writing to opts.Path.
func New(opts Options) (*zap.Logger, error) {
	if opts.Path == "" {
		return zap.NewNop(), nil
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	var cfg zap.Config
	if opts.Debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		level := zapcore.InfoLevel
		if opts.Level != "" {
			l, err := zapcore.ParseLevel(opts.Level)
			if err != nil {
				return nil, fmt.Errorf("log level: %w", err)
			}
			level = l
		}
		cfg.Level = zap.NewAtomicLevelAt(level)
	}
	cfg.OutputPaths = []string{opts.Path}
	cfg.ErrorOutputPaths = []string{opts.Path}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
