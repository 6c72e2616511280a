// Package logging builds the application's logrus logger. The TUI owns the
// terminal, so interactive runs log to a file; headless runs log to stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

type Options struct {
	File   string
	Level  string
	Stderr bool
}

// New returns a configured logger and a closer for its output file.
func New(opts Options) (*log.Logger, io.Closer, error) {
	logger := log.New()
	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true, DisableColors: !opts.Stderr})

	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	logger.SetLevel(level)

	switch {
	case opts.Stderr:
		logger.SetOutput(os.Stderr)
		return logger, nopCloser{}, nil
	case strings.TrimSpace(opts.File) == "":
		logger.SetOutput(io.Discard)
		return logger, nopCloser{}, nil
	}

	if dir := filepath.Dir(opts.File); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(f)
	return logger, f, nil
}

func ParseLevel(raw string) (log.Level, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return log.InfoLevel, nil
	}
	return log.ParseLevel(raw)
}

// Discard returns a logger that drops everything. Used by tests and as a
// nil-safe default.
func Discard() *log.Logger {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
