// Copyright (c) 2025 Carrental
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
)

// ParseLevel maps a config level name to a pterm log level. Unknown names
// fall back to warn.
func ParseLevel(level string) pterm.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return pterm.LogLevelTrace
	case "debug":
		return pterm.LogLevelDebug
	case "info":
		return pterm.LogLevelInfo
	case "warn", "warning":
		return pterm.LogLevelWarn
	case "error":
		return pterm.LogLevelError
	case "off", "disabled", "none":
		return pterm.LogLevelDisabled
	default:
		return pterm.LogLevelWarn
	}
}

// NewLogger builds a structured logger writing to w at the given level.
func NewLogger(w io.Writer, level pterm.LogLevel) *pterm.Logger {
	return pterm.DefaultLogger.
		WithLevel(level).
		WithWriter(w).
		WithTime(level <= pterm.LogLevelDebug)
}

// OpenLogger builds a logger from config values. An empty path logs to stderr;
// otherwise the file is created (with its directory) and opened for append,
// and the returned closer must be called on exit.
func OpenLogger(path, level string) (*pterm.Logger, io.Closer, error) {
	lvl := ParseLevel(level)
	if path == "" {
		return NewLogger(os.Stderr, lvl), io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}
	return NewLogger(f, lvl).WithFormatter(pterm.LogFormatterJSON), f, nil
}

// Discard returns a logger that drops everything.
func Discard() *pterm.Logger {
	return NewLogger(io.Discard, pterm.LogLevelDisabled)
}
