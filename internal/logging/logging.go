// SPDX-License-Identifier: MPL-2.0

package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// Prefix is printed in front of every console line.
	Prefix = "modify"

	defaultMaxSizeMB  = 10
	defaultMaxBackups = 3
	defaultMaxAgeDays = 28
)

// Options selects log destinations and levels.
type Options struct {
	// Verbose lowers the console level from warn to debug.
	Verbose bool
	// File enables a rotating JSON log at this path.
	File string
	// Level is the file log level: debug, info, warn or error.
	Level string
	// Console receives console output; defaults to os.Stderr.
	Console io.Writer
}

// Logging owns the configured loggers and the file sink, if any.
type Logging struct {
	console *log.Logger
	file    *log.Logger
	sink    *lumberjack.Logger
}

// New builds the loggers described by opts. A file that cannot be prepared
// is reported on the console logger and skipped.
func New(opts Options) *Logging {
	out := opts.Console
	if out == nil {
		out = os.Stderr
	}

	consoleLevel := log.WarnLevel
	if opts.Verbose {
		consoleLevel = log.DebugLevel
	}

	l := &Logging{
		console: log.NewWithOptions(out, log.Options{
			Prefix: Prefix,
			Level:  consoleLevel,
		}),
	}

	if opts.File == "" {
		return l
	}

	sink, err := newRotatingFile(opts.File)
	if err != nil {
		l.console.Warn("file logging disabled", "path", opts.File, "err", err)
		return l
	}

	l.sink = sink
	l.file = log.NewWithOptions(sink, log.Options{
		Level:           parseLevel(opts.Level),
		ReportTimestamp: true,
		Formatter:       log.JSONFormatter,
	})
	return l
}

// Handler returns a slog.Handler writing to every configured destination.
func (l *Logging) Handler() slog.Handler {
	if l.file == nil {
		return l.console
	}
	return fanout{l.console, l.file}
}

// Install makes the loggers the process-wide slog default.
func (l *Logging) Install() {
	slog.SetDefault(slog.New(l.Handler()))
}

// Close flushes and closes the file sink.
func (l *Logging) Close() error {
	if l.sink == nil {
		return nil
	}
	return l.sink.Close()
}

func newRotatingFile(path string) (*lumberjack.Logger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    defaultMaxSizeMB,
		MaxBackups: defaultMaxBackups,
		MaxAge:     defaultMaxAgeDays,
		Compress:   true,
	}, nil
}

// parseLevel maps a config level to a charm log level; unknown values mean info.
func parseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// fanout delivers each record to every handler that accepts its level.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
