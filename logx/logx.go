// Copyright (c) 2026, CoEditAR. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx builds the structured [slog] logger of the coeditar
// tool from its log config, with optional rotated file output.
package logx

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"coeditar.org/core/config"
)

// UserLevel is the level used when the log config does not name one.
// It is [slog.LevelInfo] by default, [slog.LevelDebug] with the debug
// build tag and [slog.LevelWarn] with the release build tag.
var UserLevel = defaultUserLevel

// Logger is a [slog.Logger] together with the files it writes to.
type Logger struct {
	*slog.Logger

	// Level can be changed to adjust the level of the logger after creation.
	Level *slog.LevelVar

	closers []io.Closer
}

// New returns a logger writing records in the configured format to out,
// and also to the configured log file, which is rotated by size.
func New(cfg config.Log, out io.Writer) (*Logger, error) {
	l := &Logger{Level: &slog.LevelVar{}}
	l.Level.Set(UserLevel)
	if cfg.Level != "" {
		lv, err := cfg.SlogLevel()
		if err != nil {
			return nil, err
		}
		l.Level.Set(lv)
	}

	var writers []io.Writer
	if out != nil {
		writers = append(writers, out)
	}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, fmt.Errorf("logx: create log directory: %w", err)
		}
		w := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		l.closers = append(l.closers, w)
		writers = append(writers, w)
	}
	w := io.Discard
	switch len(writers) {
	case 0:
	case 1:
		w = writers[0]
	default:
		w = io.MultiWriter(writers...)
	}

	opts := &slog.HandlerOptions{Level: l.Level}
	switch cfg.Format {
	case "", "text":
		l.Logger = slog.New(slog.NewTextHandler(w, opts))
	case "json":
		l.Logger = slog.New(slog.NewJSONHandler(w, opts))
	default:
		l.Close()
		return nil, fmt.Errorf("logx: unknown log format %q", cfg.Format)
	}
	return l, nil
}

// SetDefault makes l the default logger used by the slog package functions.
func (l *Logger) SetDefault() {
	slog.SetDefault(l.Logger)
}

// Close closes the log files.
func (l *Logger) Close() error {
	var errs []error
	for _, c := range l.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	l.closers = nil
	return errors.Join(errs...)
}
