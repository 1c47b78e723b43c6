/*
 * Copyright (c) 2025 by Shotaro Tsuji.
 * Licensed under the Apache License, Version 2.0.
 */

// Package log provides the slog-based logging used across the converter.
// Console output is a compact one-line format; an optional rotated file
// sink records JSON.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	lj "gopkg.in/natefinch/lumberjack.v2"

	"github.com/ShotaroTsuji/mdplayscript/internal/version"
)

// Options controls logger initialization. Environment variables provide
// the same knobs for ad hoc runs:
//   - MDPS_LOG_LEVEL=debug|info|warn|error
//   - MDPS_LOG_FORMAT=console|json
//   - MDPS_LOG_FILE=<path> (enables rotated file logging)
//   - MDPS_LOG_SOURCE=true|false
type Options struct {
	Level     string
	Format    string
	AddSource bool
	File      string
}

var (
	mu     sync.RWMutex
	logger *slog.Logger
)

// L returns the process logger, initializing it from the environment on
// first use.
func L() *slog.Logger {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l != nil {
		return l
	}
	Init(FromEnv())
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Init configures the process logger and slog.Default.
func Init(opts Options) {
	lvl := parseLevel(opts.Level)

	var console slog.Handler
	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		console = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl, AddSource: opts.AddSource})
	} else {
		console = &lineHandler{w: os.Stderr, level: lvl}
	}

	h := console
	if strings.TrimSpace(opts.File) != "" {
		rotated := &lj.Logger{Filename: opts.File, MaxSize: 10, MaxBackups: 3, MaxAge: 28, Compress: true}
		file := slog.NewJSONHandler(rotated, &slog.HandlerOptions{Level: lvl, AddSource: opts.AddSource})
		h = fanout{console, file}
	}

	l := slog.New(h).With(
		slog.String("app", "mdplayscript"),
		slog.String("ver", version.Version),
	)

	mu.Lock()
	logger = l
	mu.Unlock()
	slog.SetDefault(l)
}

// FromEnv builds Options from MDPS_LOG_* variables.
func FromEnv() Options {
	return Options{
		Level:     getenv("MDPS_LOG_LEVEL", "info"),
		Format:    getenv("MDPS_LOG_FORMAT", "console"),
		AddSource: strings.EqualFold(getenv("MDPS_LOG_SOURCE", "false"), "true"),
		File:      os.Getenv("MDPS_LOG_FILE"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// WithComponent returns a logger with the component attribute pre-set.
func WithComponent(name string) *slog.Logger { return L().With(slog.String("component", name)) }

// WithOperation annotates the logger with an operation name.
func WithOperation(l *slog.Logger, op string) *slog.Logger { return l.With(slog.String("op", op)) }

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// fanout replicates records to every handler.
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
	var firstErr error
	for _, h := range f {
		if err := h.Handle(ctx, r); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
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

// lineHandler prints human-friendly one-line records:
// ts LEVEL msg key=val ...
type lineHandler struct {
	w     io.Writer
	level slog.Level
	attrs []slog.Attr
}

func (h *lineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *lineHandler) Handle(_ context.Context, r slog.Record) error {
	b := &strings.Builder{}
	b.Grow(256)
	b.WriteString(time.Now().Format(time.RFC3339))
	b.WriteByte(' ')
	b.WriteString(levelString(r.Level))
	b.WriteByte(' ')
	b.WriteString(r.Message)
	for _, a := range h.attrs {
		writeAttr(b, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(b, a)
		return true
	})
	b.WriteByte('\n')
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *lineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	na := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	na = append(na, h.attrs...)
	na = append(na, attrs...)
	return &lineHandler{w: h.w, level: h.level, attrs: na}
}

func (h *lineHandler) WithGroup(string) slog.Handler { return h }

func writeAttr(b *strings.Builder, a slog.Attr) {
	b.WriteByte(' ')
	b.WriteString(a.Key)
	b.WriteByte('=')
	b.WriteString(attrValueString(a.Value))
}

func levelString(l slog.Level) string {
	switch l {
	case slog.LevelDebug:
		return "DBG"
	case slog.LevelInfo:
		return "INF"
	case slog.LevelWarn:
		return "WRN"
	case slog.LevelError:
		return "ERR"
	default:
		return l.String()
	}
}

func attrValueString(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindBool:
		return strconv.FormatBool(v.Bool())
	default:
		return v.String()
	}
}
