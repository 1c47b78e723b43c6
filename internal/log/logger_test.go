/*
 * Copyright (c) 2025 by Shotaro Tsuji.
 * Licensed under the Apache License, Version 2.0.
 */

package log

import (
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLineHandlerFormatsRecord(t *testing.T) {
	var b strings.Builder
	h := &lineHandler{w: &b, level: slog.LevelInfo}
	l := slog.New(h).With(slog.String("component", "test"))

	l.Info("hello", slog.Int("n", 3), slog.Bool("ok", true))

	out := b.String()
	if !strings.Contains(out, " INF hello") {
		t.Fatalf("missing level/message in %q", out)
	}
	for _, kv := range []string{"component=test", "n=3", "ok=true"} {
		if !strings.Contains(out, kv) {
			t.Fatalf("missing %q in %q", kv, out)
		}
	}
	if !strings.HasSuffix(out, "\n") {
		t.Fatalf("record not newline-terminated: %q", out)
	}
}

func TestLineHandlerHonorsLevel(t *testing.T) {
	var b strings.Builder
	h := &lineHandler{w: &b, level: slog.LevelWarn}
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatalf("info enabled at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Fatalf("error disabled at warn level")
	}
}

func TestInitAndAccessors(t *testing.T) {
	Init(Options{Level: "debug", Format: "json"})
	if L() == nil {
		t.Fatalf("L returned nil")
	}
	if WithComponent("x") == nil || WithOperation(L(), "y") == nil {
		t.Fatalf("derived loggers are nil")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("MDPS_LOG_LEVEL", "")
	t.Setenv("MDPS_LOG_FORMAT", "")
	opts := FromEnv()
	if opts.Level != "info" || opts.Format != "console" {
		t.Fatalf("unexpected defaults: %+v", opts)
	}
}
