/*
 * Copyright (c) 2025 by Shotaro Tsuji.
 * Licensed under the Apache License, Version 2.0.
 */

// Package crash turns panics in the CLI into a logged error plus a report
// file the user can attach to a bug report.
package crash

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	applog "github.com/ShotaroTsuji/mdplayscript/internal/log"
	"github.com/ShotaroTsuji/mdplayscript/internal/version"
)

// exitFn allows tests to observe Recover without terminating the process.
var exitFn = os.Exit

// reportDir allows tests to redirect report files.
var reportDir = defaultReportDir

// Recover captures a panic, logs it with the stack trace, writes a crash
// report file, and exits with a non-zero code.
//
// Usage: defer crash.Recover()
func Recover() {
	r := recover()
	if r == nil {
		return
	}

	l := applog.WithComponent("crash")
	stack := debug.Stack()
	l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

	path, err := writeReport(r, stack)
	if err != nil {
		l.Error("crash report not written", slog.Any("err", err))
		fmt.Fprintln(os.Stderr, "A fatal error occurred.")
	} else {
		fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", path)
	}
	fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH)

	exitFn(2)
}

func writeReport(cause any, stack []byte) (string, error) {
	dir, err := reportDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("ensure crash dir: %w", err)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "mdplayscript crash report\n")
	fmt.Fprintf(&buf, "Time: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(&buf, "Version: %s\n", version.String())
	fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(&buf, "Panic: %v\n\n", cause)
	buf.Write(stack)

	path := filepath.Join(dir, fmt.Sprintf("crash-%s.txt", uuid.NewString()))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write crash report: %w", err)
	}
	return path, nil
}

func defaultReportDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve user cache dir: %w", err)
	}
	return filepath.Join(base, "mdplayscript"), nil
}
