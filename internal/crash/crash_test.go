/*
 * Copyright (c) 2025 by Shotaro Tsuji.
 * Licensed under the Apache License, Version 2.0.
 */

package crash

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRecoverWritesReportAndExits(t *testing.T) {
	dir := t.TempDir()
	reportDir = func() (string, error) { return dir, nil }
	exitCode := -1
	exitFn = func(code int) { exitCode = code }
	defer func() {
		reportDir = defaultReportDir
		exitFn = os.Exit
	}()

	func() {
		defer Recover()
		panic("boom")
	}()

	if exitCode != 2 {
		t.Fatalf("exit code = %d, want 2", exitCode)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read report dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one report, got %d", len(entries))
	}
	name := entries[0].Name()
	if !strings.HasPrefix(name, "crash-") || !strings.HasSuffix(name, ".txt") {
		t.Fatalf("unexpected report name %q", name)
	}

	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(data), "Panic: boom") {
		t.Fatalf("report missing panic value:\n%s", data)
	}
}

func TestRecoverWithoutPanicIsANoop(t *testing.T) {
	exitFn = func(int) { t.Fatalf("exit called without panic") }
	defer func() { exitFn = os.Exit }()

	func() {
		defer Recover()
	}()
}
