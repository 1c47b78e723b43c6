/*
 * Copyright (c) 2025 by Shotaro Tsuji.
 * Licensed under the Apache License, Version 2.0.
 */

// Package version exposes the build version baked in at link time.
package version

import "fmt"

// Version is overridden via -ldflags "-X ...version.Version=v1.2.3".
var Version = "0.0.0-dev"

// String returns the human-readable version line.
func String() string {
	return fmt.Sprintf("mdplayscript %s", Version)
}
