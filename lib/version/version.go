// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
)

// These variables are set via -ldflags at build time.
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// GitDirty indicates whether there were uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the semantic version. This is set manually for releases.
	Version = "0.1.0-dev"
)

// Info returns a formatted version string suitable for --version output.
func Info() string {
	return fmt.Sprintf("%s (%s%s, %s)", Version, GitCommit, dirtySuffix(), BuildTime)
}

// Full returns detailed version information including Go version.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Short returns just the version number.
func Short() string {
	return Version
}

// Identity names the build for cache keying. Two binaries with the
// same identity generate identical stubs for the same manifest, so a
// change in any component (including the Go toolchain or platform)
// must invalidate cached stubs.
func Identity() string {
	return fmt.Sprintf("shellfn/%s+%s%s %s %s/%s",
		Version, GitCommit, dirtySuffix(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

func dirtySuffix() string {
	if GitDirty == "true" {
		return "-dirty"
	}
	return ""
}
