// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for the shellfn
// binary.
//
// Four package-level variables are injected at build time via
// -ldflags -X:
//
//	go build -ldflags "-X github.com/bureau-foundation/shellfn/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// They default to "unknown" / "0.1.0-dev" in development builds and
// test runs.
//
// [Info] and [Full] format the values for humans. [Identity] is the
// machine-facing form: the stub cache mixes it into every key so that
// upgrading shellfn regenerates cached wrappers.
package version
