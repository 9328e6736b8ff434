// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package runner composes grammar synthesis, parameter binding,
// invocation and rendering into a single command-line call with an
// exit code.
//
// Results go to the output stream and diagnostics to the error
// stream, so a caller capturing the output, for example with shell
// command substitution, never sees usage or error text. Every failure
// exits with failure.ExitFailure.
package runner
