// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework for the shellfn binary.
//
// A [Command] tree dispatches on the first positional argument. Leaf
// commands declare a parameter struct whose tagged fields become pflag
// flags ([BindFlags]); unknown commands and flags get "did you mean"
// suggestions. [ExitError] lets a command choose its exit code after
// writing its own diagnostics, and [NewCommandLogger] builds the
// stderr logger every command receives.
//
// Generated function grammars do not go through this package: "shellfn
// run" is a PassThrough command and hands its arguments to lib/runner.
package cli
