// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package failure defines the error taxonomy for a single function
// invocation.
//
// Every stage of the pipeline (grammar, binding, coercion, invocation,
// rendering) reports problems as a [*Failure] carrying a [Kind]. The
// runner inspects the kind to decide how to report it: terminal
// failures print a usage line and the message on the error stream and
// exit with [ExitFailure]; cache failures are logged and recovered by
// regenerating the stub.
//
// Parameter-scoped failures render as "argument <name>: <message>" so
// the offending parameter is always named.
package failure
