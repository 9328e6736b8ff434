// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bind resolves every parameter's value from parsed
// command-line input, declared defaults, and standard input, then
// coerces the result into call arguments.
//
// The precedence is fixed: explicit tokens, then the default (passed
// through uncoerced), then standard input for a single parameter, then
// a missing-argument failure. [Binder.Route] exposes the routing
// decision on its own so it can be checked without coercion.
package bind
