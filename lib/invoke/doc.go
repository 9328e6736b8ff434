// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package invoke calls a target function with bound arguments inside
// a resource scope.
//
// Stream arguments are opened immediately before the call and closed
// when [Manager.Run] returns, whatever the outcome. When a target
// returns a [Sequence], the Manager hands it to the consumer still
// open so that the elements, and any streams they read from, stay
// valid until the consumer has drained them. Target errors and panics
// come back as invocation failures from lib/failure rather than
// crashing the process.
package invoke
