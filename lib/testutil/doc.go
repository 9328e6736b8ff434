// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for shellfn packages.
//
// [RequireReceive], [RequireSend], and [RequireClosed] encapsulate the
// timeout safety valve pattern (select with time.After fallback) so
// that streaming tests do not need direct time.After calls.
//
// [WriterChannel] turns every Write into a channel message, which lets
// a test observe exactly when output is flushed while the producer is
// still running.
//
// [WriteFile] creates a fixture file under a test's temporary
// directory.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no shellfn-internal dependencies.
package testutil
