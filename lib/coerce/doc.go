// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package coerce converts raw command-line tokens into typed values
// according to a typedesc.Type.
//
// Each descriptor tag has one rule:
//
//   - primitive: the natural parse; bool accepts only true/false
//     (any case).
//   - collection: each token against the element type; tuples require
//     the declared arity. A single token for a list or dict is tried
//     as JSON first. Mappings otherwise read key=value tokens.
//   - union: members in order, first success wins, except that a
//     decimal point selects float over int when both are members.
//   - literal: the token must equal one of the allowed values.
//   - stream: a path that must exist, or "-" for stdin. The handle is
//     opened later; see [Stream].
//   - date/time: ISO-8601, then an integer Unix timestamp.
//   - unknown: the constructor registered under the type name.
//   - untyped: "true"/"false" become booleans, digit strings become
//     integers, anything else stays a string.
//
// Failures are plain errors whose text is shown after the parameter
// name; callers wrap them in lib/failure.
package coerce
