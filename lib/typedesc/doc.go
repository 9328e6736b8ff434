// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package typedesc models declared parameter types as a closed tagged
// variant.
//
// A [Type] is one of: primitive (int, float, bool, str, bytes),
// collection (list, set, tuple, abstract sequence, abstract set, dict,
// abstract mapping), union (optional is a union containing the none
// marker), literal, stream (text or binary), date/time, unknown (a
// named type built by a registered constructor), or untyped. Each tag
// has exactly one coercion rule in lib/coerce.
//
// Descriptors are built with the constructor functions or parsed from
// a type expression:
//
//	t, err := typedesc.Parse("Optional[list[int]]")
//	t.IsOptional()    // true
//	t.NonNone()       // list[int]
//	t.Summary()       // "list[int]"
//
// Collections may hold scalars, unions of scalars, literals, and
// streams; a collection inside a collection is rejected by
// [Type.Validate].
package typedesc
