// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package render writes call results to the output stream.
//
// The shell format writes scalars in their natural form, booleans as
// lowercase true/false, floats always with a fractional part or an
// exponent, sequences as bash array literals and mappings as bash
// associative array literals:
//
//	12
//	(1 "two" 3.5)
//	(["a"]=1 ["b"]="x")
//
// The JSON format writes one document per line. In both formats a
// lazy result is drained element by element with a flush after each,
// so a long-running producer streams its output. [Declare] renders the
// variable declarations used in generated shell stubs.
package render
