// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package grammar synthesizes a command-line grammar from a function
// description and matches argument tokens against it.
//
// Each parameter becomes a [Slot]. Positional-only parameters are
// positionals, keyword-only parameters are flags, and
// positional-or-keyword parameters are both: either form binds them
// and the two may be intermixed. Flag names replace every
// non-alphanumeric character with a dash; a single-letter short flag
// is added when no other flag shares the initial. Boolean flags take
// no value and also get a --no- form.
//
// Collection-typed slots are greedy: as a flag they consume following
// non-flag tokens, as a positional they take the remaining tokens
// minus those the required positionals after them need. Fixed-arity
// tuples take exactly their arity.
//
// Flag tokens are parsed by pflag with raw collectors; coercion to the
// declared types happens later in lib/bind.
package grammar
