// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package stubcache stores generated shell wrappers on disk, addressed
// by a key derived from the manifest content, the identity of the
// generating binary, and the environment that affects generation.
//
// The cache is read-through: [Cache.Get] returns a stored entry or
// calls the supplied generator and stores its result. Damaged entries
// are a forced regeneration, never an error for the caller. Entries
// are CBOR (see lib/codec), optionally compressed with LZ4 or zstd,
// behind a small header recording the format and compression.
package stubcache
