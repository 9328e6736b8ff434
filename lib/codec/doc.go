// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec holds the CBOR configuration for shellfn's on-disk
// stub cache entries.
//
// JSON is used wherever a human or another program reads the data:
// manifests, --json command output, and JSON result rendering. CBOR is
// used only for cache entries, which are private to shellfn.
//
//	data, err := codec.Marshal(entry)
//	err = codec.Unmarshal(data, &entry)
//
// Types serialized only as CBOR carry `cbor` struct tags.
package codec
