// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package stubcache

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"slices"

	"github.com/zeebo/blake3"
)

// Key addresses one cache entry.
type Key [32]byte

// String returns the lowercase hex form, which is also the entry's
// file name stem.
func (k Key) String() string { return hex.EncodeToString(k[:]) }

// ParseKey parses the hex form produced by String.
func ParseKey(text string) (Key, error) {
	var key Key
	decoded, err := hex.DecodeString(text)
	if err != nil {
		return key, fmt.Errorf("parsing cache key: %w", err)
	}
	if len(decoded) != len(key) {
		return key, fmt.Errorf("parsing cache key: got %d bytes, want %d", len(decoded), len(key))
	}
	copy(key[:], decoded)
	return key, nil
}

// keyDomain separates cache keys from any other BLAKE3 use. It is the
// ASCII domain name zero-padded to 32 bytes; changing it invalidates
// every existing entry.
var keyDomain = [32]byte{
	's', 'h', 'e', 'l', 'l', 'f', 'n', '.', 's', 't', 'u', 'b', 'c', 'a', 'c', 'h',
	'e', '.', 'k', 'e', 'y', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// KeyFor derives the key for a manifest's content, the identity of
// the binary generating the stub, and the environment entries that
// influence generation ("NAME=value"). Environment order does not
// matter. Each component is length-prefixed so that no two distinct
// inputs share an encoding.
func KeyFor(source []byte, identity string, environment []string) Key {
	hasher, err := blake3.NewKeyed(keyDomain[:])
	if err != nil {
		// NewKeyed only fails for keys that are not 32 bytes.
		panic("stubcache: " + err.Error())
	}
	writeField(hasher, source)
	writeField(hasher, []byte(identity))

	sorted := slices.Clone(environment)
	slices.Sort(sorted)
	for _, entry := range sorted {
		writeField(hasher, []byte(entry))
	}

	var key Key
	copy(key[:], hasher.Sum(nil))
	return key
}

func writeField(hasher *blake3.Hasher, data []byte) {
	var length [8]byte
	binary.LittleEndian.PutUint64(length[:], uint64(len(data)))
	hasher.Write(length[:])
	hasher.Write(data)
}
