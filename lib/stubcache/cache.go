// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package stubcache

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/bureau-foundation/shellfn/lib/clock"
	"github.com/bureau-foundation/shellfn/lib/codec"
	"github.com/bureau-foundation/shellfn/lib/failure"
)

// Entry is one cached artifact: the generated wrapper for a manifest.
type Entry struct {
	Key      Key       `cbor:"key"`
	Source   string    `cbor:"source"`
	Identity string    `cbor:"identity"`
	Created  time.Time `cbor:"created"`
	Wrapper  string    `cbor:"wrapper"`
}

const (
	entrySuffix  = ".entry"
	tempPattern  = ".tmp-*"
	formatV1     = 1
	headerLength = 4 + 1 + 1 + 4
)

var magic = [4]byte{'S', 'F', 'N', 'C'}

// Cache is a directory of entries, one file per key. Writes are
// rename-atomic, so concurrent writers for the same key leave one
// complete entry (the last rename wins) and readers never observe a
// partial file. No locking is needed.
type Cache struct {
	// Dir holds the entry files. It is created on first store.
	Dir string

	// Compression applies to new entries. Existing entries record
	// their own compression and are always readable.
	Compression Compression

	Clock  clock.Clock
	Logger *slog.Logger
}

func (c *Cache) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

func (c *Cache) path(key Key) string {
	return filepath.Join(c.Dir, key.String()+entrySuffix)
}

// Lookup returns the entry stored under key. A missing entry is a
// miss (ok false, nil error). An entry that cannot be read or decoded,
// or that was stored under a different key, is a cache failure.
func (c *Cache) Lookup(key Key) (Entry, bool, error) {
	data, err := os.ReadFile(c.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, failure.Cache("reading entry %s: %v", key, err)
	}
	entry, err := decodeEntry(data)
	if err != nil {
		return Entry{}, false, failure.Cache("entry %s: %v", key, err)
	}
	if entry.Key != key {
		return Entry{}, false, failure.Cache("entry %s: stored under key %s", key, entry.Key)
	}
	return entry, true, nil
}

// Store writes entry under entry.Key, replacing any existing entry. A
// zero Created is set from the clock.
func (c *Cache) Store(entry Entry) error {
	if entry.Created.IsZero() {
		entry.Created = clock.OrReal(c.Clock).Now()
	}
	data, err := c.encodeEntry(entry)
	if err != nil {
		return failure.Cache("encoding entry %s: %v", entry.Key, err)
	}
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return failure.Cache("creating cache directory: %v", err)
	}
	if err := writeAtomic(c.Dir, c.path(entry.Key), data); err != nil {
		return failure.Cache("writing entry %s: %v", entry.Key, err)
	}
	return nil
}

// Get is the read-through path. A hit is returned directly. On a miss
// or a cache failure, generate produces a fresh entry, which is stored
// and returned. Cache failures are logged and never returned; an error
// from generate is returned unchanged.
func (c *Cache) Get(key Key, generate func() (Entry, error)) (Entry, error) {
	logger := c.logger().With("key", key.String())

	entry, ok, err := c.Lookup(key)
	switch {
	case err != nil:
		logger.Warn("discarding unusable cache entry", "error", err)
	case ok:
		logger.Debug("stub cache hit", "source", entry.Source)
		return entry, nil
	default:
		logger.Debug("stub cache miss")
	}

	entry, err = generate()
	if err != nil {
		return Entry{}, err
	}
	entry.Key = key
	if entry.Created.IsZero() {
		entry.Created = clock.OrReal(c.Clock).Now()
	}
	if err := c.Store(entry); err != nil {
		logger.Warn("storing regenerated entry failed", "error", err)
	}
	return entry, nil
}

// Prune removes entries created more than maxAge ago, entries that
// cannot be decoded, and leftover temporary files older than maxAge.
// It returns the number of files removed. A missing directory has
// nothing to prune.
func (c *Cache) Prune(maxAge time.Duration) (int, error) {
	files, err := os.ReadDir(c.Dir)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, failure.Cache("listing cache directory: %v", err)
	}

	cutoff := clock.OrReal(c.Clock).Now().Add(-maxAge)
	logger := c.logger()
	removed := 0
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		name := file.Name()
		path := filepath.Join(c.Dir, name)

		var stale bool
		switch {
		case strings.HasSuffix(name, entrySuffix):
			data, err := os.ReadFile(path)
			if err != nil {
				return removed, failure.Cache("reading %s: %v", name, err)
			}
			entry, err := decodeEntry(data)
			if err != nil {
				logger.Info("removing corrupt cache entry", "file", name, "error", err)
				stale = true
			} else {
				stale = entry.Created.Before(cutoff)
			}
		case strings.HasPrefix(name, ".tmp-"):
			info, err := file.Info()
			if err != nil {
				continue
			}
			stale = info.ModTime().Before(cutoff)
		}
		if !stale {
			continue
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return removed, failure.Cache("removing %s: %v", name, err)
		}
		logger.Debug("pruned cache file", "file", name)
		removed++
	}
	return removed, nil
}

// List returns the readable entries in the cache, oldest first.
// Unreadable entries are skipped; Prune removes them.
func (c *Cache) List() ([]Entry, error) {
	files, err := os.ReadDir(c.Dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, failure.Cache("listing cache directory: %v", err)
	}
	var entries []Entry
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), entrySuffix) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(c.Dir, file.Name()))
		if err != nil {
			return nil, failure.Cache("reading %s: %v", file.Name(), err)
		}
		entry, err := decodeEntry(data)
		if err != nil {
			c.logger().Debug("skipping unreadable cache entry", "file", file.Name(), "error", err)
			continue
		}
		entries = append(entries, entry)
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		return a.Created.Compare(b.Created)
	})
	return entries, nil
}

// Diagnose returns the CBOR diagnostic notation of the entry's decoded
// payload, for inspecting an entry without trusting its structure.
func (c *Cache) Diagnose(key Key) (string, error) {
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return "", failure.Cache("reading entry %s: %v", key, err)
	}
	payload, err := decodePayload(data)
	if err != nil {
		return "", failure.Cache("entry %s: %v", key, err)
	}
	return codec.Diagnose(payload)
}

// The entry file is a fixed header followed by the payload:
//
//	magic "SFNC" | format (1 byte) | compression (1 byte) |
//	uncompressed size (uint32 little-endian) | payload
func (c *Cache) encodeEntry(entry Entry) ([]byte, error) {
	encoded, err := codec.Marshal(entry)
	if err != nil {
		return nil, err
	}
	if uint64(len(encoded)) > uint64(^uint32(0)) {
		return nil, fmt.Errorf("entry too large: %d bytes", len(encoded))
	}
	payload, used, err := compress(encoded, c.Compression)
	if err != nil {
		return nil, err
	}
	data := make([]byte, headerLength, headerLength+len(payload))
	copy(data, magic[:])
	data[4] = formatV1
	data[5] = byte(used)
	binary.LittleEndian.PutUint32(data[6:], uint32(len(encoded)))
	return append(data, payload...), nil
}

func decodePayload(data []byte) ([]byte, error) {
	if len(data) < headerLength || !bytes.Equal(data[:4], magic[:]) {
		return nil, fmt.Errorf("not a cache entry")
	}
	if data[4] != formatV1 {
		return nil, fmt.Errorf("unsupported entry format %d", data[4])
	}
	size := binary.LittleEndian.Uint32(data[6:headerLength])
	return decompress(data[headerLength:], Compression(data[5]), int(size))
}

func decodeEntry(data []byte) (Entry, error) {
	payload, err := decodePayload(data)
	if err != nil {
		return Entry{}, err
	}
	var entry Entry
	if err := codec.Unmarshal(payload, &entry); err != nil {
		return Entry{}, fmt.Errorf("decoding entry: %w", err)
	}
	return entry, nil
}

// writeAtomic writes data to a temporary file in dir and renames it
// over path.
func writeAtomic(dir, path string, data []byte) error {
	file, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return err
	}
	temporary := file.Name()
	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(temporary)
		return err
	}
	if err := file.Close(); err != nil {
		os.Remove(temporary)
		return err
	}
	if err := os.Rename(temporary, path); err != nil {
		os.Remove(temporary)
		return err
	}
	return nil
}
