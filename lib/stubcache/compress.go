// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package stubcache

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies how an entry's payload is stored. The value
// is written into every entry header, so the numbers are part of the
// on-disk format.
type Compression uint8

const (
	CompressionNone Compression = 0
	CompressionLZ4  Compression = 1
	CompressionZstd Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", c)
	}
}

// ParseCompression parses a compression name as used in configuration.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("unknown compression %q (expected none, lz4, or zstd)", name)
	}
}

// errIncompressible means compression would not shrink the payload.
// The caller stores it uncompressed instead.
var errIncompressible = errors.New("data is incompressible")

// compress returns the stored form of data and the compression actually
// used, which falls back to none when the requested algorithm does not
// help.
func compress(data []byte, requested Compression) ([]byte, Compression, error) {
	var (
		compressed []byte
		err        error
	)
	switch requested {
	case CompressionNone:
		return data, CompressionNone, nil
	case CompressionLZ4:
		compressed, err = compressLZ4(data)
	case CompressionZstd:
		compressed, err = compressZstd(data)
	default:
		return nil, 0, fmt.Errorf("unsupported compression: %d", requested)
	}
	if errors.Is(err, errIncompressible) {
		return data, CompressionNone, nil
	}
	if err != nil {
		return nil, 0, err
	}
	return compressed, requested, nil
}

// decompress reverses compress. size is the uncompressed length
// recorded in the entry header and is verified.
func decompress(stored []byte, used Compression, size int) ([]byte, error) {
	switch used {
	case CompressionNone:
		if len(stored) != size {
			return nil, fmt.Errorf("uncompressed payload: size %d does not match expected %d", len(stored), size)
		}
		return stored, nil
	case CompressionLZ4:
		destination := make([]byte, size)
		read, err := lz4.UncompressBlock(stored, destination)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		if read != size {
			return nil, fmt.Errorf("lz4 decompress: got %d bytes, expected %d", read, size)
		}
		return destination, nil
	case CompressionZstd:
		result, err := zstdDecoder.DecodeAll(stored, make([]byte, 0, size))
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		if len(result) != size {
			return nil, fmt.Errorf("zstd decompress: got %d bytes, expected %d", len(result), size)
		}
		return result, nil
	default:
		return nil, fmt.Errorf("unsupported compression: %d", used)
	}
}

func compressLZ4(data []byte) ([]byte, error) {
	destination := make([]byte, lz4.CompressBlockBound(len(data)))
	written, err := lz4.CompressBlock(data, destination, nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	// CompressBlock reports 0 for incompressible input.
	if written == 0 || written >= len(data) {
		return nil, errIncompressible
	}
	return destination[:written], nil
}

// zstd.Encoder and zstd.Decoder are safe for concurrent use with
// EncodeAll and DecodeAll.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("stubcache: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("stubcache: zstd decoder initialization failed: " + err.Error())
	}
}

func compressZstd(data []byte) ([]byte, error) {
	compressed := zstdEncoder.EncodeAll(data, nil)
	if len(compressed) >= len(data) {
		return nil, errIncompressible
	}
	return compressed, nil
}
