// SPDX-FileCopyrightText: 2025 The mhs-embed authors
//
// SPDX-License-Identifier: MIT

package blob

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the algorithm used to store an entry's bytes.
// The values are format constants. Changing them breaks existing archives.
type Compression uint8

const (
	// CompressionNone stores the bytes as they are.
	CompressionNone Compression = 0

	// CompressionLZ4 stores the bytes as a single LZ4 block. Fast to
	// decode, moderate ratio.
	CompressionLZ4 Compression = 1

	// CompressionZstd stores the bytes zstd compressed at the default
	// level. Better ratio for text-like content.
	CompressionZstd Compression = 2
)

// String returns the human-readable name of the compression algorithm.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// ParseCompression parses a compression name as used on the command line.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("unknown compression: %q", name)
	}
}

// zstdEncoder and zstdDecoder are reused across calls. Both are safe for
// concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error

	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
	)
	if err != nil {
		panic("blob: zstd encoder initialization failed: " + err.Error())
	}

	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("blob: zstd decoder initialization failed: " + err.Error())
	}
}

// compress compresses data with the given algorithm. It returns
// [errIncompressible] if the result would not be smaller than the input.
func compress(data []byte, compression Compression) ([]byte, error) {
	switch compression {
	case CompressionNone:
		return data, nil
	case CompressionLZ4:
		bound := lz4.CompressBlockBound(len(data))
		dst := make([]byte, bound)

		written, err := lz4.CompressBlock(data, dst, nil)
		if err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}

		// CompressBlock returns 0 for incompressible input.
		if written == 0 || written >= len(data) {
			return nil, errIncompressible
		}

		return dst[:written], nil
	case CompressionZstd:
		compressed := zstdEncoder.EncodeAll(data, nil)
		if len(compressed) >= len(data) {
			return nil, errIncompressible
		}

		return compressed, nil
	default:
		return nil, fmt.Errorf("unsupported compression: %d", compression)
	}
}

// decompress decodes data that was compressed with the given algorithm.
// The result must have exactly rawSize bytes. Any failure wraps
// [ErrDecompress].
func decompress(data []byte, compression Compression, rawSize int) ([]byte, error) {
	switch compression {
	case CompressionNone:
		if len(data) != rawSize {
			return nil, fmt.Errorf(
				"%w: raw entry has %d bytes, expected %d",
				ErrDecompress, len(data), rawSize,
			)
		}

		return data, nil
	case CompressionLZ4:
		dst := make([]byte, rawSize)

		read, err := lz4.UncompressBlock(data, dst)
		if err != nil {
			return nil, fmt.Errorf("%w: lz4: %v", ErrDecompress, err)
		}

		if read != rawSize {
			return nil, fmt.Errorf(
				"%w: lz4: got %d bytes, expected %d",
				ErrDecompress, read, rawSize,
			)
		}

		return dst, nil
	case CompressionZstd:
		dst := make([]byte, 0, rawSize)

		result, err := zstdDecoder.DecodeAll(data, dst)
		if err != nil {
			return nil, fmt.Errorf("%w: zstd: %v", ErrDecompress, err)
		}

		if len(result) != rawSize {
			return nil, fmt.Errorf(
				"%w: zstd: got %d bytes, expected %d",
				ErrDecompress, len(result), rawSize,
			)
		}

		return result, nil
	default:
		return nil, fmt.Errorf(
			"%w: unsupported compression: %d",
			ErrDecompress, compression,
		)
	}
}
