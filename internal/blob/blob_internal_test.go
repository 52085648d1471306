// SPDX-FileCopyrightText: 2025 The mhs-embed authors
//
// SPDX-License-Identifier: MIT

package blob

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeTable(t *testing.T, entries []Entry) []byte {
	t.Helper()

	table, err := encMode.Marshal(entries)
	require.NoError(t, err)

	return table
}

func TestDecodeRejectsInconsistentTables(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		flags   uint8
		data    []byte
	}{
		{
			name: "invalid path",
			entries: []Entry{
				{Path: "/abs", Kind: KindFile},
			},
		},
		{
			name: "dot path",
			entries: []Entry{
				{Path: ".", Kind: KindDir},
			},
		},
		{
			name: "duplicate path",
			entries: []Entry{
				{Path: "a", Kind: KindDir},
				{Path: "a", Kind: KindDir},
			},
		},
		{
			name: "missing parent directory",
			entries: []Entry{
				{Path: "sub/b.txt", Kind: KindFile},
			},
		},
		{
			name: "parent is a file",
			entries: []Entry{
				{Path: "sub", Kind: KindFile},
				{Path: "sub/b.txt", Kind: KindFile},
			},
		},
		{
			name: "file exceeds data section",
			entries: []Entry{
				{Path: "a.txt", Kind: KindFile, Offset: 0, RawSize: 10},
			},
			data: []byte("short"),
		},
		{
			name: "directory with content bytes",
			entries: []Entry{
				{Path: "sub", Kind: KindDir, RawSize: 3},
			},
			data: []byte("abc"),
		},
		{
			name: "invalid kind",
			entries: []Entry{
				{Path: "a.txt", Kind: Kind(7)},
			},
		},
		{
			name: "compressed entry without header flag",
			entries: []Entry{
				{
					Path:           "a.txt",
					Kind:           KindFile,
					RawSize:        8,
					CompressedSize: 4,
					Compression:    CompressionZstd,
				},
			},
			data: []byte("data"),
		},
		{
			name: "compressed entry with invalid algorithm",
			entries: []Entry{
				{
					Path:           "a.txt",
					Kind:           KindFile,
					RawSize:        8,
					CompressedSize: 4,
					Compression:    Compression(9),
				},
			},
			flags: flagCompressed,
			data:  []byte("data"),
		},
		{
			name: "raw entry with compression marker",
			entries: []Entry{
				{
					Path:        "a.txt",
					Kind:        KindFile,
					RawSize:     4,
					Compression: CompressionLZ4,
				},
			},
			flags: flagCompressed,
			data:  []byte("data"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := encodeTable(t, tt.entries)
			encoded := assemble(tt.flags, table, tt.data)

			_, err := Decode(encoded)
			require.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestDecompressRejectsCorruptPayloads(t *testing.T) {
	content := []byte(strings.Repeat("compressible content ", 16))

	for _, compression := range []Compression{
		CompressionLZ4,
		CompressionZstd,
	} {
		t.Run(compression.String(), func(t *testing.T) {
			compressed, err := compress(content, compression)
			require.NoError(t, err)

			for idx := range compressed {
				compressed[idx] ^= 0xA5
			}

			_, err = decompress(compressed, compression, len(content))
			require.ErrorIs(t, err, ErrDecompress)
		})
	}
}

func TestDecompressRejectsSizeMismatch(t *testing.T) {
	content := []byte(strings.Repeat("compressible content ", 16))

	compressed, err := compress(content, CompressionZstd)
	require.NoError(t, err)

	_, err = decompress(compressed, CompressionZstd, len(content)+1)
	require.ErrorIs(t, err, ErrDecompress)
}

func TestCompressIncompressibleFallsBack(t *testing.T) {
	// Too small to be worth compressing and with no repetition.
	content := []byte{0x01, 0xA7, 0x3B, 0xFF, 0x10}

	_, err := compress(content, CompressionLZ4)
	assert.ErrorIs(t, err, errIncompressible)

	_, err = compress(content, CompressionZstd)
	assert.ErrorIs(t, err, errIncompressible)
}
