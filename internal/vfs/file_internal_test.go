// SPDX-FileCopyrightText: 2025 The mhs-embed authors
//
// SPDX-License-Identifier: MIT

package vfs

import (
	"testing"

	"github.com/shakfu/mhs-embed/internal/blob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// corruptFS builds a registry whose single entry claims zstd compression
// over junk bytes, bypassing the blob checksum that would normally catch
// the damage earlier.
func corruptFS() *FS {
	img := &blob.Image{
		Entries: []blob.Entry{{
			Path:           "big.bin",
			Kind:           blob.KindFile,
			Offset:         0,
			RawSize:        100,
			CompressedSize: 5,
			Compression:    blob.CompressionZstd,
		}},
		Data: []byte("junk!"),
		Size: 5,
	}

	fsys := &FS{
		root:     DefaultRoot,
		img:      img,
		nodes:    make(map[string]*node),
		rootNode: &node{entry: &blob.Entry{Path: ".", Kind: blob.KindDir}},
		cache:    newCache(),
	}

	child := &node{entry: &img.Entries[0]}
	fsys.nodes["big.bin"] = child
	fsys.rootNode.children = append(fsys.rootNode.children, child)

	return fsys
}

func TestOpenCorruptCompressedEntry(t *testing.T) {
	fsys := corruptFS()

	file, err := fsys.Open("/mhs-embedded/big.bin")
	require.ErrorIs(t, err, ErrDecompress)
	assert.Nil(t, file)

	// The failure is not cached.
	assert.Zero(t, fsys.cache.residency())
}
