// SPDX-FileCopyrightText: 2025 The mhs-embed authors
//
// SPDX-License-Identifier: MIT

package vfs

import (
	"fmt"
	"log/slog"
	"path"
	"strings"
	"sync/atomic"

	"github.com/shakfu/mhs-embed/internal/blob"
)

// Options configure [New].
type Options struct {
	// Root overrides the virtual root prefix. Defaults to [DefaultRoot].
	// Must be an absolute slash-separated path.
	Root string

	// DisableCache turns off memoization of decompressed entries. Each
	// open of a compressed entry then decompresses again.
	DisableCache bool
}

// node is a registry entry together with its children in registration
// order. Nodes are immutable after New.
type node struct {
	entry    *blob.Entry
	children []*node
}

func (n *node) isDir() bool {
	return n.entry.Kind == blob.KindDir
}

// FS is the registry of embedded paths together with the archive bytes
// backing them. It is created by [New], torn down by [FS.Close] and safe
// for concurrent readers in between.
type FS struct {
	root     string
	img      *blob.Image
	nodes    map[string]*node
	rootNode *node
	cache    *cache

	fileCount int
	dirCount  int
	totalSize int64

	closed atomic.Bool
}

// New parses the archive blob and builds the registry. It returns an
// error wrapping [ErrCorrupt] if the blob's structural markers are
// inconsistent. The blob is retained by reference and must not be
// modified afterwards.
func New(data []byte, opts Options) (*FS, error) {
	root := DefaultRoot
	if opts.Root != "" {
		root = opts.Root
	}

	if !strings.HasPrefix(root, "/") || path.Clean(root) != root {
		return nil, fmt.Errorf("invalid virtual root: %q", opts.Root)
	}

	img, err := blob.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("parse archive: %w", err)
	}

	fsys := &FS{
		root:     root,
		img:      img,
		nodes:    make(map[string]*node, len(img.Entries)),
		rootNode: &node{entry: &blob.Entry{Path: ".", Kind: blob.KindDir}},
	}

	var hasCompressed bool

	for idx := range img.Entries {
		entry := &img.Entries[idx]
		child := &node{entry: entry}

		// Decode guarantees the parent exists and is a directory.
		parent := fsys.rootNode
		if dir := path.Dir(entry.Path); dir != "." {
			parent = fsys.nodes[dir]
		}

		parent.children = append(parent.children, child)
		fsys.nodes[entry.Path] = child

		switch entry.Kind {
		case blob.KindDir:
			fsys.dirCount++
		case blob.KindFile:
			fsys.fileCount++
			fsys.totalSize += int64(entry.RawSize)

			if entry.Compressed() {
				hasCompressed = true
			}
		}
	}

	if hasCompressed && !opts.DisableCache {
		fsys.cache = newCache()
	}

	slog.Debug("virtual filesystem initialized",
		slog.String("root", root),
		slog.Int("files", fsys.fileCount),
		slog.Int("dirs", fsys.dirCount),
	)

	return fsys, nil
}

// Close marks the registry inert and releases the decompression cache.
// Subsequent lookups fail with [ErrNotInitialized]. Handles open at this
// point are a contract violation of the caller; reads through them keep
// working on their already resolved buffers but must not be relied on.
func (fsys *FS) Close() error {
	if !fsys.closed.CompareAndSwap(false, true) {
		return ErrNotInitialized
	}

	if fsys.cache != nil {
		fsys.cache.clear()
	}

	return nil
}

// Root returns the virtual root prefix.
func (fsys *FS) Root() string {
	return fsys.root
}

// Resolve classifies name against this filesystem's virtual root. See the
// package level [Resolve].
func (fsys *FS) Resolve(name string) (string, bool) {
	return Resolve(fsys.root, name)
}

// lookup resolves a full virtual path to its registry node.
func (fsys *FS) lookup(name string) (*node, error) {
	key, ok := fsys.Resolve(name)
	if !ok {
		return nil, ErrNotFound
	}

	return fsys.lookupKey(key)
}

// lookupKey resolves a registry key ("." for the root directory).
func (fsys *FS) lookupKey(key string) (*node, error) {
	if fsys.closed.Load() {
		return nil, ErrNotInitialized
	}

	if key == "." {
		return fsys.rootNode, nil
	}

	found, exists := fsys.nodes[key]
	if !exists {
		return nil, ErrNotFound
	}

	return found, nil
}

// content returns the decompressed bytes backing a file node. Compressed
// entries go through the cache if one is enabled, so repeated opens share
// one buffer.
func (fsys *FS) content(n *node) ([]byte, error) {
	if !n.entry.Compressed() || fsys.cache == nil {
		return fsys.img.Bytes(n.entry)
	}

	return fsys.cache.get(n.entry.Path, func() ([]byte, error) {
		return fsys.img.Bytes(n.entry)
	})
}

// ClearCache drops all memoized decompressed buffers. Open handles keep
// their already resolved buffer and stay readable. It is a no-op if the
// cache is disabled or the archive has no compressed entries.
func (fsys *FS) ClearCache() {
	if fsys.cache != nil {
		fsys.cache.clear()
	}
}
