// SPDX-FileCopyrightText: 2025 The mhs-embed authors
//
// SPDX-License-Identifier: MIT

package vfs

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shakfu/mhs-embed/internal/blob"
)

// FileCount returns the number of embedded file entries.
func (fsys *FS) FileCount() int { return fsys.fileCount }

// DirCount returns the number of embedded directory entries.
func (fsys *FS) DirCount() int { return fsys.dirCount }

// TotalSize returns the sum of all uncompressed file sizes.
func (fsys *FS) TotalSize() int64 { return fsys.totalSize }

// EmbeddedSize returns the encoded size of the archive blob as carried in
// the binary, header and entry table included.
func (fsys *FS) EmbeddedSize() int64 { return fsys.img.Size }

// Stats is a printable aggregate over the registry.
type Stats struct {
	Root              string
	FileCount         int
	DirCount          int
	TotalSize         int64
	EmbeddedSize      int64
	CompressedEntries int
	CacheEnabled      bool
	CacheResidency    int64
}

// Stats returns aggregate statistics. It fails with [ErrNotInitialized]
// after Close.
func (fsys *FS) Stats() (Stats, error) {
	if fsys.closed.Load() {
		return Stats{}, ErrNotInitialized
	}

	stats := Stats{
		Root:         fsys.root,
		FileCount:    fsys.fileCount,
		DirCount:     fsys.dirCount,
		TotalSize:    fsys.totalSize,
		EmbeddedSize: fsys.img.Size,
		CacheEnabled: fsys.cache != nil,
	}

	for idx := range fsys.img.Entries {
		if fsys.img.Entries[idx].Compressed() {
			stats.CompressedEntries++
		}
	}

	if fsys.cache != nil {
		stats.CacheResidency = fsys.cache.residency()
	}

	return stats, nil
}

// String renders the statistics in a human-readable block, one aggregate
// per line.
func (s Stats) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "virtual root:   %s\n", s.Root)
	fmt.Fprintf(&b, "files:          %d\n", s.FileCount)
	fmt.Fprintf(&b, "directories:    %d\n", s.DirCount)
	fmt.Fprintf(&b, "total size:     %s\n",
		humanize.IBytes(uint64(s.TotalSize)))
	fmt.Fprintf(&b, "embedded size:  %s\n",
		humanize.IBytes(uint64(s.EmbeddedSize)))
	fmt.Fprintf(&b, "compressed:     %d entries\n", s.CompressedEntries)

	if s.CacheEnabled {
		fmt.Fprintf(&b, "cache:          %s resident\n",
			humanize.IBytes(uint64(s.CacheResidency)))
	} else {
		fmt.Fprintf(&b, "cache:          disabled\n")
	}

	return b.String()
}

// List writes one line per embedded path to w, in registration order,
// with kind and size. It fails with [ErrNotInitialized] after Close.
func (fsys *FS) List(w io.Writer) error {
	if fsys.closed.Load() {
		return ErrNotInitialized
	}

	for idx := range fsys.img.Entries {
		entry := &fsys.img.Entries[idx]

		var err error
		if entry.Kind == blob.KindDir {
			_, err = fmt.Fprintf(w, "%s %s/\n", entry.Kind, entry.Path)
		} else {
			_, err = fmt.Fprintf(w, "%s %s (%s)\n",
				entry.Kind, entry.Path,
				humanize.IBytes(entry.RawSize))
		}

		if err != nil {
			return fmt.Errorf("write listing: %w", err)
		}
	}

	return nil
}
