// SPDX-FileCopyrightText: 2025 The mhs-embed authors
//
// SPDX-License-Identifier: MIT

package vfs

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/shakfu/mhs-embed/internal/blob"
)

const (
	tempPattern    = "mhs-embedded-"
	extractDirMode = os.FileMode(0o755)
	extractPerm    = os.FileMode(0o644)
)

// ExtractToTemp materializes the entire embedded tree into a fresh,
// uniquely named directory created under dir ([os.TempDir] if empty), for
// tools that require real file paths. Directories are created parent
// before child; file contents are written fully decompressed.
//
// It returns the root of the new tree. On any failure the partially
// created tree is removed before an error wrapping [ErrExtract] and the
// first underlying cause is returned. The caller owns the returned tree
// and removes it with [CleanupTemp].
func (fsys *FS) ExtractToTemp(dir string) (string, error) {
	if fsys.closed.Load() {
		return "", ErrNotInitialized
	}

	base := dir
	if base == "" {
		base = os.TempDir()
	}

	// Preflight where the platform lets us, instead of failing halfway
	// through writing the tree.
	if avail, err := freeSpace(base); err == nil &&
		avail < uint64(fsys.totalSize) {
		return "", fmt.Errorf(
			"%w: insufficient space in %s: %d bytes available, %d needed",
			ErrExtract, base, avail, fsys.totalSize,
		)
	}

	root, err := os.MkdirTemp(dir, tempPattern)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExtract, err)
	}

	err = fsys.extractInto(root)
	if err != nil {
		_ = os.RemoveAll(root)

		return "", fmt.Errorf("%w: %w", ErrExtract, err)
	}

	slog.Debug("embedded tree extracted",
		slog.String("path", root),
		slog.Int("files", fsys.fileCount),
	)

	return root, nil
}

func (fsys *FS) extractInto(root string) error {
	// Registration order guarantees parents precede children, so the
	// directory skeleton can be built in one sequential pass.
	for idx := range fsys.img.Entries {
		entry := &fsys.img.Entries[idx]
		if entry.Kind != blob.KindDir {
			continue
		}

		target := filepath.Join(root, filepath.FromSlash(entry.Path))

		err := os.Mkdir(target, extractDirMode)
		if err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	// File contents are independent of each other, write them in
	// parallel.
	group := errgroup.Group{}

	for idx := range fsys.img.Entries {
		entry := &fsys.img.Entries[idx]
		if entry.Kind != blob.KindFile {
			continue
		}

		group.Go(func() error {
			content, err := fsys.img.Bytes(entry)
			if err != nil {
				return err
			}

			target := filepath.Join(root, filepath.FromSlash(entry.Path))

			err = os.WriteFile(target, content, extractPerm)
			if err != nil {
				return fmt.Errorf("write file: %w", err)
			}

			return nil
		})
	}

	return group.Wait() //nolint:wrapcheck
}

// CleanupTemp recursively removes a tree previously returned by
// [FS.ExtractToTemp]. It is idempotent: a second call on the same path
// finds nothing to remove and succeeds silently.
func CleanupTemp(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrExtract)
	}

	err := os.RemoveAll(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExtract, err)
	}

	return nil
}
