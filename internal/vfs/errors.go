// SPDX-FileCopyrightText: 2025 The mhs-embed authors
//
// SPDX-License-Identifier: MIT

package vfs

import (
	"errors"
	"io/fs"

	"github.com/shakfu/mhs-embed/internal/blob"
)

var (
	// ErrCorrupt is returned by [New] if the archive blob's structural
	// markers are inconsistent.
	ErrCorrupt = blob.ErrMalformed

	// ErrNotInitialized is returned if an [FS] is used after Close.
	ErrNotInitialized = errors.New("virtual filesystem is not initialized")

	// ErrNotFound is returned if a virtual path has no registry entry.
	ErrNotFound = fs.ErrNotExist

	// ErrIsDir is returned if a file operation targets a directory entry.
	ErrIsDir = errors.New("is a directory")

	// ErrNotDir is returned if a directory operation targets a file entry.
	ErrNotDir = errors.New("not a directory")

	// ErrReadOnly is returned if a write mode is requested for a virtual
	// path. The embedded store is immutable.
	ErrReadOnly = errors.New("read-only file system")

	// ErrDecompress is returned if a compressed entry's payload is
	// corrupt.
	ErrDecompress = blob.ErrDecompress

	// ErrExtract is returned if materializing the embedded tree fails. It
	// wraps the first underlying cause.
	ErrExtract = errors.New("extraction failed")

	// ErrClosed is returned if a file or directory handle is used after
	// Close.
	ErrClosed = fs.ErrClosed
)

// PathError records an error and the operation and file path that caused
// it.
type PathError = fs.PathError
