// SPDX-FileCopyrightText: 2025 The mhs-embed authors
//
// SPDX-License-Identifier: MIT

// Package mhsembed serves an archive of embedded files as a read-only
// virtual file system, so a runtime that expects to read from a real file
// system can transparently read from in-process memory instead, falling
// back to the real file system for anything not embedded.
//
// Build an archive with [Pack], open it with [New] and route a host
// runtime's file operations through [NewInterceptor]. Paths below the
// virtual root prefix (default [DefaultRoot]) resolve against the
// archive; all other paths stay with the real file system.
package mhsembed

import (
	"io/fs"

	"github.com/shakfu/mhs-embed/internal/blob"
	"github.com/shakfu/mhs-embed/internal/intercept"
	"github.com/shakfu/mhs-embed/internal/vfs"
)

// DefaultRoot is the virtual root prefix embedded files are served under.
const DefaultRoot = vfs.DefaultRoot

// Core types re-exported from the internal packages.
type (
	// FS is the registry of embedded paths, created by [New].
	FS = vfs.FS

	// Options configure [New].
	Options = vfs.Options

	// File is an open, memory-backed file handle.
	File = vfs.File

	// Dir is an open directory handle with cursor iteration.
	Dir = vfs.Dir

	// Stats is a printable aggregate over the registry.
	Stats = vfs.Stats

	// Compression identifies an entry's compression algorithm.
	Compression = blob.Compression

	// PackOptions configure [Pack].
	PackOptions = blob.WriteOptions

	// Interceptor routes file operations between the embedded store and
	// the real file system.
	Interceptor = intercept.Router

	// Opener is the operation surface a host runtime is rewired to.
	Opener = intercept.Opener
)

// Compression constants re-exported for [PackOptions].
const (
	CompressionNone = blob.CompressionNone
	CompressionLZ4  = blob.CompressionLZ4
	CompressionZstd = blob.CompressionZstd
)

// Sentinel errors re-exported from the internal packages.
var (
	// ErrCorrupt is returned by [New] for a malformed archive blob.
	ErrCorrupt = vfs.ErrCorrupt

	// ErrNotInitialized is returned if an [FS] is used after Close.
	ErrNotInitialized = vfs.ErrNotInitialized

	// ErrNotFound is returned if a virtual path has no registry entry.
	ErrNotFound = vfs.ErrNotFound

	// ErrIsDir is returned if a file operation targets a directory.
	ErrIsDir = vfs.ErrIsDir

	// ErrNotDir is returned if a directory operation targets a file.
	ErrNotDir = vfs.ErrNotDir

	// ErrReadOnly is returned for write access to a virtual path.
	ErrReadOnly = vfs.ErrReadOnly

	// ErrDecompress is returned for a corrupt compressed payload.
	ErrDecompress = vfs.ErrDecompress

	// ErrExtract is returned if materializing the temp tree fails.
	ErrExtract = vfs.ErrExtract

	// ErrClosed is returned if a handle is used after Close.
	ErrClosed = vfs.ErrClosed
)

// New parses an archive blob and builds the virtual filesystem registry.
func New(data []byte, opts Options) (*FS, error) {
	return vfs.New(data, opts) //nolint:wrapcheck
}

// Pack writes all regular files and directories of fsys into an archive
// blob that [New] accepts.
func Pack(fsys fs.FS, opts PackOptions) ([]byte, error) {
	return blob.Write(fsys, opts) //nolint:wrapcheck
}

// NewInterceptor returns an [Interceptor] over fsys that falls back to
// the real file system for non-virtual paths.
func NewInterceptor(fsys *FS) *Interceptor {
	return intercept.New(fsys)
}

// CleanupTemp removes a tree previously returned by [FS.ExtractToTemp].
// It is idempotent.
func CleanupTemp(path string) error {
	return vfs.CleanupTemp(path) //nolint:wrapcheck
}
