// SPDX-FileCopyrightText: 2025 The mhs-embed authors
//
// SPDX-License-Identifier: MIT

package vfs

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path"
	"time"

	"github.com/shakfu/mhs-embed/internal/blob"
)

const (
	fileMode = fs.FileMode(0o444)
	dirMode  = fs.FileMode(0o555) | fs.ModeDir
)

// Flags that imply mutation. Any of them on a virtual path is rejected
// with ErrReadOnly.
const writeFlags = os.O_WRONLY | os.O_RDWR | os.O_APPEND |
	os.O_CREATE | os.O_TRUNC | os.O_EXCL

var (
	_ fs.FileInfo = (*fileInfo)(nil)
	_ fs.DirEntry = (*fileInfo)(nil)
	_ fs.File     = (*File)(nil)
	_ io.Seeker   = (*File)(nil)
	_ io.ReaderAt = (*File)(nil)
)

// fileInfo describes a registry node. It serves as both [fs.FileInfo] and
// [fs.DirEntry].
type fileInfo struct {
	entry *blob.Entry
}

func (i *fileInfo) Name() string { return path.Base(i.entry.Path) }
func (i *fileInfo) Size() int64  { return int64(i.entry.RawSize) }
func (i *fileInfo) IsDir() bool  { return i.entry.Kind == blob.KindDir }

func (i *fileInfo) Mode() fs.FileMode {
	if i.IsDir() {
		return dirMode
	}

	return fileMode
}

func (i *fileInfo) Type() fs.FileMode          { return i.Mode().Type() }
func (i *fileInfo) Info() (fs.FileInfo, error) { return i, nil }
func (*fileInfo) ModTime() time.Time           { return time.Time{} }
func (i *fileInfo) Sys() any                   { return i.entry }
func (i *fileInfo) String() string             { return fs.FormatFileInfo(i) }

// File is an open, memory-backed handle for an embedded file. It presents
// the usual read, seek and close semantics over the entry's decompressed
// bytes. The handle expects a single owner; concurrent use of one handle
// needs external synchronization, like a real file descriptor.
type File struct {
	info   fileInfo
	reader *bytes.Reader
}

// Open opens the named virtual path for reading. It is shorthand for
// [FS.OpenFile] with O_RDONLY.
func (fsys *FS) Open(name string) (*File, error) {
	return fsys.OpenFile(name, os.O_RDONLY)
}

// OpenFile opens the named virtual path with the given open flags. Only
// read access is supported: any write flag fails with [ErrReadOnly].
// Opening a directory entry fails with [ErrIsDir], an absent path with
// [ErrNotFound]. A compressed entry with a corrupt payload fails with
// [ErrDecompress] and yields no handle.
func (fsys *FS) OpenFile(name string, flag int) (*File, error) {
	file, err := fsys.openFile(name, flag)
	if err != nil {
		return nil, &PathError{Op: "open", Path: name, Err: err}
	}

	return file, nil
}

func (fsys *FS) openFile(name string, flag int) (*File, error) {
	if flag&writeFlags != 0 {
		return nil, ErrReadOnly
	}

	found, err := fsys.lookup(name)
	if err != nil {
		return nil, err
	}

	return fsys.openNode(found)
}

func (fsys *FS) openNode(found *node) (*File, error) {
	if found.isDir() {
		return nil, ErrIsDir
	}

	content, err := fsys.content(found)
	if err != nil {
		return nil, err
	}

	file := &File{
		info:   fileInfo{entry: found.entry},
		reader: bytes.NewReader(content),
	}

	return file, nil
}

// Stat implements [fs.File].
func (f *File) Stat() (fs.FileInfo, error) {
	return &f.info, nil
}

// Read reads up to len(b) bytes, advancing the cursor. At end of content
// it returns [io.EOF].
func (f *File) Read(b []byte) (int, error) {
	if f.reader == nil {
		return 0, ErrClosed
	}

	return f.reader.Read(b) //nolint:wrapcheck
}

// ReadAt implements [io.ReaderAt] without moving the cursor.
func (f *File) ReadAt(b []byte, off int64) (int, error) {
	if f.reader == nil {
		return 0, ErrClosed
	}

	return f.reader.ReadAt(b, off) //nolint:wrapcheck
}

// Seek repositions the cursor like [os.File.Seek] does.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	if f.reader == nil {
		return 0, ErrClosed
	}

	return f.reader.Seek(offset, whence) //nolint:wrapcheck
}

// Write always fails with [ErrReadOnly]: the embedded store is immutable.
// It exists so the handle is shape-compatible with a real writable
// descriptor at the interception boundary.
func (f *File) Write([]byte) (int, error) {
	if f.reader == nil {
		return 0, ErrClosed
	}

	return 0, ErrReadOnly
}

// Close releases the handle. The shared backing buffer is untouched.
// A second Close returns [ErrClosed].
func (f *File) Close() error {
	if f.reader == nil {
		return ErrClosed
	}

	f.reader = nil

	return nil
}
