// SPDX-FileCopyrightText: 2025 The mhs-embed authors
//
// SPDX-License-Identifier: MIT

package vfs

import (
	"io"
	"io/fs"
)

// Dir is an open handle for an embedded directory. It yields the
// directory's children one at a time in registration order. Virtual
// directories are fully synthetic; no real file system entries are ever
// merged in.
//
// Like [File], a Dir expects a single owner.
type Dir struct {
	name    string
	entries []fs.DirEntry
	cursor  int
	closed  bool
}

// OpenDir opens the named virtual path as a directory. An absent path
// fails with [ErrNotFound], a file entry with [ErrNotDir].
func (fsys *FS) OpenDir(name string) (*Dir, error) {
	found, err := fsys.lookup(name)
	if err != nil {
		return nil, &PathError{Op: "opendir", Path: name, Err: err}
	}

	if !found.isDir() {
		return nil, &PathError{Op: "opendir", Path: name, Err: ErrNotDir}
	}

	entries := make([]fs.DirEntry, len(found.children))
	for idx, child := range found.children {
		entries[idx] = &fileInfo{entry: child.entry}
	}

	dir := &Dir{
		name:    name,
		entries: entries,
	}

	return dir, nil
}

// ReadNext returns the next directory entry and advances the cursor. At
// the end of the directory it returns [io.EOF]; repeated calls keep
// returning [io.EOF]. A closed handle fails with [ErrClosed].
func (d *Dir) ReadNext() (fs.DirEntry, error) {
	if d.closed {
		return nil, &PathError{Op: "readdir", Path: d.name, Err: ErrClosed}
	}

	if d.cursor >= len(d.entries) {
		return nil, io.EOF
	}

	entry := d.entries[d.cursor]
	d.cursor++

	return entry, nil
}

// Close releases the handle. A second Close is detected and returns
// [ErrClosed] instead of corrupting state.
func (d *Dir) Close() error {
	if d.closed {
		return &PathError{Op: "closedir", Path: d.name, Err: ErrClosed}
	}

	d.closed = true
	d.entries = nil

	return nil
}
