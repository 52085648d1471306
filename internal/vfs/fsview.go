// SPDX-FileCopyrightText: 2025 The mhs-embed authors
//
// SPDX-License-Identifier: MIT

package vfs

import (
	"io"
	"io/fs"
	"slices"
	"strings"
)

var (
	_ fs.FS          = (*view)(nil)
	_ fs.ReadDirFS   = (*view)(nil)
	_ fs.ReadFileFS  = (*view)(nil)
	_ fs.StatFS      = (*view)(nil)
	_ fs.ReadDirFile = (*dirFile)(nil)
)

// View returns the embedded tree as a standard [fs.FS], with names
// relative to the virtual root. It makes the registry usable with
// [fs.WalkDir] and friends.
func (fsys *FS) View() fs.FS {
	return &view{fsys: fsys}
}

type view struct {
	fsys *FS
}

func (v *view) Open(name string) (fs.File, error) {
	file, err := v.open(name)
	if err != nil {
		return nil, &PathError{Op: "open", Path: name, Err: err}
	}

	return file, nil
}

func (v *view) open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, fs.ErrInvalid
	}

	found, err := v.fsys.lookupKey(name)
	if err != nil {
		return nil, err
	}

	if found.isDir() {
		file := &dirFile{
			info:    fileInfo{entry: found.entry},
			entries: sortedEntries(found),
		}

		return file, nil
	}

	return v.fsys.openNode(found)
}

func (v *view) ReadDir(name string) ([]fs.DirEntry, error) {
	if !fs.ValidPath(name) {
		return nil, &PathError{Op: "readdir", Path: name, Err: fs.ErrInvalid}
	}

	found, err := v.fsys.lookupKey(name)
	if err != nil {
		return nil, &PathError{Op: "readdir", Path: name, Err: err}
	}

	if !found.isDir() {
		return nil, &PathError{Op: "readdir", Path: name, Err: ErrNotDir}
	}

	return sortedEntries(found), nil
}

func (v *view) ReadFile(name string) ([]byte, error) {
	if !fs.ValidPath(name) {
		return nil, &PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}

	found, err := v.fsys.lookupKey(name)
	if err != nil {
		return nil, &PathError{Op: "open", Path: name, Err: err}
	}

	if found.isDir() {
		return nil, &PathError{Op: "open", Path: name, Err: ErrIsDir}
	}

	content, err := v.fsys.content(found)
	if err != nil {
		return nil, &PathError{Op: "open", Path: name, Err: err}
	}

	// Callers own the returned slice, so hand out a copy instead of the
	// shared backing buffer.
	return slices.Clone(content), nil
}

func (v *view) Stat(name string) (fs.FileInfo, error) {
	if !fs.ValidPath(name) {
		return nil, &PathError{Op: "stat", Path: name, Err: fs.ErrInvalid}
	}

	found, err := v.fsys.lookupKey(name)
	if err != nil {
		return nil, &PathError{Op: "stat", Path: name, Err: err}
	}

	return &fileInfo{entry: found.entry}, nil
}

// sortedEntries returns a directory's children sorted by name, as the
// [fs.ReadDirFS] contract requires. The registration-order view stays
// with [FS.OpenDir].
func sortedEntries(found *node) []fs.DirEntry {
	entries := make([]fs.DirEntry, len(found.children))
	for idx, child := range found.children {
		entries[idx] = &fileInfo{entry: child.entry}
	}

	slices.SortFunc(entries, func(a, b fs.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})

	return entries
}

// dirFile adapts a directory node to [fs.ReadDirFile].
type dirFile struct {
	info    fileInfo
	entries []fs.DirEntry
	offset  int
}

func (f *dirFile) Stat() (fs.FileInfo, error) { return &f.info, nil }
func (*dirFile) Close() error                 { return nil }

func (f *dirFile) Read([]byte) (int, error) {
	return 0, ErrIsDir
}

func (f *dirFile) ReadDir(count int) ([]fs.DirEntry, error) {
	start := f.offset
	end := len(f.entries)
	available := end - start

	if available == 0 && count > 0 {
		return nil, io.EOF
	}

	if count > 0 && available > count {
		end = start + count
	}

	f.offset = end

	return f.entries[start:end], nil
}
