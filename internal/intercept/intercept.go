// SPDX-FileCopyrightText: 2025 The mhs-embed authors
//
// SPDX-License-Identifier: MIT

package intercept

import (
	"io"
	"io/fs"

	"github.com/shakfu/mhs-embed/internal/vfs"
)

// File is the handle shape of an open file: the read, write, seek and
// close contract of a real descriptor. Virtual handles reject writes.
type File interface {
	io.ReadWriteSeeker
	io.Closer
	Stat() (fs.FileInfo, error)
}

// DirHandle yields directory entries one at a time and returns [io.EOF]
// at the end, idempotently.
type DirHandle interface {
	ReadNext() (fs.DirEntry, error)
	Close() error
}

// Opener is the operation surface the host runtime's file call sites are
// rewired to: open-for-read/write and open-directory. Reading and closing
// happen on the returned handles.
type Opener interface {
	OpenFile(name string, flag int) (File, error)
	OpenDir(name string) (DirHandle, error)
}

var (
	_ Opener = OS{}
	_ Opener = (*Router)(nil)
)

// Router delegates virtual paths to the embedded filesystem and all other
// paths to Fallback.
type Router struct {
	VFS      *vfs.FS
	Fallback Opener
}

// New returns a [Router] over fsys that falls back to the real file
// system.
func New(fsys *vfs.FS) *Router {
	return &Router{
		VFS:      fsys,
		Fallback: OS{},
	}
}

// OpenFile opens the named file, from the embedded store if the path is
// virtual.
func (r *Router) OpenFile(name string, flag int) (File, error) {
	if _, ok := r.VFS.Resolve(name); ok {
		file, err := r.VFS.OpenFile(name, flag)
		if err != nil {
			return nil, err
		}

		return file, nil
	}

	return r.Fallback.OpenFile(name, flag)
}

// OpenDir opens the named directory, virtually if the path is virtual. A
// virtual directory never merges real file system entries.
func (r *Router) OpenDir(name string) (DirHandle, error) {
	if _, ok := r.VFS.Resolve(name); ok {
		dir, err := r.VFS.OpenDir(name)
		if err != nil {
			return nil, err
		}

		return dir, nil
	}

	return r.Fallback.OpenDir(name)
}
