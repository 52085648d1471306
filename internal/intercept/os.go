// SPDX-FileCopyrightText: 2025 The mhs-embed authors
//
// SPDX-License-Identifier: MIT

package intercept

import (
	"io"
	"io/fs"
	"os"
)

const createPerm = os.FileMode(0o644)

// OS is the real file system [Opener]. It is what the host runtime called
// before interception.
type OS struct{}

// OpenFile opens a real file with the given flags.
func (OS) OpenFile(name string, flag int) (File, error) {
	file, err := os.OpenFile(name, flag, createPerm)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return file, nil
}

// OpenDir opens a real directory as a cursor-style handle.
func (OS) OpenDir(name string) (DirHandle, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return &osDir{file: file}, nil
}

// osDir adapts [os.File.ReadDir] to one-entry-at-a-time iteration.
type osDir struct {
	file *os.File
}

func (d *osDir) ReadNext() (fs.DirEntry, error) {
	entries, err := d.file.ReadDir(1)
	if err != nil {
		// io.EOF at the end of the directory, matching virtual handles.
		return nil, err //nolint:wrapcheck
	}

	if len(entries) == 0 {
		return nil, io.EOF
	}

	return entries[0], nil
}

func (d *osDir) Close() error {
	return d.file.Close() //nolint:wrapcheck
}
