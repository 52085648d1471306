// SPDX-FileCopyrightText: 2025 The mhs-embed authors
//
// SPDX-License-Identifier: MIT

package vfs

import (
	"fmt"
	"io"

	"github.com/cavaliergopher/cpio"

	"github.com/shakfu/mhs-embed/internal/blob"
)

const dirLinks = 2

// ExportCPIO writes the embedded tree as a CPIO archive to w, directories
// first, file contents fully decompressed. The result can be unpacked
// with standard tooling for inspection.
func (fsys *FS) ExportCPIO(w io.Writer) error {
	if fsys.closed.Load() {
		return ErrNotInitialized
	}

	writer := cpio.NewWriter(w)

	for idx := range fsys.img.Entries {
		entry := &fsys.img.Entries[idx]

		var err error
		if entry.Kind == blob.KindDir {
			err = writeCPIODirectory(writer, entry)
		} else {
			err = fsys.writeCPIORegular(writer, entry)
		}

		if err != nil {
			return err
		}
	}

	err := writer.Close()
	if err != nil {
		return fmt.Errorf("close archive: %w", err)
	}

	return nil
}

func writeCPIODirectory(writer *cpio.Writer, entry *blob.Entry) error {
	header := &cpio.Header{
		Name:  entry.Path,
		Mode:  cpio.TypeDir | cpio.ModePerm,
		Links: dirLinks,
	}

	err := writer.WriteHeader(header)
	if err != nil {
		return fmt.Errorf("write header for %s: %w", entry.Path, err)
	}

	return nil
}

func (fsys *FS) writeCPIORegular(
	writer *cpio.Writer,
	entry *blob.Entry,
) error {
	content, err := fsys.img.Bytes(entry)
	if err != nil {
		return err
	}

	header := &cpio.Header{
		Name: entry.Path,
		Mode: cpio.TypeReg | cpio.FileMode(fileMode),
		Size: int64(len(content)),
	}

	err = writer.WriteHeader(header)
	if err != nil {
		return fmt.Errorf("write header for %s: %w", entry.Path, err)
	}

	_, err = writer.Write(content)
	if err != nil {
		return fmt.Errorf("write body for %s: %w", entry.Path, err)
	}

	return nil
}
