// SPDX-FileCopyrightText: 2025 The mhs-embed authors
//
// SPDX-License-Identifier: MIT

package blob

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"

	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/blake3"
)

// Below this size compression overhead usually exceeds the savings.
const minCompressSize = 64

// encMode encodes the entry table deterministically so identical sources
// produce identical archives.
var encMode cbor.EncMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("blob: cbor encoder initialization failed: " + err.Error())
	}
}

// WriteOptions configure [Write].
type WriteOptions struct {
	// Compression selects the algorithm for file contents.
	// CompressionNone stores everything raw. Entries that do not shrink
	// are stored raw regardless.
	Compression Compression
}

// Write packs all regular files and directories of fsys into an archive
// blob. Entries are written in lexical walk order, so parent directories
// always precede their children. Non-regular files are rejected.
func Write(fsys fs.FS, opts WriteOptions) ([]byte, error) {
	var (
		entries    []Entry
		data       bytes.Buffer
		compressed bool
	)

	err := fs.WalkDir(fsys, ".", func(
		name string,
		dirEntry fs.DirEntry,
		err error,
	) error {
		if err != nil {
			return err
		}

		if name == "." {
			return nil
		}

		if dirEntry.IsDir() {
			entries = append(entries, Entry{Path: name, Kind: KindDir})
			return nil
		}

		if !dirEntry.Type().IsRegular() {
			return fmt.Errorf("%s: not a regular file", name)
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}

		entry := Entry{
			Path:    name,
			Kind:    KindFile,
			Offset:  uint64(data.Len()),
			RawSize: uint64(len(content)),
		}

		if opts.Compression != CompressionNone &&
			len(content) >= minCompressSize {
			enc, err := compress(content, opts.Compression)

			switch {
			case err == nil:
				entry.CompressedSize = uint64(len(enc))
				entry.Compression = opts.Compression
				content = enc
				compressed = true
			case errors.Is(err, errIncompressible):
				// Keep the raw bytes.
			default:
				return err
			}
		}

		data.Write(content)
		entries = append(entries, entry)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk source: %w", err)
	}

	table, err := encMode.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encode entry table: %w", err)
	}

	var flags uint8
	if compressed {
		flags |= flagCompressed
	}

	return assemble(flags, table, data.Bytes()), nil
}

func assemble(flags uint8, table, data []byte) []byte {
	blob := make([]byte, 0, headerSize+len(table)+len(data))

	blob = append(blob, magic[:]...)
	blob = append(blob, formatVersion, flags)
	blob = binary.BigEndian.AppendUint32(blob, uint32(len(table)))
	blob = binary.BigEndian.AppendUint64(blob, uint64(len(data)))

	sum := blake3.Sum256(data)
	blob = append(blob, sum[:]...)

	blob = append(blob, table...)
	blob = append(blob, data...)

	return blob
}
