// SPDX-FileCopyrightText: 2025 The mhs-embed authors
//
// SPDX-License-Identifier: MIT

package blob

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io/fs"
	"path"

	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/blake3"
)

// Decode parses an archive produced by [Write]. It validates all
// structural markers: magic, version, declared section sizes, the data
// section checksum and the consistency of the entry table. Any
// inconsistency returns an error wrapping [ErrMalformed].
//
// The returned [Image] aliases the given byte slice. The caller must not
// modify it afterwards.
func Decode(b []byte) (*Image, error) {
	if len(b) < headerSize {
		return nil, fmt.Errorf("%w: truncated header", ErrMalformed)
	}

	if !bytes.Equal(b[:4], magic[:]) {
		return nil, fmt.Errorf("%w: bad magic", ErrMalformed)
	}

	if b[4] != formatVersion {
		return nil, fmt.Errorf(
			"%w: unsupported version %d", ErrMalformed, b[4],
		)
	}

	flags := b[5]
	tableLen := uint64(binary.BigEndian.Uint32(b[6:10]))
	dataLen := binary.BigEndian.Uint64(b[10:18])
	checksum := b[18:headerSize]

	if uint64(len(b)) != headerSize+tableLen+dataLen {
		return nil, fmt.Errorf(
			"%w: declared size %d does not match blob size %d",
			ErrMalformed, headerSize+tableLen+dataLen, len(b),
		)
	}

	table := b[headerSize : headerSize+tableLen]
	data := b[headerSize+tableLen:]

	sum := blake3.Sum256(data)
	if !bytes.Equal(sum[:], checksum) {
		return nil, fmt.Errorf("%w: data checksum mismatch", ErrMalformed)
	}

	var entries []Entry

	err := cbor.Unmarshal(table, &entries)
	if err != nil {
		return nil, fmt.Errorf("%w: entry table: %v", ErrMalformed, err)
	}

	err = validateEntries(entries, flags, dataLen)
	if err != nil {
		return nil, err
	}

	img := &Image{
		Entries: entries,
		Data:    data,
		Size:    int64(len(b)),
	}

	return img, nil
}

// validateEntries checks the table invariants: valid unique slash paths,
// every parent is a directory entry written earlier, file byte ranges stay
// within the data section, and compression markers are consistent with the
// header flags.
func validateEntries(entries []Entry, flags uint8, dataLen uint64) error {
	kinds := make(map[string]Kind, len(entries))

	for idx := range entries {
		entry := &entries[idx]

		if !fs.ValidPath(entry.Path) || entry.Path == "." {
			return fmt.Errorf(
				"%w: invalid path %q", ErrMalformed, entry.Path,
			)
		}

		if _, exists := kinds[entry.Path]; exists {
			return fmt.Errorf(
				"%w: duplicate path %q", ErrMalformed, entry.Path,
			)
		}

		if parent := path.Dir(entry.Path); parent != "." {
			kind, exists := kinds[parent]
			if !exists || kind != KindDir {
				return fmt.Errorf(
					"%w: %q has no parent directory entry",
					ErrMalformed, entry.Path,
				)
			}
		}

		switch entry.Kind {
		case KindDir:
			if entry.RawSize != 0 || entry.CompressedSize != 0 {
				return fmt.Errorf(
					"%w: directory %q declares content bytes",
					ErrMalformed, entry.Path,
				)
			}
		case KindFile:
			stored := entry.StoredSize()
			if entry.Offset > dataLen || stored > dataLen-entry.Offset {
				return fmt.Errorf(
					"%w: %q exceeds data section bounds",
					ErrMalformed, entry.Path,
				)
			}

			err := validateCompression(entry, flags)
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf(
				"%w: %q has invalid kind %d",
				ErrMalformed, entry.Path, entry.Kind,
			)
		}

		kinds[entry.Path] = entry.Kind
	}

	return nil
}

func validateCompression(entry *Entry, flags uint8) error {
	if !entry.Compressed() {
		if entry.Compression != CompressionNone {
			return fmt.Errorf(
				"%w: %q declares %s without compressed size",
				ErrMalformed, entry.Path, entry.Compression,
			)
		}

		return nil
	}

	if flags&flagCompressed == 0 {
		return fmt.Errorf(
			"%w: compressed entry %q in uncompressed archive",
			ErrMalformed, entry.Path,
		)
	}

	switch entry.Compression {
	case CompressionLZ4, CompressionZstd:
		return nil
	default:
		return fmt.Errorf(
			"%w: %q has invalid compression %d",
			ErrMalformed, entry.Path, entry.Compression,
		)
	}
}
