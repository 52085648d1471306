// SPDX-FileCopyrightText: 2025 The mhs-embed authors
//
// SPDX-License-Identifier: MIT

package blob

// Archive layout:
//
//	magic    [4]byte  "MHSE"
//	version  uint8
//	flags    uint8
//	tableLen uint32   big endian, size of the CBOR entry table
//	dataLen  uint64   big endian, size of the data section
//	checksum [32]byte BLAKE3-256 of the data section
//	table    CBOR encoded []Entry
//	data     concatenated entry contents
const (
	headerSize    = 4 + 1 + 1 + 4 + 8 + checksumSize
	checksumSize  = 32
	formatVersion = 1

	// flagCompressed is set if at least one entry is stored compressed.
	flagCompressed = 1 << 0
)

var magic = [4]byte{'M', 'H', 'S', 'E'}

// Kind distinguishes the two entry types of an archive.
type Kind uint8

const (
	// KindFile is a regular file entry backed by bytes in the data
	// section.
	KindFile Kind = 0

	// KindDir is a directory entry. It has no bytes in the data section.
	KindDir Kind = 1
)

// String returns the human-readable name of the entry kind.
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "dir"
	default:
		return "invalid"
	}
}

// Entry describes a single file or directory of an archive. Paths use
// forward slashes and are relative to the archive root, so they satisfy
// [io/fs.ValidPath]. Entries are immutable once decoded.
type Entry struct {
	Path           string      `cbor:"1,keyasint"`
	Kind           Kind        `cbor:"2,keyasint"`
	Offset         uint64      `cbor:"3,keyasint"`
	RawSize        uint64      `cbor:"4,keyasint"`
	CompressedSize uint64      `cbor:"5,keyasint,omitempty"`
	Compression    Compression `cbor:"6,keyasint,omitempty"`
}

// StoredSize returns the number of bytes the entry occupies in the data
// section.
func (e *Entry) StoredSize() uint64 {
	if e.CompressedSize > 0 {
		return e.CompressedSize
	}

	return e.RawSize
}

// Compressed reports whether the entry is stored compressed.
func (e *Entry) Compressed() bool {
	return e.CompressedSize > 0
}

// Image is a decoded archive. Entries keeps the order they were written
// in. Data is the raw data section, shared by all readers and never
// modified.
type Image struct {
	Entries []Entry
	Data    []byte

	// Size is the total encoded size of the archive, header and table
	// included.
	Size int64
}

// Bytes returns the decompressed content of a file entry. For entries
// stored raw, the returned slice aliases the image's data section and must
// not be modified. It returns an error wrapping [ErrDecompress] if the
// compressed payload is corrupt.
func (img *Image) Bytes(entry *Entry) ([]byte, error) {
	stored := img.Data[entry.Offset : entry.Offset+entry.StoredSize()]
	if !entry.Compressed() {
		return stored, nil
	}

	return decompress(stored, entry.Compression, int(entry.RawSize))
}
