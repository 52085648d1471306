// SPDX-FileCopyrightText: 2025 The mhs-embed authors
//
// SPDX-License-Identifier: MIT

package blob

import "errors"

var (
	// ErrMalformed is returned by [Decode] if the blob's structural
	// markers are inconsistent.
	ErrMalformed = errors.New("malformed archive")

	// ErrDecompress is returned if a compressed entry cannot be
	// decompressed.
	ErrDecompress = errors.New("decompression failed")

	// errIncompressible is returned by compress if the compressed output
	// is not smaller than the input. The writer falls back to storing the
	// entry raw.
	errIncompressible = errors.New("data is incompressible")
)
