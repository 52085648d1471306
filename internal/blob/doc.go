// SPDX-FileCopyrightText: 2025 The mhs-embed authors
//
// SPDX-License-Identifier: MIT

// Package blob implements the embedded archive format.
//
// An archive is a single byte blob with a fixed header, a CBOR encoded
// entry table and a data section holding the concatenated file contents.
// Entries may be stored compressed (lz4 or zstd). The data section is
// protected by a BLAKE3 checksum that is verified on decode.
//
// Archives are produced with [Write] and parsed with [Decode]. The decoded
// [Image] is immutable and safe for concurrent readers.
package blob
