// SPDX-FileCopyrightText: 2025 The mhs-embed authors
//
// SPDX-License-Identifier: MIT

// Package vfs serves an embedded archive as a read-only virtual file
// system.
//
// An [FS] is created from an archive blob with [New] and torn down with
// [FS.Close]. Paths below the virtual root prefix (default
// [DefaultRoot]) resolve against the archive's entry table; everything
// else is none of this package's business and stays with the real file
// system.
//
// Files open as in-memory handles with read and seek semantics matching
// real file descriptors. Directories open as cursor-based handles that
// yield their registered children one at a time. The whole tree can be
// materialized into a real temporary directory for tools that need real
// paths.
//
// The registry is immutable after New and safe for any number of
// concurrent readers. Individual handles expect a single owner, like real
// file handles do.
package vfs
