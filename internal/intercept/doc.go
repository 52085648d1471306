// SPDX-FileCopyrightText: 2025 The mhs-embed authors
//
// SPDX-License-Identifier: MIT

// Package intercept is the boundary adapter between a host runtime's file
// operations and the virtual filesystem.
//
// The host's original call sites are rewired to an [Opener]. The [Router]
// implementation classifies each path and delegates to either the
// embedded [vfs.FS] or the real file system ([OS]), without the caller
// observing a difference beyond virtual-path support. This package holds
// no caching, no parsing and no logic of its own.
package intercept
