// SPDX-FileCopyrightText: 2025 The mhs-embed authors
//
// SPDX-License-Identifier: MIT

package vfs

import (
	"path"
	"strings"
)

// DefaultRoot is the virtual root prefix embedded files are served under.
const DefaultRoot = "/mhs-embedded"

// Resolve classifies a path against the virtual root prefix.
//
// ok reports whether the path lies under root, either exactly or as a
// path-segment prefix. If ok, key is the normalized registry key relative
// to the root ("." for the root itself). A path that uses ".." to escape
// the root is still classified as virtual but yields an empty key that
// matches no registry entry, so lookups fail closed instead of traversing
// into the real file system.
//
// Resolve is a pure function and performs no I/O.
func Resolve(root, name string) (key string, ok bool) {
	if name == root {
		return ".", true
	}

	if len(name) <= len(root) ||
		!strings.HasPrefix(name, root) ||
		name[len(root)] != '/' {
		return "", false
	}

	rest := strings.TrimLeft(name[len(root)+1:], "/")
	if rest == "" {
		return ".", true
	}

	key = path.Clean(rest)
	if key == ".." || strings.HasPrefix(key, "../") {
		return "", true
	}

	return key, true
}
