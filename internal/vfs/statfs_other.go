// SPDX-FileCopyrightText: 2025 The mhs-embed authors
//
// SPDX-License-Identifier: MIT

//go:build !linux

package vfs

import "errors"

var errStatfsUnsupported = errors.New("statfs not supported")

// freeSpace is unavailable here; the preflight check is skipped.
func freeSpace(string) (uint64, error) {
	return 0, errStatfsUnsupported
}
