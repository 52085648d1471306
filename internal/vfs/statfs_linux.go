// SPDX-FileCopyrightText: 2025 The mhs-embed authors
//
// SPDX-License-Identifier: MIT

//go:build linux

package vfs

import "golang.org/x/sys/unix"

// freeSpace returns the bytes available to unprivileged users on the file
// system containing dir.
func freeSpace(dir string) (uint64, error) {
	var stat unix.Statfs_t

	err := unix.Statfs(dir, &stat)
	if err != nil {
		return 0, err
	}

	return stat.Bavail * uint64(stat.Bsize), nil
}
