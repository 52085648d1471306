// SPDX-FileCopyrightText: 2025 The mhs-embed authors
//
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/shakfu/mhs-embed/internal/vfs"
)

// envFile holds optional per-directory defaults, read on every
// invocation if present.
const envFile = ".mhsembed-env"

var errUsage = errors.New("usage")

type environment struct {
	// root is the virtual root prefix, from MHSEMBED_ROOT.
	root string

	// debug raises the log level, from MHSEMBED_DEBUG.
	debug bool
}

func loadEnv() environment {
	err := godotenv.Load(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("env file not loaded",
			slog.String("file", envFile),
			slog.Any("error", err),
		)
	}

	env := environment{
		root: vfs.DefaultRoot,
	}

	if root := os.Getenv("MHSEMBED_ROOT"); root != "" {
		env.root = root
	}

	if os.Getenv("MHSEMBED_DEBUG") != "" {
		env.debug = true
	}

	return env
}
