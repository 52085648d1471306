// SPDX-FileCopyrightText: 2025 The mhs-embed authors
//
// SPDX-License-Identifier: MIT

package main

import (
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
)

func setupLogging(writer io.Writer, debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(
		tint.NewHandler(writer, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}),
	))
}
