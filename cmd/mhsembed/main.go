// SPDX-FileCopyrightText: 2025 The mhs-embed authors
//
// SPDX-License-Identifier: MIT

// Command mhsembed works with embedded archive blobs: it packs a
// directory into a blob and inspects, reads, extracts or exports an
// existing one.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

const usage = `Usage: mhsembed <command> [flags...]

Commands:
  pack     pack a directory into an archive blob
  ls       list the embedded paths of a blob
  stats    print aggregate statistics of a blob
  cat      write one embedded file to stdout
  extract  materialize a blob into a temporary directory
  export   write a blob's tree as a CPIO archive

Run "mhsembed <command> -h" for command flags.
`

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) < 2 {
		fmt.Fprint(stderr, usage)
		return errUsage
	}

	env := loadEnv()
	setupLogging(stderr, env.debug)

	cmdArgs := args[2:]

	switch args[1] {
	case "pack":
		return runPack(cmdArgs, stdout, stderr)
	case "ls":
		return runList(cmdArgs, env, stdout, stderr)
	case "stats":
		return runStats(cmdArgs, env, stdout, stderr)
	case "cat":
		return runCat(cmdArgs, env, stdout, stderr)
	case "extract":
		return runExtract(cmdArgs, env, stdout, stderr)
	case "export":
		return runExport(cmdArgs, env, stdout, stderr)
	case "-h", "--help", "help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n", args[1])
		fmt.Fprint(stderr, usage)

		return errUsage
	}
}

func main() {
	err := run(os.Args, os.Stdout, os.Stderr)
	if err != nil {
		switch {
		case !errors.Is(err, errUsage):
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		case err.Error() != errUsage.Error():
			// A wrapped usage error carries detail worth printing; the
			// bare sentinel means usage was already written.
			fmt.Fprintln(os.Stderr, err)
		}

		os.Exit(1)
	}
}
