// SPDX-FileCopyrightText: 2025 The mhs-embed authors
//
// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/shakfu/mhs-embed/internal/blob"
	"github.com/shakfu/mhs-embed/internal/vfs"
)

const blobPerm = os.FileMode(0o644)

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	flagSet := flag.NewFlagSet("mhsembed "+name, flag.ContinueOnError)
	flagSet.SetOutput(stderr)

	return flagSet
}

// openBlob reads the blob file named by the flag set's first positional
// argument and builds the virtual filesystem over it.
func openBlob(flagSet *flag.FlagSet, env environment) (*vfs.FS, error) {
	if flagSet.NArg() < 1 {
		return nil, fmt.Errorf("%w: missing blob file", errUsage)
	}

	data, err := os.ReadFile(flagSet.Arg(0))
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}

	fsys, err := vfs.New(data, vfs.Options{Root: env.root})
	if err != nil {
		return nil, fmt.Errorf("open blob: %w", err)
	}

	return fsys, nil
}

func runPack(args []string, stdout, stderr io.Writer) error {
	flagSet := newFlagSet("pack [flags...] directory", stderr)
	output := flagSet.String("o", "out.blob", "output blob file")
	compression := flagSet.String("compression", "none",
		"compression for file contents: none, lz4 or zstd")

	err := flagSet.Parse(args)
	if err != nil {
		return errUsage
	}

	if flagSet.NArg() < 1 {
		return fmt.Errorf("%w: missing source directory", errUsage)
	}

	algorithm, err := blob.ParseCompression(*compression)
	if err != nil {
		return err
	}

	encoded, err := blob.Write(os.DirFS(flagSet.Arg(0)), blob.WriteOptions{
		Compression: algorithm,
	})
	if err != nil {
		return fmt.Errorf("pack %s: %w", flagSet.Arg(0), err)
	}

	err = os.WriteFile(*output, encoded, blobPerm)
	if err != nil {
		return fmt.Errorf("write blob: %w", err)
	}

	fmt.Fprintf(stdout, "packed %s (%d bytes)\n", *output, len(encoded))

	return nil
}

func runList(args []string, env environment, stdout, stderr io.Writer) error {
	flagSet := newFlagSet("ls blob", stderr)

	err := flagSet.Parse(args)
	if err != nil {
		return errUsage
	}

	fsys, err := openBlob(flagSet, env)
	if err != nil {
		return err
	}
	defer fsys.Close()

	return fsys.List(stdout)
}

func runStats(args []string, env environment, stdout, stderr io.Writer) error {
	flagSet := newFlagSet("stats blob", stderr)

	err := flagSet.Parse(args)
	if err != nil {
		return errUsage
	}

	fsys, err := openBlob(flagSet, env)
	if err != nil {
		return err
	}
	defer fsys.Close()

	stats, err := fsys.Stats()
	if err != nil {
		return err
	}

	fmt.Fprint(stdout, stats)

	return nil
}

func runCat(args []string, env environment, stdout, stderr io.Writer) error {
	flagSet := newFlagSet("cat blob path", stderr)

	err := flagSet.Parse(args)
	if err != nil {
		return errUsage
	}

	if flagSet.NArg() < 2 {
		return fmt.Errorf("%w: missing embedded path", errUsage)
	}

	fsys, err := openBlob(flagSet, env)
	if err != nil {
		return err
	}
	defer fsys.Close()

	name := flagSet.Arg(1)
	if !path.IsAbs(name) {
		name = fsys.Root() + "/" + name
	}

	file, err := fsys.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(stdout, file)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}

	return nil
}

func runExtract(args []string, env environment, stdout, stderr io.Writer) error {
	flagSet := newFlagSet("extract [flags...] blob", stderr)
	dir := flagSet.String("dir", "",
		"directory to create the tree under (default: system temp)")

	err := flagSet.Parse(args)
	if err != nil {
		return errUsage
	}

	fsys, err := openBlob(flagSet, env)
	if err != nil {
		return err
	}
	defer fsys.Close()

	root, err := fsys.ExtractToTemp(*dir)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, root)

	return nil
}

func runExport(args []string, env environment, stdout, stderr io.Writer) error {
	flagSet := newFlagSet("export [flags...] blob", stderr)
	output := flagSet.String("o", "out.cpio", "output CPIO file")

	err := flagSet.Parse(args)
	if err != nil {
		return errUsage
	}

	fsys, err := openBlob(flagSet, env)
	if err != nil {
		return err
	}
	defer fsys.Close()

	file, err := os.Create(*output)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}

	err = fsys.ExportCPIO(file)
	if err != nil {
		_ = file.Close()
		_ = os.Remove(*output)

		return err
	}

	err = file.Close()
	if err != nil {
		return fmt.Errorf("close archive: %w", err)
	}

	fmt.Fprintf(stdout, "exported %s\n", *output)

	return nil
}
