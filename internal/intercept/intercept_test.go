// SPDX-FileCopyrightText: 2025 The mhs-embed authors
//
// SPDX-License-Identifier: MIT

package intercept_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/shakfu/mhs-embed/internal/blob"
	"github.com/shakfu/mhs-embed/internal/intercept"
	"github.com/shakfu/mhs-embed/internal/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) *intercept.Router {
	t.Helper()

	encoded, err := blob.Write(fstest.MapFS{
		"a.txt":     {Data: []byte("hi")},
		"sub/b.txt": {Data: []byte("world")},
	}, blob.WriteOptions{})
	require.NoError(t, err)

	fsys, err := vfs.New(encoded, vfs.Options{})
	require.NoError(t, err)

	return intercept.New(fsys)
}

func TestRouterServesVirtualPaths(t *testing.T) {
	router := newRouter(t)

	file, err := router.OpenFile("/mhs-embedded/a.txt", os.O_RDONLY)
	require.NoError(t, err)
	defer file.Close()

	content, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, "hi", string(content))

	// Virtual handles reject writes.
	_, err = file.Write([]byte("nope"))
	assert.ErrorIs(t, err, vfs.ErrReadOnly)
}

func TestRouterFallsBackToRealPaths(t *testing.T) {
	router := newRouter(t)

	realPath := filepath.Join(t.TempDir(), "real.txt")

	file, err := router.OpenFile(realPath, os.O_CREATE|os.O_WRONLY)
	require.NoError(t, err)

	_, err = file.Write([]byte("real content"))
	require.NoError(t, err)
	require.NoError(t, file.Close())

	file, err = router.OpenFile(realPath, os.O_RDONLY)
	require.NoError(t, err)
	defer file.Close()

	content, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, "real content", string(content))
}

func TestRouterVirtualDirectoryIsFullySynthetic(t *testing.T) {
	router := newRouter(t)

	dir, err := router.OpenDir("/mhs-embedded")
	require.NoError(t, err)
	defer dir.Close()

	var names []string

	for {
		entry, err := dir.ReadNext()
		if err == io.EOF {
			break
		}

		require.NoError(t, err)
		names = append(names, entry.Name())
	}

	assert.Equal(t, []string{"a.txt", "sub"}, names)
}

func TestRouterRealDirectory(t *testing.T) {
	router := newRouter(t)

	base := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(base, "x.txt"), []byte("x"), 0o644,
	))

	dir, err := router.OpenDir(base)
	require.NoError(t, err)
	defer dir.Close()

	entry, err := dir.ReadNext()
	require.NoError(t, err)
	assert.Equal(t, "x.txt", entry.Name())

	_, err = dir.ReadNext()
	assert.ErrorIs(t, err, io.EOF)

	// The end signal is idempotent for real handles too.
	_, err = dir.ReadNext()
	assert.ErrorIs(t, err, io.EOF)
}

func TestRouterMissingVirtualPathDoesNotFallThrough(t *testing.T) {
	router := newRouter(t)

	_, err := router.OpenFile("/mhs-embedded/missing.txt", os.O_RDONLY)
	require.ErrorIs(t, err, vfs.ErrNotFound)
}
