// SPDX-FileCopyrightText: 2025 The mhs-embed authors
//
// SPDX-License-Identifier: MIT

package vfs_test

import (
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/shakfu/mhs-embed/internal/blob"
	"github.com/shakfu/mhs-embed/internal/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioFS is the reference tree: two files, one subdirectory.
func scenarioFS() fstest.MapFS {
	return fstest.MapFS{
		"a.txt":     {Data: []byte("hi")},
		"sub/b.txt": {Data: []byte("world")},
	}
}

func newTestFS(
	t *testing.T,
	source fstest.MapFS,
	writeOpts blob.WriteOptions,
	opts vfs.Options,
) *vfs.FS {
	t.Helper()

	encoded, err := blob.Write(source, writeOpts)
	require.NoError(t, err)

	fsys, err := vfs.New(encoded, opts)
	require.NoError(t, err)

	return fsys
}

func TestNewRejectsCorruptBlob(t *testing.T) {
	_, err := vfs.New([]byte("not an archive"), vfs.Options{})
	require.ErrorIs(t, err, vfs.ErrCorrupt)
}

func TestNewRejectsInvalidRoot(t *testing.T) {
	encoded, err := blob.Write(scenarioFS(), blob.WriteOptions{})
	require.NoError(t, err)

	for _, root := range []string{"relative", "/trailing/", "/a/../b"} {
		_, err = vfs.New(encoded, vfs.Options{Root: root})
		require.Error(t, err, root)
	}
}

func TestOpenReadsEmbeddedContent(t *testing.T) {
	fsys := newTestFS(t, scenarioFS(), blob.WriteOptions{}, vfs.Options{})

	tests := []struct {
		path     string
		expected string
	}{
		{path: "/mhs-embedded/a.txt", expected: "hi"},
		{path: "/mhs-embedded/sub/b.txt", expected: "world"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			file, err := fsys.Open(tt.path)
			require.NoError(t, err)

			content, err := io.ReadAll(file)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(content))

			// Reading past the end keeps returning EOF.
			n, err := file.Read(make([]byte, 1))
			assert.Zero(t, n)
			assert.ErrorIs(t, err, io.EOF)

			info, err := file.Stat()
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.expected)), info.Size())
			assert.False(t, info.IsDir())

			require.NoError(t, file.Close())
			assert.ErrorIs(t, file.Close(), vfs.ErrClosed)
		})
	}
}

func TestOpenErrors(t *testing.T) {
	fsys := newTestFS(t, scenarioFS(), blob.WriteOptions{}, vfs.Options{})

	tests := []struct {
		name     string
		path     string
		flag     int
		expected error
	}{
		{
			name:     "missing path",
			path:     "/mhs-embedded/missing.txt",
			expected: vfs.ErrNotFound,
		},
		{
			name:     "directory entry",
			path:     "/mhs-embedded/sub",
			expected: vfs.ErrIsDir,
		},
		{
			name:     "path escaping the root",
			path:     "/mhs-embedded/../a.txt",
			expected: vfs.ErrNotFound,
		},
		{
			name:     "real path does not participate",
			path:     "/etc/hosts",
			expected: vfs.ErrNotFound,
		},
		{
			name:     "write mode",
			path:     "/mhs-embedded/a.txt",
			flag:     os.O_WRONLY,
			expected: vfs.ErrReadOnly,
		},
		{
			name:     "append mode",
			path:     "/mhs-embedded/a.txt",
			flag:     os.O_RDWR | os.O_APPEND,
			expected: vfs.ErrReadOnly,
		},
		{
			name:     "create mode on missing path",
			path:     "/mhs-embedded/new.txt",
			flag:     os.O_CREATE,
			expected: vfs.ErrReadOnly,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := fsys.OpenFile(tt.path, tt.flag)
			require.ErrorIs(t, err, tt.expected)
			assert.Nil(t, file)
		})
	}
}

func TestFileSeek(t *testing.T) {
	fsys := newTestFS(t, scenarioFS(), blob.WriteOptions{}, vfs.Options{})

	file, err := fsys.Open("/mhs-embedded/sub/b.txt")
	require.NoError(t, err)
	defer file.Close()

	pos, err := file.Seek(1, io.SeekStart)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pos)

	content, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, "orld", string(content))

	pos, err = file.Seek(-2, io.SeekEnd)
	require.NoError(t, err)
	assert.Equal(t, int64(3), pos)

	content, err = io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, "ld", string(content))
}

func TestDirIteration(t *testing.T) {
	fsys := newTestFS(t, scenarioFS(), blob.WriteOptions{}, vfs.Options{})

	dir, err := fsys.OpenDir("/mhs-embedded")
	require.NoError(t, err)

	first, err := dir.ReadNext()
	require.NoError(t, err)
	assert.Equal(t, "a.txt", first.Name())
	assert.False(t, first.IsDir())

	second, err := dir.ReadNext()
	require.NoError(t, err)
	assert.Equal(t, "sub", second.Name())
	assert.True(t, second.IsDir())

	// End of directory is a signal, not an error, and idempotent.
	for i := 0; i < 3; i++ {
		_, err = dir.ReadNext()
		assert.ErrorIs(t, err, io.EOF)
	}

	require.NoError(t, dir.Close())

	// Double close is detected, not corrupting.
	assert.ErrorIs(t, dir.Close(), vfs.ErrClosed)

	_, err = dir.ReadNext()
	assert.ErrorIs(t, err, vfs.ErrClosed)
}

func TestOpenDirErrors(t *testing.T) {
	fsys := newTestFS(t, scenarioFS(), blob.WriteOptions{}, vfs.Options{})

	_, err := fsys.OpenDir("/mhs-embedded/missing")
	require.ErrorIs(t, err, vfs.ErrNotFound)

	_, err = fsys.OpenDir("/mhs-embedded/a.txt")
	require.ErrorIs(t, err, vfs.ErrNotDir)
}

func TestAggregates(t *testing.T) {
	fsys := newTestFS(t, scenarioFS(), blob.WriteOptions{}, vfs.Options{})

	assert.Equal(t, 2, fsys.FileCount())
	assert.Equal(t, 1, fsys.DirCount())
	assert.Equal(t, int64(7), fsys.TotalSize())
	assert.Positive(t, fsys.EmbeddedSize())
	assert.Equal(t, "/mhs-embedded", fsys.Root())

	stats, err := fsys.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.FileCount)
	assert.Equal(t, int64(7), stats.TotalSize)
	assert.False(t, stats.CacheEnabled)
	assert.Contains(t, stats.String(), "/mhs-embedded")

	var listing strings.Builder
	require.NoError(t, fsys.List(&listing))
	assert.Contains(t, listing.String(), "a.txt")
	assert.Contains(t, listing.String(), "sub/b.txt")
}

func TestCloseMakesRegistryInert(t *testing.T) {
	fsys := newTestFS(t, scenarioFS(), blob.WriteOptions{}, vfs.Options{})

	require.NoError(t, fsys.Close())

	_, err := fsys.Open("/mhs-embedded/a.txt")
	assert.ErrorIs(t, err, vfs.ErrNotInitialized)

	_, err = fsys.OpenDir("/mhs-embedded")
	assert.ErrorIs(t, err, vfs.ErrNotInitialized)

	_, err = fsys.Stats()
	assert.ErrorIs(t, err, vfs.ErrNotInitialized)

	assert.ErrorIs(t, fsys.List(io.Discard), vfs.ErrNotInitialized)

	_, err = fsys.ExtractToTemp(t.TempDir())
	assert.ErrorIs(t, err, vfs.ErrNotInitialized)

	assert.ErrorIs(t, fsys.Close(), vfs.ErrNotInitialized)
}

func TestCustomRoot(t *testing.T) {
	fsys := newTestFS(t, scenarioFS(), blob.WriteOptions{}, vfs.Options{
		Root: "/assets",
	})

	file, err := fsys.Open("/assets/a.txt")
	require.NoError(t, err)
	require.NoError(t, file.Close())

	_, err = fsys.Open("/mhs-embedded/a.txt")
	assert.ErrorIs(t, err, vfs.ErrNotFound)
}

func TestCompressedEntriesServeThroughCache(t *testing.T) {
	source := scenarioFS()
	source["sub/big.txt"] = &fstest.MapFile{
		Data: []byte(strings.Repeat("embedded content ", 64)),
	}

	fsys := newTestFS(t, source, blob.WriteOptions{
		Compression: blob.CompressionZstd,
	}, vfs.Options{})

	stats, err := fsys.Stats()
	require.NoError(t, err)
	require.True(t, stats.CacheEnabled)
	require.Positive(t, stats.CompressedEntries)

	readBig := func() string {
		t.Helper()

		file, err := fsys.Open("/mhs-embedded/sub/big.txt")
		require.NoError(t, err)
		defer file.Close()

		content, err := io.ReadAll(file)
		require.NoError(t, err)

		return string(content)
	}

	expected := strings.Repeat("embedded content ", 64)
	assert.Equal(t, expected, readBig())

	stats, err = fsys.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(len(expected)), stats.CacheResidency)

	// Cache residency never exceeds the total raw size, entries are
	// cached at most once.
	assert.Equal(t, expected, readBig())

	stats, err = fsys.Stats()
	require.NoError(t, err)
	assert.LessOrEqual(t, stats.CacheResidency, fsys.TotalSize())

	// An open handle survives a cache clear.
	file, err := fsys.Open("/mhs-embedded/sub/big.txt")
	require.NoError(t, err)
	defer file.Close()

	fsys.ClearCache()

	stats, err = fsys.Stats()
	require.NoError(t, err)
	assert.Zero(t, stats.CacheResidency)

	content, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, expected, string(content))
}

func TestConcurrentCompressedReads(t *testing.T) {
	source := scenarioFS()
	source["sub/big.txt"] = &fstest.MapFile{
		Data: []byte(strings.Repeat("embedded content ", 64)),
	}

	fsys := newTestFS(t, source, blob.WriteOptions{
		Compression: blob.CompressionLZ4,
	}, vfs.Options{})

	expected := strings.Repeat("embedded content ", 64)

	var group sync.WaitGroup

	for i := 0; i < 16; i++ {
		group.Add(1)

		go func() {
			defer group.Done()

			file, err := fsys.Open("/mhs-embedded/sub/big.txt")
			assert.NoError(t, err)
			defer file.Close()

			content, err := io.ReadAll(file)
			assert.NoError(t, err)
			assert.Equal(t, expected, string(content))
		}()
	}

	group.Wait()
}

func TestDisabledCacheStillServes(t *testing.T) {
	source := scenarioFS()
	source["sub/big.txt"] = &fstest.MapFile{
		Data: []byte(strings.Repeat("embedded content ", 64)),
	}

	fsys := newTestFS(t, source, blob.WriteOptions{
		Compression: blob.CompressionZstd,
	}, vfs.Options{DisableCache: true})

	stats, err := fsys.Stats()
	require.NoError(t, err)
	assert.False(t, stats.CacheEnabled)

	file, err := fsys.Open("/mhs-embedded/sub/big.txt")
	require.NoError(t, err)
	defer file.Close()

	content, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("embedded content ", 64), string(content))
}

func TestViewConformsToFSContract(t *testing.T) {
	fsys := newTestFS(t, scenarioFS(), blob.WriteOptions{}, vfs.Options{})

	err := fstest.TestFS(fsys.View(), "a.txt", "sub/b.txt")
	require.NoError(t, err)
}
