package buffer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCacheTestFile(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	src := "package greet\n\nfunc Hello() string {\n\treturn \"hi\"\n}\n"
	path := filepath.Join(dir, "greet.go")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestFileCache_BasicOperations(t *testing.T) {
	path := setupCacheTestFile(t)

	cache := NewFileCache(DefaultFileCacheConfig())
	defer cache.Close()

	assert.Equal(t, 0, cache.Size())

	mf, err := cache.Get(path)
	require.NoError(t, err)
	require.NotNil(t, mf)
	assert.Equal(t, path, mf.Path)
	assert.Greater(t, mf.Size, int64(0))
	assert.Equal(t, 1, cache.Size())

	mf2, err := cache.Get(path)
	require.NoError(t, err)
	assert.Equal(t, mf.Path, mf2.Path)

	code, err := cache.FetchCode(path, 20, 25)
	require.NoError(t, err)
	assert.Equal(t, "Hello", code)

	stats := cache.Stats()
	assert.Equal(t, 1, stats.FilesCached)
	assert.Greater(t, stats.CacheHits, int64(0))
}

func TestFileCache_MissingFile(t *testing.T) {
	cache := NewFileCache(DefaultFileCacheConfig())
	defer cache.Close()

	_, err := cache.Get(filepath.Join(t.TempDir(), "nope.go"))
	assert.Error(t, err)
}

func TestFileCache_MaxFiles(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 3; i++ {
		p := filepath.Join(dir, string(rune('a'+i))+".go")
		require.NoError(t, os.WriteFile(p, []byte("package x\n"), 0o644))
		paths = append(paths, p)
	}

	cache := NewFileCache(&FileCacheConfig{MaxFiles: 2})
	defer cache.Close()

	for _, p := range paths[:2] {
		_, err := cache.Get(p)
		require.NoError(t, err)
	}

	_, err := cache.Get(paths[2])
	assert.Error(t, err, "exceeding MaxFiles should error")
}
