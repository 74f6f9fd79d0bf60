package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobHash(t *testing.T) {
	o := options{phase: "resolve", fold: true, maxDepth: 256}
	short, full := jobHash(o, []byte("Int a;"))
	assert.True(t, isHashDir(short))
	assert.Len(t, full, 64)
	assert.Equal(t, full[:8], short)

	again, _ := jobHash(o, []byte("Int a;"))
	assert.Equal(t, short, again)

	for _, other := range []options{
		{phase: "structure", fold: true, maxDepth: 256},
		{phase: "resolve", fold: false, maxDepth: 256},
		{phase: "resolve", fold: true, maxDepth: 8},
	} {
		_, otherFull := jobHash(other, []byte("Int a;"))
		assert.NotEqual(t, full, otherFull)
	}
	_, otherSrc := jobHash(o, []byte("Int b;"))
	assert.NotEqual(t, full, otherSrc)
}

func TestIsHashDir(t *testing.T) {
	assert.True(t, isHashDir("0a1b2c3d"))
	assert.False(t, isHashDir("0a1b2c3"))
	assert.False(t, isHashDir("results!"))
}

func TestCachedDump(t *testing.T) {
	dir := t.TempDir()
	o := options{phase: "resolve"}
	src := []byte("Int a;")
	builds := 0
	build := func() (string, error) {
		builds++
		return "s0 main:\n", nil
	}

	dump, hit, err := cachedDump(dir, o, src, build)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "s0 main:\n", dump)

	dump, hit, err = cachedDump(dir, o, src, build)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "s0 main:\n", dump)
	assert.Equal(t, 1, builds)

	// A result without its completion marker is rebuilt.
	short, full := jobHash(o, src)
	hashFile := filepath.Join(dir, RESULTS_DIR, short, HASH_FILE)
	require.NoError(t, os.WriteFile(hashFile, []byte(full[:10]), 0644))
	_, hit, err = cachedDump(dir, o, src, build)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, builds)
}

func TestCachedDumpSkipsFailures(t *testing.T) {
	dir := t.TempDir()
	boom := errors.New("boom")
	_, _, err := cachedDump(dir, options{}, []byte("x"), func() (string, error) { return "", boom })
	require.ErrorIs(t, err, boom)

	short, _ := jobHash(options{}, []byte("x"))
	_, statErr := os.Stat(filepath.Join(dir, RESULTS_DIR, short))
	assert.True(t, os.IsNotExist(statErr))
}

func TestCleanupOldResults(t *testing.T) {
	dir := t.TempDir()
	old := time.Now().Add(-30 * 24 * time.Hour)
	names := []string{"00000001", "00000002", "00000003", "00000004"}
	for i, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.Mkdir(path, 0755))
		if i < 3 {
			mtime := old.Add(time.Duration(i) * time.Hour)
			require.NoError(t, os.Chtimes(path, mtime, mtime))
		}
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "keepme"), 0755))

	cleanupOldResults(dir, 2, 7*24*60*60)

	// The two oldest go; the recent ones and unrelated dirs stay.
	for i, name := range names {
		_, err := os.Stat(filepath.Join(dir, name))
		if i < 2 {
			assert.True(t, os.IsNotExist(err), name)
		} else {
			assert.NoError(t, err, name)
		}
	}
	_, err := os.Stat(filepath.Join(dir, "keepme"))
	assert.NoError(t, err)
}
