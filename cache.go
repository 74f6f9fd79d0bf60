package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/gofrs/flock"
)

const (
	RESULTS_DIR = "results"
	DUMP_FILE   = "dump.txt"
	HASH_FILE   = ".hash"

	// Old results are removed once there are more than cacheKeep of them and
	// they are older than cacheMinAge.
	cacheKeep   = 64
	cacheMinAge = 7 * 24 * 60 * 60
)

// isHashDir returns true if name is an 8-char hex string (matches shortHash format).
func isHashDir(name string) bool {
	if len(name) != 8 {
		return false
	}
	_, err := hex.DecodeString(name)
	return err == nil
}

// jobHash hashes everything that affects a dump: the tool version, the
// options and the source text. The short hash names the cache directory and
// the full hash detects collisions.
func jobHash(o options, src []byte) (shortHash, fullHash string) {
	h := sha256.New()
	h.Write([]byte(Version))
	h.Write([]byte{0})
	h.Write([]byte(o.phase))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatBool(o.fold)))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(o.maxDepth)))
	h.Write([]byte{0})
	h.Write(src)
	fullHash = hex.EncodeToString(h.Sum(nil))
	return fullHash[:8], fullHash
}

// cleanupOldResults removes old result directories.
// Only deletes directories older than minAge AND keeps at least 'keep' most recent.
func cleanupOldResults(resultsDir string, keep int, minAge int64) {
	entries, err := os.ReadDir(resultsDir)
	if err != nil || len(entries) <= keep {
		return
	}

	type dirInfo struct {
		name  string
		mtime int64
	}
	var dirs []dirInfo
	for _, e := range entries {
		if e.IsDir() && isHashDir(e.Name()) {
			if info, err := e.Info(); err == nil {
				dirs = append(dirs, dirInfo{e.Name(), info.ModTime().Unix()})
			}
		}
	}

	if len(dirs) <= keep {
		return
	}

	// Sort by mtime ascending (oldest first), remove oldest if older than minAge
	cutoff := time.Now().Unix() - minAge
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].mtime < dirs[j].mtime })
	for i := 0; i < len(dirs)-keep; i++ {
		if dirs[i].mtime < cutoff {
			path := filepath.Join(resultsDir, dirs[i].name)
			if err := os.RemoveAll(path); err != nil {
				fmt.Printf("warning: failed to remove old result %s: %v\n", path, err)
			}
		}
	}
}

// cachedDump returns the dump for src, running build only when no complete
// result is cached. A file lock ensures concurrent processes see either a
// finished result or build it themselves. Failed builds are not cached.
func cachedDump(cacheDir string, o options, src []byte, build func() (string, error)) (dump string, hit bool, err error) {
	resultsDir := filepath.Join(cacheDir, RESULTS_DIR)
	if err := os.MkdirAll(resultsDir, 0755); err != nil {
		return "", false, fmt.Errorf("create results dir: %w", err)
	}

	lock := flock.New(filepath.Join(resultsDir, ".lock"))
	if err := lock.Lock(); err != nil {
		return "", false, fmt.Errorf("acquire cache lock: %w", err)
	}
	defer lock.Unlock()

	shortHash, fullHash := jobHash(o, src)
	dir := filepath.Join(resultsDir, shortHash)
	hashFile := filepath.Join(dir, HASH_FILE)
	dumpFile := filepath.Join(dir, DUMP_FILE)

	if storedHash, err := os.ReadFile(hashFile); err == nil {
		if string(storedHash) == fullHash {
			if data, err := os.ReadFile(dumpFile); err == nil {
				return string(data), true, nil
			}
		}
		// Hash collision or corrupted cache - rebuild
		os.RemoveAll(dir)
	}

	cleanupOldResults(resultsDir, cacheKeep, cacheMinAge)

	dump, err = build()
	if err != nil {
		return "", false, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", false, fmt.Errorf("create result dir: %w", err)
	}
	if err := os.WriteFile(dumpFile, []byte(dump), 0644); err != nil {
		return "", false, fmt.Errorf("write dump: %w", err)
	}
	// The hash is written last and marks the result as complete.
	if err := os.WriteFile(hashFile, []byte(fullHash), 0644); err != nil {
		return "", false, fmt.Errorf("write hash file: %w", err)
	}
	return dump, false, nil
}
