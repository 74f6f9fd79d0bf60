package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thiremani/waveguide/config"
)

const sample = `input Int r;
output Int b;
fn f(Int x):(Int y) { y = x + 1; }
b = f(r);
`

// writeProject creates a source file next to a config that keeps the cache
// inside the test directory.
func writeProject(t *testing.T, src, cfg string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.CacheEnv, filepath.Join(dir, "cache"))
	if cfg != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(cfg), 0644))
	}
	file := filepath.Join(dir, "main.wg")
	require.NoError(t, os.WriteFile(file, []byte(src), 0644))
	return file
}

func runCLI(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunResolve(t *testing.T) {
	file := writeProject(t, sample, "")
	code, out, errOut := runCLI("-no-cache", file)
	require.Equal(t, exitOK, code, errOut)
	assert.Contains(t, out, "s1 $f$Int:\n  v2 = (v0 + 1)\n")
	assert.Contains(t, errOut, "Task completed successfully")
}

func TestRunPhases(t *testing.T) {
	file := writeProject(t, sample, "")

	code, out, _ := runCLI("-no-cache", "-phase", "parse", file)
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "input Int r")

	code, out, _ = runCLI("-no-cache", "-phase", "structure", file)
	require.Equal(t, exitOK, code)
	assert.NotContains(t, out, "call s1")

	code, _, errOut := runCLI("-phase", "lower", file)
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, errOut, "unknown phase")
}

func TestRunNoFold(t *testing.T) {
	file := writeProject(t, "output Int o;\nInt a = 2;\no = a;\n", "")

	_, folded, _ := runCLI("-no-cache", file)
	assert.NotContains(t, folded, " a: Int")

	_, unfolded, _ := runCLI("-no-cache", "-no-fold", file)
	assert.Contains(t, unfolded, " a: Int")
}

func TestRunConfigFile(t *testing.T) {
	file := writeProject(t, sample, "phase: parse\ncache: false\n")
	code, out, _ := runCLI(file)
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "input Int r")

	// Flags win over the file.
	code, out, _ = runCLI("-phase", "resolve", file)
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "s0 main:")

	bad := writeProject(t, sample, "color: purple\n")
	code, _, errOut := runCLI(bad)
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, errOut, "color must be one of")
}

func TestRunExplicitConfig(t *testing.T) {
	file := writeProject(t, sample, "")
	cfg := filepath.Join(t.TempDir(), "other.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("phase: structure\ncache: false\n"), 0644))

	code, out, _ := runCLI("-config", cfg, file)
	require.Equal(t, exitOK, code)
	assert.NotContains(t, out, "call s1")
}

func TestRunUsage(t *testing.T) {
	code, _, errOut := runCLI()
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, errOut, "usage: waveguide")

	code, _, _ = runCLI("-bogus", "x.wg")
	assert.Equal(t, exitUsage, code)

	code, _, errOut = runCLI("-no-cache", filepath.Join(t.TempDir(), "missing.wg"))
	assert.Equal(t, exitNoInput, code)
	assert.Contains(t, errOut, "reading")
}

func TestRunVersion(t *testing.T) {
	code, out, _ := runCLI("-version")
	assert.Equal(t, exitOK, code)
	assert.True(t, strings.HasPrefix(out, "waveguide "+Version))
}

func TestRunReportsProblems(t *testing.T) {
	file := writeProject(t, "Int a;\nAuto b = a + true;\n", "color: never\n")
	code, out, errOut := runCLI(file)
	assert.Equal(t, exitProblem, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "main.wg:2:")
	assert.Contains(t, errOut, "error: no common type exists between Int and Bool")
	assert.Contains(t, errOut, "hint: this operand has type Int")
	assert.Contains(t, errOut, "    2 | Auto b = a + true;\n")
	assert.NotContains(t, errOut, "\033[")
}

func TestRunCachesResults(t *testing.T) {
	file := writeProject(t, sample, "")

	code, first, errOut := runCLI(file)
	require.Equal(t, exitOK, code)
	assert.NotContains(t, errOut, "Using cached result")

	code, second, errOut := runCLI(file)
	require.Equal(t, exitOK, code)
	assert.Contains(t, errOut, "Using cached result")
	assert.Equal(t, first, second)

	// A different phase is a different job.
	_, _, errOut = runCLI("-phase", "structure", file)
	assert.NotContains(t, errOut, "Using cached result")
}
