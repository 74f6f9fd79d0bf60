package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thiremani/waveguide/diag"
	"github.com/thiremani/waveguide/token"
)

func TestSourceLine(t *testing.T) {
	src := "first\r\nsecond\nthird"
	line, ok := sourceLine(src, 1)
	require.True(t, ok)
	assert.Equal(t, "first", line)
	line, ok = sourceLine(src, 3)
	require.True(t, ok)
	assert.Equal(t, "third", line)
	_, ok = sourceLine(src, 4)
	assert.False(t, ok)
	_, ok = sourceLine(src, 0)
	assert.False(t, ok)
}

func TestReportProblem(t *testing.T) {
	src := "Int a;\nFloat a;\n"
	problem := diag.Redefinition(
		token.Position{File: "m.wg", Line: 2, Column: 7, Start: 13, End: 14},
		token.Position{File: "m.wg", Line: 1, Column: 5, Start: 4, End: 5},
		"a",
	)
	var b bytes.Buffer
	r := &reporter{w: &b, src: src}
	r.report(problem)

	want := "m.wg:2:7: error: \"a\" is already defined in this scope\n" +
		"    2 | Float a;\n" +
		"      |       ^\n" +
		"m.wg:1:5: hint: previous definition is here\n" +
		"    1 | Int a;\n" +
		"      |     -\n"
	assert.Equal(t, want, b.String())
}

func TestReportColor(t *testing.T) {
	var b bytes.Buffer
	r := &reporter{w: &b, color: true}
	r.report(errors.New("disk full"))
	assert.Equal(t, ansiRed+"error:"+ansiReset+" disk full\n", b.String())
}

func TestUseColorModes(t *testing.T) {
	assert.True(t, useColor("always", nil))
	assert.False(t, useColor("never", nil))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, useColor("auto", nil))
}
