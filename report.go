package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-isatty"
	"github.com/thiremani/waveguide/diag"
	"github.com/thiremani/waveguide/token"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiRed   = "\033[31m"
	ansiCyan  = "\033[36m"
)

// useColor decides whether output to f is coloured. mode is auto, always or
// never; auto follows NO_COLOR and whether f is a terminal.
func useColor(mode string, f *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// reporter prints compile errors with the source lines they point at.
type reporter struct {
	w     io.Writer
	color bool
	// src is the text of the file being compiled.
	src string
}

// report prints err. Problems get one block per descriptor; other errors
// are printed as they are.
func (r *reporter) report(err error) {
	var problem *diag.Problem
	if !errors.As(err, &problem) {
		fmt.Fprintf(r.w, "%s %v\n", r.paint(ansiRed, "error:"), err)
		return
	}
	for _, d := range problem.Descriptors {
		r.descriptor(d)
	}
}

func (r *reporter) descriptor(d diag.Descriptor) {
	label := r.paint(ansiRed, "error:")
	if d.Severity == diag.Hint {
		label = r.paint(ansiCyan, "hint:")
	}
	fmt.Fprintf(r.w, "%s %s %s\n", r.paint(ansiBold, d.Pos.String()+":"), label, d.Msg)
	r.excerpt(d.Pos, d.Severity)
}

// excerpt prints the source line of pos with the span underlined.
func (r *reporter) excerpt(pos token.Position, sev diag.Severity) {
	line, ok := sourceLine(r.src, pos.Line)
	if !ok {
		return
	}
	gutter := fmt.Sprintf("%5d | ", pos.Line)
	fmt.Fprintf(r.w, "%s%s\n", gutter, line)

	col := max(pos.Column-1, 0)
	col = min(col, utf8.RuneCountInString(line))
	width := 1
	if pos.End > pos.Start && pos.End <= len(r.src) {
		width = utf8.RuneCountInString(r.src[pos.Start:pos.End])
	}
	width = max(min(width, utf8.RuneCountInString(line)-col), 1)

	marker := strings.Repeat("^", width)
	if sev == diag.Hint {
		marker = strings.Repeat("-", width)
	}
	color := ansiRed
	if sev == diag.Hint {
		color = ansiCyan
	}
	fmt.Fprintf(r.w, "%s%s%s\n", strings.Repeat(" ", len(gutter)-2)+"| ", strings.Repeat(" ", col), r.paint(color, marker))
}

func (r *reporter) paint(code, s string) string {
	if !r.color {
		return s
	}
	return code + s + ansiReset
}

// sourceLine returns line n (1-based) of src without its line ending.
func sourceLine(src string, n int) (string, bool) {
	if n <= 0 {
		return "", false
	}
	for i := 1; ; i++ {
		line, rest, found := strings.Cut(src, "\n")
		if i == n {
			return strings.TrimSuffix(line, "\r"), true
		}
		if !found {
			return "", false
		}
		src = rest
	}
}
