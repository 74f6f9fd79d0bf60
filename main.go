package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/thiremani/waveguide/config"
	"github.com/thiremani/waveguide/diag"
	"github.com/thiremani/waveguide/parser"
	"github.com/thiremani/waveguide/resolver"
	"github.com/thiremani/waveguide/structure"
)

// Exit codes follow sysexits where one fits.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 64
	exitNoInput = 74
	exitProblem = 101
)

// options is the configuration of one run after flags are applied.
type options struct {
	phase    string
	fold     bool
	maxDepth int
	cache    bool
	cacheDir string
	color    string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("waveguide", flag.ContinueOnError)
	fs.SetOutput(stderr)
	phase := fs.String("phase", "", "last phase to run: "+strings.Join(config.Phases, ", "))
	noFold := fs.Bool("no-fold", false, "do not track compile-time values of variables")
	noCache := fs.Bool("no-cache", false, "ignore and do not update the result cache")
	configPath := fs.String("config", "", "config file (default: nearest "+config.FileName+")")
	version := fs.Bool("version", false, "print version information and exit")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: waveguide [flags] FILE\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if *version {
		printVersion(stdout)
		return exitOK
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return exitUsage
	}
	file := fs.Arg(0)

	cfg, err := loadConfig(*configPath, filepath.Dir(file))
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFailure
	}
	o := options{
		phase:    cfg.Phase,
		fold:     cfg.FoldEnabled() && !*noFold,
		maxDepth: cfg.MaxDepth,
		cache:    cfg.CacheEnabled() && !*noCache,
		cacheDir: cfg.CacheDir,
		color:    cfg.Color,
	}
	if *phase != "" {
		if !slices.Contains(config.Phases, *phase) {
			fmt.Fprintf(stderr, "error: unknown phase %q, want one of %s\n", *phase, strings.Join(config.Phases, ", "))
			return exitUsage
		}
		o.phase = *phase
	}

	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(stderr, "error: reading %s: %v\n", file, err)
		return exitNoInput
	}

	start := time.Now()
	build := func() (string, error) { return compile(file, string(src), o) }
	var dump string
	hit := false
	if o.cache {
		dump, hit, err = cachedDump(o.cacheDir, o, src, build)
	} else {
		dump, err = build()
	}
	if err != nil {
		r := &reporter{w: stderr, color: colorFor(o.color, stderr), src: string(src)}
		r.report(err)
		var problem *diag.Problem
		if errors.As(err, &problem) {
			return exitProblem
		}
		return exitFailure
	}

	fmt.Fprint(stdout, dump)
	if hit {
		fmt.Fprintf(stderr, "Using cached result for %s\n", file)
	}
	fmt.Fprintf(stderr, "Task completed successfully (%d ms)\n", time.Since(start).Milliseconds())
	return exitOK
}

// loadConfig reads the config named by path, or else the nearest one above
// dir, or else the defaults.
func loadConfig(path, dir string) (*config.Config, error) {
	if path != "" {
		return config.LoadConfig(path)
	}
	found, err := config.FindConfig(dir)
	if err != nil {
		return nil, err
	}
	if found == "" {
		return config.Default(), nil
	}
	return config.LoadConfig(found)
}

func colorFor(mode string, w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return useColor(mode, f)
	}
	return mode == "always"
}

// compile runs the phases up to o.phase and returns the dump of the last
// one.
func compile(file, src string, o options) (string, error) {
	program, err := parser.Parse(file, src)
	if err != nil {
		return "", err
	}
	if o.phase == "parse" {
		return program.String(), nil
	}

	p, err := structure.Ingest(program)
	if err != nil {
		return "", err
	}
	if o.phase == "structure" {
		return p.String(), nil
	}

	out, err := resolver.Resolve(p, resolver.Context{Fold: o.fold, MaxDepth: o.maxDepth})
	if err != nil {
		return "", err
	}
	return out.String(), nil
}
