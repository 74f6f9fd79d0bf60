// Package config loads waveguide.yaml, the per-project settings file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"gopkg.in/yaml.v3"
)

const (
	FileName    = "waveguide.yaml"
	altFileName = "waveguide.yml"
	CacheEnv    = "WGCACHE"

	DefaultMaxDepth = 256
)

var (
	Phases = []string{"parse", "structure", "resolve"}
	Colors = []string{"auto", "always", "never"}
)

// Config is the contents of waveguide.yaml. Command line flags take
// precedence over it.
type Config struct {
	// CacheDir holds resolved dumps keyed by source hash.
	CacheDir string `yaml:"cache_dir,omitempty"`
	// Cache turns the result cache on or off. Defaults to true.
	Cache *bool `yaml:"cache,omitempty"`
	// Color is one of auto, always or never.
	Color string `yaml:"color,omitempty"`
	// Fold tracks compile-time values of mutable variables. Defaults to true.
	Fold *bool `yaml:"fold,omitempty"`
	// MaxDepth limits nested function instantiations.
	MaxDepth int `yaml:"max_depth,omitempty"`
	// Phase is the last phase to run: parse, structure or resolve.
	Phase string `yaml:"phase,omitempty"`

	// Path is where the config was loaded from; empty for defaults.
	Path string `yaml:"-"`
}

// Default returns the configuration used when there is no waveguide.yaml.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

func (c *Config) CacheEnabled() bool { return c.Cache == nil || *c.Cache }
func (c *Config) FoldEnabled() bool  { return c.Fold == nil || *c.Fold }

// LoadConfig reads and validates the config file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses config data. path is only used in error messages and
// to resolve a relative cache_dir.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.Path = path
	cfg.setDefaults()
	return &cfg, nil
}

// FindConfig walks up from dir looking for waveguide.yaml or waveguide.yml.
// It returns "" when there is none.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range []string{FileName, altFileName} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func (c *Config) validate(path string) error {
	if c.Color != "" && !slices.Contains(Colors, c.Color) {
		return fmt.Errorf("%s: color must be one of %v, got %q", path, Colors, c.Color)
	}
	if c.Phase != "" && !slices.Contains(Phases, c.Phase) {
		return fmt.Errorf("%s: phase must be one of %v, got %q", path, Phases, c.Phase)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%s: max_depth must not be negative, got %d", path, c.MaxDepth)
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.CacheDir == "" {
		c.CacheDir = DefaultCacheDir()
	} else if !filepath.IsAbs(c.CacheDir) && c.Path != "" {
		c.CacheDir = filepath.Join(filepath.Dir(c.Path), c.CacheDir)
	}
	if c.Color == "" {
		c.Color = "auto"
	}
	if c.MaxDepth == 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	if c.Phase == "" {
		c.Phase = "resolve"
	}
}

// DefaultCacheDir is $WGCACHE, or the user cache directory of the platform.
func DefaultCacheDir() string {
	if env := os.Getenv(CacheEnv); env != "" {
		return env
	}

	homeDir, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "windows":
		if localAppData := os.Getenv("LocalAppData"); localAppData != "" {
			return filepath.Join(localAppData, "waveguide")
		}
		return filepath.Join(homeDir, "AppData", "Local", "waveguide")
	case "darwin":
		return filepath.Join(homeDir, "Library", "Caches", "waveguide")
	default:
		if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
			return filepath.Join(xdg, "waveguide")
		}
		return filepath.Join(homeDir, ".cache", "waveguide")
	}
}
