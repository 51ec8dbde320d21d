// Package config manages the optional bootstrap override file at
// ~/.bootstrap/config.yaml. TOML files are accepted too, chosen by extension.
// Every field has a default, so running without a file is the normal case.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/hpkotak/bootstrap/internal/platform"
	"github.com/hpkotak/bootstrap/internal/routine"
)

var ErrNotFound = errors.New("config file not found")

type Config struct {
	ReleaseFile     string   `yaml:"release_file" toml:"release_file"`
	DebianCodenames []string `yaml:"debian_codenames" toml:"debian_codenames"`
	Submodule       string   `yaml:"submodule" toml:"submodule"`
	BuildDir        string   `yaml:"build_dir" toml:"build_dir"`
	BindingsDir     string   `yaml:"bindings_dir" toml:"bindings_dir"`
	Requirements    string   `yaml:"requirements" toml:"requirements"`
	Sudo            bool     `yaml:"sudo" toml:"sudo"`
	// Jobs is the Debian make parallelism; 0 means all processors.
	Jobs int `yaml:"jobs" toml:"jobs"`
	// DebianBindings runs the binding build on Debian too. Off by default
	// because the top-level pip install is expected to cover it.
	DebianBindings bool   `yaml:"debian_bindings" toml:"debian_bindings"`
	HomebrewPath   string `yaml:"homebrew_path" toml:"homebrew_path"`
}

var codenameRE = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// Dir returns the config directory path (~/.bootstrap).
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".bootstrap")
}

// Path returns the config file path (~/.bootstrap/config.yaml).
func Path() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Load reads the default config file. Returns ErrNotFound if it doesn't exist.
func Load() (*Config, error) {
	return LoadFile(Path())
}

// LoadFile reads path as TOML when it ends in .toml and as YAML otherwise.
// Keys missing from the file keep their defaults; unknown keys are an error.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if isTOML(path) {
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("parsing config: unknown key %q", undecoded[0].String())
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}
	return cfg, nil
}

// Save writes the config to the default path, creating the directory if needed.
func Save(cfg *Config) error {
	return SaveFile(Path(), cfg)
}

// SaveFile writes cfg to path in the format implied by its extension.
func SaveFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := Marshal(cfg, isTOML(path))
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Marshal encodes cfg as TOML or YAML.
func Marshal(cfg *Config, asTOML bool) ([]byte, error) {
	if asTOML {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, fmt.Errorf("encoding config: %w", err)
		}
		return buf.Bytes(), nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return data, nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Default returns the config that reproduces the stock install behavior.
func Default() *Config {
	opts := routine.DefaultOptions()
	return &Config{
		ReleaseFile:     platform.DefaultReleaseFile,
		DebianCodenames: append([]string(nil), platform.DefaultDebianCodenames...),
		Submodule:       opts.Submodule,
		BuildDir:        opts.BuildDir,
		BindingsDir:     opts.BindingsDir,
		Requirements:    opts.Requirements,
		Sudo:            opts.Sudo,
		HomebrewPath:    opts.HomebrewPath,
	}
}

// Validate checks that the config values are usable.
func (c *Config) Validate() error {
	for key, v := range map[string]string{
		"release_file":  c.ReleaseFile,
		"submodule":     c.Submodule,
		"build_dir":     c.BuildDir,
		"bindings_dir":  c.BindingsDir,
		"requirements":  c.Requirements,
		"homebrew_path": c.HomebrewPath,
	} {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s cannot be empty", key)
		}
	}
	if filepath.IsAbs(c.Submodule) {
		return fmt.Errorf("submodule must be relative to the project dir, got %q", c.Submodule)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must be >= 0, got %d", c.Jobs)
	}
	for _, name := range c.DebianCodenames {
		if !codenameRE.MatchString(name) {
			return fmt.Errorf("invalid debian codename %q", name)
		}
	}
	return nil
}

// RoutineOptions converts the config into routine builder inputs.
func (c *Config) RoutineOptions() routine.Options {
	return routine.Options{
		Submodule:      c.Submodule,
		BuildDir:       c.BuildDir,
		BindingsDir:    c.BindingsDir,
		Requirements:   c.Requirements,
		Sudo:           c.Sudo,
		Jobs:           c.Jobs,
		DebianBindings: c.DebianBindings,
		HomebrewPath:   c.HomebrewPath,
	}
}
