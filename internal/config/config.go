// Package config loads swiftast settings from .swiftast.toml or
// .swiftast.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/you-not-fish/swiftast/internal/syntax"
)

// Format is the encoding of a configuration file.
type Format int

const (
	FormatUnknown Format = iota
	FormatTOML
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	}
	return "unknown"
}

// FileNames are the configuration files Find looks for, in order.
var FileNames = []string{".swiftast.toml", ".swiftast.yaml", ".swiftast.yml"}

// ErrNotFound is returned by Find when no configuration file exists.
var ErrNotFound = errors.New("no configuration file found")

// Config holds the settings shared by all commands.
type Config struct {
	Format     string   `toml:"format" yaml:"format"`         // "text" or "json"
	Jobs       int      `toml:"jobs" yaml:"jobs"`             // parallel parses; 0 means GOMAXPROCS
	Color      bool     `toml:"color" yaml:"color"`           // colored diagnostics
	Extensions []string `toml:"extensions" yaml:"extensions"` // source file extensions for directory walks
	Requires   string   `toml:"requires" yaml:"requires"`     // semver constraint on the tool version

	// Operators maps infix operator text to a precedence group name.
	Operators        map[string]string `toml:"operators" yaml:"operators"`
	PrecedenceGroups []Group           `toml:"precedence_groups" yaml:"precedence_groups"`

	path   string
	format Format
}

// Group declares a precedence group the parser should know about.
type Group struct {
	Name          string   `toml:"name" yaml:"name"`
	Associativity string   `toml:"associativity" yaml:"associativity"`
	Assignment    bool     `toml:"assignment" yaml:"assignment"`
	HigherThan    []string `toml:"higher_than" yaml:"higher_than"`
	LowerThan     []string `toml:"lower_than" yaml:"lower_than"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Format:     "text",
		Color:      true,
		Extensions: []string{".swift"},
	}
}

// Load reads the configuration file at path. Settings missing from the
// file keep their defaults.
func Load(path string) (*Config, error) {
	format := detectFormat(path)
	if format == FormatUnknown {
		return nil, fmt.Errorf("config %s: unsupported file extension", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.path = path
	return cfg, nil
}

// LoadFromString parses content in the given format.
func LoadFromString(content string, format Format) (*Config, error) {
	return parse([]byte(content), format)
}

func parse(data []byte, format Format) (*Config, error) {
	cfg := Default()
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	cfg.format = format
	return cfg, nil
}

func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatUnknown
}

// Find looks for a configuration file in dir and its parents.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// Discover loads the configuration for dir, falling back to Default when
// there is no file.
func Discover(dir string) (*Config, error) {
	path, err := Find(dir)
	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Path returns the file the configuration was loaded from, if any.
func (c *Config) Path() string { return c.path }

// FileFormat returns the encoding of the file the configuration came from.
func (c *Config) FileFormat() Format { return c.format }

// Workers returns the number of files to parse in parallel.
func (c *Config) Workers() int {
	if c.Jobs > 0 {
		return c.Jobs
	}
	return runtime.GOMAXPROCS(0)
}

// HasExtension reports whether path has one of the configured source
// extensions.
func (c *Config) HasExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range c.Extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

// Validate checks the settings and that toolVersion satisfies Requires.
func (c *Config) Validate(toolVersion string) error {
	var errs []error
	switch c.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("format: unknown output format %q", c.Format))
	}
	if c.Jobs < 0 {
		errs = append(errs, fmt.Errorf("jobs: must not be negative, got %d", c.Jobs))
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Errorf("extensions: %q does not start with '.'", ext))
		}
	}
	if err := CheckVersion(c.Requires, toolVersion); err != nil {
		errs = append(errs, fmt.Errorf("requires: %w", err))
	}
	if _, err := c.ParserOptions(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// CheckVersion reports an error unless version satisfies constraint. An
// empty constraint accepts every version.
func CheckVersion(constraint, version string) error {
	if constraint == "" {
		return nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid constraint %q: %w", constraint, err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid version %q: %w", version, err)
	}
	if ok, reasons := c.Validate(v); !ok {
		return fmt.Errorf("version %s does not satisfy %s: %w", v, constraint, errors.Join(reasons...))
	}
	return nil
}

// ParserOptions converts the operator and precedence group settings into
// parser options.
func (c *Config) ParserOptions() ([]syntax.Option, error) {
	var opts []syntax.Option
	if len(c.PrecedenceGroups) > 0 {
		groups := make([]syntax.PrecedenceGroup, 0, len(c.PrecedenceGroups))
		for _, g := range c.PrecedenceGroups {
			if g.Name == "" {
				return nil, errors.New("precedence_groups: group without a name")
			}
			assoc, err := syntax.ParseAssociativity(g.Associativity)
			if err != nil {
				return nil, fmt.Errorf("precedence_groups: %s: %w", g.Name, err)
			}
			groups = append(groups, syntax.PrecedenceGroup{
				Name:          g.Name,
				Associativity: assoc,
				Assignment:    g.Assignment,
				HigherThan:    g.HigherThan,
				LowerThan:     g.LowerThan,
			})
		}
		opts = append(opts, syntax.WithPrecedenceGroups(groups...))
	}
	if len(c.Operators) > 0 {
		opts = append(opts, syntax.WithOperators(c.Operators))
	}
	return opts, nil
}
