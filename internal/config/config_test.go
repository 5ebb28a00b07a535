package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/you-not-fish/swiftast/internal/syntax"
)

const tomlConfig = `
format = "json"
jobs = 4
extensions = [".swift", ".swiftinterface"]
requires = ">= 0.1.0"

[operators]
"**" = "PowerPrecedence"

[[precedence_groups]]
name = "PowerPrecedence"
associativity = "right"
higher_than = ["MultiplicationPrecedence"]
`

const yamlConfig = `
format: json
jobs: 4
extensions: [".swift", ".swiftinterface"]
requires: ">= 0.1.0"
operators:
  "**": PowerPrecedence
precedence_groups:
  - name: PowerPrecedence
    associativity: right
    higher_than: [MultiplicationPrecedence]
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		format  Format
	}{
		{"toml", ".swiftast.toml", tomlConfig, FormatTOML},
		{"yaml", ".swiftast.yaml", yamlConfig, FormatYAML},
		{"yml", "swiftast.yml", yamlConfig, FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.file, tt.content)
			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.FileFormat() != tt.format || cfg.Path() != path {
				t.Errorf("format %v path %q", cfg.FileFormat(), cfg.Path())
			}
			if cfg.Format != "json" || cfg.Jobs != 4 || len(cfg.Extensions) != 2 {
				t.Errorf("cfg = %+v", cfg)
			}
			if !cfg.Color {
				t.Error("color default was lost")
			}
			if cfg.Operators["**"] != "PowerPrecedence" {
				t.Errorf("operators = %v", cfg.Operators)
			}
			if len(cfg.PrecedenceGroups) != 1 || cfg.PrecedenceGroups[0].HigherThan[0] != "MultiplicationPrecedence" {
				t.Errorf("precedence groups = %+v", cfg.PrecedenceGroups)
			}
			if err := cfg.Validate("0.1.0"); err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(writeFile(t, dir, "config.json", "{}")); err == nil {
		t.Error("Load accepted a .json file")
	}
	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("Load accepted a missing file")
	}
	if _, err := Load(writeFile(t, dir, "bad.toml", "format = ")); err == nil {
		t.Error("Load accepted malformed TOML")
	}
	if _, err := Load(writeFile(t, dir, "bad.yaml", "format: [")); err == nil {
		t.Error("Load accepted malformed YAML")
	}
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	want := writeFile(t, root, ".swiftast.yaml", "jobs: 2\n")
	got, err := Find(sub)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got != want {
		t.Errorf("Find = %q, want %q", got, want)
	}

	cfg, err := Discover(sub)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if cfg.Jobs != 2 || cfg.Workers() != 2 {
		t.Errorf("jobs = %d, workers = %d", cfg.Jobs, cfg.Workers())
	}

	// The nearest directory wins.
	want = writeFile(t, sub, ".swiftast.toml", "jobs = 3\n")
	if got, _ := Find(sub); got != want {
		t.Errorf("Find = %q, want %q", got, want)
	}
}

func TestDiscoverDefault(t *testing.T) {
	dir := t.TempDir()
	if _, err := Find(dir); err != nil && !errors.Is(err, ErrNotFound) {
		t.Fatalf("Find: %v", err)
	}
	cfg, err := Discover(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Format != "text" || !cfg.HasExtension("main.swift") || cfg.HasExtension("main.go") {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Workers() < 1 {
		t.Errorf("Workers() = %d", cfg.Workers())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"default", func(*Config) {}, ""},
		{"format", func(c *Config) { c.Format = "xml" }, "unknown output format"},
		{"jobs", func(c *Config) { c.Jobs = -1 }, "must not be negative"},
		{"extension", func(c *Config) { c.Extensions = []string{"swift"} }, "does not start with '.'"},
		{"requires", func(c *Config) { c.Requires = ">= 2.0.0" }, "does not satisfy"},
		{"bad constraint", func(c *Config) { c.Requires = "not a constraint" }, "invalid constraint"},
		{"associativity", func(c *Config) {
			c.PrecedenceGroups = []Group{{Name: "G", Associativity: "up"}}
		}, "invalid associativity"},
		{"unnamed group", func(c *Config) { c.PrecedenceGroups = []Group{{}} }, "group without a name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate("1.2.3")
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestCheckVersion(t *testing.T) {
	tests := []struct {
		constraint string
		version    string
		ok         bool
	}{
		{"", "anything", true},
		{">= 1.21", "1.23.3", true},
		{"~1.23", "1.23.9", true},
		{">= 1.24", "1.23.3", false},
		{">= 1.21", "not-a-version", false},
	}

	for _, tt := range tests {
		t.Run(tt.constraint+"/"+tt.version, func(t *testing.T) {
			if err := CheckVersion(tt.constraint, tt.version); (err == nil) != tt.ok {
				t.Errorf("CheckVersion = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestParserOptions(t *testing.T) {
	cfg, err := LoadFromString(tomlConfig, FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	opts, err := cfg.ParserOptions()
	if err != nil {
		t.Fatal(err)
	}

	f, diags := syntax.Parse("test.swift", []byte("a * b ** c"), opts...)
	if len(diags) != 0 {
		t.Fatalf("diagnostics: %v", diags)
	}
	mul, ok := f.Stmts[0].(*syntax.BinaryExpr)
	if !ok || mul.Op != "*" {
		t.Fatalf("top-level expression = %#v", f.Stmts[0])
	}
	if pow, ok := mul.Y.(*syntax.BinaryExpr); !ok || pow.Op != "**" {
		t.Errorf("right operand = %#v", mul.Y)
	}

	if opts, _ := Default().ParserOptions(); len(opts) != 0 {
		t.Errorf("default config produced %d options", len(opts))
	}
}
