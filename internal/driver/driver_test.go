package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/you-not-fish/swiftast/internal/syntax"
)

func writeSwift(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func isSwift(path string) bool { return filepath.Ext(path) == ".swift" }

func TestParseFilesOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := range 20 {
		src := strings.Repeat("let x = 1\n", i+1)
		paths = append(paths, writeSwift(t, dir, fmt.Sprintf("f%02d.swift", i), src))
	}

	var logBuf bytes.Buffer
	results, err := ParseFiles(context.Background(), paths, Options{
		Jobs:   4,
		Logger: log.New(&logBuf, "", 0),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != len(paths) {
		t.Fatalf("got %d results, want %d", len(results), len(paths))
	}
	for i, r := range results {
		if r.Path != paths[i] {
			t.Errorf("result %d is %s, want %s", i, r.Path, paths[i])
		}
		if r.Failed() {
			t.Errorf("%s failed: %v %v", r.Path, r.Err, r.Diags)
		}
		if got := len(r.File.Stmts); got != i+1 {
			t.Errorf("%s: %d statements, want %d", r.Path, got, i+1)
		}
	}
	if n := strings.Count(logBuf.String(), "parsed "); n != len(paths) {
		t.Errorf("logged %d parses, want %d", n, len(paths))
	}
}

func TestParseFilesErrors(t *testing.T) {
	dir := t.TempDir()
	good := writeSwift(t, dir, "good.swift", "print(1)\n")
	bad := writeSwift(t, dir, "bad.swift", "import foo import bar\n")
	missing := filepath.Join(dir, "missing.swift")

	results, err := ParseFiles(context.Background(), []string{good, bad, missing}, Options{Jobs: 2})
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Failed() {
		t.Errorf("good.swift failed")
	}
	if len(results[1].Diags) != 1 || results[1].Err != nil {
		t.Errorf("bad.swift: err %v, diags %v", results[1].Err, results[1].Diags)
	}
	if !errors.Is(results[2].Err, os.ErrNotExist) || results[2].File != nil {
		t.Errorf("missing.swift: err %v", results[2].Err)
	}
}

func TestParseFilesCancelled(t *testing.T) {
	dir := t.TempDir()
	path := writeSwift(t, dir, "a.swift", "a\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ParseFiles(ctx, []string{path, path, path}, Options{}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestParseFilesOptions(t *testing.T) {
	dir := t.TempDir()
	path := writeSwift(t, dir, "ops.swift", "a <> b\n")

	results, err := ParseFiles(context.Background(), []string{path}, Options{
		Parser: []syntax.Option{syntax.WithOperators(map[string]string{"<>": "ComparisonPrecedence"})},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results[0].Diags) != 0 {
		t.Errorf("diagnostics: %v", results[0].Diags)
	}
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	writeSwift(t, dir, "b.swift", "")
	writeSwift(t, dir, "a.swift", "")
	writeSwift(t, dir, "notes.txt", "")
	writeSwift(t, dir, "sub/c.swift", "")
	writeSwift(t, dir, ".build/d.swift", "")
	single := writeSwift(t, t.TempDir(), "single.txt", "")

	got, err := Expand([]string{dir, single}, isSwift)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "a.swift"),
		filepath.Join(dir, "b.swift"),
		filepath.Join(dir, "sub", "c.swift"),
		single,
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("got:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}

	if _, err := Expand([]string{filepath.Join(dir, "nope")}, isSwift); err == nil {
		t.Error("Expand accepted a missing path")
	}
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := writeSwift(t, dir, "main.swift", "let a = 1\n")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	results := make(chan Result, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, []string{dir}, isSwift, Options{}, func(r Result) {
			results <- r
		})
	}()

	// Keep rewriting until the watcher is up and reports the change.
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case r := <-results:
			if r.Path != path {
				t.Errorf("event for %s, want %s", r.Path, path)
			}
			cancel()
			if err := <-done; err != nil {
				t.Errorf("Watch: %v", err)
			}
			return
		case <-tick.C:
			writeSwift(t, dir, "main.swift", "let a = 2\n")
		case <-ctx.Done():
			t.Fatal("no change reported")
		}
	}
}

func TestWatchMissingPath(t *testing.T) {
	err := Watch(context.Background(), []string{filepath.Join(t.TempDir(), "nope")}, isSwift, Options{}, func(Result) {})
	if err == nil {
		t.Error("Watch accepted a missing path")
	}
}
