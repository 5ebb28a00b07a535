// Package driver runs the parser over many files.
package driver

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/you-not-fish/swiftast/internal/syntax"
)

// Options control how files are parsed.
type Options struct {
	Jobs   int             // files parsed in parallel; <= 0 means one
	Parser []syntax.Option // passed to every parser
	Logger *log.Logger     // nil discards log output
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return o.Logger
}

// Result is the outcome of parsing one file. Err is set when the file
// could not be read; File and Diags are then empty.
type Result struct {
	Path  string
	Src   []byte
	File  *syntax.File
	Diags []syntax.Diagnostic
	Err   error
}

// Failed reports whether the file could not be read or has diagnostics.
func (r *Result) Failed() bool {
	return r.Err != nil || len(r.Diags) > 0
}

// ParseFile reads and parses a single file.
func ParseFile(path string, opts ...syntax.Option) Result {
	src, err := os.ReadFile(path)
	if err != nil {
		return Result{Path: path, Err: fmt.Errorf("failed to read %s: %w", path, err)}
	}
	f, diags := syntax.Parse(path, src, opts...)
	return Result{Path: path, Src: src, File: f, Diags: diags}
}

// ParseFiles parses paths concurrently. Results are in the order of paths.
// Unreadable files are reported in their Result; the returned error is
// non-nil only if ctx is cancelled.
func ParseFiles(ctx context.Context, paths []string, opts Options) ([]Result, error) {
	results := make([]Result, len(paths))
	logger := opts.logger()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Jobs, 1))

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = ParseFile(path, opts.Parser...)
			logger.Printf("parsed %s: %d statements, %d diagnostics", path, stmtCount(results[i].File), len(results[i].Diags))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func stmtCount(f *syntax.File) int {
	if f == nil {
		return 0
	}
	return len(f.Stmts)
}

// Expand replaces each directory in paths by the files below it for which
// match reports true, sorted by name. Plain files are kept as given.
func Expand(paths []string, match func(path string) bool) ([]string, error) {
	var out []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, path)
			continue
		}

		var found []string
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if p != path && len(d.Name()) > 1 && d.Name()[0] == '.' {
					return filepath.SkipDir
				}
				return nil
			}
			if match(p) {
				found = append(found, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", path, err)
		}
		sort.Strings(found)
		out = append(out, found...)
	}
	return out, nil
}
