package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch parses a file each time it is created or written and passes the
// result to fn. paths may name files or directories; files in a watched
// directory are considered when match reports true for them. Watch
// returns when ctx is done.
func Watch(ctx context.Context, paths []string, match func(path string) bool, opts Options, fn func(Result)) error {
	logger := opts.logger()

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	// files holds paths watched individually through their directory.
	files := make(map[string]bool)
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			files[filepath.Clean(path)] = true
			path = filepath.Dir(path)
		}
		if err := w.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		logger.Printf("watching %s", path)
	}

	wanted := func(name string) bool {
		name = filepath.Clean(name)
		if files[name] {
			return true
		}
		return match != nil && match(name) && !isIndividual(files, name)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 || !wanted(ev.Name) {
				continue
			}
			logger.Printf("%s: %s", ev.Op, ev.Name)
			fn(ParseFile(ev.Name, opts.Parser...))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Printf("watch error: %v", err)
		}
	}
}

// isIndividual reports whether name lives in a directory that is only
// watched for specific files.
func isIndividual(files map[string]bool, name string) bool {
	dir := filepath.Dir(name)
	for f := range files {
		if filepath.Dir(f) == dir {
			return true
		}
	}
	return false
}
