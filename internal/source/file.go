package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// File reads the taxonomy listing from a local file, and can watch it for
// changes to drive refreshes.
type File struct {
	path string
}

// NewFile creates a File source for the given path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Fetch reads the file.
func (f *File) Fetch(context.Context) (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", fmt.Errorf("source: %w", err)
	}
	return string(data), nil
}

// Watch blocks until ctx is done, invoking onChange every time the file is
// written, created, or renamed into place. The parent directory is
// watched rather than the file itself so editors that replace the file
// (write to temp, rename over) still trigger.
func (f *File) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("source: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(f.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("source: watch %s: %w", dir, err)
	}

	target := filepath.Clean(f.path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			slog.Debug("taxonomy file changed", "path", f.path, "op", event.Op.String())
			onChange()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("taxonomy file watch error", "error", err)
		}
	}
}
