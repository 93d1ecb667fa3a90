package theme

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"folio/internal/logging"
)

// Watch reports the theme named in the file at path whenever the file is
// written. read extracts the theme name; notify receives every change of name.
// The directory is watched rather than the file so editors that replace the
// file on save are still seen. Watching stops when ctx is done.
func Watch(ctx context.Context, path string, read func(path string) (string, error), notify func(name string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	path = filepath.Clean(path)
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return fmt.Errorf("watch %s: %w", path, err)
	}

	last, _ := read(path)
	logging.Info("watching theme file", "path", path, "theme", last)

	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != path || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
					continue
				}
				name, err := read(path)
				if err != nil {
					logging.Warn("failed to read theme file", "path", path, "error", err)
					continue
				}
				if name == last {
					continue
				}
				logging.Debug("theme file changed", "from", last, "to", name)
				last = name
				notify(name)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logging.Warn("theme watcher error", "error", err)
			}
		}
	}()
	return nil
}
