package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce collapses the burst of events editors emit for one save.
const watchDebounce = 200 * time.Millisecond

// Watch reloads the config at path whenever the file changes and passes the
// result to onChange. A failed reload is passed as a nil config and the
// error. The parent directory is watched so that atomic saves (write to a
// temporary file, then rename) are seen. Watch returns once the watcher is
// set up; it stops when ctx is cancelled.
func Watch(ctx context.Context, path string, onChange func(*Config, error)) error {
	path, err := resolvePath(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	go watchLoop(ctx, w, path, onChange)
	return nil
}

func watchLoop(ctx context.Context, w *fsnotify.Watcher, path string, onChange func(*Config, error)) {
	defer w.Close()

	timer := time.NewTimer(watchDebounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(watchDebounce)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			onChange(nil, fmt.Errorf("config watcher: %w", err))
		case <-timer.C:
			cfg, err := Load(path)
			onChange(cfg, err)
		}
	}
}
