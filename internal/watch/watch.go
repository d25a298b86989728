// Package watch drives the `serve` subcommand's rebuild-on-change loop
// using fsnotify, the same filesystem-event library the teacher's indexer
// uses for its own watch mode.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/standardbeagle/corpusdex/internal/logging"
)

// Watcher watches the directories containing a fixed set of local file
// paths (the FilePathSource entries in a BuildConfig) and invokes onChange,
// debounced, whenever a file in one of those directories is written,
// created, removed or renamed.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debounce  time.Duration
}

// New creates a Watcher over paths. Each path's containing directory is
// watched (fsnotify has no native file-watch mode that survives editors'
// write-via-rename). Events are not filtered back down to the given paths:
// a change to any other file in a watched directory also triggers onChange.
func New(paths []string, debounce time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		dirs[filepath.Dir(p)] = true
	}
	for dir := range dirs {
		if err := fsWatcher.Add(dir); err != nil {
			fsWatcher.Close()
			return nil, err
		}
	}

	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}
	return &Watcher{fsWatcher: fsWatcher, debounce: debounce}, nil
}

// Close releases the underlying fsnotify watcher.
func (w *Watcher) Close() error { return w.fsWatcher.Close() }

// Run blocks, invoking onChange after each debounced burst of filesystem
// events, until ctx is canceled.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	var timer *time.Timer
	var fired <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logging.LogWatch("event %s on %s", event.Op, event.Name)
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fired = timer.C

		case <-fired:
			fired = nil
			onChange()

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			logging.LogWatch("watch error: %v", err)
		}
	}
}
