package server

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// debounceDelay batches bursts of filesystem events into one
// invalidation.
const debounceDelay = 300 * time.Millisecond

// watcher watches a project tree and calls invalidate after Python
// sources change.
type watcher struct {
	fs         *fsnotify.Watcher
	root       string
	invalidate func()
	logger     *log.Logger
}

func newWatcher(root string, invalidate func(), logger *log.Logger) (*watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &watcher{fs: fs, root: root, invalidate: invalidate, logger: logger}
	if err := w.addRecursive(root); err != nil {
		fs.Close()
		return nil, err
	}
	return w, nil
}

// addRecursive registers every directory under root. fsnotify watches
// are not recursive on their own.
func (w *watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != root {
			return filepath.SkipDir
		}
		return w.fs.Add(path)
	})
}

func (w *watcher) run(ctx context.Context) {
	var timer *time.Timer
	pending := make(chan struct{}, 1)

	schedule := func() {
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounceDelay, func() {
			select {
			case pending <- struct{}{}:
			default:
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-pending:
			w.invalidate()
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) {
				if stat, err := os.Stat(event.Name); err == nil && stat.IsDir() {
					w.fs.Add(event.Name)
				}
			}
			if !relevant(event.Name) {
				continue
			}
			w.logger.Debugf("File event: %s %s", event.Op, event.Name)
			schedule()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warnf("Watcher error: %v", err)
		}
	}
}

func (w *watcher) close() {
	w.fs.Close()
}

// relevant reports whether a changed path affects scan results.
func relevant(path string) bool {
	switch filepath.Ext(path) {
	case ".py", ".ipynb":
		return true
	}
	return filepath.Base(path) == "pyproject.toml"
}
