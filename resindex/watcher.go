package resindex

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Watcher schedules a rescan of a resource directory whenever something
// changes in it or in one of its folders. Bursts of changes are absorbed by
// the refresher backoff: a change the refresher refuses is retried on every
// tick until a rescan gets scheduled.
type Watcher struct {
	refresher *Refresher
	fsw       *fsnotify.Watcher
	retry     time.Duration

	mu    sync.Mutex
	roots map[string]string // watched directory -> root to rescan
	dirty map[string]bool
}

func NewWatcher(refresher *Refresher, retry time.Duration) (*Watcher, error) {
	if retry <= 0 {
		retry = time.Second
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "Failed to create file watcher")
	}
	return &Watcher{
		refresher: refresher,
		fsw:       fsw,
		retry:     retry,
		roots:     map[string]string{},
		dirty:     map[string]bool{},
	}, nil
}

// Add watches root and its resource folders.
func (w *Watcher) Add(root string) error {
	root = filepath.Clean(root)
	if err := w.watch(root, root); err != nil {
		return err
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return errors.Wrapf(err, "Failed to read resource directory %s", root)
	}
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			if err := w.watch(filepath.Join(root, entry.Name()), root); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *Watcher) watch(dir, root string) error {
	if err := w.fsw.Add(dir); err != nil {
		return errors.Wrapf(err, "Failed to watch %s", dir)
	}
	w.mu.Lock()
	w.roots[dir] = root
	w.mu.Unlock()
	return nil
}

// rootOf returns the resource directory an event path belongs to.
func (w *Watcher) rootOf(path string) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if root, ok := w.roots[path]; ok {
		return root, true
	}
	root, ok := w.roots[filepath.Dir(path)]
	return root, ok
}

// Run handles file events until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) {
	defer w.fsw.Close()
	ticker := time.NewTicker(w.retry)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			w.retryDirty()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logrus.WithFields(logrus.Fields{
				"category": indexLogCategory,
				"code":     "watch_error",
			}).WithError(err).Error("File watcher failed")
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	root, ok := w.rootOf(ev.Name)
	if !ok {
		return
	}

	// A folder created directly under a root is watched as well.
	if ev.Has(fsnotify.Create) && filepath.Dir(ev.Name) == root {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.watch(ev.Name, root); err != nil {
				logrus.WithFields(logrus.Fields{
					"category": indexLogCategory,
					"code":     "watch_error",
					"path":     ev.Name,
				}).WithError(err).Warn("Failed to watch new resource folder")
			}
		}
	}

	scheduled := w.schedule(root)
	logrus.WithFields(logrus.Fields{
		"category":  indexLogCategory,
		"code":      "change_detected",
		"root":      root,
		"path":      ev.Name,
		"op":        ev.Op.String(),
		"scheduled": scheduled,
	}).Debug("Resource directory changed")
}

func (w *Watcher) schedule(root string) bool {
	scheduled := w.refresher.Schedule(root)
	w.mu.Lock()
	if scheduled {
		delete(w.dirty, root)
	} else {
		w.dirty[root] = true
	}
	w.mu.Unlock()
	return scheduled
}

func (w *Watcher) retryDirty() {
	w.mu.Lock()
	roots := make([]string, 0, len(w.dirty))
	for root := range w.dirty {
		roots = append(roots, root)
	}
	w.mu.Unlock()

	for _, root := range roots {
		w.schedule(root)
	}
}
