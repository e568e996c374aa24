// Package watch re-runs a callback when PHP files under a set of roots
// change. Events are debounced and filtered with the same rules as file
// discovery.
package watch

import (
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"phpfix/internal/driver"
)

// DefaultDebounce is used when New gets a zero debounce.
const DefaultDebounce = 200 * time.Millisecond

type Watcher struct {
	fsWatcher  *fsnotify.Watcher
	debounce   time.Duration
	finder     *driver.Finder
	onChange   func([]string)
	onError    func(error)
	callbackMu sync.Mutex

	pending   map[string]struct{}
	pendingMu sync.Mutex
	timer     *time.Timer
	closed    bool
}

// New creates a watcher. onChange receives the sorted list of changed files
// that still exist; calls never overlap.
func New(debounce time.Duration, finder *driver.Finder, onChange func([]string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		fsWatcher: fsw,
		debounce:  debounce,
		finder:    finder,
		onChange:  onChange,
		onError:   func(error) {},
		pending:   make(map[string]struct{}),
	}, nil
}

// OnError sets the handler for watcher errors. Must be called before Watch.
func (w *Watcher) OnError(fn func(error)) {
	if fn != nil {
		w.onError = fn
	}
}

// Watch registers roots recursively and starts delivering events.
func (w *Watcher) Watch(roots []string) error {
	for _, root := range roots {
		if err := w.watchRecursive(root); err != nil {
			return err
		}
	}
	go w.run()
	return nil
}

func (w *Watcher) watchRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.finder.Excluded(path, true) {
			return filepath.SkipDir
		}
		return w.fsWatcher.Add(path)
	})
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			if event.Has(fsnotify.Create) {
				info, err := os.Stat(event.Name)
				if err == nil && info.IsDir() {
					if !w.finder.Excluded(event.Name, true) {
						if err := w.watchRecursive(event.Name); err != nil {
							w.onError(err)
						} else {
							w.enqueueExistingFiles(event.Name)
						}
					}
					continue
				}
			}

			if !w.wanted(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.scheduleChange(event.Name)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.onError(err)
		}
	}
}

func (w *Watcher) wanted(path string) bool {
	return w.finder.Matches(path) && !w.finder.Excluded(path, false)
}

func (w *Watcher) scheduleChange(path string) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	if w.closed {
		return
	}

	w.pending[path] = struct{}{}

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flushChanges)
}

func (w *Watcher) flushChanges() {
	w.pendingMu.Lock()
	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		// удалённые и переименованные файлы чинить нечего
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			paths = append(paths, path)
		}
	}
	w.pending = make(map[string]struct{})
	w.pendingMu.Unlock()

	if len(paths) == 0 {
		return
	}
	sort.Strings(paths)
	w.callbackMu.Lock()
	defer w.callbackMu.Unlock()
	w.onChange(paths)
}

func (w *Watcher) enqueueExistingFiles(root string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if w.wanted(path) {
			w.scheduleChange(path)
		}
		return nil
	})
}

// Close stops watching. A pending batch is dropped.
func (w *Watcher) Close() error {
	w.pendingMu.Lock()
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.pendingMu.Unlock()
	return w.fsWatcher.Close()
}
