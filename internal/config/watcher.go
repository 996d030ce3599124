package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-logr/logr"
)

// debounceDelay coalesces the burst of events an editor save produces.
const debounceDelay = 100 * time.Millisecond

// Watcher reports external edits of a single config file.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	changes   chan struct{}
	done      chan struct{}
	stopOnce  sync.Once
	log       logr.Logger

	debounceMu sync.Mutex
	debounce   *time.Timer
}

// NewWatcher creates a watcher for the file at path. The parent directory is
// watched so atomic replace-by-rename saves are seen.
func NewWatcher(path string, log logr.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsWatcher: fsWatcher,
		path:      filepath.Clean(path),
		changes:   make(chan struct{}, 1),
		done:      make(chan struct{}),
		log:       log,
	}, nil
}

// Changes returns a channel that receives a value after the file changed.
// Bursts are coalesced into one notification.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Start begins watching.
func (w *Watcher) Start() error {
	if err := w.fsWatcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	go w.processEvents()
	return nil
}

// Stop stops the watcher. Safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fsWatcher.Close()

		w.debounceMu.Lock()
		if w.debounce != nil {
			w.debounce.Stop()
		}
		w.debounceMu.Unlock()
	})
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.log.Error(err, "config watcher error")
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	// Rename matters: SaveYAML and most editors replace the file atomically.
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}
	w.log.V(1).Info("config file event", "op", event.Op.String())

	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(debounceDelay, w.notify)
}

func (w *Watcher) notify() {
	select {
	case <-w.done:
		return
	default:
	}
	select {
	case w.changes <- struct{}{}:
	default:
	}
}
