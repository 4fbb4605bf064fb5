// Package watch delivers debounced, classified filesystem change events
// for the concrete directories a set of scope patterns resolves to.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/indigotools/hq/pkg/models"
	"github.com/indigotools/hq/pkg/scan"
)

// DebounceDelay is how long a path must stay quiet before its coalesced
// event is delivered.
const DebounceDelay = 500 * time.Millisecond

// Sink receives classified change events. It is invoked from the
// watcher's own goroutine.
type Sink func(models.ChangeEvent)

// Watcher is one active subscription over a set of directories. It is
// created and replaced through a Handle.
type Watcher struct {
	fsw  *fsnotify.Watcher
	sink Sink
	log  *logrus.Logger
	done chan struct{}

	mu     sync.Mutex
	timers map[string]*time.Timer
	closed bool
}

func newWatcher(dirs []string, sink Sink, log *logrus.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	w := &Watcher{
		fsw:    fsw,
		sink:   sink,
		log:    log,
		done:   make(chan struct{}),
		timers: make(map[string]*time.Timer),
	}

	for _, dir := range dirs {
		if err := w.addRecursive(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	go w.run()
	return w, nil
}

// addRecursive registers dir and every non-excluded subdirectory.
// Vanished or unreadable directories are skipped, not errors.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) || os.IsPermission(err) {
				return nil
			}
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if path != dir && scan.IsExcluded(info.Name()) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			if os.IsPermission(err) {
				return nil
			}
			return err
		}
		return nil
	})
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Warn("file watcher error")
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op == fsnotify.Chmod {
		return
	}

	path := event.Name
	if excludedPath(path) {
		return
	}

	// New directories need their own watches before anything inside
	// them can be seen.
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if err := w.addRecursive(path); err != nil {
				w.log.WithError(err).WithField("path", path).Warn("watch new directory")
			}
		}
	}

	w.debounce(path)
}

// debounce restarts the per-path timer so a raw burst yields a single
// delivery once the path stays quiet for DebounceDelay.
func (w *Watcher) debounce(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	if timer, ok := w.timers[path]; ok {
		timer.Stop()
	}
	w.timers[path] = time.AfterFunc(DebounceDelay, func() {
		w.mu.Lock()
		delete(w.timers, path)
		closed := w.closed
		w.mu.Unlock()

		if closed {
			return
		}
		w.sink(classify(path))
	})
}

// classify decides remove vs modify by checking existence at delivery
// time. The raw fsnotify op is not trusted: rename chains and editor
// save strategies make its create/write distinction unreliable, so an
// existing path is always reported as a modification.
func classify(path string) models.ChangeEvent {
	kind := models.ChangeModify
	if _, err := os.Stat(path); err != nil {
		kind = models.ChangeRemove
	}
	return models.ChangeEvent{Path: path, Kind: kind}
}

// excludedPath reports whether any segment of path is excluded.
// Excluded paths never reach the sink, even transiently.
func excludedPath(path string) bool {
	for _, segment := range strings.Split(filepath.ToSlash(path), "/") {
		if segment == "" {
			continue
		}
		if scan.IsExcluded(segment) {
			return true
		}
	}
	return false
}

// close stops deliveries and releases the OS watches. Pending debounce
// timers are cancelled; a timer that already fired sees closed and
// drops its event.
func (w *Watcher) close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	for _, timer := range w.timers {
		timer.Stop()
	}
	w.timers = nil
	w.mu.Unlock()

	close(w.done)
	if err := w.fsw.Close(); err != nil {
		w.log.WithError(err).Debug("close file watcher")
	}
}
