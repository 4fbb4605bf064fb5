package watch

import (
	"fmt"
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/indigotools/hq/pkg/scan"
)

// Handle owns at most one active watcher. Start replaces any previous
// subscription; Stop clears it. The slot is guarded because event
// delivery runs on the watcher goroutine while Start and Stop are
// issued from the caller's. The lock covers only the swap — teardown
// of a replaced watcher happens outside it.
type Handle struct {
	log *logrus.Logger

	mu      sync.Mutex
	current *Watcher
}

// NewHandle returns an idle handle.
func NewHandle(log *logrus.Logger) *Handle {
	return &Handle{log: log}
}

// Start resolves the scope patterns under hqPath and watches every
// resulting directory recursively, pushing classified events to sink.
// Any previously active watcher is torn down after the new one is in
// place. On failure nothing changes: a partially registered watcher is
// discarded and the previous subscription, if any, keeps running.
func (h *Handle) Start(hqPath string, scopes []string, sink Sink) error {
	info, err := os.Stat(hqPath)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("HQ path is not a directory: %s", hqPath)
	}

	var dirs []string
	for _, scope := range scopes {
		for _, dir := range scan.ExpandScope(hqPath, scope) {
			if info, err := os.Stat(dir); err == nil && info.IsDir() {
				dirs = append(dirs, dir)
			}
		}
	}
	if len(dirs) == 0 {
		return fmt.Errorf("no valid directories to watch")
	}

	w, err := newWatcher(dirs, sink, h.log)
	if err != nil {
		return err
	}

	h.mu.Lock()
	old := h.current
	h.current = w
	h.mu.Unlock()

	if old != nil {
		old.close()
	}
	return nil
}

// Stop tears down the active subscription. Stopping an idle handle is
// a no-op.
func (h *Handle) Stop() {
	h.mu.Lock()
	old := h.current
	h.current = nil
	h.mu.Unlock()

	if old != nil {
		old.close()
	}
}

// Watching reports whether a subscription is active.
func (h *Handle) Watching() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current != nil
}
