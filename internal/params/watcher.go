package params

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a parameter file whenever it changes on disk. Callers wire
// the reload callback to Store.Replace plus Registry.ForceReconfigure so live
// edits reach already-pooled algorithms.
type Watcher struct {
	path     string
	onReload func(*Store, error)
	done     chan struct{}
	reloads  atomic.Uint32
}

// NewWatcher starts watching path. The callback runs on the watcher goroutine
// after each debounced write, with either the freshly loaded store or the
// load error.
func NewWatcher(path string, onReload func(*Store, error)) (*Watcher, error) {
	if _, err := Load(path); err != nil {
		return nil, fmt.Errorf("params: initial load failed: %w", err)
	}

	w := &Watcher{
		path:     path,
		onReload: onReload,
		done:     make(chan struct{}),
	}
	go w.watch()

	return w, nil
}

func (w *Watcher) watch() {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Error("failed to create file watcher", "error", err)
		return
	}
	defer fsw.Close()

	if err := fsw.Add(w.path); err != nil {
		slog.Error("failed to watch params file", "path", w.path, "error", err)
		return
	}

	var timer *time.Timer
	const debounce = 300 * time.Millisecond

	for {
		select {
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(debounce, w.reload)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			slog.Error("params watcher error", "error", err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (w *Watcher) reload() {
	count := w.reloads.Add(1)

	st, err := Load(w.path)
	if err != nil {
		slog.Error("failed to reload params file", "path", w.path, "error", err)
		w.onReload(nil, err)
		return
	}

	slog.Info("params file reloaded", "path", w.path, "count", count)
	w.onReload(st, nil)
}

// ReloadCount returns how many times the file has been reloaded.
func (w *Watcher) ReloadCount() uint32 {
	return w.reloads.Load()
}

// Close stops the watcher goroutine.
func (w *Watcher) Close() {
	close(w.done)
}
