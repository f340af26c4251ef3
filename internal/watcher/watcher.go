// Package watcher reports changes to a single file, coalescing bursts of
// filesystem events into one notification.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last event before Changed fires
const DefaultDebounce = 200 * time.Millisecond

// Option configures a Watcher
type Option func(*Watcher)

// WithDebounceDuration sets the quiet period
func WithDebounceDuration(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// Watcher watches one file. The parent directory is watched so that editors
// which replace the file on save are still seen.
type Watcher struct {
	path     string
	debounce time.Duration
	fs       *fsnotify.Watcher
	changed  chan struct{}

	mu     sync.Mutex
	timer  *time.Timer
	cancel context.CancelFunc
	done   chan struct{}
}

// NewWatcher creates a watcher for path
func NewWatcher(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		path:     abs,
		debounce: DefaultDebounce,
		fs:       fs,
		changed:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Path returns the watched file
func (w *Watcher) Path() string {
	return w.path
}

// Changed receives one value per debounced burst of changes. Bursts that arrive
// while a previous notification is still unread are merged into it.
func (w *Watcher) Changed() <-chan struct{} {
	return w.changed
}

// Start begins watching until ctx is cancelled or Stop is called
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.fs.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}

	ctx, cancel := context.WithCancel(ctx)
	w.mu.Lock()
	w.cancel = cancel
	w.done = make(chan struct{})
	done := w.done
	w.mu.Unlock()

	go w.loop(ctx, done)
	slog.Debug("watcher: started", "path", w.path, "debounce", w.debounce)
	return nil
}

// Stop ends the watch loop and releases the fsnotify handle
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	w.fs.Close()
}

func (w *Watcher) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule()

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			slog.Warn("watcher: fsnotify error", "path", w.path, "error", err)
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.fire)
}

func (w *Watcher) fire() {
	select {
	case w.changed <- struct{}{}:
	default:
	}
}
