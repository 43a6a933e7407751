// Package reload re-reads recipe files when they change on disk.
package reload

import (
	"context"
	"fmt"
	"maps"
	"os"
	"time"

	"github.com/hammamikhairi/ottocraft/internal/domain"
	"github.com/hammamikhairi/ottocraft/internal/logger"
)

// Source is what the watcher observes and reloads, normally a
// *loader.Loader.
type Source interface {
	Files() ([]string, error)
	Reload() error
}

// Counter reports how many recipes are registered after a reload.
type Counter interface {
	Len() int
}

// WatcherOption configures the watcher.
type WatcherOption func(*Watcher)

// WithWatchInterval sets how often the watcher polls the files.
func WithWatchInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.interval = d
	}
}

// WithNotifier reports reloads and reload failures to n.
func WithNotifier(n domain.Notifier) WatcherOption {
	return func(w *Watcher) {
		w.notifier = n
	}
}

// WithCounter includes the registered recipe count in notifications.
func WithCounter(c Counter) WatcherOption {
	return func(w *Watcher) {
		w.counter = c
	}
}

type stamp struct {
	size    int64
	modTime int64
}

// Watcher polls the size and modification time of every recipe file and
// reloads the source when any file is added, removed or changed.
type Watcher struct {
	source   Source
	notifier domain.Notifier
	counter  Counter
	log      *logger.Logger
	interval time.Duration
	last     map[string]stamp
}

// NewWatcher creates a watcher for source.
func NewWatcher(source Source, log *logger.Logger, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		source:   source,
		log:      log,
		interval: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Prime records the current file state without reloading.
func (w *Watcher) Prime() {
	w.last = w.snapshot()
}

// Check compares the files with the last recorded state and reloads on
// any difference. It reports whether a reload ran. Without a prior Prime
// the first Check always reloads.
func (w *Watcher) Check(ctx context.Context) (bool, error) {
	snap := w.snapshot()
	if w.last != nil && maps.Equal(snap, w.last) {
		return false, nil
	}
	w.last = snap

	w.log.Info("recipe files changed, reloading")
	if err := w.source.Reload(); err != nil {
		w.log.Error("reload: %v", err)
		w.notify(ctx, true, fmt.Sprintf("Reload finished with errors: %v", err))
		return true, err
	}
	w.notify(ctx, false, w.summary())
	return true, nil
}

// Run polls until ctx is cancelled. The state at start is the baseline.
// Intended to be called as a goroutine.
func (w *Watcher) Run(ctx context.Context) {
	w.Prime()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("watcher started (interval=%s)", w.interval)

	for {
		select {
		case <-ctx.Done():
			w.log.Info("watcher stopped")
			return
		case <-ticker.C:
			if _, err := w.Check(ctx); err != nil {
				w.log.Debug("watcher: check: %v", err)
			}
		}
	}
}

func (w *Watcher) snapshot() map[string]stamp {
	files, err := w.source.Files()
	if err != nil {
		w.log.Warn("watcher: listing recipe files: %v", err)
	}
	snap := make(map[string]stamp, len(files))
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			// Removed between listing and stat; the next poll sees it gone.
			continue
		}
		snap[f] = stamp{size: info.Size(), modTime: info.ModTime().UnixNano()}
	}
	return snap
}

func (w *Watcher) summary() string {
	if w.counter == nil {
		return "Recipes reloaded."
	}
	return fmt.Sprintf("Recipes reloaded: %d registered.", w.counter.Len())
}

func (w *Watcher) notify(ctx context.Context, urgent bool, msg string) {
	if w.notifier == nil {
		return
	}
	var err error
	if urgent {
		err = w.notifier.NotifyUrgent(ctx, msg)
	} else {
		err = w.notifier.Notify(ctx, msg)
	}
	if err != nil {
		w.log.Error("watcher: notify: %v", err)
	}
}
