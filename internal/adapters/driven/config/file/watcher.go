package file

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/cortex-kb/cortex/internal/logger"
)

// reloadDelay coalesces the burst of filesystem events an editor or the
// desktop app emits for one logical save.
const reloadDelay = 200 * time.Millisecond

// Watcher reloads a ConfigStore when its file changes on disk, then
// notifies the subscriber. A reload that fails to parse keeps the
// previous settings.
type Watcher struct {
	store    *ConfigStore
	onReload func()
	fsw      *fsnotify.Watcher
}

// NewWatcher creates a watcher for the store's config file. onReload runs
// after every successful reload; it may be nil.
func NewWatcher(store *ConfigStore, onReload func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory, not the file: atomic saves replace the file
	// (write to temp, rename over), which invalidates a file watch.
	if err := fsw.Add(filepath.Dir(store.Path())); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	return &Watcher{
		store:    store,
		onReload: onReload,
		fsw:      fsw,
	}, nil
}

// Start runs the watch loop in a goroutine until ctx is cancelled or
// Close is called.
func (w *Watcher) Start(ctx context.Context) {
	go w.loop(ctx)
}

// Close stops the watch loop and releases the filesystem watch.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	timer := time.NewTimer(reloadDelay)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.isConfigEvent(event) {
				continue
			}
			timer.Reset(reloadDelay)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("config watch error: %v", err)
		case <-timer.C:
			w.reload()
		}
	}
}

// isConfigEvent reports whether the event concerns the config file itself.
// The directory watch also sees siblings like the database file.
func (w *Watcher) isConfigEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.store.Path() {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func (w *Watcher) reload() {
	if err := w.store.Load(); err != nil {
		logger.Warn("config reload failed, keeping previous settings: %v", err)
		return
	}
	logger.Info("config reloaded from %s", w.store.Path())
	if w.onReload != nil {
		w.onReload()
	}
}
