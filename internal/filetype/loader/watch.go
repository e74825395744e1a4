package loader

import (
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/packsmith/internal/filetype"
)

// ErrWatcherClosed is returned when operating on a closed watcher.
var ErrWatcherClosed = errors.New("watcher is closed")

// DefaultDebounce is the delay used to coalesce rapid definition file
// changes into a single reload.
const DefaultDebounce = 200 * time.Millisecond

// ReloadHandler receives the freshly loaded definition sequence after
// a change, or the load error if reloading failed.
type ReloadHandler func(defs []filetype.Definition, err error)

// Watcher reloads definitions when their documents change on disk.
// It only works with loaders backed by the OS file system.
type Watcher struct {
	mu       sync.Mutex
	loader   *Loader
	watcher  *fsnotify.Watcher
	handler  ReloadHandler
	debounce time.Duration
	timer    *time.Timer
	closed   bool
	done     chan struct{}
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithDebounce sets the reload debounce interval.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// Watch starts watching the loader's directories. Every change to a
// .json document under them triggers a debounced reload; the handler
// receives the result. Directories that do not exist yet are skipped,
// matching Load's behavior.
func (l *Loader) Watch(handler ReloadHandler, opts ...WatchOption) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		loader:   l,
		watcher:  fsw,
		handler:  handler,
		debounce: DefaultDebounce,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	for _, dir := range l.dirs {
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, err
		}
	}

	go w.processLoop()
	return w, nil
}

// Close stops watching. Pending debounced reloads are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWatcherClosed
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	err := w.watcher.Close()
	w.mu.Unlock()

	<-w.done
	return err
}

// processLoop consumes fsnotify events until the watcher closes.
func (w *Watcher) processLoop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(event.Name, ".json") {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are transient; the next event still
			// triggers a reload.
		}
	}
}

// scheduleReload arms or re-arms the debounce timer.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		closed := w.closed
		w.mu.Unlock()
		if closed {
			return
		}
		w.handler(w.loader.Load())
	})
}
