// Package watch re-runs work when files change. Events are debounced so a
// burst of writes from an editor triggers a single callback.
package watch

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the default quiet period before a change fires.
const DefaultDebounce = 200 * time.Millisecond

var (
	// ErrNoFiles is returned by New when no file is given.
	ErrNoFiles = errors.New("watch: no files to watch")

	// ErrClosed is returned by Start after Close.
	ErrClosed = errors.New("watch: watcher closed")
)

// ChangeFunc receives the changed files, sorted, after the debounce period.
type ChangeFunc func(changed []string) error

// Watcher monitors a set of files for changes.
type Watcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]bool
	debounce time.Duration
	onChange ChangeFunc
	onError  func(error)

	mu      sync.Mutex
	running bool
	closed  bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates a Watcher for files. onError may be nil.
// A debounce of zero or less selects DefaultDebounce. The Watcher holds an
// fsnotify handle until Close, whether or not it was started.
func New(files []string, debounce time.Duration, onChange ChangeFunc, onError func(error)) (*Watcher, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	// Directories are watched rather than files so atomic renames by
	// editors keep being observed.
	w := &Watcher{
		watcher:  watcher,
		files:    make(map[string]bool, len(files)),
		debounce: debounce,
		onChange: onChange,
		onError:  onError,
	}
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			watcher.Close()
			return nil, err
		}
		w.files[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, err
		}
		dirs[dir] = true
	}
	return w, nil
}

// Start runs the watch loop in a goroutine until Stop or ctx ends.
// Starting a running Watcher does nothing; a closed one returns ErrClosed.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	if w.running {
		return nil
	}
	w.running = true

	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})
	go func() {
		defer close(w.done)
		w.loop(ctx)
	}()
	return nil
}

// Stop ends the watch loop and waits for it. A stopped Watcher may be
// started again.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	cancel, done := w.cancel, w.done
	w.mu.Unlock()

	cancel()
	<-done
}

// Close stops the Watcher and releases its fsnotify handle. Further calls
// do nothing.
func (w *Watcher) Close() error {
	w.Stop()

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	return w.watcher.Close()
}

// Run watches until ctx is done and then closes the Watcher. It returns
// ctx.Err(), or ErrClosed when the Watcher was already closed.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	if err := w.Close(); err != nil {
		return err
	}
	return ctx.Err()
}

func (w *Watcher) loop(ctx context.Context) {
	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	var timer *time.Timer
	var fire <-chan time.Time
	pending := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			name, ok := w.match(event)
			if !ok {
				continue
			}
			pending[name] = true

			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C

		case <-fire:
			w.fire(pending)
			pending = make(map[string]bool)
			timer = nil
			fire = nil

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.report(err)
		}
	}
}

// match reports whether event is a write, create or rename of a watched file.
func (w *Watcher) match(event fsnotify.Event) (string, bool) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return "", false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil || !w.files[abs] {
		return "", false
	}
	return abs, true
}

func (w *Watcher) fire(pending map[string]bool) {
	if w.onChange == nil || len(pending) == 0 {
		return
	}
	changed := make([]string, 0, len(pending))
	for name := range pending {
		changed = append(changed, name)
	}
	sort.Strings(changed)
	if err := w.onChange(changed); err != nil {
		w.report(err)
	}
}

func (w *Watcher) report(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}
