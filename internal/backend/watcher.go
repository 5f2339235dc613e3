package backend

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/atomicstack/focustree/internal/layout"
	"github.com/fsnotify/fsnotify"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindLayout Kind = iota
)

// Event conveys a freshly loaded layout or the error from loading it.
type Event struct {
	Kind Kind
	Path string
	Data interface{}
	Err  error
}

// Watcher reloads a layout file whenever it changes on disk and publishes
// events. The containing directory is watched so editors that replace the
// file by rename are picked up too.
type Watcher struct {
	path     string
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	fs     *fsnotify.Watcher
	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts watching path. Reloads are spaced at least interval
// apart. The first event carries the file's current contents.
func NewWatcher(path string, interval time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     abs,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		fs:       fsw,
		events:   make(chan Event, 16),
	}

	w.wg.Add(1)
	go w.watch()

	go func() {
		w.wg.Wait()
		fsw.Close()
		close(w.events)
	}()

	return w, nil
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher, including a reload waiting for its throttle slot.
// Use Wait if a clean drain is required.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the watch loop has exited. The events channel is closed
// shortly after.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) watch() {
	defer w.wg.Done()
	throttle := newThrottle(w.interval)

	emit := func() bool {
		if !throttle.wait(w.ctx) {
			return false
		}
		spec, err := layout.Load(w.path)
		evt := Event{Kind: KindLayout, Path: w.path, Data: spec, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() {
		return
	}

	for {
		select {
		case <-w.ctx.Done():
			return
		case fe, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(fe) {
				continue
			}
			if !emit() {
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case <-w.ctx.Done():
				return
			case w.events <- Event{Kind: KindLayout, Path: w.path, Err: err}:
			}
		}
	}
}

func (w *Watcher) relevant(fe fsnotify.Event) bool {
	if filepath.Clean(fe.Name) != w.path {
		return false
	}
	return fe.Has(fsnotify.Write) || fe.Has(fsnotify.Create) || fe.Has(fsnotify.Rename)
}
