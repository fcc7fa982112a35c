// Package watch decodes outline files as they appear or change in a
// directory.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ssargent/odsdb/pkg/codec"
	"github.com/ssargent/odsdb/pkg/logging"
)

// DefaultDebounce is how long a file must be quiet before it is decoded.
const DefaultDebounce = 250 * time.Millisecond

// Decoder turns a buffer into an outline.
type Decoder interface {
	Decode(buf []byte) (*codec.Outline, error)
}

// Event is the result of decoding one changed file.
type Event struct {
	Path    string
	Data    []byte
	Outline *codec.Outline
	Err     error
}

// Handler receives decode results. It is called from timer goroutines and
// must be safe for concurrent use.
type Handler func(Event)

// Options configures a Watcher.
type Options struct {
	// Extensions limits decoding to files with these suffixes. Empty
	// means every file.
	Extensions []string
	// Debounce defaults to DefaultDebounce.
	Debounce time.Duration
}

// Watcher watches a single directory.
type Watcher struct {
	dir     string
	opts    Options
	decoder Decoder
	handler Handler
	watcher *fsnotify.Watcher

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// New starts watching dir. Nothing is delivered until Run is called.
func New(dir string, decoder Decoder, handler Handler, opts Options) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create file watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch: watch %s: %w", dir, err)
	}

	return &Watcher{
		dir:     dir,
		opts:    opts,
		decoder: decoder,
		handler: handler,
		watcher: fw,
		timers:  make(map[string]*time.Timer),
	}, nil
}

// Matches reports whether path has one of the configured extensions.
func (w *Watcher) Matches(path string) bool {
	if len(w.opts.Extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range w.opts.Extensions {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}

// Run delivers events until ctx is done or the watcher fails, then closes
// the underlying file watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.stop()
	logging.Info("watch: watching %s for outline changes", w.dir)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !w.Matches(event.Name) {
				logging.Debug("watch: ignoring %s", event.Name)
				continue
			}
			w.schedule(event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logging.Error("watch: file watcher error: %v", err)

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(w.opts.Debounce, func() {
		w.mu.Lock()
		current := w.timers[path] == t
		if current {
			delete(w.timers, path)
		}
		w.mu.Unlock()

		// A replaced or cancelled timer may still fire; only the live one runs.
		if current {
			w.handler(w.decode(path))
		}
	})
	w.timers[path] = t
}

func (w *Watcher) decode(path string) Event {
	data, err := os.ReadFile(path)
	if err != nil {
		return Event{Path: path, Err: fmt.Errorf("watch: read %s: %w", path, err)}
	}
	outline, err := w.decoder.Decode(data)
	if err != nil {
		return Event{Path: path, Data: data, Err: err}
	}
	return Event{Path: path, Data: data, Outline: outline}
}

func (w *Watcher) stop() {
	w.mu.Lock()
	w.cancelTimers()
	w.mu.Unlock()

	if err := w.watcher.Close(); err != nil {
		logging.Warn("watch: close: %v", err)
	}
	logging.Info("watch: stopped watching %s", w.dir)
}

// cancelTimers drops every pending timer. w.mu must be held.
func (w *Watcher) cancelTimers() {
	for path, t := range w.timers {
		t.Stop()
		delete(w.timers, path)
	}
}
