// Package watch turns filesystem activity in an inbox directory into save
// events.
//
// Image writers rarely produce a file in one atomic step, so every event
// arms (or re-arms) a per-file debounce timer; a file is handed to the
// handler only after it has stopped changing.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/raphi011/pix/internal/log"
)

// defaultSettle is how long a file must stay quiet before it is handled.
const defaultSettle = 500 * time.Millisecond

// Handler receives the path of a settled file.
type Handler func(ctx context.Context, path string)

// Watcher monitors one directory for finished image files.
type Watcher struct {
	dir     string
	exts    map[string]bool
	settle  time.Duration
	handler Handler

	mu     sync.Mutex
	timers map[string]*time.Timer
	ready  chan string
}

// New builds a watcher for dir. exts filters by extension
// (case-insensitive, with or without the leading dot); empty means every
// file. A zero settle uses the default.
func New(dir string, exts []string, settle time.Duration, handler Handler) (*Watcher, error) {
	if handler == nil {
		return nil, errors.New("watch: nil handler")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve watch directory: %w", err)
	}
	if settle <= 0 {
		settle = defaultSettle
	}

	extSet := make(map[string]bool)
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		extSet[e] = true
	}

	return &Watcher{
		dir:     abs,
		exts:    extSet,
		settle:  settle,
		handler: handler,
		timers:  make(map[string]*time.Timer),
		ready:   make(chan string, 16),
	}, nil
}

// Dir returns the absolute watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Run watches until ctx is canceled. The handler is called from this
// goroutine, one settled file at a time.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	logger := log.FromContext(ctx)
	logger.Info().Str("dir", w.dir).Msg("watching for new images")

	for {
		select {
		case <-ctx.Done():
			w.stopTimers()
			return nil

		case path := <-w.ready:
			// Still growing or already gone: any further write re-arms
			// the debounce through its own event, so dropping is safe.
			if !settled(path) {
				continue
			}
			w.handler(ctx, path)

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !w.wants(event.Name) {
				continue
			}
			w.bump(ctx, event.Name)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("watch error")
		}
	}
}

// wants filters out hidden files, temp files and unwanted extensions.
func (w *Watcher) wants(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	if strings.HasSuffix(base, ".tmp") || strings.Contains(base, ".tmp-") {
		return false
	}
	if len(w.exts) == 0 {
		return true
	}
	return w.exts[strings.ToLower(filepath.Ext(base))]
}

// bump arms or re-arms the debounce timer for path.
func (w *Watcher) bump(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[path]; ok {
		t.Reset(w.settle)
		return
	}
	w.timers[path] = time.AfterFunc(w.settle, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()

		select {
		case w.ready <- path:
		case <-ctx.Done():
		}
	})
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for path, t := range w.timers {
		t.Stop()
		delete(w.timers, path)
	}
}

// settled reports whether path exists with a stable, non-empty size.
func settled(path string) bool {
	a, err := os.Stat(path)
	if err != nil || a.Size() == 0 {
		return false
	}

	time.Sleep(50 * time.Millisecond)

	b, err := os.Stat(path)
	return err == nil && a.Size() == b.Size()
}
