// Package watch reports settled changes to the image files of a folder.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher watches one folder and calls a handler once image changes settle.
type Watcher struct {
	watcher     *fsnotify.Watcher
	logger      *zap.Logger
	onChange    func(ctx context.Context, paths []string)
	pending     map[string]time.Time
	folder      string
	extensions  []string
	debounceDur time.Duration
	mu          sync.Mutex
}

// Options configures a Watcher.
type Options struct {
	Logger     *zap.Logger   // default no-op
	Extensions []string      // files of interest, with leading dot; empty means all
	Debounce   time.Duration // quiet period before onChange fires (default 500ms)
}

// New creates a watcher over folder. onChange receives the settled paths in
// lexical order.
func New(folder string, opt Options, onChange func(ctx context.Context, paths []string)) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(folder); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %q: %w", folder, err)
	}

	if opt.Logger == nil {
		opt.Logger = zap.NewNop()
	}
	if opt.Debounce <= 0 {
		opt.Debounce = 500 * time.Millisecond
	}

	return &Watcher{
		watcher:     w,
		logger:      opt.Logger,
		onChange:    onChange,
		pending:     make(map[string]time.Time),
		folder:      folder,
		extensions:  opt.Extensions,
		debounceDur: opt.Debounce,
	}, nil
}

// Run processes events until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.watcher.Close() }()

	tick := time.NewTicker(w.tickEvery())
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.String("folder", w.folder), zap.Error(err))

		case <-tick.C:
			if paths := w.settled(time.Now()); len(paths) > 0 {
				w.onChange(ctx, paths)
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !w.interesting(event.Name) {
		return
	}

	var kind string
	switch {
	case event.Op&fsnotify.Create != 0:
		kind = "create"
	case event.Op&fsnotify.Write != 0:
		kind = "modify"
	case event.Op&fsnotify.Remove != 0:
		kind = "delete"
	case event.Op&fsnotify.Rename != 0:
		kind = "rename"
	default:
		return
	}
	w.logger.Debug("folder event", zap.String("kind", kind), zap.String("file", event.Name))

	w.mu.Lock()
	w.pending[event.Name] = time.Now()
	w.mu.Unlock()
}

// settled removes and returns pending paths quiet for the debounce window.
// All pending paths settle together so one burst of copies fires once.
func (w *Watcher) settled(now time.Time) []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.pending) == 0 {
		return nil
	}
	for _, at := range w.pending {
		if now.Sub(at) < w.debounceDur {
			return nil
		}
	}

	out := make([]string, 0, len(w.pending))
	for p := range w.pending {
		out = append(out, p)
	}
	clear(w.pending)
	slices.Sort(out)

	return out
}

func (w *Watcher) interesting(name string) bool {
	if len(w.extensions) == 0 {
		return true
	}
	ext := filepath.Ext(name)
	for _, e := range w.extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}

	return false
}

func (w *Watcher) tickEvery() time.Duration {
	if d := w.debounceDur / 5; d > 10*time.Millisecond {
		return d
	}
	return 10 * time.Millisecond
}
