// Package watch provides directory monitoring for oscillography
// recordings. A Watcher observes a directory, waits for the files of a
// recording to settle, loads the recording, and hands it to a handler.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gridtrace/comtrade/pkg/comtrade"
	"github.com/gridtrace/comtrade/pkg/log"
)

// Handler receives every recording picked up by the watcher. A non-nil
// err reports a recording that changed on disk but could not be loaded.
type Handler func(path string, rec *comtrade.Record, err error)

// Config holds configuration options for the watcher.
type Config struct {
	// Debounce is the delay to wait after a file change before loading,
	// so a recording written as separate config and data files is
	// loaded once both are on disk.
	// Default: 500 milliseconds
	Debounce time.Duration

	// Logger receives watcher progress and errors.
	// Default: no logging
	Logger log.Logger

	// LoadOptions are applied to every load triggered by the watcher.
	LoadOptions []comtrade.Option
}

// Watcher monitors a directory for new or rewritten recordings.
type Watcher struct {
	mu sync.Mutex

	dir      string
	handler  Handler
	debounce time.Duration
	log      log.Logger
	loadOpts []comtrade.Option

	cancel  context.CancelFunc
	wg      sync.WaitGroup
	pending map[string]*time.Timer
}

// New creates a watcher for dir that hands loaded recordings to handler.
func New(dir string, handler Handler, cfg Config) *Watcher {
	if cfg.Debounce <= 0 {
		cfg.Debounce = 500 * time.Millisecond
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNoopLogger()
	}

	return &Watcher{
		dir:      dir,
		handler:  handler,
		debounce: cfg.Debounce,
		log:      logger,
		loadOpts: cfg.LoadOptions,
		pending:  make(map[string]*time.Timer),
	}
}

// Start begins watching the directory. It fails if the directory cannot
// be watched; afterwards the watcher runs until ctx is cancelled or
// Close is called.
func (w *Watcher) Start(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(w.dir); err != nil {
		fsw.Close()
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.log.Info("watching directory for recordings",
		log.String("dir", w.dir),
		log.Duration("debounce", w.debounce))

	w.wg.Add(1)
	go w.loop(watchCtx, fsw)

	return nil
}

// Close stops the watcher and cancels pending loads.
func (w *Watcher) Close() error {
	if w.cancel != nil {
		w.cancel()
	}

	w.mu.Lock()
	for _, t := range w.pending {
		t.Stop()
	}
	w.mu.Unlock()

	w.wg.Wait()
	return nil
}

// loop dispatches filesystem events until the context is cancelled.
func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher) {
	defer w.wg.Done()
	defer fsw.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			path, ok := recordingPath(event.Name)
			if !ok {
				continue
			}
			w.schedule(ctx, path)

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.log.Error("directory watcher error", log.Err(err))
		}
	}
}

// schedule arms the debounce timer for one recording, replacing any
// timer armed by an earlier event on the same recording.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[path]; ok {
		t.Stop()
	}

	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		if ctx.Err() != nil {
			return
		}

		w.log.Debug("loading recording", log.String("path", path))
		rec, err := comtrade.Load(path, w.loadOpts...)
		w.handler(path, rec, err)
	})
}

// recordingPath maps a changed file to the path to load. Data files map
// back to their configuration sibling so the pair is loaded as one
// recording; unrelated files are ignored.
func recordingPath(name string) (string, bool) {
	ext := filepath.Ext(name)
	switch {
	case strings.EqualFold(ext, ".cfg"), strings.EqualFold(ext, ".cff"):
		return name, true
	case strings.EqualFold(ext, ".dat"):
		cfgExt := ".cfg"
		if ext == strings.ToUpper(ext) && ext != strings.ToLower(ext) {
			cfgExt = ".CFG"
		}
		return strings.TrimSuffix(name, ext) + cfgExt, true
	}
	return "", false
}
