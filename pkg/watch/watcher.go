// Package watch re-runs the converter on .js and .jsx files as they change.
package watch

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gnana997/react2ts/pkg/converter"
	"github.com/gnana997/react2ts/pkg/parser"
	"github.com/gnana997/react2ts/pkg/util"
)

// FileConverter converts one file. *converter.Converter implements it.
type FileConverter interface {
	ConvertFile(ctx context.Context, path string) *converter.FileResult
}

// Options configures a Watcher.
type Options struct {
	DebounceMs int
	// Exclude globs are matched against paths relative to the watched root.
	Exclude []string
	// CacheSize bounds the number of remembered content hashes.
	CacheSize int
	// OnResult, when set, receives every conversion result.
	OnResult func(*converter.FileResult)
}

// DefaultOptions returns the options used by the watch command.
func DefaultOptions() Options {
	return Options{
		DebounceMs: 200,
		Exclude:    converter.DefaultExclude,
		CacheSize:  1024,
	}
}

// Watcher converts files as they are created or written.
//
// Events for one path are debounced; only the last event in the window
// triggers a conversion. The hash of every attempted content is cached per
// path so a file whose conversion failed is not retried until it changes.
type Watcher struct {
	fsw     *fsnotify.Watcher
	conv    FileConverter
	options Options
	logger  *slog.Logger
	seen    *lru.Cache[string, [sha256.Size]byte]
	roots   []string

	// Debouncing
	timers  map[string]*time.Timer
	timerMu sync.Mutex

	// Lifecycle
	ctx      context.Context
	cancel   context.CancelFunc
	inflight sync.WaitGroup
	stopped  bool
	mu       sync.Mutex
}

// New creates a Watcher.
func New(conv FileConverter, options Options, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if options.DebounceMs <= 0 {
		options.DebounceMs = 200
	}
	if options.CacheSize <= 0 {
		options.CacheSize = 1024
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	seen, err := lru.New[string, [sha256.Size]byte](options.CacheSize)
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to create hash cache: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		fsw:     fsw,
		conv:    conv,
		options: options,
		logger:  logger,
		seen:    seen,
		timers:  make(map[string]*time.Timer),
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}

// Start watches root and every directory below it that is not excluded.
func (w *Watcher) Start(root string) error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return fmt.Errorf("watcher already stopped")
	}
	w.roots = append(w.roots, root)
	w.mu.Unlock()

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != root && w.shouldIgnore(root, path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to setup watches: %w", err)
	}

	w.logger.Info("File watcher started", "root", root)
	go w.eventLoop()
	return nil
}

// Run starts watching root and blocks until ctx is done.
func (w *Watcher) Run(ctx context.Context, root string) error {
	if err := w.Start(root); err != nil {
		return err
	}
	<-ctx.Done()
	return w.Stop()
}

// Stop stops the watcher and waits for running conversions.
//
// **Thread Safety:** Safe to call multiple times (idempotent).
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	w.mu.Unlock()

	w.timerMu.Lock()
	for path, timer := range w.timers {
		if timer.Stop() {
			w.inflight.Done()
		}
		delete(w.timers, path)
	}
	w.timerMu.Unlock()

	w.cancel()
	err := w.fsw.Close()
	w.inflight.Wait()
	w.logger.Info("File watcher stopped")
	return err
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("File watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name
	if w.ignored(path) {
		return
	}

	if event.Op.Has(fsnotify.Create) {
		if isDir(path) {
			if err := w.fsw.Add(path); err != nil {
				w.logger.Warn("Failed to watch directory", "path", path, "error", err)
			}
			return
		}
	}

	if !parser.IsConvertible(path) {
		return
	}

	w.logger.Debug("File event", "op", event.Op.String(), "file", path)

	switch {
	case event.Op.Has(fsnotify.Write), event.Op.Has(fsnotify.Create):
		w.schedule(path)
	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		w.seen.Remove(path)
	}
}

// schedule converts path after the debounce delay, replacing any pending
// conversion of the same path.
func (w *Watcher) schedule(path string) {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.ctx.Err() != nil {
		return
	}

	if timer, exists := w.timers[path]; exists {
		if timer.Stop() {
			w.inflight.Done()
		}
	}

	w.inflight.Add(1)
	w.timers[path] = time.AfterFunc(
		time.Duration(w.options.DebounceMs)*time.Millisecond,
		func() {
			defer w.inflight.Done()

			w.timerMu.Lock()
			delete(w.timers, path)
			w.timerMu.Unlock()

			w.convert(path)
		},
	)
}

// convert runs the converter unless the current content was already tried.
func (w *Watcher) convert(path string) {
	if w.ctx.Err() != nil {
		return
	}

	content, err := util.ReadSource(path, w.logger)
	if err != nil {
		// Renamed away by an earlier conversion, most likely.
		w.logger.Debug("Skipping unreadable file", "file", path, "error", err)
		return
	}
	sum := sha256.Sum256(content)
	if prev, ok := w.seen.Get(path); ok && prev == sum {
		w.logger.Debug("Skipping unchanged content", "file", path)
		return
	}
	w.seen.Add(path, sum)

	result := w.conv.ConvertFile(w.ctx, path)
	if result.Status == converter.StatusFailed {
		w.logger.Warn("Conversion failed", "file", path, "error", result.Error)
	} else {
		w.logger.Info("Converted file", "file", path, "output", result.Output, "status", result.Status)
	}
	if w.options.OnResult != nil {
		w.options.OnResult(result)
	}
}

func (w *Watcher) ignored(path string) bool {
	w.mu.Lock()
	roots := w.roots
	w.mu.Unlock()
	for _, root := range roots {
		if w.shouldIgnore(root, path) {
			return true
		}
	}
	return false
}

// shouldIgnore matches path, relative to root, against the exclude globs.
func (w *Watcher) shouldIgnore(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return false
	}
	return converter.Excluded(rel, w.options.Exclude)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// GetStats returns file watcher statistics.
func (w *Watcher) GetStats() Stats {
	w.timerMu.Lock()
	pending := len(w.timers)
	w.timerMu.Unlock()

	w.mu.Lock()
	running := !w.stopped
	w.mu.Unlock()

	return Stats{
		PendingConversions: pending,
		CachedHashes:       w.seen.Len(),
		IsRunning:          running,
	}
}

// Stats contains file watcher statistics.
type Stats struct {
	PendingConversions int
	CachedHashes       int
	IsRunning          bool
}
