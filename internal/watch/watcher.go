// SPDX-License-Identifier: MPL-2.0

// Package watch re-runs a callback when PureScript sources change.
//
// A Watcher registers every non-ignored directory below its root with
// fsnotify, filters events through the source globs and coalesces bursts of
// events into one callback after a quiet period.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when Options.Debounce is unset.
const DefaultDebounce = 300 * time.Millisecond

var (
	// ErrInvalidPattern is the sentinel error wrapped by PatternError.
	ErrInvalidPattern = errors.New("invalid watch pattern")
	// ErrAlreadyRunning is returned by a second call to Run.
	ErrAlreadyRunning = errors.New("watcher is already running")

	// defaultIgnores never trigger a rebuild. output/ is where purs writes
	// its artifacts, so watching it would rebuild forever.
	defaultIgnores = []string{
		"output/**",
		"**/.git/**",
		"**/node_modules/**",
		"**/*.swp",
		"**/*~",
		"**/.#*",
		"**/.DS_Store",
	}
)

type (
	// Options configures a Watcher.
	Options struct {
		// Patterns select the files that trigger the callback, as doublestar
		// globs relative to Dir. Empty means every non-ignored file.
		Patterns []string
		// Ignore adds patterns to the built-in ignore list.
		Ignore []string
		// Debounce is the quiet period before the callback fires.
		Debounce time.Duration
		// Dir is the project root. Empty means the working directory.
		Dir string
		// Logger receives watcher diagnostics; nil means slog.Default().
		Logger *slog.Logger
	}

	// ChangeFunc receives the sorted paths, relative to the project root,
	// that changed since the previous call.
	ChangeFunc func(ctx context.Context, changed []string) error

	// Watcher watches a project tree. Run may be called once.
	Watcher struct {
		fsw      *fsnotify.Watcher
		patterns []string
		ignores  []string
		debounce time.Duration
		dir      string
		logger   *slog.Logger
		started  atomic.Bool
	}

	// PatternError reports a glob that doublestar cannot parse.
	PatternError struct {
		// Kind is "source" or "ignore".
		Kind    string
		Pattern string
	}
)

// Error implements the error interface.
func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid %s pattern %q", e.Kind, e.Pattern)
}

// Unwrap returns ErrInvalidPattern.
func (e *PatternError) Unwrap() error { return ErrInvalidPattern }

// SourcePatterns expands compiler source globs into watch patterns. Every
// glob ending in ".purs" also watches the matching ".js" foreign modules.
// The result is sorted and free of duplicates.
func SourcePatterns(globs []string) []string {
	patterns := make([]string, 0, 2*len(globs))
	for _, glob := range globs {
		patterns = append(patterns, glob)
		if base, ok := strings.CutSuffix(glob, ".purs"); ok {
			patterns = append(patterns, base+".js")
		}
	}
	slices.Sort(patterns)
	return slices.Compact(patterns)
}

// New creates a Watcher and registers the project tree with fsnotify.
func New(opts Options) (*Watcher, error) {
	dir := opts.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine working directory: %w", err)
		}
		dir = wd
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve watch directory: %w", err)
	}

	patterns, err := normalizePatterns(absDir, opts.Patterns, "source")
	if err != nil {
		return nil, err
	}
	ignores, err := normalizePatterns(absDir, opts.Ignore, "ignore")
	if err != nil {
		return nil, err
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		fsw:      fsw,
		patterns: patterns,
		ignores:  append(slices.Clone(defaultIgnores), ignores...),
		debounce: debounce,
		dir:      absDir,
		logger:   logger,
	}

	if err := w.addTree(absDir); err != nil {
		if closeErr := fsw.Close(); closeErr != nil {
			logger.Debug("failed to close file watcher", "error", closeErr)
		}
		return nil, err
	}

	return w, nil
}

// Dir returns the absolute project root.
func (w *Watcher) Dir() string { return w.dir }

// Run dispatches debounced change notifications to onChange until ctx is
// canceled. It returns nil on cancellation and an error when the watcher
// breaks. A callback that is still running when the next batch is due
// delays that batch instead of running concurrently. Callback errors are
// logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context, onChange ChangeFunc) error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		busy    atomic.Bool
	)

	fire := func() {
		if ctx.Err() != nil {
			return
		}
		if !busy.CompareAndSwap(false, true) {
			w.logger.Debug("rebuild still running, delaying next batch")
			mu.Lock()
			timer.Reset(w.debounce)
			mu.Unlock()
			return
		}
		defer busy.Store(false)

		mu.Lock()
		changed := slices.Sorted(maps.Keys(pending))
		clear(pending)
		mu.Unlock()
		if len(changed) == 0 {
			return
		}

		if err := onChange(ctx, changed); err != nil {
			w.logger.Warn("rebuild failed", "error", err)
		}
	}

	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		if err := w.fsw.Close(); err != nil {
			w.logger.Debug("failed to close file watcher", "error", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("file watcher event stream closed")
			}

			if evt.Has(fsnotify.Create) {
				w.addNewDir(evt.Name)
			}

			rel, ok := w.relevant(evt.Name)
			if !ok {
				continue
			}
			w.logger.Debug("source changed", "path", rel, "op", evt.Op.String())

			mu.Lock()
			pending[rel] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("file watcher error stream closed")
			}
			if isFatalFsnotifyError(err) {
				return fmt.Errorf("file watcher failed: %w", err)
			}
			w.logger.Warn("file watcher error", "error", err)
		}
	}
}

// relevant maps an event path to its slash-separated form relative to the
// project root and reports whether it should trigger a rebuild.
func (w *Watcher) relevant(path string) (string, bool) {
	rel, err := filepath.Rel(w.dir, path)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if matchAny(w.ignores, rel) {
		return "", false
	}
	if len(w.patterns) > 0 && !matchAny(w.patterns, rel) {
		return "", false
	}
	return rel, true
}

// addTree registers root and every non-ignored directory below it.
// Unreadable directories are skipped with a log entry.
func (w *Watcher) addTree(root string) error {
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			w.logger.Debug("skipping unreadable path", "path", path, "error", walkErr)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if w.ignoredDir(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to register watch directories: %w", err)
	}
	return nil
}

// addNewDir extends the watch to a directory created after startup.
func (w *Watcher) addNewDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if err := w.addTree(path); err != nil {
		w.logger.Warn("failed to watch new directory", "path", path, "error", err)
	}
}

// ignoredDir reports whether a directory is excluded. A directory is tested
// both bare and with a trailing element so "output/**" excludes output/.
func (w *Watcher) ignoredDir(path string) bool {
	rel, err := filepath.Rel(w.dir, path)
	if err != nil || rel == "." {
		return false
	}
	rel = filepath.ToSlash(rel)
	return matchAny(w.ignores, rel) || matchAny(w.ignores, rel+"/x")
}

func matchAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
			return true
		}
	}
	return false
}

// normalizePatterns validates patterns and rewrites absolute ones below dir
// as relative patterns. "./" prefixes are dropped.
func normalizePatterns(dir string, patterns []string, kind string) ([]string, error) {
	out := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, &PatternError{Kind: kind, Pattern: pattern}
		}
		p := filepath.ToSlash(pattern)
		if filepath.IsAbs(pattern) {
			if rel, err := filepath.Rel(dir, pattern); err == nil && !strings.HasPrefix(rel, "..") {
				p = filepath.ToSlash(rel)
			}
		}
		out = append(out, strings.TrimPrefix(p, "./"))
	}
	return out, nil
}
