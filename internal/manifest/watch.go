package manifest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long Watch waits after the last change before
// re-syncing.
const DefaultDebounce = 250 * time.Millisecond

// WatchOptions configures Watch.
type WatchOptions struct {
	Debounce time.Duration
	// OnSync is called after every re-sync with its result.
	OnSync func(*Result, error)
}

// Watch re-runs Sync whenever a file under any entry source changes.
// Changes are debounced and re-syncs never overlap. Watch returns nil when
// ctx is cancelled.
func (s *Syncer) Watch(ctx context.Context, entries []Entry, destDir string, opts WatchOptions) error {
	logger := s.logger()
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	sources := s.sourcePaths(entries)
	for _, src := range sources {
		if err := addWatch(watcher, src); err != nil {
			return err
		}
	}

	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !underAny(event.Name, sources) {
				continue
			}
			logger.Debug("source changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addWatch(watcher, event.Name); err != nil {
						logger.Warn("watching new directory", zap.String("path", event.Name), zap.Error(err))
					}
				}
			}
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))

		case <-timer.C:
			result, err := s.Sync(entries, destDir)
			if opts.OnSync != nil {
				opts.OnSync(result, err)
			}
		}
	}
}

// sourcePaths returns the absolute source path of every entry.
func (s *Syncer) sourcePaths(entries []Entry) []string {
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		path := filepath.Join(s.ProjectRoot, e.Src)
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		paths = append(paths, path)
	}
	return paths
}

// addWatch watches a directory tree, or the parent directory of a file.
// A missing source is watched through its nearest existing parent alone,
// without descending into it, so it is picked up once created.
func addWatch(w *fsnotify.Watcher, path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		parent, err := existingParent(path)
		if err != nil {
			return err
		}
		if err := w.Add(parent); err != nil {
			return fmt.Errorf("watching %s: %w", parent, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if !info.IsDir() {
		return w.Add(filepath.Dir(path))
	}

	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := w.Add(p); err != nil {
				return fmt.Errorf("watching %s: %w", p, err)
			}
		}
		return nil
	})
}

// existingParent returns the closest ancestor of path that is a directory.
func existingParent(path string) (string, error) {
	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		info, err := os.Stat(dir)
		if err == nil && info.IsDir() {
			return dir, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", dir, err)
		}
		if filepath.Dir(dir) == dir {
			return "", fmt.Errorf("no existing parent for %s", path)
		}
	}
}

// underAny reports whether path equals or lies below one of roots.
func underAny(path string, roots []string) bool {
	for _, root := range roots {
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
