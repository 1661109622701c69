package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Syncer copies manifest entries from ProjectRoot into a destination
// directory and applies their transform chains.
type Syncer struct {
	ProjectRoot string
	Logger      *zap.Logger
}

// NewSyncer returns a Syncer rooted at projectRoot. A nil logger is replaced
// with a no-op logger.
func NewSyncer(projectRoot string, logger *zap.Logger) *Syncer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Syncer{ProjectRoot: projectRoot, Logger: logger}
}

// MissingSource records an entry whose source did not exist.
type MissingSource struct {
	Src  string
	Path string
}

// Result summarizes a sync run.
type Result struct {
	// Synced lists the destination paths written, in manifest order.
	Synced []string
	// Transformed counts entries whose chain was applied.
	Transformed int
	Missing     []MissingSource
}

// Err returns a *SyncError when any source was missing, nil otherwise.
func (r *Result) Err() error {
	if len(r.Missing) == 0 {
		return nil
	}
	return &SyncError{Missing: r.Missing}
}

// SyncError is the aggregate failure reported after all entries ran.
type SyncError struct {
	Missing []MissingSource
}

func (e *SyncError) Error() string {
	srcs := make([]string, len(e.Missing))
	for i, m := range e.Missing {
		srcs[i] = m.Src
	}
	return fmt.Sprintf("%d source(s) missing: %s", len(e.Missing), strings.Join(srcs, ", "))
}

// IsSyncError returns true if the error is a SyncError.
func IsSyncError(err error) bool {
	var se *SyncError
	return errors.As(err, &se)
}

// OverlapError is returned when an entry's destination is its own source,
// or either path contains the other. Nothing is copied when it is returned.
type OverlapError struct {
	Src  string
	Dest string
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("destination %s overlaps source %s", e.Dest, e.Src)
}

// Sync processes entries in declaration order. Missing sources are recorded
// in the result and do not stop the run; the returned error is non-nil only
// for overlap, copy or transform failures. Call Result.Err for the aggregate
// status.
func (s *Syncer) Sync(entries []Entry, destDir string) (*Result, error) {
	logger := s.logger()
	result := &Result{}

	if err := s.checkOverlap(entries, destDir); err != nil {
		return result, err
	}

	for _, entry := range entries {
		src := filepath.Join(s.ProjectRoot, entry.Src)
		dest := filepath.Join(destDir, entry.Destination())

		info, err := os.Stat(src)
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("source missing", zap.String("src", entry.Src), zap.String("path", src))
			result.Missing = append(result.Missing, MissingSource{Src: entry.Src, Path: src})
			continue
		}
		if err != nil {
			return result, fmt.Errorf("stat %s: %w", src, err)
		}

		if err := copyEntry(src, dest, info); err != nil {
			return result, fmt.Errorf("syncing %s: %w", entry.Src, err)
		}

		for i, spec := range entry.Transforms {
			if err := spec.Transform.Apply(dest); err != nil {
				return result, fmt.Errorf("applying transform %d (%s) to %s: %w", i, spec.Transform.Kind(), entry.Destination(), err)
			}
		}
		if entry.IsTransformed() {
			result.Transformed++
		}

		logger.Debug("synced entry",
			zap.String("src", entry.Src),
			zap.String("dest", dest),
			zap.Bool("directory", info.IsDir()),
			zap.Strings("transforms", entry.TransformKinds()))
		result.Synced = append(result.Synced, dest)
	}

	return result, nil
}

// checkOverlap rejects any entry whose source and destination resolve to
// the same file, or where one lies inside the other. copyEntry truncates
// files and removes directories, so overlapping paths would destroy the
// source.
func (s *Syncer) checkOverlap(entries []Entry, destDir string) error {
	for _, entry := range entries {
		src := filepath.Join(s.ProjectRoot, entry.Src)
		dest := filepath.Join(destDir, entry.Destination())

		srcInfo, err := os.Stat(src)
		if err != nil {
			// Missing sources are reported by Sync; other stat errors too.
			continue
		}
		if destInfo, err := os.Stat(dest); err == nil && os.SameFile(srcInfo, destInfo) {
			return &OverlapError{Src: src, Dest: dest}
		}

		realSrc, err := resolvePath(src)
		if err != nil {
			return err
		}
		realDest, err := resolvePath(dest)
		if err != nil {
			return err
		}
		if within(realDest, realSrc) || within(realSrc, realDest) {
			return &OverlapError{Src: src, Dest: dest}
		}
	}
	return nil
}

// resolvePath returns path made absolute with symlinks resolved in its
// longest existing prefix. The missing remainder is appended unchanged.
func resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	var rest []string
	for dir := abs; ; dir = filepath.Dir(dir) {
		if resolved, err := filepath.EvalSymlinks(dir); err == nil {
			return filepath.Join(append([]string{resolved}, rest...)...), nil
		}
		if parent := filepath.Dir(dir); parent == dir {
			return abs, nil
		}
		rest = append([]string{filepath.Base(dir)}, rest...)
	}
}

// within reports whether path is root or lies beneath it.
func within(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func (s *Syncer) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// copyEntry replaces dest with a copy of src. Directories are removed and
// copied fresh rather than merged.
func copyEntry(src, dest string, info fs.FileInfo) error {
	if info.IsDir() {
		if err := os.RemoveAll(dest); err != nil {
			return fmt.Errorf("removing %s: %w", dest, err)
		}
		return copyDir(src, dest)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating parent of %s: %w", dest, err)
	}
	return copyFile(src, dest, info)
}
