package transform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Transform kinds as written in the manifest "type" field.
const (
	KindSed                     = "sed"
	KindRemoveLines             = "remove_lines"
	KindStripTrailingBlankLines = "strip_trailing_blank_lines"
	KindRemoveBlock             = "remove_block"
	KindReplaceBlock            = "replace_block"
	KindRemovePrecommitHooks    = "remove_precommit_hooks"
)

// Kinds returns every registered transform kind.
func Kinds() []string {
	return []string{
		KindSed,
		KindRemoveLines,
		KindStripTrailingBlankLines,
		KindRemoveBlock,
		KindReplaceBlock,
		KindRemovePrecommitHooks,
	}
}

// Transform rewrites a synced file in place.
type Transform interface {
	// Kind returns the manifest type name of the transform.
	Kind() string
	// Apply rewrites the file resolved from path. A missing file is a no-op.
	Apply(path string) error
}

// Resolve returns base joined with target, or base when target is empty.
func Resolve(base, target string) string {
	if target == "" {
		return base
	}
	return filepath.Join(base, target)
}

// rewriteFile applies fn to the content of the resolved file and writes the
// result back when it differs. Missing files are skipped.
func rewriteFile(base, target string, fn func(string) string) error {
	path := Resolve(base, target)

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("transform target %s is a directory (set 'target' to a file inside it)", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	updated := fn(string(data))
	if updated == string(data) {
		return nil
	}

	if err := os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// splitLines splits content into lines that keep their terminators.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// chomp removes the trailing line terminator.
func chomp(line string) string {
	return strings.TrimRight(line, "\r\n")
}
