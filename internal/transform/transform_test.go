package transform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile creates name under dir with content and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func mustSed(t *testing.T, pattern, replace, target string) Transform {
	t.Helper()
	s, err := NewSed(pattern, replace, target)
	require.NoError(t, err)
	return s
}

func TestResolve(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/ws/.devcontainer", Resolve("/ws/.devcontainer", ""))
	assert.Equal(t, filepath.Join("/ws/.devcontainer", "devcontainer.json"), Resolve("/ws/.devcontainer", "devcontainer.json"))
}

func TestSed(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		pattern  string
		replace  string
		input    string
		expected string
	}{
		"all matches replaced": {
			pattern:  `template-repo`,
			replace:  "my-project",
			input:    "name: template-repo\nimage: ghcr.io/org/template-repo:latest\n",
			expected: "name: my-project\nimage: ghcr.io/org/my-project:latest\n",
		},
		"capture groups": {
			pattern:  `version: "(\d+)\.(\d+)"`,
			replace:  `version: "${1}.x"`,
			input:    "version: \"3.12\"\n",
			expected: "version: \"3.x\"\n",
		},
		"spans lines": {
			pattern:  `(?s)BEGIN.*END\n`,
			replace:  "",
			input:    "keep\nBEGIN\ndrop\nEND\ntail\n",
			expected: "keep\ntail\n",
		},
		"no match leaves file": {
			pattern:  `absent`,
			replace:  "x",
			input:    "unchanged\n",
			expected: "unchanged\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := writeFile(t, t.TempDir(), "file.txt", tt.input)
			require.NoError(t, mustSed(t, tt.pattern, tt.replace, "").Apply(path))
			assert.Equal(t, tt.expected, readFile(t, path))
		})
	}
}

func TestSed_TargetInsideDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "devcontainer.json", `{"name": "template"}`)

	require.NoError(t, mustSed(t, "template", "project", "devcontainer.json").Apply(dir))
	assert.Equal(t, `{"name": "project"}`, readFile(t, path))
}

func TestSed_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := NewSed("([", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sed")
	assert.Contains(t, err.Error(), "pattern")
}

func TestRemoveLines(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		pattern  string
		input    string
		expected string
	}{
		"matching lines dropped": {
			pattern:  `agent-blocklist`,
			input:    "a\n# agent-blocklist check\nb\nrun agent-blocklist\nc\n",
			expected: "a\nb\nc\n",
		},
		"crlf endings preserved": {
			pattern:  `^drop$`,
			input:    "keep\r\ndrop\r\nkeep too\r\n",
			expected: "keep\r\nkeep too\r\n",
		},
		"anchored end matches last line without newline": {
			pattern:  `^last$`,
			input:    "first\nlast",
			expected: "first\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			r, err := NewRemoveLines(tt.pattern, "")
			require.NoError(t, err)

			path := writeFile(t, t.TempDir(), "file.txt", tt.input)
			require.NoError(t, r.Apply(path))
			assert.Equal(t, tt.expected, readFile(t, path))
		})
	}
}

func TestStripTrailingBlankLines(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input    string
		expected string
	}{
		"many blank lines":    {input: "a\nb\n\n\n  \n", expected: "a\nb\n"},
		"no trailing newline": {input: "a", expected: "a\n"},
		"trailing spaces":     {input: "a   \t", expected: "a\n"},
		"already clean":       {input: "a\n", expected: "a\n"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := writeFile(t, t.TempDir(), "file.txt", tt.input)
			require.NoError(t, (&StripTrailingBlankLines{}).Apply(path))
			assert.Equal(t, tt.expected, readFile(t, path))
		})
	}
}

func TestRemoveBlock(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input    string
		expected string
	}{
		"single span": {
			input:    "a\n# BEGIN dev\nx\ny\n# END dev\nb\n",
			expected: "a\nb\n",
		},
		"every span removed": {
			input:    "a\n# BEGIN dev\nx\n# END dev\nb\n# BEGIN dev\ny\n# END dev\nc\n",
			expected: "a\nb\nc\n",
		},
		"start inside span ignored": {
			input:    "a\n# BEGIN dev\n# BEGIN dev\nx\n# END dev\nb\n# END dev\nc\n",
			expected: "a\nb\n# END dev\nc\n",
		},
		"unterminated span runs to end": {
			input:    "a\n# BEGIN dev\nx\n",
			expected: "a\n",
		},
		"end before start passes through": {
			input:    "# END dev\na\n",
			expected: "# END dev\na\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			r, err := NewRemoveBlock(`^# BEGIN dev`, `^# END dev`, "")
			require.NoError(t, err)

			path := writeFile(t, t.TempDir(), "file.txt", tt.input)
			require.NoError(t, r.Apply(path))
			assert.Equal(t, tt.expected, readFile(t, path))
		})
	}
}

func TestReplaceBlock(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		replacement string
		keepStart   bool
		input       string
		expected    string
	}{
		"replace span": {
			replacement: "features: {}\n",
			input:       "a\n# BEGIN\nx\n# END\nb\n",
			expected:    "a\nfeatures: {}\nb\n",
		},
		"keep start line": {
			replacement: "  replaced",
			keepStart:   true,
			input:       "a\n# BEGIN\nx\n# END\nb\n",
			expected:    "a\n# BEGIN\n  replaced\nb\n",
		},
		"only first span replaced": {
			replacement: "R\n",
			input:       "# BEGIN\nx\n# END\nmid\n# BEGIN\ny\n# END\n",
			expected:    "R\nmid\n# BEGIN\ny\n# END\n",
		},
		"empty replacement removes span": {
			replacement: "",
			input:       "a\n# BEGIN\nx\n# END\nb\n",
			expected:    "a\nb\n",
		},
		"no span": {
			replacement: "R\n",
			input:       "a\nb\n",
			expected:    "a\nb\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			r, err := NewReplaceBlock(`^# BEGIN`, `^# END`, tt.replacement, tt.keepStart, "")
			require.NoError(t, err)

			path := writeFile(t, t.TempDir(), "file.txt", tt.input)
			require.NoError(t, r.Apply(path))
			assert.Equal(t, tt.expected, readFile(t, path))
		})
	}
}

func TestApply_MissingTargetIsNoop(t *testing.T) {
	t.Parallel()

	removeLines, err := NewRemoveLines("x", "missing.txt")
	require.NoError(t, err)
	removeBlock, err := NewRemoveBlock("a", "b", "missing.txt")
	require.NoError(t, err)
	replaceBlock, err := NewReplaceBlock("a", "b", "c", false, "missing.txt")
	require.NoError(t, err)

	transforms := map[string]Transform{
		KindSed:                     mustSed(t, "x", "y", "missing.txt"),
		KindRemoveLines:             removeLines,
		KindStripTrailingBlankLines: &StripTrailingBlankLines{Target: "missing.txt"},
		KindRemoveBlock:             removeBlock,
		KindReplaceBlock:            replaceBlock,
		KindRemovePrecommitHooks:    &RemovePrecommitHooks{HookIDs: []string{"x"}, Target: "missing.txt"},
	}

	for kind, tr := range transforms {
		t.Run(kind, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			other := writeFile(t, dir, "present.txt", "x\n\n\n")

			require.NoError(t, tr.Apply(dir))
			require.NoError(t, tr.Apply(filepath.Join(dir, "absent-dir")))

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Len(t, entries, 1)
			assert.Equal(t, "x\n\n\n", readFile(t, other))
			assert.Equal(t, kind, tr.Kind())
		})
	}
}

func TestApply_DirectoryWithoutTarget(t *testing.T) {
	t.Parallel()

	err := mustSed(t, "x", "y", "").Apply(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestApply_PreservesMode(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "run.sh", "#!/bin/sh\necho template\n")
	require.NoError(t, os.Chmod(path, 0o755))

	require.NoError(t, mustSed(t, "template", "project", "").Apply(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestKinds(t *testing.T) {
	t.Parallel()

	kinds := Kinds()
	assert.Len(t, kinds, 6)
	for _, kind := range kinds {
		tr, err := newOfKind(kind)
		require.NoError(t, err)
		assert.Equal(t, kind, tr.Kind())
	}
}
