package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func loadEntries(t *testing.T, doc string) []Entry {
	t.Helper()
	entries, err := LoadFromReader(strings.NewReader(doc))
	require.NoError(t, err)
	return entries
}

func TestSync_DirectoryReplacedNotMerged(t *testing.T) {
	t.Parallel()

	project, dest := t.TempDir(), t.TempDir()
	writeTree(t, project, map[string]string{
		".devcontainer/devcontainer.json": `{"name": "template-repo"}`,
		".devcontainer/Dockerfile":        "FROM debian\n",
	})
	writeTree(t, dest, map[string]string{
		".devcontainer/stale.txt": "old\n",
	})

	entries := loadEntries(t, "entries:\n  - src: .devcontainer\n")
	result, err := NewSyncer(project, nil).Sync(entries, dest)
	require.NoError(t, err)
	require.NoError(t, result.Err())

	assert.Equal(t, []string{filepath.Join(dest, ".devcontainer")}, result.Synced)
	assert.NoFileExists(t, filepath.Join(dest, ".devcontainer", "stale.txt"))
	assert.Equal(t, "FROM debian\n", readFile(t, filepath.Join(dest, ".devcontainer", "Dockerfile")))
}

func TestSync_FileKeepsModeAndTime(t *testing.T) {
	t.Parallel()

	project, dest := t.TempDir(), t.TempDir()
	writeTree(t, project, map[string]string{"scripts/setup.sh": "#!/bin/sh\n"})
	src := filepath.Join(project, "scripts", "setup.sh")
	require.NoError(t, os.Chmod(src, 0o755))
	mtime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, mtime, mtime))

	entries := loadEntries(t, "entries:\n  - src: scripts/setup.sh\n    dest: bin/setup.sh\n")
	result, err := NewSyncer(project, nil).Sync(entries, dest)
	require.NoError(t, err)
	assert.Zero(t, result.Transformed)

	info, err := os.Stat(filepath.Join(dest, "bin", "setup.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
	assert.True(t, info.ModTime().Equal(mtime))
}

func TestSync_TransformsAppliedInOrder(t *testing.T) {
	t.Parallel()

	project, dest := t.TempDir(), t.TempDir()
	writeTree(t, project, map[string]string{
		".devcontainer/devcontainer.json": "{\"name\": \"template-repo\"}\n",
	})

	doc := `entries:
  - src: .devcontainer
    transforms:
      - type: sed
        pattern: template-repo
        replace: step-one
        target: devcontainer.json
      - type: sed
        pattern: step-one
        replace: step-two
        target: devcontainer.json
`
	result, err := NewSyncer(project, nil).Sync(loadEntries(t, doc), dest)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Transformed)

	assert.Equal(t, "{\"name\": \"step-two\"}\n", readFile(t, filepath.Join(dest, ".devcontainer", "devcontainer.json")))
	assert.Equal(t, "{\"name\": \"template-repo\"}\n", readFile(t, filepath.Join(project, ".devcontainer", "devcontainer.json")))
}

func TestSync_MissingSourcesAccumulate(t *testing.T) {
	t.Parallel()

	project, dest := t.TempDir(), t.TempDir()
	writeTree(t, project, map[string]string{"present.txt": "here\n"})

	doc := "entries:\n  - src: gone-one\n  - src: present.txt\n  - src: gone-two/file\n"
	result, err := NewSyncer(project, nil).Sync(loadEntries(t, doc), dest)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dest, "present.txt")}, result.Synced)
	require.Len(t, result.Missing, 2)
	assert.Equal(t, "gone-one", result.Missing[0].Src)
	assert.Equal(t, "gone-two/file", result.Missing[1].Src)

	syncErr := result.Err()
	require.Error(t, syncErr)
	assert.True(t, IsSyncError(syncErr))
	assert.Equal(t, "2 source(s) missing: gone-one, gone-two/file", syncErr.Error())
}

func TestSync_MissingSourceLoggedAtDebug(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	project, dest := t.TempDir(), t.TempDir()

	result, err := NewSyncer(project, zap.New(core)).Sync(loadEntries(t, "entries:\n  - src: gone\n"), dest)
	require.NoError(t, err)
	require.Len(t, result.Missing, 1)
	assert.Zero(t, logs.Len())
}

func TestSync_OverlappingDestinationRejected(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		dest func(project string) string
	}{
		"project root": {
			dest: func(project string) string { return project },
		},
		"inside source directory": {
			dest: func(project string) string { return filepath.Join(project, "dir", "out") },
		},
		"symlink to project root": {
			dest: func(project string) string {
				link := filepath.Join(filepath.Dir(project), filepath.Base(project)+"-link")
				require.NoError(t, os.Symlink(project, link))
				return link
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			project := filepath.Join(t.TempDir(), "project")
			writeTree(t, project, map[string]string{
				"a.txt":     "precious\n",
				"dir/b.txt": "keep\n",
			})

			doc := "entries:\n  - src: a.txt\n  - src: dir\n"
			result, err := NewSyncer(project, nil).Sync(loadEntries(t, doc), tt.dest(project))
			require.Error(t, err)

			var overlap *OverlapError
			require.ErrorAs(t, err, &overlap)
			assert.Empty(t, result.Synced)
			assert.Equal(t, "precious\n", readFile(t, filepath.Join(project, "a.txt")))
			assert.Equal(t, "keep\n", readFile(t, filepath.Join(project, "dir", "b.txt")))
		})
	}
}

func TestSync_DestinationInsideProjectAllowed(t *testing.T) {
	t.Parallel()

	project := t.TempDir()
	writeTree(t, project, map[string]string{"a.txt": "a\n"})
	dest := filepath.Join(project, "build")

	result, err := NewSyncer(project, nil).Sync(loadEntries(t, "entries:\n  - src: a.txt\n"), dest)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dest, "a.txt")}, result.Synced)
	assert.Equal(t, "a\n", readFile(t, filepath.Join(dest, "a.txt")))
}

func TestWithin(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		path string
		root string
		want bool
	}{
		"same path":      {path: "/p/dir", root: "/p/dir", want: true},
		"child":          {path: "/p/dir/out", root: "/p/dir", want: true},
		"sibling prefix": {path: "/p/dir2", root: "/p/dir", want: false},
		"parent":         {path: "/p", root: "/p/dir", want: false},
		"dotted name":    {path: "/p/dir/..x", root: "/p/dir", want: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, within(tt.path, tt.root))
		})
	}
}

func TestSync_TransformErrorStops(t *testing.T) {
	t.Parallel()

	project, dest := t.TempDir(), t.TempDir()
	writeTree(t, project, map[string]string{
		"dir/a.txt": "a\n",
		"later.txt": "b\n",
	})

	doc := `entries:
  - src: dir
    transforms:
      - type: sed
        pattern: a
        replace: b
  - src: later.txt
`
	result, err := NewSyncer(project, nil).Sync(loadEntries(t, doc), dest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "applying transform 0 (sed)")
	assert.Empty(t, result.Synced)
	assert.NoFileExists(t, filepath.Join(dest, "later.txt"))
}

func TestSync_Symlinks(t *testing.T) {
	t.Parallel()

	project, dest := t.TempDir(), t.TempDir()
	writeTree(t, project, map[string]string{"cfg/real.txt": "real\n"})
	require.NoError(t, os.Symlink("real.txt", filepath.Join(project, "cfg", "link.txt")))

	_, err := NewSyncer(project, nil).Sync(loadEntries(t, "entries:\n  - src: cfg\n"), dest)
	require.NoError(t, err)

	link, err := os.Readlink(filepath.Join(dest, "cfg", "link.txt"))
	require.NoError(t, err)
	assert.Equal(t, "real.txt", link)
}

func TestSync_EmptyManifest(t *testing.T) {
	t.Parallel()

	result, err := NewSyncer(t.TempDir(), nil).Sync(nil, t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, result.Synced)
	assert.NoError(t, result.Err())
}
