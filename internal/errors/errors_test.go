package errors

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSentinel = errors.New("sentinel")

func TestErrorCategory_String(t *testing.T) {
	t.Parallel()

	tests := map[ErrorCategory]string{
		Argument:          "argument",
		Configuration:     "config",
		Prerequisite:      "prerequisite",
		Runtime:           "runtime",
		ErrorCategory(99): "error",
	}
	for category, want := range tests {
		assert.Equal(t, want, category.String())
	}
}

func TestWrap(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Wrap(nil, Runtime, "ignored"))

	wrapped := Wrap(errSentinel, Runtime, "copying", "retry")
	assert.Equal(t, "copying: sentinel", wrapped.Error())
	assert.ErrorIs(t, wrapped, errSentinel)
	assert.Equal(t, []string{"retry"}, wrapped.Remediation)

	bare := Wrap(errSentinel, Configuration, "")
	assert.Equal(t, "sentinel", bare.Error())
	assert.ErrorIs(t, bare, errSentinel)
}

func TestUsage(t *testing.T) {
	t.Parallel()

	err := Usage("accepts 1 arg(s)", "devkit manifest sync <dest_dir>", "Pass a destination")
	assert.Equal(t, Argument, err.Category)
	assert.Equal(t, "devkit manifest sync <dest_dir>", err.Usage)
	assert.Equal(t, []string{"Pass a destination"}, err.Remediation)
	assert.NoError(t, err.Unwrap())
}

func TestAsCLIError(t *testing.T) {
	t.Parallel()

	cliErr := New(Argument, "bad input")
	outer := fmt.Errorf("running command: %w", cliErr)

	assert.True(t, IsCLIError(outer))
	assert.Same(t, cliErr, AsCLIError(outer))
	assert.False(t, IsCLIError(errSentinel))
	assert.Nil(t, AsCLIError(errSentinel))
}

func TestFormat(t *testing.T) {
	t.Parallel()

	err := Usage("version is required", "devkit changelog prepare <X.Y.Z>", "Pass a version", "Or read --help")

	tests := map[string]struct {
		err   *CLIError
		plain bool
		want  string
	}{
		"plain with usage and hints": {
			err:   err,
			plain: true,
			want: "FAIL version is required (argument)\n" +
				"  usage: devkit changelog prepare <X.Y.Z>\n" +
				"  - Pass a version\n" +
				"  - Or read --help\n",
		},
		"plain message only": {
			err:   New(Runtime, "sync failed"),
			plain: true,
			want:  "FAIL sync failed (runtime)\n",
		},
		"nil": {
			err:   nil,
			plain: true,
			want:  "",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Format(tt.err, tt.plain))
		})
	}
}

func TestFormat_Fancy(t *testing.T) {
	t.Parallel()

	got := Format(Usage("version is required", "devkit changelog prepare <X.Y.Z>", "Pass a version"), false)
	assert.Contains(t, got, "✗")
	assert.Contains(t, got, "→")
	assert.Contains(t, got, "version is required")
	assert.NotContains(t, got, "FAIL")
}

func TestFprintError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	FprintError(&buf, New(Runtime, "sync failed"), true)
	assert.Equal(t, "FAIL sync failed (runtime)\n", buf.String())

	buf.Reset()
	FprintError(&buf, nil, true)
	assert.Empty(t, buf.String())
}

func TestMessages(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err      *CLIError
		category ErrorCategory
		contains string
	}{
		"invalid version": {
			err:      InvalidVersion("v1.2", errSentinel),
			category: Argument,
			contains: `invalid semantic version "v1.2"`,
		},
		"invalid date": {
			err:      InvalidDate("06/01/2024", errSentinel),
			category: Argument,
			contains: `invalid release date "06/01/2024"`,
		},
		"changelog not found": {
			err:      ChangelogNotFound("CHANGELOG.md", errSentinel),
			category: Prerequisite,
			contains: "changelog not found: CHANGELOG.md",
		},
		"missing unreleased": {
			err:      MissingUnreleased("CHANGELOG.md", errSentinel),
			category: Prerequisite,
			contains: "no Unreleased section found",
		},
		"unreleased exists": {
			err:      UnreleasedExists("CHANGELOG.md", errSentinel),
			category: Prerequisite,
			contains: "Unreleased section already exists",
		},
		"heading not found": {
			err:      HeadingNotFound("1.0.0", "CHANGELOG.md", errSentinel),
			category: Prerequisite,
			contains: "'## [1.0.0] - TBD' not found",
		},
		"already finalized": {
			err:      AlreadyFinalized("1.0.0", "CHANGELOG.md", errSentinel),
			category: Prerequisite,
			contains: "already finalized",
		},
		"manifest invalid": {
			err:      ManifestInvalid("sync-manifest.yaml", errSentinel),
			category: Configuration,
			contains: "invalid sync manifest: sentinel",
		},
		"missing sources": {
			err:      MissingSources([]string{"a", "b"}, errSentinel),
			category: Runtime,
			contains: "2 manifest source(s) missing: a, b",
		},
		"destination overlap": {
			err:      DestinationOverlap("/p/a.txt", "/p/a.txt", errSentinel),
			category: Argument,
			contains: "sync destination /p/a.txt overlaps source /p/a.txt",
		},
		"config invalid": {
			err:      ConfigInvalid(errSentinel),
			category: Configuration,
			contains: "failed to load config: sentinel",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			require.NotNil(t, tt.err)
			assert.Equal(t, tt.category, tt.err.Category)
			assert.Contains(t, tt.err.Error(), tt.contains)
			assert.NotEmpty(t, tt.err.Remediation)
			assert.ErrorIs(t, tt.err, errSentinel)
		})
	}
}

func TestPreflightFailed(t *testing.T) {
	t.Parallel()

	err := PreflightFailed([]string{"branch is dev", "tree is dirty"})
	assert.Equal(t, "release preflight failed: branch is dev; tree is dirty", err.Error())
	assert.Equal(t, Prerequisite, err.Category)
}
