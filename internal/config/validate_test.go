package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateYAMLSyntax(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content  string
		wantErr  bool
		wantLine int
	}{
		"valid":      {content: "release_branch: main\n"},
		"empty":      {content: "   \n"},
		"bad indent": {content: "a: 1\n  b: 2\n", wantErr: true, wantLine: 2},
		"unclosed":   {content: "a: [1, 2\n", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "config.yml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			err := ValidateYAMLSyntax(path)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, path, ve.FilePath)
			if tt.wantLine > 0 {
				assert.Equal(t, tt.wantLine, ve.Line)
			}
		})
	}
}

func TestValidateYAMLSyntax_Missing(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateYAMLSyntax(filepath.Join(t.TempDir(), "absent.yml")))
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  ValidationError
		want string
	}{
		"position": {
			err:  ValidationError{FilePath: "c.yml", Line: 3, Column: 1, Message: "bad"},
			want: "c.yml:3:1: bad",
		},
		"field": {
			err:  ValidationError{FilePath: "config", Field: "log.level", Message: "is required"},
			want: "config: field 'log.level': is required",
		},
		"plain": {
			err:  ValidationError{FilePath: "c.yml", Message: "permission denied"},
			want: "c.yml: permission denied",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestExtractLineColumn(t *testing.T) {
	t.Parallel()

	line, col := extractLineColumn("yaml: line 5: could not find expected ':'")
	assert.Equal(t, 5, line)
	assert.Equal(t, 1, col)

	line, col = extractLineColumn("something else")
	assert.Zero(t, line)
	assert.Zero(t, col)
}

func TestKeySchema(t *testing.T) {
	t.Parallel()

	schema, err := GetKeySchema("log.level")
	require.NoError(t, err)
	assert.Equal(t, "enum(debug|info|warn|error)", schema.TypeLabel())
	assert.Equal(t, "DEVKIT_LOG_LEVEL", schema.EnvVar())

	_, err = GetKeySchema("nope")
	assert.EqualError(t, err, "unknown configuration key: nope")

	keys := SortedKeys()
	assert.Equal(t, "changelog_path", keys[0])
	for key := range GetDefaults() {
		assert.Contains(t, keys, key)
	}
}
