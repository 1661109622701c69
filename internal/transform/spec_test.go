package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func decodeSpecs(t *testing.T, doc string) ([]Spec, error) {
	t.Helper()
	var specs []Spec
	err := yaml.Unmarshal([]byte(doc), &specs)
	return specs, err
}

func TestSpec_DecodeAllKinds(t *testing.T) {
	t.Parallel()

	doc := `
- type: sed
  pattern: 'template-(\w+)'
  replace: 'project-$1'
  target: devcontainer.json
- type: remove_lines
  pattern: agent-blocklist
- type: strip_trailing_blank_lines
- type: remove_block
  start_pattern: '^# BEGIN template'
  end_pattern: '^# END template'
- type: replace_block
  start_pattern: '^features:'
  end_pattern: '^}'
  replacement: |
    features: {}
  keep_start: true
- type: remove_precommit_hooks
  hook_ids: [agent-blocklist, action-pins]
  target: .pre-commit-config.yaml
`

	specs, err := decodeSpecs(t, doc)
	require.NoError(t, err)
	require.Len(t, specs, 6)

	kinds := make([]string, 0, len(specs))
	for _, s := range specs {
		require.NotNil(t, s.Transform)
		kinds = append(kinds, s.Transform.Kind())
	}
	assert.Equal(t, Kinds(), kinds)

	sed, ok := specs[0].Transform.(*Sed)
	require.True(t, ok)
	assert.Equal(t, "devcontainer.json", sed.Target)
	assert.NotNil(t, sed.re)

	rb, ok := specs[4].Transform.(*ReplaceBlock)
	require.True(t, ok)
	assert.True(t, rb.KeepStart)
	assert.Equal(t, "features: {}\n", rb.Replacement)

	hooks, ok := specs[5].Transform.(*RemovePrecommitHooks)
	require.True(t, ok)
	assert.Equal(t, []string{"agent-blocklist", "action-pins"}, hooks.HookIDs)
}

func TestSpec_DecodeErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		doc         string
		errContains []string
		unknownType bool
	}{
		"unknown type": {
			doc:         "- type: chmod\n  mode: '0755'\n",
			errContains: []string{"unknown transform type \"chmod\"", "line 1", "sed"},
			unknownType: true,
		},
		"missing type": {
			doc:         "- pattern: x\n",
			errContains: []string{"unknown transform type \"\""},
			unknownType: true,
		},
		"missing pattern": {
			doc:         "- type: sed\n  replace: y\n",
			errContains: []string{"sed", "field pattern is required"},
		},
		"missing end pattern": {
			doc:         "- type: remove_block\n  start_pattern: a\n",
			errContains: []string{"remove_block", "field end_pattern is required"},
		},
		"empty hook ids": {
			doc:         "- type: remove_precommit_hooks\n  hook_ids: []\n",
			errContains: []string{"remove_precommit_hooks", "hook_ids"},
		},
		"invalid regex": {
			doc:         "- type: remove_lines\n  pattern: '(['\n",
			errContains: []string{"remove_lines", "invalid pattern"},
		},
		"second entry line reported": {
			doc:         "- type: strip_trailing_blank_lines\n- type: nope\n",
			errContains: []string{"line 2"},
			unknownType: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := decodeSpecs(t, tt.doc)
			require.Error(t, err)
			for _, want := range tt.errContains {
				assert.Contains(t, err.Error(), want)
			}
			assert.Equal(t, tt.unknownType, IsUnknownTypeError(err))
		})
	}
}

func TestDecode_Apply(t *testing.T) {
	t.Parallel()

	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("type: sed\npattern: foo\nreplace: bar\n"), &node))

	tr, err := Decode(KindSed, node.Content[0])
	require.NoError(t, err)

	path := writeFile(t, t.TempDir(), "f.txt", "foo foo\n")
	require.NoError(t, tr.Apply(path))
	assert.Equal(t, "bar bar\n", readFile(t, path))
}
