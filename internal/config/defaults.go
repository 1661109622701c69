package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# devkit configuration
# See 'devkit config keys' for all options

# Release settings
changelog_path: CHANGELOG.md          # Changelog used when a command omits its path
release_branch: main                  # Branch 'release preflight' expects
require_clean_tree: true              # Fail preflight on uncommitted changes

# Sync settings
manifest_path: sync-manifest.yaml     # Sync manifest, relative to project_root
project_root: ""                      # Empty = git repository root, else working directory

# Logging
log:
  level: info                         # debug | info | warn | error
  format: console                     # console | json
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"changelog_path":     "CHANGELOG.md",
		"manifest_path":      "sync-manifest.yaml",
		"project_root":       "",
		"release_branch":     "main",
		"require_clean_tree": true,
		"log.level":          "info",
		"log.format":         "console",
	}
}

// WriteTemplate writes the commented default config to path. An existing
// file is left alone unless force is set.
func WriteTemplate(path string, force bool) error {
	if fileExists(path) && !force {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(GetDefaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}
	return nil
}
