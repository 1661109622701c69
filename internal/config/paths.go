package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/devkit/config.yml
// - macOS: ~/Library/Application Support/devkit/config.yml
// - Windows: %APPDATA%\devkit\config.yml
//
// If XDG_CONFIG_HOME is set, it will be respected on Linux.
func UserConfigPath() (string, error) {
	dir, err := UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yml"), nil
}

// UserConfigDir returns the path to the user-level config directory.
func UserConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "devkit"), nil
}

// ProjectConfigPath returns the path to the project-level config file.
// This is always .devkit/config.yml relative to the current directory.
func ProjectConfigPath() string {
	return filepath.Join(ProjectConfigDir(), "config.yml")
}

// ProjectConfigDir returns the path to the project-level config directory.
func ProjectConfigDir() string {
	return ".devkit"
}

// LegacyConfigPathFor returns the legacy JSON config path that sits next to
// the given YAML config path.
func LegacyConfigPathFor(yamlPath string) string {
	return filepath.Join(filepath.Dir(yamlPath), "config.json")
}
