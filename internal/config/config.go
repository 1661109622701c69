// devkit - Template release and sync tooling
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/devkit

// Package config provides hierarchical configuration management for devkit using koanf.
// Configuration is loaded with priority: environment variables > project config (.devkit/config.yml)
// > user config (~/.config/devkit/config.yml) > defaults. A legacy project JSON config is still read,
// with a warning pointing at 'devkit config migrate'.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "DEVKIT_"

// ConfigSource tracks where a configuration value came from
type ConfigSource string

const (
	SourceDefault ConfigSource = "default"
	SourceUser    ConfigSource = "user"
	SourceProject ConfigSource = "project"
	SourceEnv     ConfigSource = "env"
)

// LogConfig controls the zap logger built by the CLI.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=console json"`
}

// Configuration represents the devkit CLI configuration
type Configuration struct {
	// ChangelogPath is the changelog used when a command omits its path argument.
	ChangelogPath string `koanf:"changelog_path" validate:"required"`
	// ManifestPath is the sync manifest, relative to the project root unless absolute.
	ManifestPath string `koanf:"manifest_path" validate:"required"`
	// ProjectRoot is the directory manifest sources resolve against.
	// Empty means the enclosing git repository root, or the working directory.
	ProjectRoot string `koanf:"project_root"`
	// ReleaseBranch is the branch 'release preflight' expects to be checked out.
	ReleaseBranch string `koanf:"release_branch" validate:"required"`
	// RequireCleanTree makes 'release preflight' fail on uncommitted changes.
	RequireCleanTree bool `koanf:"require_clean_tree"`

	Log LogConfig `koanf:"log"`

	// Sources maps every loaded key to the layer that last set it.
	Sources map[string]ConfigSource `koanf:"-"`
}

// SourceOf returns the layer a key was loaded from, or SourceDefault.
func (c *Configuration) SourceOf(key string) ConfigSource {
	if src, ok := c.Sources[key]; ok {
		return src
	}
	return SourceDefault
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .devkit/config.yml)
	ProjectConfigPath string
	// UserConfigPath overrides the user config path (default: UserConfigPath())
	UserConfigPath string
	// WarningWriter receives deprecation warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses deprecation warnings
	SkipWarnings bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	sources := make(map[string]ConfigSource)
	warningWriter := getWarningWriter(opts.WarningWriter)

	if err := loadLayer(k, sources, SourceDefault, loadDefaults); err != nil {
		return nil, err
	}

	if err := loadLayer(k, sources, SourceUser, func(l *koanf.Koanf) error {
		return loadUserConfig(l, opts.UserConfigPath)
	}); err != nil {
		return nil, err
	}

	if err := loadLayer(k, sources, SourceProject, func(l *koanf.Koanf) error {
		return loadProjectConfig(l, opts.ProjectConfigPath, warningWriter, opts.SkipWarnings)
	}); err != nil {
		return nil, err
	}

	if err := loadLayer(k, sources, SourceEnv, loadEnvironmentConfig); err != nil {
		return nil, err
	}

	cfg, err := finalizeConfig(k)
	if err != nil {
		return nil, err
	}
	cfg.Sources = sources
	return cfg, nil
}

// loadLayer loads one source into a fresh koanf instance, records which
// keys it set, and merges it over k.
func loadLayer(k *koanf.Koanf, sources map[string]ConfigSource, src ConfigSource, load func(*koanf.Koanf) error) error {
	layer := koanf.New(".")
	if err := load(layer); err != nil {
		return err
	}
	for _, key := range layer.Keys() {
		sources[key] = src
	}
	return k.Merge(layer)
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) error {
	for key, value := range GetDefaults() {
		if err := k.Set(key, value); err != nil {
			return fmt.Errorf("setting default %s: %w", key, err)
		}
	}
	return nil
}

// loadUserConfig loads the user-level YAML config if it exists.
func loadUserConfig(k *koanf.Koanf, customPath string) error {
	path := customPath
	if path == "" {
		path, _ = UserConfigPath()
	}
	if !fileExists(path) {
		return nil
	}
	if err := loadYAMLConfig(k, path, "user"); err != nil {
		return fmt.Errorf("loading user YAML config: %w", err)
	}
	return nil
}

// loadProjectConfig loads project-level config (YAML preferred, legacy JSON supported).
// The legacy JSON file is looked up next to the YAML path. Warns if both
// exist (YAML used, JSON ignored) or if only legacy JSON exists.
func loadProjectConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) error {
	projectYAMLPath := ProjectConfigPath()
	if customPath != "" {
		projectYAMLPath = customPath
	}
	legacyProjectPath := LegacyConfigPathFor(projectYAMLPath)

	projectYAMLExists := fileExists(projectYAMLPath)
	legacyProjectExists := fileExists(legacyProjectPath)

	if projectYAMLExists {
		if err := loadYAMLConfig(k, projectYAMLPath, "project"); err != nil {
			return fmt.Errorf("loading project YAML config: %w", err)
		}
		if legacyProjectExists && !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Legacy JSON config found at %s (ignored, using %s)\n", legacyProjectPath, projectYAMLPath)
			fmt.Fprintf(warningWriter, "  Run 'devkit config migrate' to remove the legacy file.\n\n")
		}
	} else if legacyProjectExists {
		if err := k.Load(file.Provider(legacyProjectPath), json.Parser()); err != nil {
			return fmt.Errorf("failed to load legacy project config %s: %w", legacyProjectPath, err)
		}
		if !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Using deprecated JSON config at %s\n", legacyProjectPath)
			fmt.Fprintf(warningWriter, "  Run 'devkit config migrate' to migrate to YAML format.\n\n")
		}
	}
	return nil
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, validates, and applies final transformations
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.ChangelogPath = expandHomePath(cfg.ChangelogPath)
	cfg.ManifestPath = expandHomePath(cfg.ManifestPath)
	cfg.ProjectRoot = expandHomePath(cfg.ProjectRoot)

	return &cfg, nil
}

// Keys returns the effective configuration as sorted key/value pairs.
func (c *Configuration) Keys() [][2]string {
	values := map[string]string{
		"changelog_path":     c.ChangelogPath,
		"manifest_path":      c.ManifestPath,
		"project_root":       c.ProjectRoot,
		"release_branch":     c.ReleaseBranch,
		"require_clean_tree": fmt.Sprintf("%t", c.RequireCleanTree),
		"log.level":          c.Log.Level,
		"log.format":         c.Log.Format,
	}
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([][2]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, [2]string{key, values[key]})
	}
	return pairs
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys.
// Example: DEVKIT_RELEASE_BRANCH -> release_branch, DEVKIT_LOG_LEVEL -> log.level
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "log_"); ok {
		return "log." + rest
	}
	return key
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
