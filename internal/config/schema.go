package config

import (
	"fmt"
	"sort"
	"strings"
)

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeBool ConfigValueType = iota
	TypeString
	TypeEnum
)

// String returns the string representation of ConfigValueType.
func (t ConfigValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeString:
		return "string"
	case TypeEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// ConfigKeySchema defines a known configuration key with its expected type.
type ConfigKeySchema struct {
	Path          string          // Dotted key path (e.g., "log.level")
	Type          ConfigValueType // Expected value type
	AllowedValues []string        // Valid values for enum types (empty for non-enums)
	Description   string          // Human-readable description for help text
}

// KnownKeys is the registry of all known configuration keys.
var KnownKeys = map[string]ConfigKeySchema{
	"changelog_path": {
		Path:        "changelog_path",
		Type:        TypeString,
		Description: "Changelog used when a command omits its path argument",
	},
	"manifest_path": {
		Path:        "manifest_path",
		Type:        TypeString,
		Description: "Sync manifest, relative to project_root unless absolute",
	},
	"project_root": {
		Path:        "project_root",
		Type:        TypeString,
		Description: "Directory manifest sources resolve against (empty = git root or cwd)",
	},
	"release_branch": {
		Path:        "release_branch",
		Type:        TypeString,
		Description: "Branch 'release preflight' expects to be checked out",
	},
	"require_clean_tree": {
		Path:        "require_clean_tree",
		Type:        TypeBool,
		Description: "Fail 'release preflight' on uncommitted changes",
	},
	"log.level": {
		Path:          "log.level",
		Type:          TypeEnum,
		AllowedValues: []string{"debug", "info", "warn", "error"},
		Description:   "Minimum log level",
	},
	"log.format": {
		Path:          "log.format",
		Type:          TypeEnum,
		AllowedValues: []string{"console", "json"},
		Description:   "Log encoding",
	},
}

// ErrUnknownKey is returned when trying to access an unknown configuration key.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return "unknown configuration key: " + e.Key
}

// GetKeySchema returns the schema for a known configuration key.
// Returns ErrUnknownKey if the key is not in the registry.
func GetKeySchema(path string) (ConfigKeySchema, error) {
	schema, ok := KnownKeys[path]
	if !ok {
		return ConfigKeySchema{}, ErrUnknownKey{Key: path}
	}
	return schema, nil
}

// SortedKeys returns the registered key paths in lexical order.
func SortedKeys() []string {
	keys := make([]string, 0, len(KnownKeys))
	for key := range KnownKeys {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// TypeLabel returns the type shown in 'devkit config keys', listing the
// allowed values of enums.
func (s ConfigKeySchema) TypeLabel() string {
	if s.Type == TypeEnum {
		return fmt.Sprintf("enum(%s)", strings.Join(s.AllowedValues, "|"))
	}
	return s.Type.String()
}

// EnvVar returns the environment variable that overrides the key.
func (s ConfigKeySchema) EnvVar() string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(s.Path, ".", "_"))
}
