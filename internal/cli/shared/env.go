package shared

import (
	"context"

	"github.com/ariel-frischer/devkit/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Env is the per-invocation state the root command prepares for every
// subcommand.
type Env struct {
	Config *config.Configuration
	Logger *zap.Logger
	// Plain disables colors and symbols in command output.
	Plain bool
}

type envKey struct{}

// WithEnv returns a context carrying env.
func WithEnv(ctx context.Context, env *Env) context.Context {
	return context.WithValue(ctx, envKey{}, env)
}

// EnvFrom returns the Env attached to the command's context. Commands run
// outside the root command get defaults and a no-op logger.
func EnvFrom(cmd *cobra.Command) *Env {
	if ctx := cmd.Context(); ctx != nil {
		if env, ok := ctx.Value(envKey{}).(*Env); ok && env != nil {
			return env
		}
	}
	return &Env{
		Config: DefaultConfig(),
		Logger: zap.NewNop(),
	}
}

// DefaultConfig returns the configuration defaults without reading any file.
func DefaultConfig() *config.Configuration {
	defaults := config.GetDefaults()
	return &config.Configuration{
		ChangelogPath:    defaults["changelog_path"].(string),
		ManifestPath:     defaults["manifest_path"].(string),
		ReleaseBranch:    defaults["release_branch"].(string),
		RequireCleanTree: defaults["require_clean_tree"].(bool),
		Log: config.LogConfig{
			Level:  defaults["log.level"].(string),
			Format: defaults["log.format"].(string),
		},
	}
}
