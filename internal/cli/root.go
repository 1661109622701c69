// Package cli implements the devkit command tree.
package cli

import (
	"errors"
	"fmt"
	"io"

	clicfg "github.com/ariel-frischer/devkit/internal/cli/config"
	"github.com/ariel-frischer/devkit/internal/cli/shared"
	"github.com/ariel-frischer/devkit/internal/cli/util"
	"github.com/ariel-frischer/devkit/internal/config"
	clierrors "github.com/ariel-frischer/devkit/internal/errors"
	"github.com/ariel-frischer/devkit/internal/git"
	"github.com/ariel-frischer/devkit/internal/output"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the full devkit command tree.
func NewRootCmd() *cobra.Command {
	var (
		cfgFile string
		debug   bool
		plain   bool
	)

	rootCmd := &cobra.Command{
		Use:   "devkit",
		Short: "Release and template-sync tooling",
		Long: `devkit keeps a project's release chores and template sync scriptable.

It moves the staged "## Unreleased" changelog entries under a new version,
finalizes release dates, and syncs template files into downstream projects
through a declarative manifest of copy-and-transform rules.`,
		Example: `  # Cut a release
  devkit release preflight
  devkit changelog prepare 1.4.0
  devkit changelog finalize 1.4.0 2024-06-01

  # Sync template files into a checkout
  devkit manifest sync ../my-project`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupEnv(cmd, cfgFile, debug, plain)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = shared.EnvFrom(cmd).Logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Project config file (default .devkit/config.yml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&plain, "plain", false, "Plain output (no colors or symbols)")

	rootCmd.AddGroup(
		&cobra.Group{ID: shared.GroupRelease, Title: "Release Commands:"},
		&cobra.Group{ID: shared.GroupSync, Title: "Template Sync Commands:"},
		&cobra.Group{ID: shared.GroupConfiguration, Title: "Configuration Commands:"},
		&cobra.Group{ID: shared.GroupInternal, Title: "Other Commands:"},
	)
	rootCmd.SetHelpCommandGroupID(shared.GroupInternal)
	rootCmd.SetCompletionCommandGroupID(shared.GroupInternal)

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return shared.WithExitCode(shared.ExitInvalidArguments,
			clierrors.Usage(err.Error(), cmd.UseLine()))
	})

	rootCmd.AddCommand(
		newChangelogCmd(),
		newManifestCmd(),
		newReleaseCmd(),
		clicfg.NewConfigCmd(),
		util.NewVersionCmd(),
	)

	return rootCmd
}

// setupEnv loads configuration, builds the logger, and attaches both to the
// command context.
func setupEnv(cmd *cobra.Command, cfgFile string, debug, plain bool) error {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: cfgFile,
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return clierrors.ConfigInvalid(err)
	}

	logger, err := newLogger(cfg.Log, debug)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if debug {
		sugar := logger.Sugar()
		git.SetDebugLogger(sugar.Debugf)
	}

	cmd.SetContext(shared.WithEnv(cmd.Context(), &shared.Env{
		Config: cfg,
		Logger: logger,
		Plain:  plain,
	}))
	return nil
}

// Execute runs the root command and reports any error on stderr.
func Execute() error {
	rootCmd := NewRootCmd()
	err := rootCmd.Execute()
	if err != nil {
		plain, _ := rootCmd.PersistentFlags().GetBool("plain")
		reportError(rootCmd.ErrOrStderr(), err, plain)
	}
	return err
}

// reportError prints err for the user. Silent exit errors were already
// reported by the command. Output is plain when requested or when w is not
// a color terminal.
func reportError(w io.Writer, err error, plain bool) {
	var exitErr *shared.ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		clierrors.FprintError(w, cliErr, plain || color.NoColor || !output.IsTerminal(w))
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
