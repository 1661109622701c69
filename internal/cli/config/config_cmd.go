// Package config implements the 'devkit config' commands.
package config

import (
	"fmt"

	"github.com/ariel-frischer/devkit/internal/cli/shared"
	"github.com/ariel-frischer/devkit/internal/config"
	"github.com/ariel-frischer/devkit/internal/output"
	"github.com/spf13/cobra"
)

// NewConfigCmd returns the config command and its subcommands.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and initialize devkit configuration",
		Long: `Inspect and initialize devkit configuration.

Configuration precedence (highest to lowest):
  1. Environment variables (DEVKIT_*)
  2. Project config (.devkit/config.yml)
  3. User config (~/.config/devkit/config.yml)
  4. Built-in defaults`,
	}
	cmd.GroupID = shared.GroupConfiguration

	cmd.AddCommand(newShowCmd(), newKeysCmd(), newInitCmd(), newMigrateCmd())
	return cmd
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "show",
		Short:        "Show the effective configuration and where each value came from",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := shared.EnvFrom(cmd)
			p := output.NewPrinter(cmd.OutOrStdout(), env.Plain)

			rows := [][]string{{"KEY", "VALUE", "SOURCE"}}
			for _, pair := range env.Config.Keys() {
				value := pair[1]
				if value == "" {
					value = `""`
				}
				rows = append(rows, []string{pair[0], value, string(env.Config.SourceOf(pair[0]))})
			}
			p.Table(rows)
			return nil
		},
	}
}

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "keys",
		Short:        "List all configuration keys with types and env overrides",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := shared.EnvFrom(cmd)
			p := output.NewPrinter(cmd.OutOrStdout(), env.Plain)

			defaults := config.GetDefaults()
			rows := [][]string{{"KEY", "TYPE", "DEFAULT", "ENV", "DESCRIPTION"}}
			for _, key := range config.SortedKeys() {
				schema := config.KnownKeys[key]
				rows = append(rows, []string{
					key,
					schema.TypeLabel(),
					fmt.Sprintf("%v", defaults[key]),
					schema.EnvVar(),
					schema.Description,
				})
			}
			p.Table(rows)
			return nil
		},
	}
}

func newInitCmd() *cobra.Command {
	var (
		user  bool
		force bool
		path  string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented config template",
		Long: `Write a commented config template.

By default the template goes to the project config (.devkit/config.yml).
Use --user to create the user-level config instead, or --path for any
other location. An existing file is left unchanged unless --force is given.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case path != "":
			case user:
				var err error
				path, err = config.UserConfigPath()
				if err != nil {
					return fmt.Errorf("resolving user config path: %w", err)
				}
			default:
				path = config.ProjectConfigPath()
			}

			if err := config.WriteTemplate(path, force); err != nil {
				return err
			}

			p := output.NewPrinter(cmd.OutOrStdout(), shared.EnvFrom(cmd).Plain)
			p.Success("Wrote config template to %s", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&user, "user", false, "Write the user-level config")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config")
	cmd.Flags().StringVar(&path, "path", "", "Write the template to this path")
	cmd.MarkFlagsMutuallyExclusive("user", "path")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the legacy .devkit/config.json to YAML",
		Long: `Migrate the legacy project JSON config to .devkit/config.yml.

The JSON file is kept as config.json.bak after a successful migration.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			yamlPath, _ := cmd.Flags().GetString("config")

			result, err := config.MigrateProjectConfig(yamlPath, dryRun)
			if err != nil {
				return err
			}

			p := output.NewPrinter(cmd.OutOrStdout(), shared.EnvFrom(cmd).Plain)
			if !result.Success {
				fmt.Fprintln(cmd.OutOrStdout(), result.Message)
				return nil
			}
			if err := config.RemoveLegacyConfig(result.SourcePath, dryRun); err != nil {
				return err
			}
			p.Success("%s", result.Message)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be migrated without writing")
	return cmd
}
