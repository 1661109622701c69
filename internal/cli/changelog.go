package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/ariel-frischer/devkit/internal/changelog"
	"github.com/ariel-frischer/devkit/internal/cli/shared"
	clierrors "github.com/ariel-frischer/devkit/internal/errors"
	"github.com/ariel-frischer/devkit/internal/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newChangelogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "changelog",
		Short: "Stage, cut, and finalize Keep a Changelog releases",
		Long: `Stage, cut, and finalize Keep a Changelog releases.

Entries are staged under "## Unreleased". 'prepare' moves them under a
"## [X.Y.Z] - TBD" heading and regenerates an empty staging block;
'finalize' replaces TBD with the release date.

The changelog path defaults to changelog_path from config.`,
	}
	cmd.GroupID = shared.GroupRelease

	cmd.AddCommand(
		newChangelogPrepareCmd(),
		newChangelogValidateCmd(),
		newChangelogResetCmd(),
		newChangelogFinalizeCmd(),
		newChangelogNotesCmd(),
	)
	return cmd
}

// changelogPath returns the optional path argument at index i, or the
// configured changelog.
func changelogPath(cmd *cobra.Command, args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return shared.EnvFrom(cmd).Config.ChangelogPath
}

func newChangelogPrepareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prepare <version> [path]",
		Short: "Move Unreleased entries under a new version heading",
		Example: `  devkit changelog prepare 1.4.0
  devkit changelog prepare 1.4.0 docs/CHANGELOG.md`,
		Args: withUsage(cobra.RangeArgs(1, 2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := shared.EnvFrom(cmd)
			version, path := args[0], changelogPath(cmd, args, 1)

			result, err := changelog.Prepare(path, version)
			if err != nil {
				return changelogError(err, path, version)
			}
			env.Logger.Debug("prepared changelog", zap.String("path", path), zap.String("version", version), zap.Strings("moved", result.Moved))

			p := output.NewPrinter(cmd.OutOrStdout(), env.Plain)
			for _, name := range result.Moved {
				p.Item("%s", name)
			}
			if result.Empty() {
				p.Warning("No content found in Unreleased section")
			}
			p.Success("Prepared CHANGELOG for version %s", version)
			return nil
		},
	}
}

func newChangelogValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [path]",
		Short: "Check that the changelog has an Unreleased section",
		Long: `Check that the changelog has an Unreleased section.

An Unreleased section without list items only produces a warning.`,
		Args: withUsage(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := shared.EnvFrom(cmd)
			path := changelogPath(cmd, args, 0)

			status, err := changelog.Validate(path)
			if err != nil {
				return changelogError(err, path, "")
			}
			if !status.HasUnreleased {
				return clierrors.MissingUnreleased(path, changelog.ErrNoUnreleased)
			}

			p := output.NewPrinter(cmd.OutOrStdout(), env.Plain)
			if !status.HasContent {
				p.Warning("Unreleased section in %s has no entries", path)
			}
			p.Success("%s is valid", path)
			return nil
		},
	}
}

func newChangelogResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset [path]",
		Short: "Insert an empty Unreleased section",
		Long: `Insert an empty Unreleased section before the first version heading.

The file is left unchanged when an Unreleased section already exists.`,
		Args: withUsage(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := shared.EnvFrom(cmd)
			path := changelogPath(cmd, args, 0)

			if err := changelog.Reset(path); err != nil {
				return changelogError(err, path, "")
			}

			output.NewPrinter(cmd.OutOrStdout(), env.Plain).Success("Reset Unreleased section in %s", path)
			return nil
		},
	}
}

func newChangelogFinalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "finalize <version> <date> [path]",
		Short:   "Replace a version's TBD date with the release date",
		Example: `  devkit changelog finalize 1.4.0 2024-06-01`,
		Args:    withUsage(cobra.RangeArgs(2, 3)),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := shared.EnvFrom(cmd)
			version, date, path := args[0], args[1], changelogPath(cmd, args, 2)

			if err := changelog.Finalize(path, version, date); err != nil {
				return changelogError(err, path, version)
			}

			output.NewPrinter(cmd.OutOrStdout(), env.Plain).Success("Finalized version %s with date %s", version, date)
			return nil
		},
	}
}

func newChangelogNotesCmd() *cobra.Command {
	var html bool

	cmd := &cobra.Command{
		Use:   "notes <version> [path]",
		Short: "Print the release notes of a version",
		Long: `Print the body of a version's changelog entry, suitable for forge
release notes. Use --html to render it.`,
		Example: `  devkit changelog notes 1.4.0 > notes.md
  devkit changelog notes 1.4.0 --html`,
		Args: withUsage(cobra.RangeArgs(1, 2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, path := args[0], changelogPath(cmd, args, 1)

			notes, err := changelog.Notes(path, version)
			if err != nil {
				return changelogError(err, path, version)
			}
			if html {
				rendered, err := changelog.RenderNotesHTML(notes)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), rendered)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), notes)
			return nil
		},
	}
	cmd.Flags().BoolVar(&html, "html", false, "Render the notes as HTML")
	return cmd
}

// changelogError maps changelog package errors to CLI errors with
// remediation. Unrecognized errors pass through unchanged.
func changelogError(err error, path, version string) error {
	var ve *changelog.ValidationError
	if errors.As(err, &ve) {
		if ve.Field == "date" {
			return clierrors.InvalidDate(ve.Value, err)
		}
		return clierrors.InvalidVersion(ve.Value, err)
	}

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return clierrors.ChangelogNotFound(path, err)
	case errors.Is(err, changelog.ErrNoUnreleased):
		return clierrors.MissingUnreleased(path, err)
	case errors.Is(err, changelog.ErrUnreleasedExists):
		return clierrors.UnreleasedExists(path, err)
	case errors.Is(err, changelog.ErrAlreadyFinalized):
		return clierrors.AlreadyFinalized(version, path, err)
	case errors.Is(err, changelog.ErrVersionNotFound):
		var se *changelog.StructuralError
		if errors.As(err, &se) && se.Element == changelog.FormatVersionHeader(version, changelog.TBD) {
			return clierrors.HeadingNotFound(version, path, err)
		}
		return clierrors.NotesNotFound(version, path, err)
	}
	return err
}
