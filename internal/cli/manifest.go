package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/ariel-frischer/devkit/internal/cli/shared"
	clierrors "github.com/ariel-frischer/devkit/internal/errors"
	"github.com/ariel-frischer/devkit/internal/git"
	"github.com/ariel-frischer/devkit/internal/manifest"
	"github.com/ariel-frischer/devkit/internal/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newManifestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Sync template files into a downstream project",
		Long: `Sync template files into a downstream project.

The sync manifest lists copy-and-transform rules. Each entry copies 'src'
(relative to the project root) to 'dest' under the destination directory
and then applies its transform chain in order: sed, remove_lines,
strip_trailing_blank_lines, remove_block, replace_block, and
remove_precommit_hooks.`,
	}
	cmd.GroupID = shared.GroupSync

	cmd.AddCommand(newManifestSyncCmd(), newManifestListCmd())
	return cmd
}

// resolveProjectRoot picks the directory manifest sources resolve against:
// the flag, then project_root from config, then the enclosing git
// repository root, then the working directory.
func resolveProjectRoot(flagValue string, env *shared.Env) (string, error) {
	if flagValue != "" {
		return filepath.Abs(flagValue)
	}
	if env.Config.ProjectRoot != "" {
		return filepath.Abs(env.Config.ProjectRoot)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	if root, err := git.RepositoryRoot(cwd); err == nil {
		return root, nil
	}
	return cwd, nil
}

// resolveManifestPath returns the manifest path, relative paths resolved
// against root.
func resolveManifestPath(flagValue, root string, env *shared.Env) string {
	path := flagValue
	if path == "" {
		path = env.Config.ManifestPath
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func loadManifest(path string) ([]manifest.Entry, error) {
	entries, err := manifest.Load(path)
	if err != nil {
		return nil, clierrors.ManifestInvalid(path, err)
	}
	return entries, nil
}

func newManifestSyncCmd() *cobra.Command {
	var (
		projectRoot  string
		manifestPath string
		watch        bool
	)

	cmd := &cobra.Command{
		Use:   "sync <dest_dir>",
		Short: "Copy manifest entries into a destination and apply transforms",
		Long: `Copy manifest entries into a destination and apply transforms.

Entries run in manifest order. A missing source is reported and skipped;
the command still syncs the remaining entries and then exits 1.
Directories are replaced, not merged.

With --watch, sources are re-synced on every change until interrupted.`,
		Example: `  devkit manifest sync ../my-project
  devkit manifest sync ../my-project --project-root ~/src/template
  devkit manifest sync ../my-project --watch`,
		Args: withUsage(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := shared.EnvFrom(cmd)
			destDir := args[0]

			root, err := resolveProjectRoot(projectRoot, env)
			if err != nil {
				return err
			}
			path := resolveManifestPath(manifestPath, root, env)
			entries, err := loadManifest(path)
			if err != nil {
				return err
			}
			env.Logger.Debug("loaded manifest", zap.String("path", path), zap.Int("entries", len(entries)), zap.String("project_root", root))

			syncer := manifest.NewSyncer(root, env.Logger)
			p := output.NewPrinter(cmd.OutOrStdout(), env.Plain)

			result, syncErr := syncer.Sync(entries, destDir)
			var overlap *manifest.OverlapError
			if err := reportSync(p, result, syncErr, destDir); err != nil && (!watch || errors.As(syncErr, &overlap)) {
				return err
			}
			if !watch {
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return watchManifest(ctx, syncer, entries, destDir, p)
		},
	}

	cmd.Flags().StringVar(&projectRoot, "project-root", "", "Directory manifest sources resolve against (default: git root)")
	cmd.Flags().StringVar(&manifestPath, "manifest", "", "Sync manifest path (default: manifest_path from config)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-sync whenever a source changes")
	return cmd
}

func watchManifest(ctx context.Context, syncer *manifest.Syncer, entries []manifest.Entry, destDir string, p *output.Printer) error {
	p.Item("Watching %d source(s), press Ctrl+C to stop", len(entries))
	return syncer.Watch(ctx, entries, destDir, manifest.WatchOptions{
		OnSync: func(result *manifest.Result, err error) {
			_ = reportSync(p, result, err, destDir)
		},
	})
}

// reportSync prints a sync summary and returns the error the command
// should exit with.
func reportSync(p *output.Printer, result *manifest.Result, err error, destDir string) error {
	var overlap *manifest.OverlapError
	if errors.As(err, &overlap) {
		return clierrors.DestinationOverlap(overlap.Dest, overlap.Src, err)
	}
	if err != nil {
		return fmt.Errorf("sync to %s: %w", destDir, err)
	}

	for _, m := range result.Missing {
		p.Warning("Source not found: %s", m.Src)
	}

	synced := fmt.Sprintf("Synced %d entr%s to %s", len(result.Synced), plural(len(result.Synced), "y", "ies"), destDir)
	if result.Transformed > 0 {
		synced += fmt.Sprintf(" (%d transformed)", result.Transformed)
	}
	if len(result.Missing) > 0 {
		p.Failure("%s, %d missing", synced, len(result.Missing))
		srcs := make([]string, len(result.Missing))
		for i, m := range result.Missing {
			srcs[i] = m.Src
		}
		return clierrors.MissingSources(srcs, result.Err())
	}
	p.Success("%s", synced)
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func newManifestListCmd() *cobra.Command {
	var (
		transformed  bool
		manifestPath string
		projectRoot  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List manifest entries",
		Example: `  devkit manifest list
  devkit manifest list --transformed`,
		Args: withUsage(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := shared.EnvFrom(cmd)

			root, err := resolveProjectRoot(projectRoot, env)
			if err != nil {
				return err
			}
			entries, err := loadManifest(resolveManifestPath(manifestPath, root, env))
			if err != nil {
				return err
			}
			entries = manifest.Filter(entries, transformed)

			p := output.NewPrinter(cmd.OutOrStdout(), env.Plain)
			if len(entries) == 0 {
				p.Item("No entries")
				return nil
			}

			rows := [][]string{{"SRC", "DEST", "TRANSFORMS"}}
			for _, e := range entries {
				kinds := "-"
				if e.IsTransformed() {
					kinds = strings.Join(e.TransformKinds(), ", ")
				}
				rows = append(rows, []string{e.Src, e.Destination(), kinds})
			}
			p.Table(rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&transformed, "transformed", false, "Only list entries with a transform chain")
	cmd.Flags().StringVar(&manifestPath, "manifest", "", "Sync manifest path (default: manifest_path from config)")
	cmd.Flags().StringVar(&projectRoot, "project-root", "", "Directory the manifest path resolves against (default: git root)")
	return cmd
}
