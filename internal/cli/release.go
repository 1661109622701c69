package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ariel-frischer/devkit/internal/changelog"
	"github.com/ariel-frischer/devkit/internal/cli/shared"
	clierrors "github.com/ariel-frischer/devkit/internal/errors"
	"github.com/ariel-frischer/devkit/internal/git"
	"github.com/ariel-frischer/devkit/internal/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func newReleaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "release",
		Short: "Release readiness checks",
	}
	cmd.GroupID = shared.GroupRelease

	cmd.AddCommand(newReleasePreflightCmd())
	return cmd
}

// check is one preflight result line.
type check struct {
	name   string
	ok     bool
	detail string
}

func newReleasePreflightCmd() *cobra.Command {
	var (
		branch string
		repo   string
	)

	cmd := &cobra.Command{
		Use:   "preflight",
		Short: "Check that the repository is ready to cut a release",
		Long: `Check that the repository is ready to cut a release.

Checks, in order:
  - the directory is inside a git repository
  - the release branch is checked out
  - the working tree is clean (when require_clean_tree is set)
  - the changelog has an Unreleased section with entries

Every check runs; the command exits 1 if any failed.`,
		Example: `  devkit release preflight
  devkit release preflight --branch release/2.x`,
		Args: withUsage(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := shared.EnvFrom(cmd)
			if branch == "" {
				branch = env.Config.ReleaseBranch
			}
			if repo == "" {
				repo = "."
			}

			checks := runPreflight(env, repo, branch)

			p := output.NewPrinter(cmd.OutOrStdout(), env.Plain)
			p.Header("Release preflight")
			var failed []string
			for _, c := range checks {
				p.Check(c.ok, c.name, c.detail)
				if !c.ok {
					failed = append(failed, c.name)
				}
			}
			if len(failed) > 0 {
				return clierrors.PreflightFailed(failed)
			}
			p.Success("Ready to release from %s", branch)
			return nil
		},
	}

	cmd.Flags().StringVarP(&branch, "branch", "b", "", "Expected release branch (default: release_branch from config)")
	cmd.Flags().StringVarP(&repo, "repo", "C", "", "Repository to check (default: working directory)")
	return cmd
}

// runPreflight evaluates every release check against repo. The git checks
// and the changelog check run concurrently; results keep a fixed order.
func runPreflight(env *shared.Env, repo, branch string) []check {
	path := env.Config.ChangelogPath
	if !filepath.IsAbs(path) {
		path = filepath.Join(repo, path)
	}

	var (
		g         errgroup.Group
		gitChecks []check
		logCheck  check
	)
	g.Go(func() error {
		gitChecks = repositoryChecks(env, repo, branch)
		return nil
	})
	g.Go(func() error {
		logCheck = changelogCheck(path)
		return nil
	})
	_ = g.Wait()

	return append(gitChecks, logCheck)
}

// repositoryChecks reports git checks as failed, not skipped, when repo is
// not a repository.
func repositoryChecks(env *shared.Env, repo, branch string) []check {
	root, err := git.RepositoryRoot(repo)
	if err != nil {
		env.Logger.Debug("repository lookup failed", zap.String("repo", repo), zap.Error(err))
		checks := []check{
			{name: "git repository", detail: "not a git repository"},
			{name: "release branch", detail: "no repository"},
		}
		if env.Config.RequireCleanTree {
			checks = append(checks, check{name: "clean working tree", detail: "no repository"})
		}
		return checks
	}

	checks := []check{
		{name: "git repository", ok: true, detail: root},
		branchCheck(root, branch),
	}
	if env.Config.RequireCleanTree {
		checks = append(checks, cleanTreeCheck(root))
	}
	return checks
}

func branchCheck(root, branch string) check {
	c := check{name: "release branch"}
	current, err := git.CurrentBranch(root)
	switch {
	case err != nil:
		c.detail = err.Error()
	case current == "":
		c.detail = "detached HEAD, expected " + branch
	case current != branch:
		c.detail = fmt.Sprintf("on %s, expected %s", current, branch)
	default:
		c.ok = true
		c.detail = current
	}
	return c
}

func cleanTreeCheck(root string) check {
	c := check{name: "clean working tree"}
	dirty, err := git.DirtyPaths(root)
	switch {
	case err != nil:
		c.detail = err.Error()
	case len(dirty) > 0:
		c.detail = fmt.Sprintf("%d uncommitted path(s): %s", len(dirty), summarizePaths(dirty, 3))
	default:
		c.ok = true
	}
	return c
}

func changelogCheck(path string) check {
	c := check{name: "changelog Unreleased entries"}
	status, err := changelog.Validate(path)
	switch {
	case err != nil:
		c.detail = err.Error()
	case !status.HasUnreleased:
		c.detail = "no Unreleased section in " + path
	case !status.HasContent:
		c.detail = "Unreleased section in " + path + " is empty"
	default:
		c.ok = true
		c.detail = path
	}
	return c
}

// summarizePaths joins up to limit paths and counts the rest.
func summarizePaths(paths []string, limit int) string {
	if len(paths) <= limit {
		return strings.Join(paths, ", ")
	}
	return fmt.Sprintf("%s, +%d more", strings.Join(paths[:limit], ", "), len(paths)-limit)
}
