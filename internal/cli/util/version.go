// Package util holds small informational commands.
package util

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/ariel-frischer/devkit/internal/build"
	"github.com/ariel-frischer/devkit/internal/cli/shared"
	"github.com/ariel-frischer/devkit/internal/output"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// SourceURL is the project source URL
const SourceURL = "https://github.com/ariel-frischer/devkit"

// NewVersionCmd returns the version command.
func NewVersionCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Display version information (v)",
		Long:    "Display version, commit, build date, and Go version information for devkit",
		Example: `  # Show version info
  devkit version

  # Plain output (for scripts)
  devkit version --plain`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if plain || shared.EnvFrom(cmd).Plain || !output.IsTerminal(out) {
				printPlainVersion(out)
				return
			}
			printPrettyVersion(out)
		},
	}
	cmd.GroupID = shared.GroupInternal
	cmd.Flags().BoolVar(&plain, "plain", false, "Plain output without formatting")
	return cmd
}

// versionInfo returns the label/value pairs shown by both layouts.
func versionInfo() [][2]string {
	return [][2]string{
		{"Version", build.Version},
		{"Commit", truncateCommit(build.Commit)},
		{"Built", build.BuildDate},
		{"Go", runtime.Version()},
		{"Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)},
	}
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(out io.Writer) {
	fmt.Fprintf(out, "devkit %s\n", build.Version)
	fmt.Fprintf(out, "commit: %s\n", build.Commit)
	fmt.Fprintf(out, "built: %s\n", build.BuildDate)
	fmt.Fprintf(out, "go: %s\n", runtime.Version())
	fmt.Fprintf(out, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

// printPrettyVersion prints the version info inside a box
func printPrettyVersion(out io.Writer) {
	white := color.New(color.FgWhite, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	boxWidth := 44
	if termWidth := output.GetTerminalWidth(); termWidth < 50 {
		boxWidth = termWidth - 6
	}
	contentWidth := boxWidth - 4

	fmt.Fprintln(out)
	fmt.Fprintln(out, "┌"+strings.Repeat("─", boxWidth-2)+"┐")
	for _, item := range versionInfo() {
		line := fmt.Sprintf("  %s    %s", yellow(fmt.Sprintf("%10s", item[0])), white(item[1]))
		lineLen := 10 + 4 + len(item[1]) + 2
		if lineLen < contentWidth {
			line += strings.Repeat(" ", contentWidth-lineLen)
		}
		fmt.Fprintln(out, "│ "+line+" │")
	}
	fmt.Fprintln(out, "└"+strings.Repeat("─", boxWidth-2)+"┘")
	fmt.Fprintln(out, dim("  "+SourceURL))
	fmt.Fprintln(out)
}

// truncateCommit shortens commit hash if it's too long
func truncateCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}
