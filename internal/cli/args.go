package cli

import (
	"github.com/ariel-frischer/devkit/internal/cli/shared"
	clierrors "github.com/ariel-frischer/devkit/internal/errors"
	"github.com/spf13/cobra"
)

// withUsage turns a positional-argument failure into an argument error that
// shows the command's usage line.
func withUsage(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return shared.WithExitCode(shared.ExitInvalidArguments,
				clierrors.Usage(err.Error(), cmd.UseLine()))
		}
		return nil
	}
}
