package cli

import (
	"github.com/spf13/cobra"

	"autogit.dev/autogit/internal/actions"
	"autogit.dev/autogit/internal/cli/helpers"
	"autogit.dev/autogit/internal/output"
	"autogit.dev/autogit/internal/runtime"
)

// newDoctorCmd creates the doctor command
func newDoctorCmd() *cobra.Command {
	var remoteURL string

	cmd := &cobra.Command{
		Use:   "doctor [dir]",
		Short: "Diagnose common issues before publishing or pushing",
		Long: `Run diagnostic checks on your environment and project directory.

The doctor command checks:
  - Environment: git on PATH and its version
  - Repository: directory, repository state, branch and configured remote
  - Remote: URL form and, for GitHub with a token, that the token can push`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := helpers.FlagString(cmd, "dir")
			if len(args) == 1 {
				dir = args[0]
			}
			if dir == "" {
				dir = "."
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				_, err := actions.DoctorAction(ctx, actions.DoctorOptions{Dir: dir, RemoteURL: remoteURL})
				if err != nil {
					return output.NewFailure(err.Error(), err)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&remoteURL, "url", "", "Remote URL to check instead of the configured remote")
	return cmd
}
