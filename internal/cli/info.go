package cli

import (
	"github.com/spf13/cobra"

	"autogit.dev/autogit/internal/actions"
	"autogit.dev/autogit/internal/cli/helpers"
	"autogit.dev/autogit/internal/runtime"
)

// newInfoCmd creates the info command
func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info [dir]",
		Short: "Show branch, HEAD and remotes of a repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := helpers.FlagString(cmd, "dir")
			if len(args) == 1 {
				dir = args[0]
			}
			if dir == "" {
				dir = "."
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				_, err := actions.InfoAction(ctx, actions.InfoOptions{Dir: dir})
				return err
			})
		},
	}
}
