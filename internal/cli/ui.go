package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"autogit.dev/autogit/internal/cli/helpers"
	"autogit.dev/autogit/internal/runtime"
	"autogit.dev/autogit/internal/tui"
	"autogit.dev/autogit/internal/workflow"
)

var errNotInteractive = errors.New("ui needs an interactive terminal")

// newUICmd creates the ui command
func newUICmd() *cobra.Command {
	var remoteURL string

	cmd := &cobra.Command{
		Use:   "ui [dir]",
		Short: "Open the interactive form",
		Long: `Open a terminal form with the project directory, repository URL, an
optional commit message and token, and one button per workflow.

Push and Publish clear the log before they start. Quitting while a
workflow runs stops it after the current git command.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !helpers.IsInteractive() {
				return errNotInteractive
			}
			dir := helpers.FlagString(cmd, "dir")
			if len(args) == 1 {
				dir = args[0]
			}
			if dir == "" {
				if wd, err := os.Getwd(); err == nil {
					dir = wd
				}
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return tui.Run(ctx, workflow.Session{Dir: dir, RemoteURL: remoteURL})
			})
		},
	}

	cmd.Flags().StringVar(&remoteURL, "url", "", "Prefill the repository URL")
	return cmd
}
