// Package cli defines the autogit cobra commands.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"autogit.dev/autogit/internal/output"
	"autogit.dev/autogit/internal/workflow"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "autogit",
		Short: "Automate the everyday git sequences: first publish, push, status, fetch, pull",
		Long: `autogit runs fixed sequences of git commands for a project directory and
reports every step as it happens.

  autogit publish -C ./project --url https://github.com/me/project.git
  autogit push -C ./project
  autogit ui

The run stops at the first failing command. Nothing is rolled back.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			output.ConfigureColors(os.Stdout)
		},
	}

	rootCmd.PersistentFlags().StringP("dir", "C", "", "Project directory")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress console output")
	rootCmd.PersistentFlags().Bool("debug", false, "Print debug output")

	rootCmd.AddGroup(
		&cobra.Group{ID: "workflows", Title: "Workflows:"},
		&cobra.Group{ID: "tools", Title: "Tools:"},
	)

	registry := workflow.DefaultRegistry()
	for _, name := range registry.Names() {
		action, _ := registry.Lookup(name)
		rootCmd.AddCommand(newActionCmd(action))
	}

	for _, cmd := range []*cobra.Command{
		newDoctorCmd(),
		newInfoCmd(),
		newConfigCmd(),
		newUICmd(),
		newServeCmd(version),
	} {
		cmd.GroupID = "tools"
		rootCmd.AddCommand(cmd)
	}

	return rootCmd
}
