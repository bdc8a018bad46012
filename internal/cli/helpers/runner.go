// Package helpers provides shared plumbing for CLI commands.
package helpers

import (
	"os"

	"github.com/spf13/cobra"

	"autogit.dev/autogit/internal/config"
	"autogit.dev/autogit/internal/output"
	"autogit.dev/autogit/internal/runtime"
)

// Run loads the configuration, sets up logging and provides a runtime
// context to a command's execution function.
func Run(cmd *cobra.Command, fn func(ctx *runtime.Context) error) error {
	cfg, path, err := config.LoadDefault()
	if err != nil {
		return err
	}

	splog, err := output.NewSplogWithConfig(output.SplogConfig{
		Writer:      cmd.OutOrStdout(),
		LogFilePath: cfg.LogFile(),
		Debug:       FlagBool(cmd, "debug"),
	})
	if err != nil {
		return err
	}
	defer func() { _ = splog.Close() }()
	splog.SetQuiet(FlagBool(cmd, "quiet"))

	ctx, err := runtime.NewContext(cmd.Context(), cfg, splog)
	if err != nil {
		return err
	}
	ctx.ConfigPath = path
	return fn(ctx)
}

// IsInteractive reports whether both stdin and stdout are terminals and
// prompting has not been disabled with AUTOGIT_NON_INTERACTIVE.
func IsInteractive() bool {
	if os.Getenv("AUTOGIT_NON_INTERACTIVE") != "" {
		return false
	}
	return output.IsTerminal(os.Stdin) && output.IsTerminal(os.Stdout)
}

// FlagBool reads a boolean flag from the command or the root's persistent flags
func FlagBool(cmd *cobra.Command, name string) bool {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup(name)
	}
	return flag != nil && flag.Value.String() == "true"
}

// FlagString reads a string flag from the command or the root's persistent flags
func FlagString(cmd *cobra.Command, name string) string {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup(name)
	}
	if flag == nil {
		return ""
	}
	return flag.Value.String()
}
