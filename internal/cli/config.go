package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"autogit.dev/autogit/internal/config"
)

// newConfigCmd creates the config command
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Get and set user configuration",
		Long: fmt.Sprintf(`Get and set autogit user configuration.

The file lives at $AUTOGIT_CONFIG or <user config dir>/autogit/config.yml.
Directories, URLs, commit messages and tokens are never stored.

Keys: %s

Examples:
  autogit config get branch
  autogit config set publish.mode force
  autogit config set command.timeout 2m`, strings.Join(config.Keys(), ", ")),
	}

	cmd.AddCommand(newConfigGetCmd())
	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigPathCmd())
	cmd.AddCommand(newConfigListCmd())

	return cmd
}

// effective returns the value used at runtime for key, falling back to defaults
func effective(cfg *config.Config, key string) (string, error) {
	switch key {
	case "remote":
		return cfg.RemoteName(), nil
	case "branch":
		return cfg.BranchName(), nil
	case "publish.mode":
		return cfg.PublishMode(), nil
	case "command.git":
		return cfg.GitExecutable(), nil
	case "command.terminal_prompt":
		allowed, err := cfg.TerminalPrompt()
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(allowed), nil
	default:
		return cfg.Get(key)
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := config.LoadDefault()
			if err != nil {
				return err
			}
			value, err := effective(cfg, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value (an empty value restores the default)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.DefaultPath()
			if err != nil {
				return err
			}
			// Load without env overrides so they are not written back.
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s to: %s\n", args[0], args[1])
			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.DefaultPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every key with its effective value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := config.LoadDefault()
			if err != nil {
				return err
			}
			for _, key := range config.Keys() {
				value, err := effective(cfg, key)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", key, value)
			}
			return nil
		},
	}
}
