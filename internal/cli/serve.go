package cli

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"autogit.dev/autogit/internal/cli/helpers"
	autogitmcp "autogit.dev/autogit/internal/mcp"
	"autogit.dev/autogit/internal/runtime"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run autogit as a Model Context Protocol (MCP) server over stdio.

Every workflow (publish, push, status, fetch, pull, clone, commit) is
exposed as a tool, plus a read-only info tool. Tokens are only read from
AUTOGIT_TOKEN or GITHUB_TOKEN; there is no prompting.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "autogit": {
        "command": "autogit",
        "args": ["serve"]
      }
    }
  }`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				// stdout carries the protocol
				ctx.Splog.SetQuiet(true)
				server := autogitmcp.NewServer(version, ctx)
				return server.Run(cmd.Context(), &mcp.StdioTransport{})
			})
		},
	}
}
