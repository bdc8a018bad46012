// Package mcp provides a Model Context Protocol server for autogit.
// It exposes the git workflows as MCP tools that any MCP-capable agent can use.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"autogit.dev/autogit/internal/runtime"
	"autogit.dev/autogit/internal/workflow"
)

// NewServer creates an MCP server with a tool for every registered action
// plus the read-only info tool.
func NewServer(version string, ctx *runtime.Context) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "autogit",
		Version: version,
	}, nil)
	registerTools(server, ctx)
	return server
}

func boolPtr(b bool) *bool {
	return &b
}

func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations marks tools that change the repository or talk to a remote.
func writeAnnotations(destructive, openWorld bool) *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(destructive),
		OpenWorldHint:   boolPtr(openWorld),
	}
}

func annotationsFor(action string) *mcp.ToolAnnotations {
	switch action {
	case workflow.ActionStatus:
		return readOnlyAnnotations()
	case workflow.ActionPublish:
		// force mode overwrites the remote branch
		return writeAnnotations(true, true)
	case workflow.ActionCommit:
		return writeAnnotations(false, false)
	default:
		return writeAnnotations(false, true)
	}
}

func registerTools(server *mcp.Server, ctx *runtime.Context) {
	for _, name := range ctx.Registry.Names() {
		action, _ := ctx.Registry.Lookup(name)
		mcp.AddTool(server, &mcp.Tool{
			Name:        action.Name,
			Description: action.Description + ". Returns every reported line and the result of each git command.",
			Annotations: annotationsFor(action.Name),
		}, handleAction(ctx, action.Name))
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "info",
		Description: "Show the repository root, current branch, HEAD and remotes of a directory.",
		Annotations: readOnlyAnnotations(),
	}, handleInfo())
}
