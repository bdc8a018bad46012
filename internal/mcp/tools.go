package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"autogit.dev/autogit/internal/credentials"
	autogiterrors "autogit.dev/autogit/internal/errors"
	"autogit.dev/autogit/internal/git"
	"autogit.dev/autogit/internal/output"
	"autogit.dev/autogit/internal/runtime"
	"autogit.dev/autogit/internal/workflow"
)

// --- Action tools ---

// ActionInput is the input shared by every action tool. Fields an action does
// not use are ignored.
type ActionInput struct {
	Dir     string `json:"dir"               jsonschema:"project directory (for clone, the parent directory)"`
	URL     string `json:"url,omitempty"     jsonschema:"remote repository URL"`
	Message string `json:"message,omitempty" jsonschema:"commit message for the commit action"`
	// UseToken embeds AUTOGIT_TOKEN or GITHUB_TOKEN into an https URL
	UseToken bool `json:"use_token,omitempty" jsonschema:"embed the token from AUTOGIT_TOKEN or GITHUB_TOKEN in the https URL"`
	Force    bool `json:"force,omitempty"     jsonschema:"publish with git push --force, overwriting the remote branch"`
}

// LineOutput is one reported line
type LineOutput struct {
	Severity string `json:"severity" jsonschema:"info, success or error"`
	Text     string `json:"text"     jsonschema:"line text without marker"`
}

// StepOutput is the result of one git command
type StepOutput struct {
	Command  string `json:"command"            jsonschema:"command line with credentials masked"`
	Success  bool   `json:"success"            jsonschema:"true when git exited with status 0"`
	ExitCode int    `json:"exit_code"          jsonschema:"exit status, -1 when git could not be started"`
	Message  string `json:"message,omitempty"  jsonschema:"trimmed stdout on success, stderr on failure"`
	Inserted bool   `json:"inserted,omitempty" jsonschema:"step was added because a probe failed"`
}

// ActionOutput is the output of every action tool
type ActionOutput struct {
	Action  string       `json:"action"          jsonschema:"action name"`
	Success bool         `json:"success"         jsonschema:"true when every step succeeded"`
	Lines   []LineOutput `json:"lines"           jsonschema:"reported lines in order"`
	Steps   []StepOutput `json:"steps"           jsonschema:"executed git commands in order"`
	Error   string       `json:"error,omitempty" jsonschema:"failure description"`
}

func handleAction(ctx *runtime.Context, action string) mcp.ToolHandlerFor[ActionInput, ActionOutput] {
	return func(reqCtx context.Context, _ *mcp.CallToolRequest, input ActionInput) (*mcp.CallToolResult, ActionOutput, error) {
		session, err := buildSession(ctx, action, input)
		if err != nil {
			return nil, ActionOutput{}, err
		}

		rec := output.NewRecorder()
		outcome, runErr := ctx.Registry.Dispatch(reqCtx, ctx.Sequencer, action, session, rec)
		out := toActionOutput(action, outcome, rec.Lines())
		if runErr != nil {
			out.Error = runErr.Error()
			if autogiterrors.IsInputError(runErr) {
				return nil, out, runErr
			}
		}
		return nil, out, nil
	}
}

func buildSession(ctx *runtime.Context, action string, input ActionInput) (workflow.Session, error) {
	session, err := ctx.Session()
	if err != nil {
		return session, err
	}
	session.Dir = input.Dir
	session.RemoteURL = input.URL
	session.Message = input.Message
	// a configured force mode is not enough, the caller must ask for it
	session.PublishMode = workflow.PublishUpstream
	if input.Force {
		session.PublishMode = workflow.PublishForce
	}
	if a, ok := ctx.Registry.Lookup(action); input.UseToken && ok && a.UsesURL {
		if err := credentials.CheckScheme(session.RemoteURL); err != nil {
			return session, err
		}
		token, err := credentials.ResolveToken("", false, nil)
		if err != nil {
			return session, err
		}
		session.UseToken = true
		session.Token = token
	}
	return session, nil
}

func toActionOutput(action string, outcome workflow.Outcome, lines []output.Line) ActionOutput {
	out := ActionOutput{
		Action:  action,
		Success: outcome.Success,
		Lines:   make([]LineOutput, 0, len(lines)),
		Steps:   make([]StepOutput, 0, len(outcome.Results)),
	}
	for _, l := range lines {
		out.Lines = append(out.Lines, LineOutput{Severity: l.Severity.String(), Text: l.Text})
	}
	for _, r := range outcome.Results {
		out.Steps = append(out.Steps, StepOutput{
			Command:  r.Result.Spec.String(),
			Success:  r.Result.Success,
			ExitCode: r.Result.ExitCode,
			Message:  credentials.Redact(r.Result.Message()),
			Inserted: r.Inserted,
		})
	}
	return out
}

// --- Info tool ---

// InfoInput is the input for the info tool
type InfoInput struct {
	Dir string `json:"dir" jsonschema:"directory inside the repository"`
}

// InfoOutput is the output for the info tool
type InfoOutput struct {
	Root    string              `json:"root"    jsonschema:"work tree root"`
	Branch  string              `json:"branch"  jsonschema:"current branch"`
	Head    string              `json:"head"    jsonschema:"HEAD commit SHA, empty before the first commit"`
	Clean   bool                `json:"clean"   jsonschema:"true when there are no uncommitted changes"`
	Remotes map[string][]string `json:"remotes" jsonschema:"remote URLs by name, credentials masked"`
}

func handleInfo() mcp.ToolHandlerFor[InfoInput, InfoOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input InfoInput) (*mcp.CallToolResult, InfoOutput, error) {
		if input.Dir == "" {
			return nil, InfoOutput{}, errors.New("dir is required")
		}
		repo, err := git.OpenRepository(input.Dir)
		if err != nil {
			return nil, InfoOutput{}, fmt.Errorf("opening repository: %w", err)
		}
		info, err := repo.Info()
		if err != nil {
			return nil, InfoOutput{}, fmt.Errorf("reading repository: %w", err)
		}

		remotes := make(map[string][]string, len(info.Remotes))
		for name, urls := range info.Remotes {
			remotes[name] = credentials.RedactAll(urls)
		}
		return nil, InfoOutput{
			Root:    info.Root,
			Branch:  info.Branch,
			Head:    info.Head,
			Clean:   info.Clean,
			Remotes: remotes,
		}, nil
	}
}
