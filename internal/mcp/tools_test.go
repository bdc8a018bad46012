package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	autogiterrors "autogit.dev/autogit/internal/errors"
	"autogit.dev/autogit/internal/git"
	"autogit.dev/autogit/internal/output"
	"autogit.dev/autogit/internal/runtime"
	"autogit.dev/autogit/internal/workflow"
	"autogit.dev/autogit/testhelpers"
)

type mockRunner struct {
	calls []git.CommandSpec
	fail  string
}

func (m *mockRunner) Run(_ context.Context, _ string, spec git.CommandSpec) git.ExecutionResult {
	m.calls = append(m.calls, spec)
	if spec.Subcommand() == m.fail {
		return git.ExecutionResult{
			Spec:     spec,
			Stderr:   "fatal: nope\n",
			ExitCode: 128,
			Err:      autogiterrors.NewGitCommandError(spec.Name(), spec.Args(), "", "fatal: nope\n", 128, nil),
		}
	}
	return git.ExecutionResult{Spec: spec, Success: true, Stdout: "ok\n"}
}

func makeTestContext(t *testing.T, runner git.Runner) *runtime.Context {
	t.Helper()
	ctx, err := runtime.NewContext(context.Background(), nil, output.NewSplog())
	require.NoError(t, err)
	return ctx.WithRunner(runner)
}

func TestHandleAction_Success(t *testing.T) {
	runner := &mockRunner{}
	handler := handleAction(makeTestContext(t, runner), workflow.ActionPublish)

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, ActionInput{
		Dir: t.TempDir(),
		URL: "https://github.com/octo/widget.git",
	})
	require.NoError(t, err)
	require.True(t, out.Success)
	require.Equal(t, "publish", out.Action)
	require.Len(t, out.Steps, 6)
	require.Equal(t, "git push -u origin main", out.Steps[5].Command)
	require.Equal(t, "Code successfully pushed to remote repository!", out.Lines[len(out.Lines)-1].Text)
}

func TestHandleAction_Force(t *testing.T) {
	runner := &mockRunner{}
	handler := handleAction(makeTestContext(t, runner), workflow.ActionPublish)

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, ActionInput{
		Dir:   t.TempDir(),
		URL:   "https://github.com/octo/widget.git",
		Force: true,
	})
	require.NoError(t, err)
	require.Equal(t, "git push --force origin HEAD:main", out.Steps[5].Command)
}

func TestHandleAction_CommandFailure(t *testing.T) {
	runner := &mockRunner{fail: "pull"}
	handler := handleAction(makeTestContext(t, runner), workflow.ActionPull)

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, ActionInput{Dir: t.TempDir()})
	require.NoError(t, err)
	require.False(t, out.Success)
	require.NotEmpty(t, out.Error)
	require.Len(t, out.Steps, 1)
	require.Equal(t, 128, out.Steps[0].ExitCode)
	require.Equal(t, "fatal: nope", out.Steps[0].Message)
	require.Equal(t, "error", out.Lines[len(out.Lines)-1].Severity)
}

func TestHandleAction_InputErrors(t *testing.T) {
	runner := &mockRunner{}
	ctx := makeTestContext(t, runner)

	_, _, err := handleAction(ctx, workflow.ActionStatus)(context.Background(), &mcp.CallToolRequest{}, ActionInput{Dir: "/no/such/dir"})
	require.ErrorIs(t, err, autogiterrors.ErrDirectoryNotFound)

	_, _, err = handleAction(ctx, workflow.ActionCommit)(context.Background(), &mcp.CallToolRequest{}, ActionInput{Dir: t.TempDir()})
	require.ErrorIs(t, err, autogiterrors.ErrEmptyCommitMessage)

	t.Setenv("AUTOGIT_TOKEN", "")
	t.Setenv("GITHUB_TOKEN", "")
	_, _, err = handleAction(ctx, workflow.ActionPush)(context.Background(), &mcp.CallToolRequest{}, ActionInput{Dir: t.TempDir(), URL: "https://h/o/r", UseToken: true})
	require.ErrorIs(t, err, autogiterrors.ErrEmptyToken)

	require.Empty(t, runner.calls)
}

func TestHandleAction_TokenScope(t *testing.T) {
	t.Setenv("AUTOGIT_TOKEN", "")
	t.Setenv("GITHUB_TOKEN", "")

	t.Run("ssh URL is rejected before the token is looked up", func(t *testing.T) {
		runner := &mockRunner{}
		_, _, err := handleAction(makeTestContext(t, runner), workflow.ActionPush)(context.Background(), &mcp.CallToolRequest{},
			ActionInput{Dir: t.TempDir(), URL: "git@github.com:o/r.git", UseToken: true})
		require.ErrorIs(t, err, autogiterrors.ErrUnsupportedScheme)
		require.Empty(t, runner.calls)
	})

	t.Run("actions without a URL ignore the token", func(t *testing.T) {
		runner := &mockRunner{}
		_, out, err := handleAction(makeTestContext(t, runner), workflow.ActionStatus)(context.Background(), &mcp.CallToolRequest{},
			ActionInput{Dir: t.TempDir(), UseToken: true})
		require.NoError(t, err)
		require.True(t, out.Success)
	})
}

func TestHandleAction_TokenMasked(t *testing.T) {
	t.Setenv("AUTOGIT_TOKEN", "s3cret")
	runner := &mockRunner{fail: "remote"}
	handler := handleAction(makeTestContext(t, runner), workflow.ActionPush)

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, ActionInput{
		Dir:      t.TempDir(),
		URL:      "https://github.com/octo/widget.git",
		UseToken: true,
	})
	require.NoError(t, err)
	require.False(t, out.Success)
	for _, step := range out.Steps {
		require.NotContains(t, step.Command, "s3cret")
	}
	for _, line := range out.Lines {
		require.NotContains(t, line.Text, "s3cret")
	}
}

func TestHandleInfo(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.InitializedSceneSetup)
	require.NoError(t, scene.Repo().AddRemote("origin", scene.RemoteDir))

	_, out, err := handleInfo()(context.Background(), &mcp.CallToolRequest{}, InfoInput{Dir: scene.Dir})
	require.NoError(t, err)
	require.Equal(t, "main", out.Branch)
	require.NotEmpty(t, out.Head)
	require.Equal(t, []string{scene.RemoteDir}, out.Remotes["origin"])

	_, _, err = handleInfo()(context.Background(), &mcp.CallToolRequest{}, InfoInput{})
	require.Error(t, err)
}

func TestNewServer(t *testing.T) {
	server := NewServer("test", makeTestContext(t, &mockRunner{}))
	require.NotNil(t, server)
}
