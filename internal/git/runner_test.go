package git_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	autogiterrors "autogit.dev/autogit/internal/errors"
	"autogit.dev/autogit/internal/git"
	"autogit.dev/autogit/testhelpers"
)

func TestCommandRunner(t *testing.T) {
	t.Run("success surfaces trimmed stdout", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.InitializedSceneSetup)
		runner := git.NewCommandRunner()

		result := runner.Run(context.Background(), scene.Dir, git.Git("rev-parse", "--abbrev-ref", "HEAD"))
		require.True(t, result.Success)
		require.NoError(t, result.Err)
		require.Equal(t, 0, result.ExitCode)
		require.Equal(t, "main\n", result.Stdout)
		require.Equal(t, "main", result.Message())
	})

	t.Run("failure surfaces trimmed stderr", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.InitializedSceneSetup)
		runner := git.NewCommandRunner()

		result := runner.Run(context.Background(), scene.Dir, git.RemoteGetURL("origin"))
		require.False(t, result.Success)
		require.NotZero(t, result.ExitCode)
		require.ErrorIs(t, result.Err, autogiterrors.ErrCommandFailed)
		require.False(t, result.LaunchFailed())
		require.Contains(t, result.Message(), "origin")
		require.Equal(t, result.Message(), strings.TrimSpace(result.Stderr))
	})

	t.Run("runs in the given directory", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)
		runner := git.NewCommandRunner()

		result := runner.Run(context.Background(), scene.Dir, git.Init())
		require.True(t, result.Success, result.Message())
		_, err := os.Stat(filepath.Join(scene.Dir, ".git"))
		require.NoError(t, err)
	})

	t.Run("missing executable is a launch failure", func(t *testing.T) {
		dir := t.TempDir()
		runner := git.NewCommandRunner(git.WithExecutable("autogit-no-such-git-binary"))

		result := runner.Run(context.Background(), dir, git.Status())
		require.False(t, result.Success)
		require.True(t, result.LaunchFailed())
		require.True(t, result.ToolNotFound())
		require.ErrorIs(t, result.Err, autogiterrors.ErrToolNotFound)
		require.NotErrorIs(t, result.Err, autogiterrors.ErrCommandFailed)
		require.NotEmpty(t, result.Message())
	})

	t.Run("missing directory is a launch failure, not tool-not-found", func(t *testing.T) {
		testhelpers.RequireGit(t)
		runner := git.NewCommandRunner()

		result := runner.Run(context.Background(), filepath.Join(t.TempDir(), "missing"), git.Status())
		require.False(t, result.Success)
		require.True(t, result.LaunchFailed())
		require.False(t, result.ToolNotFound())
	})

	t.Run("invalid spec is rejected without launching", func(t *testing.T) {
		runner := git.NewCommandRunner(git.WithExecutable("autogit-no-such-git-binary"))

		result := runner.Run(context.Background(), t.TempDir(), git.Commit(""))
		require.False(t, result.Success)
		require.ErrorIs(t, result.Err, autogiterrors.ErrEmptyCommitMessage)
		require.False(t, result.LaunchFailed())
		require.Zero(t, result.Duration)
	})

	t.Run("error text redacts credentials", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.InitializedSceneSetup)
		runner := git.NewCommandRunner()

		// set-url on a missing remote fails and echoes its arguments
		result := runner.Run(context.Background(), scene.Dir, git.Git("remote", "set-url", "nope", "https://:secret@example.com/r.git"))
		require.False(t, result.Success)
		require.NotContains(t, result.Err.Error(), "secret")
	})

	t.Run("timeout stops the command", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.InitializedSceneSetup)
		runner := git.NewCommandRunner(git.WithTimeout(time.Nanosecond))

		result := runner.Run(context.Background(), scene.Dir, git.Status())
		require.False(t, result.Success)
		require.ErrorIs(t, result.Err, context.DeadlineExceeded)
	})
}

func TestExecutionResultMessage(t *testing.T) {
	launchErr := autogiterrors.NewLaunchError("git", errors.New("permission denied"))

	tests := []struct {
		name   string
		result git.ExecutionResult
		want   string
	}{
		{"success trims stdout", git.ExecutionResult{Success: true, Stdout: "  done\n"}, "done"},
		{"success with blank stdout", git.ExecutionResult{Success: true, Stdout: " \n\t", Stderr: "ignored"}, ""},
		{"failure prefers stderr", git.ExecutionResult{Stdout: "out", Stderr: "\nfatal: boom\n"}, "fatal: boom"},
		{"failure falls back to stdout", git.ExecutionResult{Stdout: "  out\n"}, "out"},
		{"failure with blank stderr falls back to stdout", git.ExecutionResult{Stdout: "out", Stderr: "  \n"}, "out"},
		{"launch failure uses the error", git.ExecutionResult{Err: launchErr}, launchErr.Error()},
		{"launch failure keeps captured output", git.ExecutionResult{Err: launchErr, Stderr: "partial"}, "partial"},
		{"failure with nothing captured", git.ExecutionResult{Err: errors.New("exit status 1")}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.result.Message())
		})
	}
}
