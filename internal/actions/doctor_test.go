package actions_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"autogit.dev/autogit/internal/actions"
	"autogit.dev/autogit/internal/git"
	"autogit.dev/autogit/internal/github"
	"autogit.dev/autogit/internal/output"
	"autogit.dev/autogit/internal/runtime"
	"autogit.dev/autogit/testhelpers"
)

type fakeChecker struct {
	status *github.RepoStatus
	owner  string
	repo   string
}

func (f *fakeChecker) CheckRepository(_ context.Context, owner, repo string) (*github.RepoStatus, error) {
	f.owner, f.repo = owner, repo
	return f.status, nil
}

func newTestContext(t *testing.T) (*runtime.Context, *bytes.Buffer) {
	t.Helper()
	t.Setenv("AUTOGIT_TOKEN", "")
	t.Setenv("GITHUB_TOKEN", "")

	var buf bytes.Buffer
	splog, err := output.NewSplogWithConfig(output.SplogConfig{Writer: &buf})
	require.NoError(t, err)
	ctx, err := runtime.NewContext(context.Background(), nil, splog)
	require.NoError(t, err)
	return ctx, &buf
}

func TestDoctorAction(t *testing.T) {
	t.Run("healthy repository with local remote", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.InitializedSceneSetup)
		require.NoError(t, scene.Repo().AddRemote("origin", scene.RemoteDir))
		ctx, buf := newTestContext(t)

		report, err := actions.DoctorAction(ctx, actions.DoctorOptions{Dir: scene.Dir})
		require.NoError(t, err, buf.String())
		require.Empty(t, report.Errors)
		require.Empty(t, report.Warnings)
		require.Contains(t, buf.String(), "git version")
		require.Contains(t, buf.String(), "All checks passed")
	})

	t.Run("missing directory is an error", func(t *testing.T) {
		testhelpers.RequireGit(t)
		ctx, buf := newTestContext(t)

		report, err := actions.DoctorAction(ctx, actions.DoctorOptions{Dir: filepath.Join(t.TempDir(), "nope")})
		require.Error(t, err)
		require.Len(t, report.Errors, 1)
		require.Contains(t, buf.String(), "directory not found")
	})

	t.Run("plain directory warns", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.FilesSceneSetup)
		ctx, _ := newTestContext(t)

		report, err := actions.DoctorAction(ctx, actions.DoctorOptions{Dir: scene.Dir, RemoteURL: scene.RemoteDir})
		require.NoError(t, err)
		require.NotEmpty(t, report.Warnings)
	})

	t.Run("missing git binary", func(t *testing.T) {
		ctx, _ := newTestContext(t)
		ctx.WithRunner(git.NewCommandRunner(git.WithExecutable("autogit-no-such-git")))

		report, err := actions.DoctorAction(ctx, actions.DoctorOptions{Dir: t.TempDir()})
		require.Error(t, err)
		require.Contains(t, report.Errors[0], "not installed")
	})

	t.Run("github repository checked with token", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.InitializedSceneSetup)
		ctx, _ := newTestContext(t)
		checker := &fakeChecker{status: &github.RepoStatus{Exists: true, CanPush: false}}
		var gotHost, gotToken string
		ctx.GitHub = func(_ context.Context, host, token string) (github.Checker, error) {
			gotHost, gotToken = host, token
			return checker, nil
		}

		report, err := actions.DoctorAction(ctx, actions.DoctorOptions{
			Dir:       scene.Dir,
			RemoteURL: "https://github.com/octo/widget.git",
			Token:     "tok",
		})
		require.Error(t, err)
		require.Equal(t, "github.com", gotHost)
		require.Equal(t, "tok", gotToken)
		require.Equal(t, "octo", checker.owner)
		require.Equal(t, "widget", checker.repo)
		require.Contains(t, report.Errors[0], "cannot push")
	})

	t.Run("github check skipped without token", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.InitializedSceneSetup)
		ctx, buf := newTestContext(t)
		ctx.GitHub = func(context.Context, string, string) (github.Checker, error) {
			t.Fatal("GitHub must not be contacted without a token")
			return nil, nil
		}

		_, err := actions.DoctorAction(ctx, actions.DoctorOptions{Dir: scene.Dir, RemoteURL: "https://github.com/octo/widget.git"})
		require.NoError(t, err)
		require.Contains(t, buf.String(), "💡 set AUTOGIT_TOKEN or GITHUB_TOKEN")
	})
}

func TestInfoAction(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.InitializedSceneSetup)
	require.NoError(t, scene.Repo().AddRemote("origin", "https://:secret@github.com/octo/widget.git"))
	ctx, buf := newTestContext(t)

	info, err := actions.InfoAction(ctx, actions.InfoOptions{Dir: scene.Dir})
	require.NoError(t, err)
	require.Equal(t, "main", info.Branch)
	require.True(t, info.Clean)
	require.Contains(t, buf.String(), "Branch:     main")
	require.Contains(t, buf.String(), "origin")
	require.NotContains(t, buf.String(), "secret")

	_, err = actions.InfoAction(ctx, actions.InfoOptions{Dir: t.TempDir()})
	require.Error(t, err)
}
