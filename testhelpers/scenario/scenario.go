// Package scenario provides a high-level test scenario that combines a Scene,
// a runtime Context and a Recorder to provide a terse API for workflow
// integration tests.
package scenario

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"autogit.dev/autogit/internal/output"
	"autogit.dev/autogit/internal/runtime"
	"autogit.dev/autogit/internal/workflow"
	"autogit.dev/autogit/testhelpers"
)

// Scenario represents a high-level test scenario that combines a Scene,
// a runtime Context and the outcome of the last dispatched action.
type Scenario struct {
	T        *testing.T
	Scene    *testhelpers.Scene
	Context  *runtime.Context
	Recorder *output.Recorder

	Outcome workflow.Outcome
	Err     error
}

// NewScenario creates a new Scenario with an optional setup function.
// NOTE: This function is NOT safe for parallel tests as it uses t.Setenv.
func NewScenario(t *testing.T, setup testhelpers.SceneSetup) *Scenario {
	t.Helper()
	t.Setenv("AUTOGIT_TOKEN", "")
	t.Setenv("GITHUB_TOKEN", "")

	scene := testhelpers.NewScene(t, setup)
	ctx, err := runtime.NewContext(context.Background(), nil, output.NewSplog())
	require.NoError(t, err)
	ctx.Splog.SetQuiet(true)

	return &Scenario{
		T:        t,
		Scene:    scene,
		Context:  ctx,
		Recorder: output.NewRecorder(),
	}
}

// Session returns a session for the scene directory with the bare remote as URL
func (s *Scenario) Session() workflow.Session {
	s.T.Helper()
	session, err := s.Context.Session()
	require.NoError(s.T, err)
	session.Dir = s.Scene.Dir
	session.RemoteURL = s.Scene.RemoteDir
	return session
}

// Run dispatches action with the default session adjusted by edit
func (s *Scenario) Run(action string, edit func(*workflow.Session)) *Scenario {
	s.T.Helper()
	session := s.Session()
	if edit != nil {
		edit(&session)
	}
	s.Recorder.Reset()
	s.Outcome, s.Err = s.Context.Dispatch(action, session, s.Recorder)
	return s
}

// WriteFile writes a file into the project directory.
func (s *Scenario) WriteFile(name, contents string) *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Scene.WriteFile(name, contents))
	return s
}

// RunGit runs a git command in the scenario's repository.
func (s *Scenario) RunGit(args ...string) *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Scene.Repo().RunGitCommand(args...))
	return s
}

// ExpectSuccess asserts the last action succeeded.
func (s *Scenario) ExpectSuccess() *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Err, "lines: %v", s.Recorder.Texts())
	require.True(s.T, s.Outcome.Success)
	return s
}

// ExpectFailure asserts the last action failed with an error matching target.
func (s *Scenario) ExpectFailure(target error) *Scenario {
	s.T.Helper()
	require.Error(s.T, s.Err)
	require.False(s.T, s.Outcome.Success)
	if target != nil {
		require.ErrorIs(s.T, s.Err, target)
	}
	return s
}

// ExpectExecuted asserts the git subcommands that ran, in order.
func (s *Scenario) ExpectExecuted(subcommands ...string) *Scenario {
	s.T.Helper()
	executed := make([]string, 0, len(s.Outcome.Results))
	for _, spec := range s.Outcome.Executed() {
		executed = append(executed, spec.Subcommand())
	}
	if len(subcommands) == 0 {
		require.Empty(s.T, executed)
		return s
	}
	require.Equal(s.T, subcommands, executed)
	return s
}

// ExpectRemoteCommits asserts the commit subjects on the bare remote's main branch.
func (s *Scenario) ExpectRemoteCommits(expected ...string) *Scenario {
	s.T.Helper()
	testhelpers.ExpectCommits(s.T, s.Scene.Remote, "main", expected)
	return s
}

// ExpectInSync asserts the local and remote main branches match.
func (s *Scenario) ExpectInSync() *Scenario {
	s.T.Helper()
	testhelpers.ExpectSameRevision(s.T, s.Scene.Repo(), s.Scene.Remote, "main")
	return s
}
