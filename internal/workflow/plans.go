package workflow

import (
	"strings"

	autogiterrors "autogit.dev/autogit/internal/errors"
	"autogit.dev/autogit/internal/git"
)

// Action names understood by DefaultRegistry
const (
	ActionPublish = "publish"
	ActionPush    = "push"
	ActionStatus  = "status"
	ActionFetch   = "fetch"
	ActionPull    = "pull"
	ActionClone   = "clone"
	ActionCommit  = "commit"
)

const (
	pushedMessage = "Code successfully pushed to remote repository!"
	abortMessage  = "Push process aborted due to error."
)

// FirstPublish turns a plain directory into a repository and pushes it:
// init, add everything, commit "Initial commit", add the remote, rename the
// branch and push.
func FirstPublish(s Session) (Plan, error) {
	if s.RemoteURL == "" {
		return Plan{}, autogiterrors.NewInputError("url", "", autogiterrors.ErrEmptyRemoteURL)
	}
	push := git.PushUpstream(s.Remote, s.Branch)
	if s.PublishMode == PublishForce {
		push = git.PushForce(s.Remote, s.Branch)
	}
	return Plan{
		Name: ActionPublish,
		Dir:  s.Dir,
		Steps: []Step{
			Run(git.Init()),
			Run(git.AddAll()),
			Run(git.Commit(git.InitialCommitMessage)),
			Run(git.RemoteAdd(s.Remote, s.RemoteURL)),
			Run(git.BranchRename(s.Branch)),
			Run(push),
		},
		SuccessMessage: pushedMessage,
		AbortMessage:   abortMessage,
	}, nil
}

// RoutinePush pushes an existing repository, adding the remote first when it
// is not configured yet. Without a URL the remote must already exist.
func RoutinePush(s Session) (Plan, error) {
	probe := Step{Spec: git.RemoteGetURL(s.Remote)}
	if s.RemoteURL != "" {
		probe = Probe(git.RemoteGetURL(s.Remote), Run(git.RemoteAdd(s.Remote, s.RemoteURL)))
	}
	return Plan{
		Name:           ActionPush,
		Dir:            s.Dir,
		Steps:          []Step{probe, Run(git.Push(s.Remote, s.Branch))},
		SuccessMessage: pushedMessage,
		AbortMessage:   abortMessage,
	}, nil
}

// Status runs `git status`
func Status(s Session) (Plan, error) {
	return single(ActionStatus, s.Dir, git.Status()), nil
}

// Fetch runs `git fetch`
func Fetch(s Session) (Plan, error) {
	return single(ActionFetch, s.Dir, git.Fetch()), nil
}

// Pull runs `git pull`
func Pull(s Session) (Plan, error) {
	return single(ActionPull, s.Dir, git.Pull()), nil
}

// Clone clones RemoteURL into Dir/<repository name>. The command runs in Dir,
// so the destination is the bare repository name.
func Clone(s Session) (Plan, error) {
	if s.RemoteURL == "" {
		return Plan{}, autogiterrors.NewInputError("url", "", autogiterrors.ErrEmptyRemoteURL)
	}
	name := RepositoryName(s.RemoteURL)
	if name == "" {
		return Plan{}, autogiterrors.NewInputError("url", s.DisplayURL(), autogiterrors.ErrEmptyRemoteURL)
	}
	return single(ActionClone, s.Dir, git.Clone(s.RemoteURL, name)), nil
}

// Commit stages everything and commits it with Message. An empty message is
// rejected when the plan is validated, before anything runs.
func Commit(s Session) (Plan, error) {
	return Plan{
		Name:  ActionCommit,
		Dir:   s.Dir,
		Steps: []Step{Run(git.AddAll()), Run(git.Commit(s.Message))},
	}, nil
}

func single(name, dir string, spec git.CommandSpec) Plan {
	return Plan{Name: name, Dir: dir, Steps: []Step{Run(spec)}}
}

// RepositoryName derives the directory name git clone would pick for a URL:
// the last path segment without a trailing ".git".
func RepositoryName(remoteURL string) string {
	path := remoteURL
	if ep, err := git.ParseEndpoint(remoteURL); err == nil {
		path = ep.Path
	}
	path = strings.TrimRight(path, "/")
	if i := strings.LastIndexAny(path, "/:"); i >= 0 {
		path = path[i+1:]
	}
	return strings.TrimSuffix(path, ".git")
}
