package runtime

import (
	"context"

	"autogit.dev/autogit/internal/config"
	"autogit.dev/autogit/internal/git"
	"autogit.dev/autogit/internal/github"
	"autogit.dev/autogit/internal/output"
	"autogit.dev/autogit/internal/workflow"
)

// GitHubFactory creates a repository checker for a host and token
type GitHubFactory func(ctx context.Context, hostname, token string) (github.Checker, error)

// Context provides access to configuration, output and git execution for commands
type Context struct {
	Context    context.Context
	Splog      *output.Splog
	Config     *config.Config
	ConfigPath string
	Runner     git.Runner
	Sequencer  *workflow.Sequencer
	Registry   *workflow.Registry
	GitHub     GitHubFactory
}

// NewContext wires a runner, sequencer and registry from cfg. A nil cfg
// uses defaults and a nil splog writes to stdout.
func NewContext(ctx context.Context, cfg *config.Config, splog *output.Splog) (*Context, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg == nil {
		cfg = &config.Config{}
	}
	if splog == nil {
		splog = output.NewSplog()
	}

	timeout, err := cfg.CommandTimeout()
	if err != nil {
		return nil, err
	}
	terminalPrompt, err := cfg.TerminalPrompt()
	if err != nil {
		return nil, err
	}
	runner := git.NewCommandRunner(
		git.WithExecutable(cfg.GitExecutable()),
		git.WithTimeout(timeout),
		git.WithTerminalPrompt(terminalPrompt),
	)

	return &Context{
		Context:   ctx,
		Splog:     splog,
		Config:    cfg,
		Runner:    runner,
		Sequencer: workflow.NewSequencer(runner, workflow.WithLogger(splog.Logger())),
		Registry:  workflow.DefaultRegistry(),
		GitHub:    defaultGitHub,
	}, nil
}

func defaultGitHub(ctx context.Context, hostname, token string) (github.Checker, error) {
	return github.NewClient(ctx, hostname, token)
}

// WithRunner replaces the runner and rebuilds the sequencer around it
func (c *Context) WithRunner(runner git.Runner) *Context {
	c.Runner = runner
	c.Sequencer = workflow.NewSequencer(runner, workflow.WithLogger(c.Splog.Logger()))
	return c
}

// Session returns a session seeded with the configured remote, branch and
// publish mode
func (c *Context) Session() (workflow.Session, error) {
	mode, err := workflow.ParsePublishMode(c.Config.PublishMode())
	if err != nil {
		return workflow.Session{}, err
	}
	return workflow.Session{
		Remote:      c.Config.RemoteName(),
		Branch:      c.Config.BranchName(),
		PublishMode: mode,
	}, nil
}

// Dispatch runs the named action through the registry and sequencer
func (c *Context) Dispatch(action string, session workflow.Session, reporter output.Reporter) (workflow.Outcome, error) {
	return c.Registry.Dispatch(c.Context, c.Sequencer, action, session, reporter)
}
