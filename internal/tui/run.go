package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"autogit.dev/autogit/internal/output"
	"autogit.dev/autogit/internal/runtime"
	"autogit.dev/autogit/internal/workflow"
)

// Run shows the form until the user quits. Console logging is silenced while
// the form owns the screen; quitting cancels a running workflow.
func Run(ctx *runtime.Context, initial workflow.Session) error {
	runCtx, cancel := context.WithCancel(ctx.Context)
	defer cancel()

	wasQuiet := ctx.Splog.IsQuiet()
	ctx.Splog.SetQuiet(true)
	defer ctx.Splog.SetQuiet(wasQuiet)

	base, err := ctx.Session()
	if err != nil {
		return err
	}
	base.Dir = initial.Dir
	base.RemoteURL = initial.RemoteURL
	if initial.PublishMode != "" {
		base.PublishMode = initial.PublishMode
	}

	program := tea.NewProgram(NewModel(runCtx, registryDispatcher{ctx}, base), tea.WithAltScreen(), tea.WithContext(runCtx))
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// registryDispatcher runs actions through the context's registry and sequencer
type registryDispatcher struct {
	rctx *runtime.Context
}

func (d registryDispatcher) Dispatch(ctx context.Context, action string, session workflow.Session, reporter output.Reporter) (workflow.Outcome, error) {
	return d.rctx.Registry.Dispatch(ctx, d.rctx.Sequencer, action, session, reporter)
}
