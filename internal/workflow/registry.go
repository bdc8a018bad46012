package workflow

import (
	"context"
	"fmt"
	"sort"

	autogiterrors "autogit.dev/autogit/internal/errors"
	"autogit.dev/autogit/internal/output"
)

// Builder creates the plan for an action from a prepared session
type Builder func(Session) (Plan, error)

// Action describes a registered action
type Action struct {
	Name        string
	Description string
	// NeedsURL marks actions that cannot run without a remote URL
	NeedsURL bool
	// UsesURL marks actions whose commands contain the remote URL. A token
	// is only spliced in for these.
	UsesURL bool
	Build   Builder
}

// Registry maps action names to plan builders
type Registry struct {
	actions map[string]Action
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{actions: make(map[string]Action)}
}

// DefaultRegistry returns a registry with every built-in action
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(Action{Name: ActionPublish, Description: "Initialize, commit and push a project for the first time", NeedsURL: true, UsesURL: true, Build: FirstPublish})
	r.Register(Action{Name: ActionPush, Description: "Push the current branch, adding the remote if missing", UsesURL: true, Build: RoutinePush})
	r.Register(Action{Name: ActionStatus, Description: "Show the working tree status", Build: Status})
	r.Register(Action{Name: ActionFetch, Description: "Fetch from the remote", Build: Fetch})
	r.Register(Action{Name: ActionPull, Description: "Pull from the remote", Build: Pull})
	r.Register(Action{Name: ActionClone, Description: "Clone a repository into the directory", NeedsURL: true, UsesURL: true, Build: Clone})
	r.Register(Action{Name: ActionCommit, Description: "Stage all changes and commit them", Build: Commit})
	return r
}

// Register adds an action. It panics if the name is already registered.
func (r *Registry) Register(action Action) {
	if _, exists := r.actions[action.Name]; exists {
		panic(fmt.Sprintf("action %s already registered", action.Name))
	}
	r.actions[action.Name] = action
}

// Lookup returns the action and whether it exists
func (r *Registry) Lookup(name string) (Action, bool) {
	a, ok := r.actions[name]
	return a, ok
}

// Names returns the registered action names, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.actions))
	for name := range r.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build prepares the session and builds the plan for name
func (r *Registry) Build(name string, s Session) (Plan, error) {
	action, ok := r.Lookup(name)
	if !ok {
		return Plan{}, autogiterrors.NewInputError("action", name, autogiterrors.ErrUnknownAction)
	}
	if !action.UsesURL {
		s.UseToken = false
		s.Token = ""
	}
	prepared, err := s.Prepare()
	if err != nil {
		return Plan{}, err
	}
	return action.Build(prepared)
}

// Dispatch builds the plan for name and runs it with seq. Errors found while
// building are reported to reporter like any other failure.
func (r *Registry) Dispatch(ctx context.Context, seq *Sequencer, name string, s Session, reporter output.Reporter) (Outcome, error) {
	if reporter == nil {
		reporter = output.Discard
	}
	if err := checkDirectory(s.WithDefaults().Dir); err != nil {
		reporter.Report(directoryNotFound(s.Dir))
		return Outcome{FailedStep: -1}, err
	}
	plan, err := r.Build(name, s)
	if err != nil {
		reporter.Report(output.Line{Severity: output.SeverityError, Text: err.Error(), Final: true})
		return Outcome{Plan: plan, FailedStep: -1}, err
	}
	return seq.Execute(ctx, plan, reporter)
}
