package workflow

import (
	autogiterrors "autogit.dev/autogit/internal/errors"
	"autogit.dev/autogit/internal/git"
)

// Step is one command in a plan
type Step struct {
	Spec git.CommandSpec
	// Probe marks a step whose failure is expected in some states. A failed
	// probe does not abort the plan; OnFailure runs immediately after it.
	Probe     bool
	OnFailure []Step
}

// Run creates a regular step
func Run(spec git.CommandSpec) Step {
	return Step{Spec: spec}
}

// Probe creates a probe step with the steps to insert when it fails
func Probe(spec git.CommandSpec, onFailure ...Step) Step {
	return Step{Spec: spec, Probe: true, OnFailure: onFailure}
}

// Plan is a named, ordered list of steps and the directory they run in
type Plan struct {
	Name  string
	Dir   string
	Steps []Step

	// SuccessMessage and AbortMessage are reported once the plan finishes.
	// Empty values fall back to generic text built from Name.
	SuccessMessage string
	AbortMessage   string
}

// Validate checks every step, including the ones a probe may insert, without
// running anything.
func (p Plan) Validate() error {
	if len(p.Steps) == 0 {
		return autogiterrors.NewInputError("plan", p.Name, autogiterrors.ErrEmptyCommand)
	}
	return validateSteps(p.Steps)
}

func validateSteps(steps []Step) error {
	for _, step := range steps {
		if err := step.Spec.Validate(); err != nil {
			return err
		}
		if err := validateSteps(step.OnFailure); err != nil {
			return err
		}
	}
	return nil
}

// Specs returns the commands of the plan's top-level steps in order
func (p Plan) Specs() []git.CommandSpec {
	specs := make([]git.CommandSpec, len(p.Steps))
	for i, step := range p.Steps {
		specs[i] = step.Spec
	}
	return specs
}

func (p Plan) successText() string {
	if p.SuccessMessage != "" {
		return p.SuccessMessage
	}
	return p.Name + " completed successfully"
}

func (p Plan) abortText() string {
	if p.AbortMessage != "" {
		return p.AbortMessage
	}
	return p.Name + " aborted due to error."
}
