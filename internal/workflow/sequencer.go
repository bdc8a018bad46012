package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	autogiterrors "autogit.dev/autogit/internal/errors"
	"autogit.dev/autogit/internal/git"
	"autogit.dev/autogit/internal/output"
)

// StepResult pairs an executed step with its result
type StepResult struct {
	// Number is the 1-based execution position
	Number int
	Step   Step
	// Inserted is true for steps added by a failed probe
	Inserted bool
	Result   git.ExecutionResult
}

// Outcome summarizes a plan run. Results holds exactly the steps that ran,
// in the order they ran.
type Outcome struct {
	Plan    Plan
	Success bool
	Results []StepResult
	// FailedStep is the index into Results of the step that aborted the
	// plan, or -1.
	FailedStep int
}

// Executed returns the commands that ran, in order
func (o Outcome) Executed() []git.CommandSpec {
	specs := make([]git.CommandSpec, len(o.Results))
	for i, r := range o.Results {
		specs[i] = r.Result.Spec
	}
	return specs
}

// Sequencer runs plans one step at a time through a git.Runner
type Sequencer struct {
	runner git.Runner
	logger *slog.Logger
}

// SequencerOption configures a Sequencer
type SequencerOption func(*Sequencer)

// WithLogger sends step timings and results to logger
func WithLogger(logger *slog.Logger) SequencerOption {
	return func(s *Sequencer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSequencer creates a Sequencer
func NewSequencer(runner git.Runner, opts ...SequencerOption) *Sequencer {
	s := &Sequencer{
		runner: runner,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Execute runs plan in plan.Dir
func (s *Sequencer) Execute(ctx context.Context, plan Plan, reporter output.Reporter) (Outcome, error) {
	return s.Run(ctx, plan, plan.Dir, reporter)
}

// Run validates dir and plan, then runs the steps in order. It returns at the
// first failing non-probe step with an error wrapping that step's failure.
// Validation errors are *errors.InputError and mean nothing was launched.
func (s *Sequencer) Run(ctx context.Context, plan Plan, dir string, reporter output.Reporter) (Outcome, error) {
	if reporter == nil {
		reporter = output.Discard
	}
	outcome := Outcome{Plan: plan, FailedStep: -1}

	if err := checkDirectory(dir); err != nil {
		reporter.Report(directoryNotFound(dir))
		return outcome, err
	}
	if err := plan.Validate(); err != nil {
		reporter.Report(output.Line{Severity: output.SeverityError, Text: err.Error(), Final: true})
		return outcome, err
	}

	s.logger.Debug("running plan", "plan", plan.Name, "dir", dir, "steps", len(plan.Steps))

	type pending struct {
		step     Step
		inserted bool
	}
	queue := make([]pending, 0, len(plan.Steps))
	for _, step := range plan.Steps {
		queue = append(queue, pending{step: step})
	}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			reporter.Report(output.Line{Severity: output.SeverityError, Text: plan.abortText(), Final: true})
			return outcome, fmt.Errorf("%s canceled: %w", plan.Name, err)
		}

		next := queue[0]
		queue = queue[1:]
		number := len(outcome.Results) + 1

		reporter.Report(output.Line{Severity: output.SeverityInfo, Text: "Running: " + next.step.Spec.String(), Step: number})
		result := s.runner.Run(ctx, dir, next.step.Spec)
		outcome.Results = append(outcome.Results, StepResult{
			Number:   number,
			Step:     next.step,
			Inserted: next.inserted,
			Result:   result,
		})
		s.logger.Debug("step finished",
			"plan", plan.Name,
			"step", number,
			"command", result.Spec.String(),
			"success", result.Success,
			"exit_code", result.ExitCode,
			"duration", result.Duration,
		)

		if result.Success {
			// The line shows the command when stdout is empty so every step
			// gets a visible success line. result.Message() stays the trimmed
			// stdout.
			text := result.Message()
			if text == "" {
				text = result.Spec.String()
			}
			reporter.Report(output.Line{Severity: output.SeveritySuccess, Text: text, Step: number})
			continue
		}

		if next.step.Probe {
			reporter.Report(output.Line{Severity: output.SeverityInfo, Text: probeText(result), Step: number})
			inserted := make([]pending, 0, len(next.step.OnFailure)+len(queue))
			for _, step := range next.step.OnFailure {
				inserted = append(inserted, pending{step: step, inserted: true})
			}
			queue = append(inserted, queue...)
			continue
		}

		outcome.FailedStep = len(outcome.Results) - 1
		reporter.Report(output.Line{Severity: output.SeverityError, Text: failureText(result), Step: number})
		reporter.Report(output.Line{Severity: output.SeverityError, Text: plan.abortText(), Final: true})
		s.logger.Warn("plan aborted", "plan", plan.Name, "step", number, "error", result.Err)
		return outcome, fmt.Errorf("%s: step %d failed: %w", plan.Name, number, result.Err)
	}

	outcome.Success = true
	reporter.Report(output.Line{Severity: output.SeveritySuccess, Text: plan.successText(), Final: true})
	s.logger.Info("plan completed", "plan", plan.Name, "steps", len(outcome.Results))
	return outcome, nil
}

func probeText(result git.ExecutionResult) string {
	text := result.Spec.String() + " failed, continuing"
	if msg := result.Message(); msg != "" {
		text += ": " + msg
	}
	return text
}

func failureText(result git.ExecutionResult) string {
	msg := result.Message()
	if msg == "" && result.Err != nil {
		msg = result.Err.Error()
	}
	return "Error: " + msg
}

func directoryNotFound(dir string) output.Line {
	return output.Line{Severity: output.SeverityError, Text: fmt.Sprintf("Directory not found: %s", dir), Final: true}
}

func checkDirectory(dir string) error {
	if dir == "" {
		return autogiterrors.NewInputError("dir", dir, autogiterrors.ErrDirectoryNotFound)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return autogiterrors.NewInputError("dir", dir, autogiterrors.ErrDirectoryNotFound)
	}
	return nil
}
