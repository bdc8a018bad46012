package git

import (
	"errors"
	"strings"
	"time"

	autogiterrors "autogit.dev/autogit/internal/errors"
)

// ExecutionResult is the outcome of running one CommandSpec. It is created
// once by a Runner and treated as read-only afterwards.
type ExecutionResult struct {
	Spec     CommandSpec
	Success  bool
	Stdout   string
	Stderr   string
	ExitCode int
	// Err is nil on success. Otherwise it is a *errors.GitCommandError when
	// the process ran and exited non-zero, or a *errors.LaunchError when it
	// could not be started.
	Err      error
	Duration time.Duration
}

// Message returns the text to surface to the user. On success that is the
// trimmed standard output (possibly empty). On failure it is the trimmed
// standard error, falling back to trimmed standard output; when the process
// never started and produced nothing, the launch error is used instead.
func (r ExecutionResult) Message() string {
	if r.Success {
		return strings.TrimSpace(r.Stdout)
	}
	if msg := strings.TrimSpace(r.Stderr); msg != "" {
		return msg
	}
	if msg := strings.TrimSpace(r.Stdout); msg != "" {
		return msg
	}
	if r.LaunchFailed() && r.Err != nil {
		return r.Err.Error()
	}
	return ""
}

// LaunchFailed reports whether the process could not be started
func (r ExecutionResult) LaunchFailed() bool {
	return errors.Is(r.Err, autogiterrors.ErrLaunchFailed)
}

// ToolNotFound reports whether the executable was missing from PATH
func (r ExecutionResult) ToolNotFound() bool {
	return errors.Is(r.Err, autogiterrors.ErrToolNotFound)
}
