package git

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"time"

	"autogit.dev/autogit/internal/credentials"
	autogiterrors "autogit.dev/autogit/internal/errors"
)

// Runner executes a single CommandSpec in a working directory and waits for
// it to finish. Implementations never create the directory.
type Runner interface {
	Run(ctx context.Context, dir string, spec CommandSpec) ExecutionResult
}

// RunnerOption configures a CommandRunner
type RunnerOption func(*CommandRunner)

// WithExecutable replaces the "git" executable token with path, e.g. a
// specific git build.
func WithExecutable(path string) RunnerOption {
	return func(r *CommandRunner) {
		r.executable = path
	}
}

// WithTimeout bounds every command. Zero means no timeout.
func WithTimeout(d time.Duration) RunnerOption {
	return func(r *CommandRunner) {
		r.timeout = d
	}
}

// WithTerminalPrompt controls whether git may ask for credentials on the
// terminal. It is disabled by default so a run never hangs on a hidden prompt.
func WithTerminalPrompt(allowed bool) RunnerOption {
	return func(r *CommandRunner) {
		r.terminalPrompt = allowed
	}
}

// CommandRunner handles execution of git commands via os/exec
type CommandRunner struct {
	executable     string
	timeout        time.Duration
	terminalPrompt bool
}

// NewCommandRunner creates a new CommandRunner
func NewCommandRunner(opts ...RunnerOption) *CommandRunner {
	r := &CommandRunner{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes spec in dir, capturing stdout and stderr separately.
// A zero exit status is success; anything else, including a failure to start
// the process, is reported as an unsuccessful result.
func (r *CommandRunner) Run(ctx context.Context, dir string, spec CommandSpec) ExecutionResult {
	result := ExecutionResult{Spec: spec, ExitCode: -1}
	if err := spec.Validate(); err != nil {
		result.Err = err
		return result
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if r.timeout > 0 {
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, r.timeout)
			defer cancel()
		}
	}

	name := spec.Name()
	if name == "git" && r.executable != "" {
		name = r.executable
	}

	cmd := exec.CommandContext(ctx, name, spec.Args()...)
	cmd.Dir = dir
	cmd.Env = os.Environ()
	if !r.terminalPrompt {
		cmd.Env = append(cmd.Env, "GIT_TERMINAL_PROMPT=0")
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	result.Duration = time.Since(start)
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()

	if err == nil {
		result.Success = true
		result.ExitCode = 0
		return result
	}

	displayArgs := credentials.RedactAll(spec.Args())
	var exitErr *exec.ExitError
	switch {
	case ctx.Err() != nil:
		result.Err = autogiterrors.NewGitCommandError(spec.Name(), displayArgs, result.Stdout, result.Stderr, result.ExitCode, ctx.Err())
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
		result.Err = autogiterrors.NewGitCommandError(spec.Name(), displayArgs, result.Stdout, result.Stderr, result.ExitCode, err)
	default:
		result.Err = autogiterrors.NewLaunchError(name, err)
	}
	return result
}
