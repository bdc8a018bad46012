// Package errors provides sentinel errors and custom error types for the autogit application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Sentinel errors for input validation. These are detected before any git
// command is launched.
var (
	// ErrDirectoryNotFound indicates the supplied project path is not a directory
	ErrDirectoryNotFound = errors.New("directory not found")

	// ErrEmptyCommitMessage indicates a commit step was requested with no message
	ErrEmptyCommitMessage = errors.New("commit message must not be empty")

	// ErrEmptyRemoteURL indicates an action needs a remote URL but none was given
	ErrEmptyRemoteURL = errors.New("repository URL is required")

	// ErrEmptyToken indicates the user opted into token auth but supplied no token
	ErrEmptyToken = errors.New("personal access token must not be empty")

	// ErrEmptyCommand indicates a command spec with no tokens
	ErrEmptyCommand = errors.New("command has no tokens")

	// ErrUnknownAction indicates a dispatch lookup for an action that is not registered
	ErrUnknownAction = errors.New("unknown action")
)

// ErrUnsupportedScheme indicates a token was requested for a URL that is not https.
var ErrUnsupportedScheme = errors.New("personal access tokens can only be used with https:// URLs")

// Sentinel errors for external command failures.
var (
	// ErrCommandFailed indicates the external command ran and exited non-zero
	ErrCommandFailed = errors.New("command failed")

	// ErrLaunchFailed indicates the external command could not be started
	ErrLaunchFailed = errors.New("command could not be started")

	// ErrToolNotFound indicates the external executable is not on PATH
	ErrToolNotFound = errors.New("executable not found")
)

// InputError marks a failure detected before anything was executed. Callers
// can rely on no side effects having happened when they see one.
type InputError struct {
	Field string
	Value string
	Err   error
}

func (e *InputError) Error() string {
	switch {
	case e.Field != "" && e.Value != "":
		return fmt.Sprintf("%s: %v: %s", e.Field, e.Err, e.Value)
	case e.Field != "":
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	default:
		return e.Err.Error()
	}
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// NewInputError creates a new InputError
func NewInputError(field, value string, err error) *InputError {
	return &InputError{Field: field, Value: value, Err: err}
}

// IsInputError reports whether err is (or wraps) an InputError
func IsInputError(err error) bool {
	var inputErr *InputError
	return errors.As(err, &inputErr)
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command  string
	Args     []string
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += " " + strings.Join(e.Args, " ")
	}
	if e.ExitCode > 0 {
		msg += fmt.Sprintf(" (exit status %d)", e.ExitCode)
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", stderr)
	}
	if stdout := strings.TrimSpace(e.Stdout); stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", stdout)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrCommandFailed
func (e *GitCommandError) Is(target error) bool {
	return target == ErrCommandFailed
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, exitCode int, err error) *GitCommandError {
	return &GitCommandError{
		Command:  command,
		Args:     args,
		Stdout:   stdout,
		Stderr:   stderr,
		ExitCode: exitCode,
		Err:      err,
	}
}

// LaunchError represents a command that could not be started at all
type LaunchError struct {
	Command string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch %s: %v", e.Command, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// Is returns true for ErrLaunchFailed, and for ErrToolNotFound when the
// executable was missing from PATH
func (e *LaunchError) Is(target error) bool {
	switch target {
	case ErrLaunchFailed:
		return true
	case ErrToolNotFound:
		return errors.Is(e.Err, exec.ErrNotFound)
	}
	return false
}

// NewLaunchError creates a new LaunchError
func NewLaunchError(command string, err error) *LaunchError {
	return &LaunchError{Command: command, Err: err}
}
