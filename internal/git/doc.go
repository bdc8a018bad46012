// Package git runs git as an external process and inspects repositories.
//
// It provides:
//   - CommandSpec, an immutable token list describing one git invocation,
//     with builders for every command autogit issues
//   - Runner/CommandRunner, which executes a CommandSpec in a directory and
//     captures the outcome as an ExecutionResult
//   - Repository, a read-only go-git view used for diagnostics
//
// This package should be the only place where git processes are started.
package git
