// Package runtime provides the execution context for autogit commands.
//
// It encapsulates shared dependencies needed by actions and front ends: the
// logger, the loaded configuration, the git runner, the workflow sequencer
// and the action registry.
package runtime
