// Package workflow sequences git commands into named plans.
//
// A Plan is an ordered list of Steps. The Sequencer runs a plan in a working
// directory, reports each step to an output.Reporter, and stops at the first
// failing step. Nothing is rolled back. A step marked as a probe may fail
// without aborting the plan; its OnFailure steps run in its place.
//
// Front ends never build plans directly. They look an action up in a
// Registry and dispatch it with a Session describing the user's input.
package workflow
