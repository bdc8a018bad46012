// Package actions provides the diagnostic commands that sit beside the git
// workflows: doctor and info.
//
// Actions accept a runtime.Context and write their findings through its
// Splog. They never modify the repository.
package actions
