// Package tui provides the interactive form behind `autogit ui`.
//
// The form has a directory field, a repository URL field, a commit message
// field, a masked token field, one button per workflow and a scrolling log.
// Workflows run in a bubbletea command so the form keeps redrawing while git
// runs; each reported line is streamed back to the update loop as a message.
package tui
