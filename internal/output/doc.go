// Package output renders workflow progress for people: the Splog console and
// file logger, severity-tagged report lines, terminal colors, and the mapping
// from errors to process exit codes.
package output
