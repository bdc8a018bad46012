// Package config manages autogit user preferences.
//
// It handles:
//   - The YAML config file (remote name, branch, publish mode, git binary,
//     command timeout, log file)
//   - Environment variable overrides
//   - Key based get/set for the `autogit config` command
//
// Session values (directory, repository URL, commit message, token) are never
// stored here.
package config
