// Package main provides the entry point for the autogit CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"

	"autogit.dev/autogit/internal/cli"
	"autogit.dev/autogit/internal/output"
)

// Build info set via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	rootCmd := cli.NewRootCmd(buildVersion())
	err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(buildVersion()))
	os.Exit(output.GetExitCode(err))
}
