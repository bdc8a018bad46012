package actions

import (
	"fmt"
	"strings"

	"autogit.dev/autogit/internal/credentials"
	"autogit.dev/autogit/internal/git"
	"autogit.dev/autogit/internal/runtime"
)

// InfoOptions specifies options for the info command
type InfoOptions struct {
	Dir string
}

// InfoAction prints the repository root, branch, HEAD and remotes of Dir
func InfoAction(ctx *runtime.Context, opts InfoOptions) (*git.RepoInfo, error) {
	repo, err := git.OpenRepository(opts.Dir)
	if err != nil {
		return nil, err
	}
	info, err := repo.Info()
	if err != nil {
		return nil, err
	}

	splog := ctx.Splog
	splog.Info("Repository: %s", info.Root)
	splog.Info("Branch:     %s", info.Branch)
	head := info.Head
	if head == "" {
		head = "(no commits)"
	} else if len(head) > 12 {
		head = head[:12]
	}
	splog.Info("HEAD:       %s", head)
	if info.Clean {
		splog.Info("Worktree:   clean")
	} else {
		splog.Info("Worktree:   uncommitted changes")
	}

	names := info.RemoteNames()
	if len(names) == 0 {
		splog.Info("Remotes:    none")
		return info, nil
	}
	splog.Info("Remotes:")
	for _, name := range names {
		urls := credentials.RedactAll(info.Remotes[name])
		splog.Info("  %s", fmt.Sprintf("%-10s %s", name, strings.Join(urls, ", ")))
	}
	return info, nil
}
