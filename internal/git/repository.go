package git

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Repository wraps a go-git repository for read-only inspection. All state
// changes go through git itself via a Runner.
type Repository struct {
	*git.Repository
	path string
}

// RepoInfo summarizes a repository for display
type RepoInfo struct {
	Root    string
	Branch  string
	Head    string
	Clean   bool
	Remotes map[string][]string
}

// OpenRepository opens the git repository containing path
func OpenRepository(path string) (*Repository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := git.PlainOpenWithOptions(absPath, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	root := absPath
	if wt, err := repo.Worktree(); err == nil {
		root = wt.Filesystem.Root()
	}

	return &Repository{
		Repository: repo,
		path:       root,
	}, nil
}

// IsRepository reports whether path is inside a git work tree
func IsRepository(path string) bool {
	_, err := OpenRepository(path)
	return err == nil
}

// GetRepoRoot returns the root directory of the work tree
func (r *Repository) GetRepoRoot() string {
	return r.path
}

// GetCurrentBranch returns the branch HEAD points to. An unborn branch (no
// commits yet) is still reported by name.
func (r *Repository) GetCurrentBranch() (string, error) {
	ref, err := r.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	if ref.Type() == plumbing.SymbolicReference && ref.Target().IsBranch() {
		return ref.Target().Short(), nil
	}
	return "", fmt.Errorf("HEAD is not on a branch")
}

// GetHeadSHA returns the commit HEAD resolves to, or "" for an unborn branch
func (r *Repository) GetHeadSHA() (string, error) {
	head, err := r.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	return head.Hash().String(), nil
}

// GetRemoteURLs returns the configured URLs for a remote
func (r *Repository) GetRemoteURLs(name string) ([]string, error) {
	remote, err := r.Remote(name)
	if errors.Is(err, git.ErrRemoteNotFound) {
		return nil, fmt.Errorf("remote %s is not configured: %w", name, err)
	}
	if err != nil {
		return nil, err
	}
	return remote.Config().URLs, nil
}

// HasRemote reports whether a remote with the given name exists
func (r *Repository) HasRemote(name string) bool {
	_, err := r.Remote(name)
	return err == nil
}

// IsClean reports whether the work tree has no changes
func (r *Repository) IsClean() (bool, error) {
	wt, err := r.Worktree()
	if err != nil {
		return false, fmt.Errorf("failed to get worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("failed to get status: %w", err)
	}
	return status.IsClean(), nil
}

// Info collects a RepoInfo summary
func (r *Repository) Info() (*RepoInfo, error) {
	info := &RepoInfo{
		Root:    r.path,
		Remotes: map[string][]string{},
	}

	branch, err := r.GetCurrentBranch()
	if err == nil {
		info.Branch = branch
	}

	info.Head, err = r.GetHeadSHA()
	if err != nil {
		return nil, err
	}

	info.Clean, err = r.IsClean()
	if err != nil {
		return nil, err
	}

	remotes, err := r.Remotes()
	if err != nil {
		return nil, fmt.Errorf("failed to list remotes: %w", err)
	}
	for _, remote := range remotes {
		cfg := remote.Config()
		info.Remotes[cfg.Name] = cfg.URLs
	}
	return info, nil
}

// RemoteNames returns the sorted names of a RepoInfo's remotes
func (i *RepoInfo) RemoteNames() []string {
	names := make([]string, 0, len(i.Remotes))
	for name := range i.Remotes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
