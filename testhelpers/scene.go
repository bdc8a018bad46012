package testhelpers

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// Scene is a temporary project directory plus, optionally, a bare remote.
// The project directory starts out as a plain directory so first-publish
// flows can run `git init` themselves.
type Scene struct {
	Dir       string
	RemoteDir string
	Remote    *GitRepo
}

// SceneSetup is a function type for setting up a scene.
type SceneSetup func(*Scene) error

// RequireGit skips the test when no git binary is available.
func RequireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found in PATH")
	}
}

// IsolateGitEnv pins identity and config so commits made by the code under
// test work on machines without a global git identity.
func IsolateGitEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GIT_CONFIG_GLOBAL", "/dev/null")
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_AUTHOR_NAME", "Test User")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "Test User")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@example.com")
}

// NewScene creates a scene with an empty project directory and a bare remote.
// Cleanup is handled by t.TempDir.
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()
	RequireGit(t)
	IsolateGitEnv(t)

	root := t.TempDir()
	scene := &Scene{
		Dir:       filepath.Join(root, "project"),
		RemoteDir: filepath.Join(root, "remote.git"),
	}
	if err := os.MkdirAll(scene.Dir, 0o755); err != nil {
		t.Fatalf("Failed to create project dir: %v", err)
	}

	remote, err := NewBareRepo(scene.RemoteDir)
	if err != nil {
		t.Fatalf("Failed to create remote: %v", err)
	}
	scene.Remote = remote

	if setup != nil {
		if err := setup(scene); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
	}
	return scene
}

// Repo returns a handle on the project directory.
func (s *Scene) Repo() *GitRepo {
	return OpenGitRepo(s.Dir)
}

// WriteFile writes a file into the project directory.
func (s *Scene) WriteFile(name, contents string) error {
	return s.Repo().WriteFile(name, contents)
}

// InitializedSceneSetup turns the project directory into a repository with one commit.
func InitializedSceneSetup(scene *Scene) error {
	repo, err := NewGitRepo(scene.Dir)
	if err != nil {
		return err
	}
	return repo.CreateChangeAndCommit("1", "1")
}

// FilesSceneSetup writes a file into the otherwise empty project directory.
func FilesSceneSetup(scene *Scene) error {
	return scene.WriteFile("README.md", "# project\n")
}
