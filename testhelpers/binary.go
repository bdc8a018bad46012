// Package testhelpers provides testing utilities for autogit, including a
// scene system, git repository helpers, a mock GitHub server and custom
// assertions.
package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	sharedBinaryPath string
	binaryOnce       sync.Once
	binaryErr        error
)

// GetSharedBinaryPath returns the path of the autogit binary, building it on
// first use.
func GetSharedBinaryPath() string {
	binaryOnce.Do(func() {
		if sharedBinaryPath != "" {
			return
		}
		dir, err := os.MkdirTemp("", "autogit-test-binary-*")
		if err != nil {
			binaryErr = fmt.Errorf("failed to create temp directory: %w", err)
			return
		}
		sharedBinaryPath, binaryErr = buildBinary(dir)
	})
	return sharedBinaryPath
}

// GetBinaryError returns any error that occurred while building the binary.
func GetBinaryError() error {
	return binaryErr
}

// buildBinary compiles ./cmd/autogit into dir and returns the binary path.
func buildBinary(dir string) (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	moduleRoot := findModuleRoot(wd)
	if moduleRoot == "" {
		return "", fmt.Errorf("could not find module root (go.mod) starting from %s", wd)
	}

	binaryPath := filepath.Join(dir, "autogit")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/autogit")
	cmd.Dir = moduleRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("failed to build: %s: %w", string(output), err)
	}
	return binaryPath, nil
}

// findModuleRoot walks up from startDir to the directory containing go.mod.
func findModuleRoot(startDir string) string {
	dir := startDir
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// TestMain builds the binary once for a package, runs its tests and removes
// the binary afterwards.
func TestMain(m *testing.M, cleanup func()) {
	dir, err := os.MkdirTemp("", "autogit-test-binary-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create temp directory: %v\n", err)
		os.Exit(1)
	}
	path, err := buildBinary(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build autogit binary: %v\n", err)
		_ = os.RemoveAll(dir)
		os.Exit(1)
	}
	sharedBinaryPath = path

	code := m.Run()

	_ = os.RemoveAll(dir)
	if cleanup != nil {
		cleanup()
	}
	os.Exit(code)
}
