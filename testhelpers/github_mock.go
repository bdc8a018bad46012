package testhelpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// MockRepository is the subset of a GitHub repository the mock server returns
type MockRepository struct {
	Private       bool
	DefaultBranch string
	Size          int
	CanPush       bool
}

// MockGitHubServerConfig configures NewMockGitHubServer
type MockGitHubServerConfig struct {
	mu sync.Mutex
	// Repos is keyed by "owner/repo"
	Repos map[string]MockRepository
	// Status, when non-zero, is returned for every request
	Status int
	// Authorizations records the Authorization header of each request
	Authorizations []string
}

// NewMockGitHubServerConfig creates a new mock server config with no repositories
func NewMockGitHubServerConfig() *MockGitHubServerConfig {
	return &MockGitHubServerConfig{Repos: make(map[string]MockRepository)}
}

// SeenAuthorizations returns the recorded Authorization headers
func (c *MockGitHubServerConfig) SeenAuthorizations() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.Authorizations...)
}

// NewMockGitHubServer creates an httptest server answering GET /repos/{owner}/{repo}
func NewMockGitHubServer(t *testing.T, config *MockGitHubServerConfig) *httptest.Server {
	t.Helper()
	if config == nil {
		config = NewMockGitHubServerConfig()
	}

	handler := func(w http.ResponseWriter, r *http.Request) {
		config.mu.Lock()
		config.Authorizations = append(config.Authorizations, r.Header.Get("Authorization"))
		status := config.Status
		key := strings.TrimPrefix(r.URL.Path, "/repos/")
		repo, ok := config.Repos[key]
		config.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if status != 0 {
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": http.StatusText(status)})
			return
		}
		if r.Method != http.MethodGet || !strings.HasPrefix(r.URL.Path, "/repos/") || !ok {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Not Found"})
			return
		}

		parts := strings.SplitN(key, "/", 2)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"name":           parts[1],
			"full_name":      key,
			"owner":          map[string]string{"login": parts[0]},
			"private":        repo.Private,
			"default_branch": repo.DefaultBranch,
			"size":           repo.Size,
			"html_url":       "https://github.com/" + key,
			"permissions":    map[string]bool{"pull": true, "push": repo.CanPush, "admin": false},
		})
	}

	server := httptest.NewServer(http.HandlerFunc(handler))
	t.Cleanup(server.Close)
	return server
}
