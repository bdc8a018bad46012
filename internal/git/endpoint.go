package git

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
)

// Endpoint describes a parsed remote URL
type Endpoint struct {
	Protocol string
	Host     string
	Path     string
}

// ParseEndpoint parses https, ssh (including scp-style user@host:path), git
// and local file remotes
func ParseEndpoint(remoteURL string) (*Endpoint, error) {
	if strings.TrimSpace(remoteURL) == "" {
		return nil, fmt.Errorf("empty remote URL")
	}
	ep, err := transport.NewEndpoint(remoteURL)
	if err != nil {
		return nil, fmt.Errorf("invalid remote URL: %w", err)
	}
	return &Endpoint{
		Protocol: ep.Protocol,
		Host:     ep.Host,
		Path:     strings.TrimPrefix(ep.Path, "/"),
	}, nil
}

// OwnerAndRepo splits a hosted repository path like "owner/repo.git"
func (e *Endpoint) OwnerAndRepo() (string, string, error) {
	path := strings.TrimSuffix(e.Path, ".git")
	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[len(parts)-2] == "" || parts[len(parts)-1] == "" {
		return "", "", fmt.Errorf("remote path %q has no owner/repo", e.Path)
	}
	return parts[len(parts)-2], parts[len(parts)-1], nil
}

// IsGitHub reports whether the endpoint points at github.com
func (e *Endpoint) IsGitHub() bool {
	return strings.EqualFold(e.Host, "github.com") || strings.EqualFold(e.Host, "www.github.com")
}
