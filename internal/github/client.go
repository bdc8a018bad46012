// Package github checks that a GitHub repository is ready to receive a push.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"
)

// RepoStatus describes what the token can see of a repository
type RepoStatus struct {
	Owner         string
	Repo          string
	Exists        bool
	Private       bool
	Empty         bool
	CanPush       bool
	DefaultBranch string
	HTMLURL       string
}

// Checker looks up repository status. Implemented by Client and by fakes in
// tests.
type Checker interface {
	CheckRepository(ctx context.Context, owner, repo string) (*RepoStatus, error)
}

// Client wraps a go-github client
type Client struct {
	gh *github.Client
}

// NewClient creates a client for hostname authenticated with token.
// Hosts other than github.com are treated as GitHub Enterprise.
func NewClient(ctx context.Context, hostname, token string) (*Client, error) {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(ctx, ts)
	}
	client := github.NewClient(httpClient)

	if hostname != "" && !strings.EqualFold(hostname, "github.com") {
		baseURL, err := url.Parse(fmt.Sprintf("https://%s/api/v3/", hostname))
		if err != nil {
			return nil, fmt.Errorf("failed to parse base URL for hostname %s: %w", hostname, err)
		}
		uploadURL, err := url.Parse(fmt.Sprintf("https://%s/api/uploads/", hostname))
		if err != nil {
			return nil, fmt.Errorf("failed to parse upload URL for hostname %s: %w", hostname, err)
		}
		client.BaseURL = baseURL
		client.UploadURL = uploadURL
	}
	return &Client{gh: client}, nil
}

// NewClientWithBaseURL creates a client for an explicit API root, e.g. a test
// server.
func NewClientWithBaseURL(ctx context.Context, baseURL, token string) (*Client, error) {
	c, err := NewClient(ctx, "", token)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	c.gh.BaseURL = u
	c.gh.UploadURL = u
	return c, nil
}

// CheckRepository fetches owner/repo. A repository the token cannot see is
// reported with Exists false rather than as an error, because GitHub answers
// 404 for both missing and private repositories.
func (c *Client) CheckRepository(ctx context.Context, owner, repo string) (*RepoStatus, error) {
	status := &RepoStatus{Owner: owner, Repo: repo}

	r, _, err := c.gh.Repositories.Get(ctx, owner, repo)
	if err != nil {
		var ghErr *github.ErrorResponse
		if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound {
			return status, nil
		}
		return nil, fmt.Errorf("failed to get repository %s/%s: %w", owner, repo, err)
	}

	status.Exists = true
	status.Private = r.GetPrivate()
	status.DefaultBranch = r.GetDefaultBranch()
	status.HTMLURL = r.GetHTMLURL()
	status.Empty = r.GetSize() == 0 && r.GetPushedAt().IsZero()
	status.CanPush = r.GetPermissions()["push"]
	return status, nil
}
