package workflow

import (
	"fmt"
	"strings"

	"autogit.dev/autogit/internal/credentials"
)

// PublishMode selects the push used by the first publish
type PublishMode string

const (
	// PublishUpstream pushes with `git push -u <remote> <branch>`
	PublishUpstream PublishMode = "upstream"
	// PublishForce pushes with `git push --force <remote> HEAD:<branch>`,
	// overwriting whatever the remote branch holds
	PublishForce PublishMode = "force"
)

// ParsePublishMode parses a publish mode name. The empty string selects
// PublishUpstream.
func ParsePublishMode(s string) (PublishMode, error) {
	switch PublishMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", PublishUpstream:
		return PublishUpstream, nil
	case PublishForce:
		return PublishForce, nil
	default:
		return "", fmt.Errorf("invalid publish mode %q: must be %q or %q", s, PublishUpstream, PublishForce)
	}
}

const (
	defaultRemote = "origin"
	defaultBranch = "main"
)

// Session holds everything a plan needs from the user for one run. It is
// passed by value and never persisted.
type Session struct {
	// Dir is the project directory. For clone it is the parent directory the
	// repository is cloned into.
	Dir string
	// RemoteURL is the repository URL as typed by the user
	RemoteURL string
	// Message is the pending commit message for the commit action
	Message string
	// UseToken opts into embedding Token in an https RemoteURL
	UseToken bool
	Token    string

	PublishMode PublishMode
	Branch      string
	Remote      string
}

// WithDefaults fills unset fields with origin, main and PublishUpstream, and
// trims surrounding whitespace from user input.
func (s Session) WithDefaults() Session {
	s.Dir = strings.TrimSpace(s.Dir)
	s.RemoteURL = strings.TrimSpace(s.RemoteURL)
	if s.Remote == "" {
		s.Remote = defaultRemote
	}
	if s.Branch == "" {
		s.Branch = defaultBranch
	}
	if s.PublishMode == "" {
		s.PublishMode = PublishUpstream
	}
	return s
}

// Prepare applies defaults and, when UseToken is set, replaces RemoteURL with
// the token-bearing URL. A non-https URL or an empty token is an input error
// and leaves the session unchanged.
func (s Session) Prepare() (Session, error) {
	s = s.WithDefaults()
	if !s.UseToken {
		return s, nil
	}
	spliced, err := credentials.SpliceToken(s.RemoteURL, s.Token)
	if err != nil {
		return s, err
	}
	s.RemoteURL = spliced
	return s, nil
}

// DisplayURL returns RemoteURL with any embedded credential masked
func (s Session) DisplayURL() string {
	return credentials.Redact(s.RemoteURL)
}
