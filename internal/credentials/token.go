// Package credentials handles personal access tokens: reading them without
// echoing, splicing them into https remote URLs and keeping them out of
// anything that gets displayed or logged.
package credentials

import (
	"net/url"
	"os"
	"strings"

	autogiterrors "autogit.dev/autogit/internal/errors"
)

const httpsPrefix = "https://"

// TokenEnvVars are checked in order by TokenFromEnv.
var TokenEnvVars = []string{"AUTOGIT_TOKEN", "GITHUB_TOKEN"}

// SpliceToken embeds token into an https remote URL as an empty-user
// credential: https://host/path becomes https://:<token>@host/path.
//
// Any URL that does not start with https:// is rejected and returned
// unmodified, so a token is never attached to a scheme that would send it in
// the clear (or to an SSH remote that would ignore it).
func SpliceToken(remoteURL, token string) (string, error) {
	if token == "" {
		return remoteURL, autogiterrors.NewInputError("token", "", autogiterrors.ErrEmptyToken)
	}
	if err := CheckScheme(remoteURL); err != nil {
		return remoteURL, err
	}
	return httpsPrefix + ":" + token + "@" + strings.TrimPrefix(remoteURL, httpsPrefix), nil
}

// CheckScheme returns an input error unless remoteURL can carry a token
func CheckScheme(remoteURL string) error {
	if !strings.HasPrefix(remoteURL, httpsPrefix) {
		return autogiterrors.NewInputError("url", Redact(remoteURL), autogiterrors.ErrUnsupportedScheme)
	}
	return nil
}

// Redact masks the password part of a URL's userinfo. Strings that are not
// URLs, or carry no password, are returned unchanged.
func Redact(s string) string {
	if !strings.Contains(s, "://") || !strings.Contains(s, "@") {
		return s
	}
	u, err := url.Parse(s)
	if err != nil || u.User == nil {
		return s
	}
	if _, ok := u.User.Password(); !ok {
		return s
	}
	return u.Redacted()
}

// RedactAll applies Redact to every element and returns a new slice.
func RedactAll(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = Redact(t)
	}
	return out
}

// TokenFromEnv returns the first non-empty token from TokenEnvVars.
func TokenFromEnv() (string, bool) {
	for _, name := range TokenEnvVars {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v, true
		}
	}
	return "", false
}
