package testhelpers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Must is a generic helper function that panics if err is not nil,
// otherwise returns the value.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// ExpectCommits asserts the commit subjects on rev, newest first.
func ExpectCommits(t *testing.T, repo *GitRepo, rev string, expected []string) {
	t.Helper()
	messages, err := repo.ListCommitMessages(rev)
	require.NoError(t, err, "failed to list commits on %s", rev)
	require.Equal(t, expected, messages, "commits on %s", rev)
}

// ExpectSameRevision asserts that two repositories point rev at the same commit,
// e.g. a local branch and the bare remote it was pushed to.
func ExpectSameRevision(t *testing.T, local, remote *GitRepo, rev string) {
	t.Helper()
	localSHA, err := local.GetRevision(rev)
	require.NoError(t, err)
	remoteSHA, err := remote.GetRevision(rev)
	require.NoError(t, err)
	require.Equal(t, localSHA, remoteSHA, "%s differs between %s and %s", rev, local.Dir, remote.Dir)
}

// ExpectNoRepository asserts that dir was never turned into a git repository.
func ExpectNoRepository(t *testing.T, dir string) {
	t.Helper()
	require.NoDirExists(t, dir+"/.git")
}
