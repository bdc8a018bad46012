package git

import (
	"strconv"
	"strings"

	"autogit.dev/autogit/internal/credentials"
	autogiterrors "autogit.dev/autogit/internal/errors"
)

// InitialCommitMessage is the message used by the first publish commit.
const InitialCommitMessage = "Initial commit"

// CommandSpec is one external command invocation as an ordered token list,
// e.g. ["git", "commit", "-m", "msg"]. The zero value is an empty spec.
// A CommandSpec never exposes its backing slice, so it cannot be modified
// after construction.
type CommandSpec struct {
	tokens []string
}

// NewCommandSpec creates a CommandSpec from a copy of tokens
func NewCommandSpec(tokens ...string) CommandSpec {
	return CommandSpec{tokens: append([]string(nil), tokens...)}
}

// Git creates a CommandSpec for the git executable with the given arguments
func Git(args ...string) CommandSpec {
	return NewCommandSpec(append([]string{"git"}, args...)...)
}

// Tokens returns a copy of all tokens, executable first
func (c CommandSpec) Tokens() []string {
	return append([]string(nil), c.tokens...)
}

// Name returns the executable token, or "" for an empty spec
func (c CommandSpec) Name() string {
	if len(c.tokens) == 0 {
		return ""
	}
	return c.tokens[0]
}

// Args returns a copy of the tokens after the executable
func (c CommandSpec) Args() []string {
	if len(c.tokens) < 2 {
		return nil
	}
	return append([]string(nil), c.tokens[1:]...)
}

// Subcommand returns the first argument (e.g. "commit"), or "" if none
func (c CommandSpec) Subcommand() string {
	if len(c.tokens) < 2 {
		return ""
	}
	return c.tokens[1]
}

// IsEmpty reports whether the spec has no tokens
func (c CommandSpec) IsEmpty() bool {
	return len(c.tokens) == 0
}

// Equal reports whether both specs have identical tokens
func (c CommandSpec) Equal(other CommandSpec) bool {
	if len(c.tokens) != len(other.tokens) {
		return false
	}
	for i := range c.tokens {
		if c.tokens[i] != other.tokens[i] {
			return false
		}
	}
	return true
}

// String renders the command for display. Credentials embedded in URLs are
// masked and tokens containing whitespace are quoted.
func (c CommandSpec) String() string {
	parts := credentials.RedactAll(c.tokens)
	for i, p := range parts {
		if p == "" || strings.ContainsAny(p, " \t\n\"") {
			parts[i] = strconv.Quote(p)
		}
	}
	return strings.Join(parts, " ")
}

// Validate checks the preconditions that can be verified without running
// anything: the spec must have tokens, and a commit must carry a non-empty
// message.
func (c CommandSpec) Validate() error {
	if c.IsEmpty() || strings.TrimSpace(c.tokens[0]) == "" {
		return autogiterrors.NewInputError("command", "", autogiterrors.ErrEmptyCommand)
	}
	if c.Subcommand() == "commit" {
		msg, ok := c.flagValue("-m", "--message")
		if ok && strings.TrimSpace(msg) == "" {
			return autogiterrors.NewInputError("message", "", autogiterrors.ErrEmptyCommitMessage)
		}
	}
	return nil
}

// flagValue returns the value following the first matching flag.
// A flag in the last position reports an empty value.
func (c CommandSpec) flagValue(names ...string) (string, bool) {
	for i, tok := range c.tokens {
		for _, name := range names {
			if tok == name {
				if i+1 < len(c.tokens) {
					return c.tokens[i+1], true
				}
				return "", true
			}
			if strings.HasPrefix(tok, name+"=") {
				return strings.TrimPrefix(tok, name+"="), true
			}
		}
	}
	return "", false
}

// Init builds `git init`
func Init() CommandSpec {
	return Git("init")
}

// AddAll builds `git add .`
func AddAll() CommandSpec {
	return Git("add", ".")
}

// Commit builds `git commit -m <message>`
func Commit(message string) CommandSpec {
	return Git("commit", "-m", message)
}

// RemoteAdd builds `git remote add <remote> <url>`
func RemoteAdd(remote, url string) CommandSpec {
	return Git("remote", "add", remote, url)
}

// RemoteGetURL builds `git remote get-url <remote>`
func RemoteGetURL(remote string) CommandSpec {
	return Git("remote", "get-url", remote)
}

// BranchRename builds `git branch -M <branch>`
func BranchRename(branch string) CommandSpec {
	return Git("branch", "-M", branch)
}

// PushUpstream builds `git push -u <remote> <branch>`
func PushUpstream(remote, branch string) CommandSpec {
	return Git("push", "-u", remote, branch)
}

// PushForce builds `git push --force <remote> HEAD:<branch>`.
// This overwrites the remote branch and can discard remote history.
func PushForce(remote, branch string) CommandSpec {
	return Git("push", "--force", remote, "HEAD:"+branch)
}

// Push builds `git push <remote> <branch>`
func Push(remote, branch string) CommandSpec {
	return Git("push", remote, branch)
}

// Clone builds `git clone <url> [dest]`
func Clone(url, dest string) CommandSpec {
	if dest == "" {
		return Git("clone", url)
	}
	return Git("clone", url, dest)
}

// Status builds `git status`
func Status() CommandSpec {
	return Git("status")
}

// Fetch builds `git fetch`
func Fetch() CommandSpec {
	return Git("fetch")
}

// Pull builds `git pull`
func Pull() CommandSpec {
	return Git("pull")
}

// Version builds `git --version`
func Version() CommandSpec {
	return Git("--version")
}
