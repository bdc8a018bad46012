package actions

import (
	"fmt"
	"os"

	"autogit.dev/autogit/internal/credentials"
	"autogit.dev/autogit/internal/git"
	"autogit.dev/autogit/internal/output"
	"autogit.dev/autogit/internal/runtime"
)

// DoctorOptions contains options for the doctor command
type DoctorOptions struct {
	Dir       string
	RemoteURL string
	// Token is used for the GitHub check. When empty the environment is
	// consulted; without any token the check is skipped.
	Token string
}

// DoctorReport collects the findings of a doctor run
type DoctorReport struct {
	Warnings []string
	Errors   []string
}

func (r *DoctorReport) ok(splog *output.Splog, f string, args ...interface{}) {
	splog.Info("  ✅ "+f, args...)
}

func (r *DoctorReport) warn(splog *output.Splog, f string, args ...interface{}) {
	msg := fmt.Sprintf(f, args...)
	r.Warnings = append(r.Warnings, msg)
	splog.Warn("  %s", msg)
}

func (r *DoctorReport) fail(splog *output.Splog, f string, args ...interface{}) {
	msg := fmt.Sprintf(f, args...)
	r.Errors = append(r.Errors, msg)
	splog.Error("  %s", msg)
}

// DoctorAction checks that git is usable, that the directory is ready for the
// workflows, and, with a token, that the GitHub repository accepts pushes.
func DoctorAction(ctx *runtime.Context, opts DoctorOptions) (*DoctorReport, error) {
	splog := ctx.Splog
	report := &DoctorReport{}

	splog.Info("Running autogit doctor...")
	splog.Newline()

	splog.Info("Environment:")
	checkEnvironment(ctx, report)
	splog.Newline()

	splog.Info("Repository:")
	remoteURL := checkRepository(ctx, opts, report)
	splog.Newline()

	splog.Info("Remote:")
	checkRemote(ctx, opts, remoteURL, report)

	splog.Newline()
	switch {
	case len(report.Errors) > 0:
		splog.Warn("Doctor found %d error(s) and %d warning(s).", len(report.Errors), len(report.Warnings))
		return report, fmt.Errorf("doctor found %d error(s)", len(report.Errors))
	case len(report.Warnings) > 0:
		splog.Info("Doctor found %d warning(s). Your setup is mostly healthy.", len(report.Warnings))
	default:
		splog.Info("✅ All checks passed. Your setup is healthy.")
	}
	return report, nil
}

func checkEnvironment(ctx *runtime.Context, report *DoctorReport) {
	splog := ctx.Splog
	result := ctx.Runner.Run(ctx.Context, os.TempDir(), git.Version())
	switch {
	case result.ToolNotFound():
		report.fail(splog, "%s is not installed or not in PATH", ctx.Config.GitExecutable())
	case !result.Success:
		report.fail(splog, "git --version failed: %s", result.Message())
	default:
		report.ok(splog, "%s", result.Message())
	}

	if _, ok := credentials.TokenFromEnv(); ok {
		report.ok(splog, "personal access token found in environment")
	}
}

// checkRepository returns the URL the remote checks should use: the one
// given on the command line, else the configured remote's URL.
func checkRepository(ctx *runtime.Context, opts DoctorOptions, report *DoctorReport) string {
	splog := ctx.Splog
	remoteName := ctx.Config.RemoteName()

	info, err := os.Stat(opts.Dir)
	if opts.Dir == "" || err != nil || !info.IsDir() {
		report.fail(splog, "directory not found: %s", opts.Dir)
		return opts.RemoteURL
	}
	report.ok(splog, "directory %s exists", opts.Dir)

	repo, err := git.OpenRepository(opts.Dir)
	if err != nil {
		report.warn(splog, "%s is not a git repository yet; use publish for the first push", opts.Dir)
		return opts.RemoteURL
	}
	report.ok(splog, "git repository at %s", repo.GetRepoRoot())

	if branch, err := repo.GetCurrentBranch(); err == nil {
		if branch != ctx.Config.BranchName() {
			report.warn(splog, "current branch is %q, pushes go to %q", branch, ctx.Config.BranchName())
		} else {
			report.ok(splog, "on branch %s", branch)
		}
	}
	if head, _ := repo.GetHeadSHA(); head == "" {
		report.warn(splog, "repository has no commits yet")
	}
	if clean, err := repo.IsClean(); err == nil && !clean {
		report.warn(splog, "working tree has uncommitted changes")
	}

	urls, err := repo.GetRemoteURLs(remoteName)
	if err != nil || len(urls) == 0 {
		if opts.RemoteURL == "" {
			report.warn(splog, "remote %q is not configured and no URL was given", remoteName)
		} else {
			report.ok(splog, "remote %q is not configured; push will add it", remoteName)
		}
		return opts.RemoteURL
	}
	report.ok(splog, "remote %q is %s", remoteName, credentials.Redact(urls[0]))
	if opts.RemoteURL != "" {
		return opts.RemoteURL
	}
	return urls[0]
}

func checkRemote(ctx *runtime.Context, opts DoctorOptions, remoteURL string, report *DoctorReport) {
	splog := ctx.Splog
	if remoteURL == "" {
		splog.Info("  no remote URL to check")
		return
	}

	ep, err := git.ParseEndpoint(remoteURL)
	if err != nil {
		report.fail(splog, "%v", err)
		return
	}
	report.ok(splog, "%s remote on %s", ep.Protocol, displayHost(ep))

	if ep.Protocol != "https" {
		splog.Info("  personal access tokens only apply to https:// remotes")
	}
	if !ep.IsGitHub() {
		return
	}

	token := opts.Token
	if token == "" {
		token, _ = credentials.TokenFromEnv()
	}
	if token == "" {
		splog.Tip("set AUTOGIT_TOKEN or GITHUB_TOKEN to check repository access")
		return
	}

	owner, name, err := ep.OwnerAndRepo()
	if err != nil {
		report.warn(splog, "%v", err)
		return
	}
	checker, err := ctx.GitHub(ctx.Context, ep.Host, token)
	if err != nil {
		report.warn(splog, "GitHub client: %v", err)
		return
	}
	status, err := checker.CheckRepository(ctx.Context, owner, name)
	switch {
	case err != nil:
		report.warn(splog, "GitHub check failed: %v", err)
	case !status.Exists:
		report.fail(splog, "GitHub repository %s/%s not found or not visible to the token", owner, name)
	case !status.CanPush:
		report.fail(splog, "token cannot push to %s/%s", owner, name)
	default:
		report.ok(splog, "token can push to %s/%s", owner, name)
	}
}

func displayHost(ep *git.Endpoint) string {
	if ep.Host == "" {
		return "local filesystem"
	}
	return ep.Host
}
