package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
		require.NoError(t, err)
		require.Equal(t, DefaultRemote, cfg.RemoteName())
		require.Equal(t, DefaultBranch, cfg.BranchName())
		require.Equal(t, PublishModeUpstream, cfg.PublishMode())
		require.Equal(t, DefaultGit, cfg.GitExecutable())

		timeout, err := cfg.CommandTimeout()
		require.NoError(t, err)
		require.Zero(t, timeout)
	})

	t.Run("reads yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), FileName)
		content := `remote: upstream
branch: trunk
publish:
  mode: force
command:
  git: /usr/local/bin/git
  timeout: 90s
log:
  file: /tmp/autogit.log
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, "upstream", cfg.RemoteName())
		require.Equal(t, "trunk", cfg.BranchName())
		require.Equal(t, PublishModeForce, cfg.PublishMode())
		require.Equal(t, "/usr/local/bin/git", cfg.GitExecutable())
		require.Equal(t, "/tmp/autogit.log", cfg.LogFile())

		timeout, err := cfg.CommandTimeout()
		require.NoError(t, err)
		require.Equal(t, 90*time.Second, timeout)
	})

	t.Run("rejects unknown publish mode", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), FileName)
		require.NoError(t, os.WriteFile(path, []byte("publish:\n  mode: yolo\n"), 0o600))

		_, err := Load(path)
		require.ErrorContains(t, err, "publish.mode")
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), FileName)
		require.NoError(t, os.WriteFile(path, []byte("remote: [unterminated\n"), 0o600))

		_, err := Load(path)
		require.Error(t, err)
	})
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	cfg := &Config{Branch: "develop", Publish: PublishConfig{Mode: PublishModeForce}}
	require.NoError(t, Save(path, cfg))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(configFilePermissions), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("AUTOGIT_REMOTE", "fork")
	t.Setenv("AUTOGIT_BRANCH", "release")
	t.Setenv("AUTOGIT_PUBLISH_MODE", PublishModeForce)
	t.Setenv("AUTOGIT_GIT", "git2")
	t.Setenv("AUTOGIT_TIMEOUT", "1m")
	t.Setenv("AUTOGIT_LOG_FILE", "/tmp/x.log")
	t.Setenv("AUTOGIT_TERMINAL_PROMPT", "true")

	cfg := &Config{Remote: "origin"}
	cfg.ApplyEnv()
	require.Equal(t, "fork", cfg.RemoteName())
	require.Equal(t, "release", cfg.BranchName())
	require.Equal(t, PublishModeForce, cfg.PublishMode())
	require.Equal(t, "git2", cfg.GitExecutable())
	require.Equal(t, "/tmp/x.log", cfg.LogFile())
	allowed, err := cfg.TerminalPrompt()
	require.NoError(t, err)
	require.True(t, allowed)
}

func TestTerminalPrompt(t *testing.T) {
	allowed, err := (&Config{}).TerminalPrompt()
	require.NoError(t, err)
	require.False(t, allowed, "git must not prompt unless asked to")

	cfg := &Config{}
	require.NoError(t, cfg.Set("command.terminal_prompt", "true"))
	allowed, err = cfg.TerminalPrompt()
	require.NoError(t, err)
	require.True(t, allowed)

	require.ErrorContains(t, cfg.Set("command.terminal_prompt", "sometimes"), "command.terminal_prompt")
	require.Equal(t, "true", cfg.Command.TerminalPrompt)
}

func TestLoadDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	t.Setenv("AUTOGIT_CONFIG", path)
	t.Setenv("AUTOGIT_BRANCH", "")
	t.Setenv("AUTOGIT_PUBLISH_MODE", "bogus")

	_, gotPath, err := LoadDefault()
	require.Equal(t, path, gotPath)
	require.ErrorContains(t, err, "publish.mode")
}

func TestGetSet(t *testing.T) {
	cfg := &Config{}

	require.NoError(t, cfg.Set("publish.mode", "force"))
	v, err := cfg.Get("publish.mode")
	require.NoError(t, err)
	require.Equal(t, "force", v)

	err = cfg.Set("publish.mode", "sideways")
	require.Error(t, err)
	require.Equal(t, "force", cfg.Publish.Mode, "invalid value must not be kept")

	require.Error(t, cfg.Set("command.timeout", "soon"))
	require.Empty(t, cfg.Command.Timeout)

	require.NoError(t, cfg.Set("branch", ""))
	require.Equal(t, DefaultBranch, cfg.BranchName())

	_, err = cfg.Get("nope")
	require.ErrorContains(t, err, "unknown config key")

	require.Equal(t, []string{"branch", "command.git", "command.terminal_prompt", "command.timeout", "log.file", "publish.mode", "remote"}, Keys())
}
