package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// FileName is the config file name inside the autogit config directory
	FileName = "config.yml"

	// DefaultRemote is the remote used when none is configured
	DefaultRemote = "origin"
	// DefaultBranch is the branch published and pushed when none is configured
	DefaultBranch = "main"
	// DefaultGit is the git executable used when none is configured
	DefaultGit = "git"

	// PublishModeUpstream publishes with `git push -u <remote> <branch>`
	PublishModeUpstream = "upstream"
	// PublishModeForce publishes with `git push --force <remote> HEAD:<branch>`
	PublishModeForce = "force"

	configFilePermissions = 0o600
)

// Config represents the autogit user configuration
type Config struct {
	Remote  string        `yaml:"remote,omitempty"`
	Branch  string        `yaml:"branch,omitempty"`
	Publish PublishConfig `yaml:"publish,omitempty"`
	Command CommandConfig `yaml:"command,omitempty"`
	Log     LogConfig     `yaml:"log,omitempty"`
}

// PublishConfig configures the first-publish workflow
type PublishConfig struct {
	Mode string `yaml:"mode,omitempty"`
}

// CommandConfig configures how git is executed
type CommandConfig struct {
	Git     string `yaml:"git,omitempty"`
	Timeout string `yaml:"timeout,omitempty"`
	// TerminalPrompt lets git ask for credentials on the terminal
	TerminalPrompt string `yaml:"terminal_prompt,omitempty"`
}

// LogConfig configures file logging
type LogConfig struct {
	File string `yaml:"file,omitempty"`
}

// DefaultPath returns $AUTOGIT_CONFIG, or config.yml in the user config directory
func DefaultPath() (string, error) {
	if custom := os.Getenv("AUTOGIT_CONFIG"); custom != "" {
		return custom, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(dir, "autogit", FileName), nil
}

// Load reads the config at path. A missing file yields an empty config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadDefault loads the config from DefaultPath and applies environment overrides
func LoadDefault() (*Config, string, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, "", err
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// Save writes cfg to path, creating the directory if needed
func Save(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, configFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ApplyEnv overrides values from AUTOGIT_* environment variables
func (c *Config) ApplyEnv() {
	if v := os.Getenv("AUTOGIT_REMOTE"); v != "" {
		c.Remote = v
	}
	if v := os.Getenv("AUTOGIT_BRANCH"); v != "" {
		c.Branch = v
	}
	if v := os.Getenv("AUTOGIT_PUBLISH_MODE"); v != "" {
		c.Publish.Mode = v
	}
	if v := os.Getenv("AUTOGIT_GIT"); v != "" {
		c.Command.Git = v
	}
	if v := os.Getenv("AUTOGIT_TIMEOUT"); v != "" {
		c.Command.Timeout = v
	}
	if v := os.Getenv("AUTOGIT_TERMINAL_PROMPT"); v != "" {
		c.Command.TerminalPrompt = v
	}
	if v := os.Getenv("AUTOGIT_LOG_FILE"); v != "" {
		c.Log.File = v
	}
}

// Validate checks enumerated and parsed values
func (c *Config) Validate() error {
	switch c.Publish.Mode {
	case "", PublishModeUpstream, PublishModeForce:
	default:
		return fmt.Errorf("publish.mode must be %q or %q, got %q", PublishModeUpstream, PublishModeForce, c.Publish.Mode)
	}
	if _, err := c.CommandTimeout(); err != nil {
		return err
	}
	if _, err := c.TerminalPrompt(); err != nil {
		return err
	}
	if strings.ContainsAny(c.Remote, " \t") {
		return fmt.Errorf("remote must not contain whitespace: %q", c.Remote)
	}
	if strings.ContainsAny(c.Branch, " \t") {
		return fmt.Errorf("branch must not contain whitespace: %q", c.Branch)
	}
	return nil
}

// RemoteName returns the configured remote or DefaultRemote
func (c *Config) RemoteName() string {
	if c.Remote != "" {
		return c.Remote
	}
	return DefaultRemote
}

// BranchName returns the configured branch or DefaultBranch
func (c *Config) BranchName() string {
	if c.Branch != "" {
		return c.Branch
	}
	return DefaultBranch
}

// PublishMode returns the configured publish mode or PublishModeUpstream
func (c *Config) PublishMode() string {
	if c.Publish.Mode != "" {
		return c.Publish.Mode
	}
	return PublishModeUpstream
}

// GitExecutable returns the configured git binary or DefaultGit
func (c *Config) GitExecutable() string {
	if c.Command.Git != "" {
		return c.Command.Git
	}
	return DefaultGit
}

// CommandTimeout returns the per-command timeout. Zero means none.
func (c *Config) CommandTimeout() (time.Duration, error) {
	if c.Command.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Command.Timeout)
	if err != nil {
		return 0, fmt.Errorf("command.timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("command.timeout must not be negative")
	}
	return d, nil
}

// TerminalPrompt reports whether git may prompt on the terminal. Default false.
func (c *Config) TerminalPrompt() (bool, error) {
	if c.Command.TerminalPrompt == "" {
		return false, nil
	}
	allowed, err := strconv.ParseBool(c.Command.TerminalPrompt)
	if err != nil {
		return false, fmt.Errorf("command.terminal_prompt must be true or false, got %q", c.Command.TerminalPrompt)
	}
	return allowed, nil
}

// LogFile returns the configured log file path, if any
func (c *Config) LogFile() string {
	return c.Log.File
}

// accessors maps dotted keys to their fields for Get/Set
func (c *Config) accessors() map[string]*string {
	return map[string]*string{
		"remote":                  &c.Remote,
		"branch":                  &c.Branch,
		"publish.mode":            &c.Publish.Mode,
		"command.git":             &c.Command.Git,
		"command.timeout":         &c.Command.Timeout,
		"command.terminal_prompt": &c.Command.TerminalPrompt,
		"log.file":                &c.Log.File,
	}
}

// Keys returns every settable key, sorted
func Keys() []string {
	keys := make([]string, 0, 7)
	for k := range (&Config{}).accessors() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the raw value stored for key
func (c *Config) Get(key string) (string, error) {
	field, ok := c.accessors()[key]
	if !ok {
		return "", fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys(), ", "))
	}
	return *field, nil
}

// Set stores value for key and validates the result. An empty value resets
// the key to its default.
func (c *Config) Set(key, value string) error {
	field, ok := c.accessors()[key]
	if !ok {
		return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys(), ", "))
	}
	old := *field
	*field = strings.TrimSpace(value)
	if err := c.Validate(); err != nil {
		*field = old
		return err
	}
	return nil
}
