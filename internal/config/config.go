// Package config handles the XDG configuration directory, file paths and the
// settings read from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName is the application directory name.
	AppName = "taskboard"

	// EnvPrefix prefixes every environment variable read by Load.
	EnvPrefix = "TASKBOARD_"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// SettingsFile holds the persisted feed URL.
	SettingsFile = "settings.yaml"

	// EnvFile is an optional dotenv file inside the config directory.
	EnvFile = ".env"

	// DefaultTimeout bounds a single feed fetch.
	DefaultTimeout = 15 * time.Second

	// DefaultSheetRange is the A1 range read through the Sheets API.
	DefaultSheetRange = "A1:Z1000"

	// Log formats accepted in TASKBOARD_LOG_FORMAT.
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Options are the tunables loaded from defaults and the environment.
type Options struct {
	// FeedURL overrides the persisted feed URL when set.
	FeedURL string `koanf:"feed_url"`

	// Timeout bounds a feed fetch.
	Timeout time.Duration `koanf:"timeout"`

	// SheetRange is the range read when the Sheets API backend is used.
	SheetRange string `koanf:"sheet_range"`

	// LogFormat is "text" or "json" for --debug output.
	LogFormat string `koanf:"log_format"`
}

// DefaultOptions returns the built-in option values.
func DefaultOptions() Options {
	return Options{
		Timeout:    DefaultTimeout,
		SheetRange: DefaultSheetRange,
		LogFormat:  LogFormatText,
	}
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// UseAPI reads Google Sheets through the Sheets API instead of the CSV export.
	UseAPI bool

	Options
}

// New creates a Config with the default or specified config directory and
// default options. Nothing is read from disk or the environment.
// If configDir is empty, uses XDG_CONFIG_HOME/taskboard or $HOME/.config/taskboard.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{Dir: dir, Options: DefaultOptions()}, nil
}

// Load creates a Config like New and then applies, in increasing precedence,
// the config directory's .env file and TASKBOARD_* environment variables.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	envPath := filepath.Join(cfg.Dir, EnvFile)
	if _, err := os.Stat(envPath); err == nil {
		// godotenv.Load never overrides variables already set.
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envPath, err)
		}
	}

	k := koanf.New(".")
	if err := k.Load(structs.Provider(cfg.Options, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var opts Options
	if err := k.Unmarshal("", &opts); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if opts.Timeout <= 0 {
		return nil, fmt.Errorf("invalid configuration: timeout must be positive")
	}
	opts.LogFormat = strings.ToLower(strings.TrimSpace(opts.LogFormat))
	if opts.LogFormat != LogFormatText && opts.LogFormat != LogFormatJSON {
		return nil, fmt.Errorf("invalid configuration: log_format must be %q or %q", LogFormatText, LogFormatJSON)
	}
	cfg.Options = opts
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// SettingsPath returns the path to the persisted settings file.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
