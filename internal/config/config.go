// Package config handles the XDG configuration directory, the optional
// config.yaml file, and environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "taskpad"

	// ConfigFile is the optional settings filename inside the config dir.
	ConfigFile = "config.yaml"

	// TokenFile is the stored session token filename.
	TokenFile = "token.json"

	// DefaultAPIURL is used when no base URL is configured.
	DefaultAPIURL = "http://localhost:8000"

	// DefaultRetries is the transport retry bound.
	DefaultRetries = 2

	// DefaultRetryDelay is the fixed delay between transport attempts.
	DefaultRetryDelay = time.Second

	// DefaultTimeout bounds a single request attempt.
	DefaultTimeout = 10 * time.Second
)

// Auth holds the identity provider endpoints used by the login flow.
type Auth struct {
	ClientID string `yaml:"client_id"`
	AuthURL  string `yaml:"auth_url"`
	TokenURL string `yaml:"token_url"`
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `yaml:"-"`

	// APIURL is the task service base URL.
	APIURL string `yaml:"api_url"`

	// Auth configures the identity provider.
	Auth Auth `yaml:"auth"`

	// Retries is the transport retry bound (retries after the first attempt).
	Retries int `yaml:"retries"`

	// RetryDelay is the fixed inter-attempt delay.
	RetryDelay time.Duration `yaml:"retry_delay"`

	// Timeout bounds a single request attempt.
	Timeout time.Duration `yaml:"timeout"`

	// Debug enables debug logging.
	Debug bool `yaml:"-"`

	// Quiet suppresses informational output.
	Quiet bool `yaml:"-"`
}

// Load creates a Config from the default or specified config directory,
// applying config.yaml when present and environment overrides on top.
func Load(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	cfg := &Config{
		Dir:        dir,
		APIURL:     DefaultAPIURL,
		Retries:    DefaultRetries,
		RetryDelay: DefaultRetryDelay,
		Timeout:    DefaultTimeout,
	}

	if err := cfg.loadFile(); err != nil {
		return nil, err
	}
	cfg.overrideFromEnv()

	return cfg, nil
}

// loadFile applies config.yaml if it exists.
func (c *Config) loadFile() error {
	f, err := os.Open(filepath.Join(c.Dir, ConfigFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open %s: %w", ConfigFile, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(c); err != nil {
		return fmt.Errorf("decode %s: %w", ConfigFile, err)
	}
	return nil
}

// overrideFromEnv applies environment variable overrides.
func (c *Config) overrideFromEnv() {
	if url := os.Getenv("TASKPAD_API_URL"); url != "" {
		c.APIURL = url
	}
	if id := os.Getenv("TASKPAD_AUTH_CLIENT_ID"); id != "" {
		c.Auth.ClientID = id
	}
	if url := os.Getenv("TASKPAD_AUTH_URL"); url != "" {
		c.Auth.AuthURL = url
	}
	if url := os.Getenv("TASKPAD_TOKEN_URL"); url != "" {
		c.Auth.TokenURL = url
	}
	if retries := os.Getenv("TASKPAD_RETRIES"); retries != "" {
		if n, err := strconv.Atoi(retries); err == nil && n >= 0 {
			c.Retries = n
		}
	}
	if delay := os.Getenv("TASKPAD_RETRY_DELAY"); delay != "" {
		if d, err := time.ParseDuration(delay); err == nil && d >= 0 {
			c.RetryDelay = d
		}
	}
	if timeout := os.Getenv("TASKPAD_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			c.Timeout = d
		}
	}
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

// TokenPath returns the path to the stored session token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasToken checks if the session token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the session token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
