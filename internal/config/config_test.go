package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("expected default API URL, got %q", cfg.APIURL)
	}
	if cfg.Retries != 2 {
		t.Errorf("expected 2 retries, got %d", cfg.Retries)
	}
	if cfg.RetryDelay != time.Second {
		t.Errorf("expected 1s retry delay, got %v", cfg.RetryDelay)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("expected 10s timeout, got %v", cfg.Timeout)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
api_url: https://tasks.example.com
retries: 5
retry_delay: 250ms
auth:
  client_id: cli-1
  auth_url: https://id.example.com/authorize
  token_url: https://id.example.com/token
`
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIURL != "https://tasks.example.com" {
		t.Errorf("api_url not applied: %q", cfg.APIURL)
	}
	if cfg.Retries != 5 {
		t.Errorf("retries not applied: %d", cfg.Retries)
	}
	if cfg.RetryDelay != 250*time.Millisecond {
		t.Errorf("retry_delay not applied: %v", cfg.RetryDelay)
	}
	if cfg.Auth.ClientID != "cli-1" {
		t.Errorf("auth.client_id not applied: %q", cfg.Auth.ClientID)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "api_url: https://file.example.com\n"
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("TASKPAD_API_URL", "https://env.example.com")
	t.Setenv("TASKPAD_RETRIES", "0")
	t.Setenv("TASKPAD_RETRY_DELAY", "2s")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIURL != "https://env.example.com" {
		t.Errorf("env override lost: %q", cfg.APIURL)
	}
	if cfg.Retries != 0 {
		t.Errorf("expected 0 retries from env, got %d", cfg.Retries)
	}
	if cfg.RetryDelay != 2*time.Second {
		t.Errorf("expected 2s delay from env, got %v", cfg.RetryDelay)
	}
}

func TestLoadBadYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte("retries: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}

func TestTokenHelpers(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.HasToken() {
		t.Error("HasToken true with no file")
	}
	if err := os.WriteFile(cfg.TokenPath(), []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}
	if !cfg.HasToken() {
		t.Error("HasToken false with file present")
	}
	if err := cfg.RemoveToken(); err != nil {
		t.Fatal(err)
	}
	if cfg.HasToken() {
		t.Error("HasToken true after removal")
	}
}

func TestDefaultConfigDirXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")
	if got := DefaultConfigDir(); got != filepath.Join("/tmp/xdg-test", AppName) {
		t.Errorf("unexpected config dir: %q", got)
	}
}
