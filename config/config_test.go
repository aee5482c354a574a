package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.DefaultFormat != "table" {
		t.Errorf("DefaultFormat = %q, want table", cfg.DefaultFormat)
	}
	if cfg.StandardTTL != 10*time.Minute {
		t.Errorf("StandardTTL = %v, want 10m", cfg.StandardTTL)
	}
	if cfg.ExpensiveTTL != 30*time.Minute {
		t.Errorf("ExpensiveTTL = %v, want 30m", cfg.ExpensiveTTL)
	}
	if cfg.GoodFirst.StarThreshold != 10000 {
		t.Errorf("GoodFirst.StarThreshold = %d, want 10000", cfg.GoodFirst.StarThreshold)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := loadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("loadFrom() error: %v", err)
	}
	if cfg.DefaultFormat != "table" {
		t.Errorf("DefaultFormat = %q, want table", cfg.DefaultFormat)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("default_format: json\nstale_days: 21\ngood_first:\n  repo_limit: 3\n")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom() error: %v", err)
	}
	if cfg.DefaultFormat != "json" {
		t.Errorf("DefaultFormat = %q, want json", cfg.DefaultFormat)
	}
	if cfg.StaleDays != 21 {
		t.Errorf("StaleDays = %d, want 21", cfg.StaleDays)
	}
	if cfg.GoodFirst.RepoLimit != 3 {
		t.Errorf("GoodFirst.RepoLimit = %d, want 3", cfg.GoodFirst.RepoLimit)
	}
	// Untouched fields keep defaults.
	if cfg.CacheSize != 4096 {
		t.Errorf("CacheSize = %d, want default 4096", cfg.CacheSize)
	}
}

func TestLoadEnvironmentWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("default_format: json\n"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("GITPULSE_DEFAULT_FORMAT", "markdown")

	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom() error: %v", err)
	}
	if cfg.DefaultFormat != "markdown" {
		t.Errorf("DefaultFormat = %q, want markdown from env", cfg.DefaultFormat)
	}
}

func TestLoadRejectsInvalidFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("default_format: csv\n"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := loadFrom(path); err == nil {
		t.Fatal("loadFrom() should reject an unknown output format")
	}
}

func TestTokenPrecedence(t *testing.T) {
	cfg := Default()

	t.Setenv("GITPULSE_TOKEN", "")
	t.Setenv("GITHUB_TOKEN", "")
	if got := cfg.Token(); got != "" {
		t.Errorf("Token() = %q with no env set", got)
	}

	t.Setenv("GITHUB_TOKEN", "fallback")
	if got := cfg.Token(); got != "fallback" {
		t.Errorf("Token() = %q, want fallback", got)
	}

	t.Setenv("GITPULSE_TOKEN", "primary")
	if got := cfg.Token(); got != "primary" {
		t.Errorf("Token() = %q, want primary", got)
	}
}

func TestIsRepoExcluded(t *testing.T) {
	cfg := Default()
	cfg.ExcludeRepos = []string{"owner/noisy"}

	if !cfg.IsRepoExcluded("owner/noisy") {
		t.Error("expected owner/noisy excluded")
	}
	if cfg.IsRepoExcluded("owner/other") {
		t.Error("owner/other should not be excluded")
	}
}
