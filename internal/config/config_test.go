package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ENVIRONMENT", "SUPABASE_URL", "TABLE_PREFIX", "RECORD_BACKEND", "STATE_BACKEND", "BREAKER_TIMEOUT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()

	if cfg.Environment != "dev" {
		t.Errorf("Environment = %s, want dev", cfg.Environment)
	}
	if cfg.TablePrefix != "dev_" {
		t.Errorf("TablePrefix = %s, want dev_", cfg.TablePrefix)
	}
	if cfg.RecordBackend != BackendPostgres {
		t.Errorf("RecordBackend = %s, want %s", cfg.RecordBackend, BackendPostgres)
	}
	if cfg.AuthEnabled() {
		t.Error("AuthEnabled() = true without SUPABASE_URL")
	}
	if cfg.BreakerTimeout != 60*time.Second {
		t.Errorf("BreakerTimeout = %v, want 60s", cfg.BreakerTimeout)
	}
}

func TestLoad_EnvironmentPrefixes(t *testing.T) {
	tests := []struct {
		env    string
		prefix string
	}{
		{"prod", "prod_"},
		{"test", "test_"},
		{"dev", "dev_"},
		{"staging", "dev_"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv("ENVIRONMENT", tt.env)
			t.Setenv("TABLE_PREFIX", "")
			os.Unsetenv("TABLE_PREFIX")

			if got := Load().TablePrefix; got != tt.prefix {
				t.Errorf("TablePrefix = %s, want %s", got, tt.prefix)
			}
		})
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://abc.supabase.co")
	t.Setenv("TABLE_PREFIX", "")
	t.Setenv("BREAKER_FAILURE_RATIO", "0.5")
	t.Setenv("LOG_MAX_FILES", "not-a-number")

	cfg := Load()

	if cfg.SupabaseJWKSURL != "https://abc.supabase.co/auth/v1/.well-known/jwks.json" {
		t.Errorf("SupabaseJWKSURL = %s", cfg.SupabaseJWKSURL)
	}
	if !cfg.AuthEnabled() {
		t.Error("AuthEnabled() = false with SUPABASE_URL set")
	}
	if cfg.TablePrefix != "" {
		t.Errorf("TablePrefix = %q, want explicit empty prefix", cfg.TablePrefix)
	}
	if cfg.BreakerFailRatio != 0.5 {
		t.Errorf("BreakerFailRatio = %v, want 0.5", cfg.BreakerFailRatio)
	}
	if cfg.LogMaxFiles != 10 {
		t.Errorf("LogMaxFiles = %d, want default 10", cfg.LogMaxFiles)
	}
}

func TestCleanupOldLogs(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"filesfeed-2025-01-01T00-00-00.000.log",
		"filesfeed-2025-01-02T00-00-00.000.log",
		"filesfeed-2025-01-03T00-00-00.000.log",
		"unrelated.txt",
	}
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}

	if err := cleanupOldLogs(dir, 2); err != nil {
		t.Fatalf("cleanupOldLogs: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, names[0])); !os.IsNotExist(err) {
		t.Error("oldest log was not removed")
	}
	for _, n := range names[1:] {
		if _, err := os.Stat(filepath.Join(dir, n)); err != nil {
			t.Errorf("%s should remain: %v", n, err)
		}
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			RecordBackend:    BackendPostgres,
			StateBackend:     BackendPostgres,
			SupabaseDBURL:    "postgres://localhost/db",
			BreakerFailRatio: 0.8,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"postgres everywhere", func(c *Config) {}, false},
		{"missing db url", func(c *Config) { c.SupabaseDBURL = "" }, true},
		{"unknown record backend", func(c *Config) { c.RecordBackend = "mongo" }, true},
		{"supabase without key", func(c *Config) {
			c.RecordBackend = BackendSupabase
			c.SupabaseURL = "https://abc.supabase.co"
		}, true},
		{"supabase with sqlite state needs no db", func(c *Config) {
			c.RecordBackend = BackendSupabase
			c.SupabaseURL = "https://abc.supabase.co"
			c.SupabaseKey = "anon"
			c.StateBackend = BackendSQLite
			c.StateSQLitePath = "state.db"
			c.SupabaseDBURL = ""
		}, false},
		{"memory state", func(c *Config) { c.StateBackend = BackendMemory }, false},
		{"bad ratio", func(c *Config) { c.BreakerFailRatio = 1.5 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
