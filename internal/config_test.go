package internal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"OPENCODE_API_URL", "OPENCODE_TIMEOUT", "OPENCODE_THEME", "OPENCODE_DEFAULT_MODEL", "LOG_LEVEL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.ServerURL != DefaultServerURL {
		t.Errorf("ServerURL = %q, want %q", cfg.ServerURL, DefaultServerURL)
	}
	if cfg.Timeout != 5*time.Minute {
		t.Errorf("Timeout = %v, want 5m", cfg.Timeout)
	}
	if cfg.ThemeValue() != ThemeLight {
		t.Errorf("ThemeValue() = %q, want light", cfg.ThemeValue())
	}
	if _, ok := cfg.DefaultModelRef(); ok {
		t.Error("DefaultModelRef() should be unset by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoadConfig_Environment(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("OPENCODE_API_URL", "http://10.0.0.5:4096")
	t.Setenv("OPENCODE_TIMEOUT", "30s")
	t.Setenv("OPENCODE_THEME", "dark")
	t.Setenv("OPENCODE_DEFAULT_MODEL", "anthropic/claude-3")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.ServerURL != "http://10.0.0.5:4096" || cfg.Timeout != 30*time.Second {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.ThemeValue() != ThemeDark {
		t.Errorf("ThemeValue() = %q, want dark", cfg.ThemeValue())
	}
	ref, ok := cfg.DefaultModelRef()
	if !ok || ref.String() != "anthropic/claude-3" {
		t.Errorf("DefaultModelRef() = %v, %v", ref, ok)
	}
}

func TestLoadConfig_EnvFile(t *testing.T) {
	clearConfigEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("OPENCODE_API_URL=http://example.test:9000\nOPENCODE_THEME=dark\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// godotenv.Load sets variables without t.Setenv, so undo them here
	t.Cleanup(func() {
		os.Unsetenv("OPENCODE_API_URL")
		os.Unsetenv("OPENCODE_THEME")
	})

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.ServerURL != "http://example.test:9000" || cfg.Theme != "dark" {
		t.Errorf("env file values not applied: %+v", cfg)
	}

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Field != "env-file" {
		t.Errorf("LoadConfig(missing) error = %v, want env-file ConfigError", err)
	}
}

func TestLoadConfig_BadDuration(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("OPENCODE_TIMEOUT", "soon")

	_, err := LoadConfig("")
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("LoadConfig() error = %v, want ConfigError", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{ServerURL: DefaultServerURL, Timeout: time.Minute, Theme: "light"}

	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"valid", func(*Config) {}, ""},
		{"relative url", func(c *Config) { c.ServerURL = "localhost:4096" }, "OPENCODE_API_URL"},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, "OPENCODE_TIMEOUT"},
		{"unknown theme", func(c *Config) { c.Theme = "blue" }, "OPENCODE_THEME"},
		{"bad model", func(c *Config) { c.DefaultModel = "gpt-4" }, "OPENCODE_DEFAULT_MODEL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) || cfgErr.Field != tt.wantField {
				t.Errorf("Validate() error = %v, want field %s", err, tt.wantField)
			}
		})
	}
}
