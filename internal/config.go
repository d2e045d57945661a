package internal

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultServerURL is where a local opencode server listens
const DefaultServerURL = "http://127.0.0.1:4096"

// Config holds client settings read from the environment
type Config struct {
	ServerURL    string        `env:"OPENCODE_API_URL" envDefault:"http://127.0.0.1:4096"`
	Timeout      time.Duration `env:"OPENCODE_TIMEOUT" envDefault:"5m"`
	Theme        string        `env:"OPENCODE_THEME" envDefault:"light"`
	DefaultModel string        `env:"OPENCODE_DEFAULT_MODEL"`
	LogLevel     string        `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadConfig loads envFile when given, then parses the environment
func LoadConfig(envFile string) (*Config, error) {
	if envFile != "" {
		LogDebug("Loading env from file %s", envFile)
		if err := godotenv.Load(envFile); err != nil {
			return nil, &ConfigError{Field: "env-file", Err: err}
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, &ConfigError{Field: "env", Err: err}
	}
	return &cfg, nil
}

// Validate checks the values a client cannot start without
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return &ConfigError{Field: "OPENCODE_API_URL", Err: err}
	}
	if u.Scheme == "" || u.Host == "" {
		return &ConfigError{Field: "OPENCODE_API_URL", Err: fmt.Errorf("%q is not an absolute URL", c.ServerURL)}
	}
	if c.Timeout <= 0 {
		return &ConfigError{Field: "OPENCODE_TIMEOUT", Err: errors.New("must be positive")}
	}
	if _, err := ParseTheme(c.Theme); err != nil {
		return &ConfigError{Field: "OPENCODE_THEME", Err: err}
	}
	if c.DefaultModel != "" {
		if _, err := ParseModelRef(c.DefaultModel); err != nil {
			return &ConfigError{Field: "OPENCODE_DEFAULT_MODEL", Err: err}
		}
	}
	return nil
}

// ThemeValue returns the configured theme, falling back to light
func (c *Config) ThemeValue() Theme {
	t, err := ParseTheme(c.Theme)
	if err != nil {
		return ThemeLight
	}
	return t
}

// DefaultModelRef returns the configured default model, if any
func (c *Config) DefaultModelRef() (ModelRef, bool) {
	ref, err := ParseModelRef(c.DefaultModel)
	if err != nil {
		return ModelRef{}, false
	}
	return ref, true
}
