// Package config loads service configuration from TOML files, a .env file,
// and IDEAS_* environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/holywrit/ideas/pkg/gemini"
	"github.com/holywrit/ideas/pkg/mail"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"
	DotEnvFile           = ".env"

	EnvIdeasEnv             = "IDEAS_ENV"
	EnvIdeasShutdownTimeout = "IDEAS_SHUTDOWN_TIMEOUT"
	EnvIdeasVersion         = "IDEAS_VERSION"
	EnvIdeasLogLevel        = "IDEAS_LOG_LEVEL"
)

var geminiEnv = &gemini.Env{
	APIKey:  "IDEAS_GEMINI_API_KEY",
	Model:   "IDEAS_GEMINI_MODEL",
	Timeout: "IDEAS_GEMINI_TIMEOUT",
}

var mailEnv = &mail.Env{
	Transport:      "IDEAS_MAIL_TRANSPORT",
	Host:           "IDEAS_SMTP_HOST",
	Port:           "IDEAS_SMTP_PORT",
	Secure:         "IDEAS_SMTP_SECURE",
	User:           "IDEAS_SMTP_USER",
	Password:       "IDEAS_SMTP_PASSWORD",
	From:           "IDEAS_MAIL_FROM",
	FromName:       "IDEAS_MAIL_FROM_NAME",
	Recipient:      "IDEAS_MAIL_RECIPIENT",
	SendGridAPIKey: "IDEAS_SENDGRID_API_KEY",
	SendGridHost:   "IDEAS_SENDGRID_HOST",
	Timeout:        "IDEAS_MAIL_TIMEOUT",
}

// Config is the root configuration for the ideas service.
type Config struct {
	Server          ServerConfig  `toml:"server"`
	API             APIConfig     `toml:"api"`
	Gemini          gemini.Config `toml:"gemini"`
	Mail            mail.Config   `toml:"mail"`
	ShutdownTimeout string        `toml:"shutdown_timeout"`
	Version         string        `toml:"version"`
	LogLevel        string        `toml:"log_level"`
}

// Env returns the IDEAS_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvIdeasEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Level returns LogLevel as a slog.Level.
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Load reads .env (if present) into the process environment, then the base
// config, applies any environment overlay, and finalizes all values. Variables
// already set in the environment take precedence over .env entries.
func Load() (*Config, error) {
	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}

	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	if overlay.LogLevel != "" {
		c.LogLevel = overlay.LogLevel
	}
	c.Server.Merge(&overlay.Server)
	c.API.Merge(&overlay.API)
	c.Gemini.Merge(&overlay.Gemini)
	c.Mail.Merge(&overlay.Mail)
}

// Finalize applies defaults, environment overrides, and validation to the
// root config and every section.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Gemini.Finalize(geminiEnv); err != nil {
		return fmt.Errorf("gemini: %w", err)
	}
	if err := c.Mail.Finalize(mailEnv); err != nil {
		return fmt.Errorf("mail: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvIdeasShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvIdeasVersion); v != "" {
		c.Version = v
	}
	if v := os.Getenv(EnvIdeasLogLevel); v != "" {
		c.LogLevel = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	return nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvIdeasEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
