package mail

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Transport names accepted by Config.Transport.
const (
	TransportSMTP     = "smtp"
	TransportSendGrid = "sendgrid"
	TransportConsole  = "console"
)

// Config holds mail delivery settings. Credentials are optional at load
// time; a sender built from incomplete settings reports ErrNotConfigured
// when used.
type Config struct {
	Transport      string `toml:"transport"`
	Host           string `toml:"host"`
	Port           int    `toml:"port"`
	Secure         *bool  `toml:"secure"`
	User           string `toml:"user"`
	Password       string `toml:"password"`
	From           string `toml:"from"`
	FromName       string `toml:"from_name"`
	Recipient      string `toml:"recipient"`
	SendGridAPIKey string `toml:"sendgrid_api_key"`
	SendGridHost   string `toml:"sendgrid_host"`
	Timeout        string `toml:"timeout"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Transport      string
	Host           string
	Port           string
	Secure         string
	User           string
	Password       string
	From           string
	FromName       string
	Recipient      string
	SendGridAPIKey string
	SendGridHost   string
	Timeout        string
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// ImplicitTLS reports whether SMTP connections start with TLS rather
// than upgrading through STARTTLS.
func (c *Config) ImplicitTLS() bool {
	return c.Secure != nil && *c.Secure
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay. Secure applies only when
// the overlay sets it.
func (c *Config) Merge(overlay *Config) {
	if overlay.Transport != "" {
		c.Transport = overlay.Transport
	}
	if overlay.Host != "" {
		c.Host = overlay.Host
	}
	if overlay.Port != 0 {
		c.Port = overlay.Port
	}
	if overlay.Secure != nil {
		c.Secure = new(*overlay.Secure)
	}
	if overlay.User != "" {
		c.User = overlay.User
	}
	if overlay.Password != "" {
		c.Password = overlay.Password
	}
	if overlay.From != "" {
		c.From = overlay.From
	}
	if overlay.FromName != "" {
		c.FromName = overlay.FromName
	}
	if overlay.Recipient != "" {
		c.Recipient = overlay.Recipient
	}
	if overlay.SendGridAPIKey != "" {
		c.SendGridAPIKey = overlay.SendGridAPIKey
	}
	if overlay.SendGridHost != "" {
		c.SendGridHost = overlay.SendGridHost
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

// Missing lists the settings the selected transport still needs.
// An empty result means the transport can attempt delivery.
func (c *Config) Missing() []string {
	var missing []string
	if c.Recipient == "" {
		missing = append(missing, "recipient")
	}

	switch c.Transport {
	case TransportSMTP:
		if c.Host == "" {
			missing = append(missing, "host")
		}
		if c.Port == 0 {
			missing = append(missing, "port")
		}
		if c.From == "" && c.User == "" {
			missing = append(missing, "from")
		}
	case TransportSendGrid:
		if c.SendGridAPIKey == "" {
			missing = append(missing, "sendgrid_api_key")
		}
		if c.From == "" {
			missing = append(missing, "from")
		}
	}

	return missing
}

// Sender returns the envelope sender, falling back to the SMTP user.
func (c *Config) Sender() string {
	if c.From != "" {
		return c.From
	}
	return c.User
}

func (c *Config) loadDefaults() {
	if c.Transport == "" {
		c.Transport = TransportSMTP
	}
	if c.Port == 0 && c.Transport == TransportSMTP {
		c.Port = 587
	}
	if c.FromName == "" {
		c.FromName = "Holy Writ Ideas"
	}
	if c.SendGridHost == "" {
		c.SendGridHost = "https://api.sendgrid.com"
	}
	if c.Timeout == "" {
		c.Timeout = "30s"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Transport != "" {
		if v := os.Getenv(env.Transport); v != "" {
			c.Transport = v
		}
	}
	if env.Host != "" {
		if v := os.Getenv(env.Host); v != "" {
			c.Host = v
		}
	}
	if env.Port != "" {
		if v := os.Getenv(env.Port); v != "" {
			if port, err := strconv.Atoi(v); err == nil {
				c.Port = port
			}
		}
	}
	if env.Secure != "" {
		if v := os.Getenv(env.Secure); v != "" {
			if secure, err := strconv.ParseBool(v); err == nil {
				c.Secure = &secure
			}
		}
	}
	if env.User != "" {
		if v := os.Getenv(env.User); v != "" {
			c.User = v
		}
	}
	if env.Password != "" {
		if v := os.Getenv(env.Password); v != "" {
			c.Password = v
		}
	}
	if env.From != "" {
		if v := os.Getenv(env.From); v != "" {
			c.From = v
		}
	}
	if env.FromName != "" {
		if v := os.Getenv(env.FromName); v != "" {
			c.FromName = v
		}
	}
	if env.Recipient != "" {
		if v := os.Getenv(env.Recipient); v != "" {
			c.Recipient = v
		}
	}
	if env.SendGridAPIKey != "" {
		if v := os.Getenv(env.SendGridAPIKey); v != "" {
			c.SendGridAPIKey = v
		}
	}
	if env.SendGridHost != "" {
		if v := os.Getenv(env.SendGridHost); v != "" {
			c.SendGridHost = v
		}
	}
	if env.Timeout != "" {
		if v := os.Getenv(env.Timeout); v != "" {
			c.Timeout = v
		}
	}
}

func (c *Config) validate() error {
	switch c.Transport {
	case TransportSMTP, TransportSendGrid, TransportConsole:
	default:
		return fmt.Errorf("unknown transport: %q", c.Transport)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}
