package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"
)

const (
	EnvServerHost              = "IDEAS_SERVER_HOST"
	EnvServerPort              = "IDEAS_SERVER_PORT"
	EnvServerReadTimeout       = "IDEAS_SERVER_READ_TIMEOUT"
	EnvServerReadHeaderTimeout = "IDEAS_SERVER_READ_HEADER_TIMEOUT"
	EnvServerWriteTimeout      = "IDEAS_SERVER_WRITE_TIMEOUT"
	EnvServerIdleTimeout       = "IDEAS_SERVER_IDLE_TIMEOUT"
	EnvServerShutdownTimeout   = "IDEAS_SERVER_SHUTDOWN_TIMEOUT"
)

// ServerConfig holds the HTTP listener settings. Timeouts are duration
// strings; the write timeout has to cover a full submission, which waits
// on both the model and the mail relay.
type ServerConfig struct {
	Host              string `toml:"host"`
	Port              int    `toml:"port"`
	ReadTimeout       string `toml:"read_timeout"`
	ReadHeaderTimeout string `toml:"read_header_timeout"`
	WriteTimeout      string `toml:"write_timeout"`
	IdleTimeout       string `toml:"idle_timeout"`
	ShutdownTimeout   string `toml:"shutdown_timeout"`
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c *ServerConfig) ReadTimeoutDuration() time.Duration {
	return mustDuration(c.ReadTimeout)
}

func (c *ServerConfig) ReadHeaderTimeoutDuration() time.Duration {
	return mustDuration(c.ReadHeaderTimeout)
}

func (c *ServerConfig) WriteTimeoutDuration() time.Duration {
	return mustDuration(c.WriteTimeout)
}

func (c *ServerConfig) IdleTimeoutDuration() time.Duration {
	return mustDuration(c.IdleTimeout)
}

func (c *ServerConfig) ShutdownTimeoutDuration() time.Duration {
	return mustDuration(c.ShutdownTimeout)
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ServerConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ServerConfig) Merge(overlay *ServerConfig) {
	if overlay.Host != "" {
		c.Host = overlay.Host
	}
	if overlay.Port != 0 {
		c.Port = overlay.Port
	}
	for _, d := range c.durations(overlay) {
		if *d.src != "" {
			*d.dst = *d.src
		}
	}
}

func (c *ServerConfig) loadDefaults() {
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == 0 {
		c.Port = 8080
	}
	for _, d := range c.durations(nil) {
		if *d.dst == "" {
			*d.dst = d.def
		}
	}
}

func (c *ServerConfig) loadEnv() {
	if v := os.Getenv(EnvServerHost); v != "" {
		c.Host = v
	}
	if v := os.Getenv(EnvServerPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	for _, d := range c.durations(nil) {
		if v := os.Getenv(d.env); v != "" {
			*d.dst = v
		}
	}
}

func (c *ServerConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	for _, d := range c.durations(nil) {
		v, err := time.ParseDuration(*d.dst)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", d.key, err)
		}
		if v <= 0 {
			return fmt.Errorf("invalid %s: must be positive", d.key)
		}
	}
	return nil
}

type durationField struct {
	key string
	env string
	def string
	dst *string
	src *string
}

// durations pairs each timeout field with its TOML key, env var, default,
// and, when overlay is non-nil, the overlay's field.
func (c *ServerConfig) durations(overlay *ServerConfig) []durationField {
	fields := []durationField{
		{"read_timeout", EnvServerReadTimeout, "1m", &c.ReadTimeout, nil},
		{"read_header_timeout", EnvServerReadHeaderTimeout, "10s", &c.ReadHeaderTimeout, nil},
		{"write_timeout", EnvServerWriteTimeout, "2m", &c.WriteTimeout, nil},
		{"idle_timeout", EnvServerIdleTimeout, "2m", &c.IdleTimeout, nil},
		{"shutdown_timeout", EnvServerShutdownTimeout, "30s", &c.ShutdownTimeout, nil},
	}
	if overlay != nil {
		src := []*string{
			&overlay.ReadTimeout,
			&overlay.ReadHeaderTimeout,
			&overlay.WriteTimeout,
			&overlay.IdleTimeout,
			&overlay.ShutdownTimeout,
		}
		for i := range fields {
			fields[i].src = src[i]
		}
	}
	return fields
}

func mustDuration(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}
