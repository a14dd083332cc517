package openapi

import (
	"fmt"
	"net/mail"
	"os"
)

// Config holds the document metadata shown in the info object.
type Config struct {
	Title        string `toml:"title"`
	Description  string `toml:"description"`
	ContactName  string `toml:"contact_name"`
	ContactEmail string `toml:"contact_email"`
}

// ConfigEnv names the environment variables that override each field.
// Empty names are skipped.
type ConfigEnv struct {
	Title        string
	Description  string
	ContactName  string
	ContactEmail string
}

func (c *Config) Finalize(env *ConfigEnv) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

func (c *Config) Merge(overlay *Config) {
	for dst, src := range c.fields(overlay) {
		if *src != "" {
			*dst = *src
		}
	}
}

// Contact returns the contact object, or nil when no contact is configured.
func (c *Config) Contact() *Contact {
	if c.ContactName == "" && c.ContactEmail == "" {
		return nil
	}
	return &Contact{Name: c.ContactName, Email: c.ContactEmail}
}

func (c *Config) loadDefaults() {
	if c.Title == "" {
		c.Title = "Holy Writ Ideas API"
	}
	if c.Description == "" {
		c.Description = "Project idea submissions, remarks extraction, and class rosters."
	}
}

func (c *Config) loadEnv(env *ConfigEnv) {
	overrides := &Config{
		Title:        getenv(env.Title),
		Description:  getenv(env.Description),
		ContactName:  getenv(env.ContactName),
		ContactEmail: getenv(env.ContactEmail),
	}
	c.Merge(overrides)
}

func (c *Config) validate() error {
	if c.ContactEmail == "" {
		return nil
	}
	if _, err := mail.ParseAddress(c.ContactEmail); err != nil {
		return fmt.Errorf("invalid contact_email: %w", err)
	}
	return nil
}

func (c *Config) fields(other *Config) map[*string]*string {
	return map[*string]*string{
		&c.Title:        &other.Title,
		&c.Description:  &other.Description,
		&c.ContactName:  &other.ContactName,
		&c.ContactEmail: &other.ContactEmail,
	}
}

func getenv(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}
