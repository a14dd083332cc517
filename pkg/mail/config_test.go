package mail_test

import (
	"slices"
	"testing"
	"time"

	"github.com/holywrit/ideas/pkg/mail"
)

var testEnv = &mail.Env{
	Transport:      "TEST_MAIL_TRANSPORT",
	Host:           "TEST_SMTP_HOST",
	Port:           "TEST_SMTP_PORT",
	Secure:         "TEST_SMTP_SECURE",
	User:           "TEST_SMTP_USER",
	Password:       "TEST_SMTP_PASSWORD",
	Recipient:      "TEST_MAIL_RECIPIENT",
	SendGridAPIKey: "TEST_SENDGRID_API_KEY",
	Timeout:        "TEST_MAIL_TIMEOUT",
}

func TestConfigDefaults(t *testing.T) {
	cfg := &mail.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Transport != mail.TransportSMTP {
		t.Errorf("transport: got %s, want smtp", cfg.Transport)
	}
	if cfg.Port != 587 {
		t.Errorf("port: got %d, want 587", cfg.Port)
	}
	if cfg.TimeoutDuration() != 30*time.Second {
		t.Errorf("timeout: got %v, want 30s", cfg.TimeoutDuration())
	}
	if cfg.SendGridHost != "https://api.sendgrid.com" {
		t.Errorf("sendgrid host: got %s", cfg.SendGridHost)
	}
}

func TestConfigEnvOverrides(t *testing.T) {
	t.Setenv("TEST_SMTP_HOST", "smtp.school.test")
	t.Setenv("TEST_SMTP_PORT", "465")
	t.Setenv("TEST_SMTP_SECURE", "true")
	t.Setenv("TEST_SMTP_USER", "office@school.test")
	t.Setenv("TEST_SMTP_PASSWORD", "secret")
	t.Setenv("TEST_MAIL_RECIPIENT", "ideas@school.test")

	cfg := &mail.Config{}
	if err := cfg.Finalize(testEnv); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Host != "smtp.school.test" {
		t.Errorf("host: got %s", cfg.Host)
	}
	if cfg.Port != 465 {
		t.Errorf("port: got %d, want 465", cfg.Port)
	}
	if !cfg.ImplicitTLS() {
		t.Error("secure: got false, want true")
	}
	if cfg.Sender() != "office@school.test" {
		t.Errorf("sender: got %s, want the smtp user", cfg.Sender())
	}
	if missing := cfg.Missing(); len(missing) != 0 {
		t.Errorf("missing: got %v, want none", missing)
	}
}

func TestConfigMissingDoesNotFailFinalize(t *testing.T) {
	cfg := &mail.Config{}
	if err := cfg.Finalize(testEnv); err != nil {
		t.Fatalf("finalize should tolerate absent credentials: %v", err)
	}

	missing := cfg.Missing()
	for _, want := range []string{"recipient", "host"} {
		if !slices.Contains(missing, want) {
			t.Errorf("missing %v should contain %s", missing, want)
		}
	}
}

func TestConfigMissingSendGrid(t *testing.T) {
	cfg := &mail.Config{Transport: mail.TransportSendGrid, Recipient: "ideas@school.test"}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	missing := cfg.Missing()
	if !slices.Equal(missing, []string{"sendgrid_api_key", "from"}) {
		t.Errorf("missing: got %v", missing)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  mail.Config
	}{
		{"unknown transport", mail.Config{Transport: "pigeon"}},
		{"bad port", mail.Config{Port: 70000}},
		{"bad timeout", mail.Config{Timeout: "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Finalize(nil); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestConfigMerge(t *testing.T) {
	base := &mail.Config{Transport: "smtp", Host: "a", Port: 25, Recipient: "x@y.z"}
	base.Merge(&mail.Config{Host: "b", Secure: new(true)})

	if base.Host != "b" {
		t.Errorf("host: got %s, want b", base.Host)
	}
	if base.Port != 25 {
		t.Errorf("port: got %d, want 25", base.Port)
	}
	if !base.ImplicitTLS() {
		t.Error("secure should apply from overlay")
	}
	if base.Recipient != "x@y.z" {
		t.Errorf("recipient: got %s", base.Recipient)
	}
}

func TestConfigMergeKeepsSecureWhenOverlayOmitsIt(t *testing.T) {
	base := &mail.Config{Transport: "smtp", Host: "a", Port: 465, Secure: new(true)}
	base.Merge(&mail.Config{Recipient: "ideas@school.test"})

	if !base.ImplicitTLS() {
		t.Error("overlay without secure must not disable implicit TLS")
	}

	base.Merge(&mail.Config{Secure: new(false)})
	if base.ImplicitTLS() {
		t.Error("explicit secure = false should apply")
	}
}
