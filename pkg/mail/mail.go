// Package mail delivers plain-text messages with attachments over SMTP,
// the SendGrid v3 API, or a console transport that only logs and records.
package mail

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/mail"
	"net/textproto"
	"strings"
	"time"
)

var (
	// ErrNotConfigured is returned by Send when required settings are absent.
	ErrNotConfigured = errors.New("email service is not configured")
	ErrDelivery      = errors.New("email delivery failed")
	ErrNoRecipients  = errors.New("message has no recipients")
)

// Attachment is a file sent alongside a message.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Message is a plain-text email. An empty To falls back to the configured recipient.
type Message struct {
	To          []mail.Address
	Subject     string
	Text        string
	Attachments []Attachment
}

// Sender delivers messages. Each call makes a single delivery attempt.
type Sender interface {
	Send(ctx context.Context, msg Message) error
	Transport() string
}

// New builds the sender selected by cfg.Transport. When the transport lacks
// required settings, the returned sender fails every Send with ErrNotConfigured.
func New(cfg *Config, logger *slog.Logger) Sender {
	logger = logger.With("system", "mail", "transport", cfg.Transport)

	if missing := cfg.Missing(); len(missing) > 0 {
		logger.Warn("mail transport not configured", "missing", strings.Join(missing, ", "))
		return &unconfigured{transport: cfg.Transport, missing: missing}
	}

	switch cfg.Transport {
	case TransportSendGrid:
		return newSendGrid(cfg, logger)
	case TransportConsole:
		return NewConsole(cfg, logger)
	default:
		return newSMTP(cfg, logger)
	}
}

type unconfigured struct {
	transport string
	missing   []string
}

func (u *unconfigured) Transport() string { return u.transport }

func (u *unconfigured) Send(context.Context, Message) error {
	return fmt.Errorf("%w: missing %s", ErrNotConfigured, strings.Join(u.missing, ", "))
}

func resolveRecipients(cfg *Config, msg Message) ([]mail.Address, error) {
	if len(msg.To) > 0 {
		return msg.To, nil
	}
	if cfg.Recipient == "" {
		return nil, ErrNoRecipients
	}
	parsed, err := mail.ParseAddressList(cfg.Recipient)
	if err != nil {
		return nil, fmt.Errorf("%w: recipient: %v", ErrNotConfigured, err)
	}
	addrs := make([]mail.Address, 0, len(parsed))
	for _, a := range parsed {
		addrs = append(addrs, *a)
	}
	return addrs, nil
}

func joinAddresses(addrs []mail.Address) string {
	parts := make([]string, 0, len(addrs))
	for _, a := range addrs {
		parts = append(parts, a.String())
	}
	return strings.Join(parts, ", ")
}

// render writes msg as a multipart/mixed MIME document.
func render(w io.Writer, from mail.Address, to []mail.Address, msg Message, now time.Time) error {
	mw := multipart.NewWriter(w)

	headers := []string{
		"From: " + from.String(),
		"To: " + joinAddresses(to),
		"Subject: " + mime.QEncoding.Encode("utf-8", msg.Subject),
		"Date: " + now.Format(time.RFC1123Z),
		"MIME-Version: 1.0",
		"Content-Type: multipart/mixed; boundary=" + mw.Boundary(),
	}
	if _, err := io.WriteString(w, strings.Join(headers, "\r\n")+"\r\n\r\n"); err != nil {
		return err
	}

	part, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {"text/plain; charset=utf-8"},
		"Content-Transfer-Encoding": {"8bit"},
	})
	if err != nil {
		return fmt.Errorf("create text/plain part: %w", err)
	}
	if _, err := io.WriteString(part, strings.ReplaceAll(msg.Text, "\n", "\r\n")+"\r\n"); err != nil {
		return err
	}

	for _, at := range msg.Attachments {
		part, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {at.ContentType},
			"Content-Transfer-Encoding": {"base64"},
			"Content-Disposition":       {mime.FormatMediaType("attachment", map[string]string{"filename": at.Filename})},
		})
		if err != nil {
			return fmt.Errorf("create %s part: %w", at.ContentType, err)
		}
		if err := writeBase64Lines(part, at.Data); err != nil {
			return err
		}
	}

	return mw.Close()
}

// writeBase64Lines wraps encoded output at 76 characters.
func writeBase64Lines(w io.Writer, data []byte) error {
	encoded := base64.StdEncoding.EncodeToString(data)
	for len(encoded) > 76 {
		if _, err := io.WriteString(w, encoded[:76]+"\r\n"); err != nil {
			return err
		}
		encoded = encoded[76:]
	}
	_, err := io.WriteString(w, encoded+"\r\n")
	return err
}

// Configured reports whether s can attempt delivery.
func Configured(s Sender) bool {
	_, ok := s.(*unconfigured)
	return !ok
}
