package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"time"
)

type smtpSender struct {
	cfg     *Config
	logger  *slog.Logger
	timeout time.Duration
}

func newSMTP(cfg *Config, logger *slog.Logger) *smtpSender {
	return &smtpSender{
		cfg:     cfg,
		logger:  logger,
		timeout: cfg.TimeoutDuration(),
	}
}

func (s *smtpSender) Transport() string { return TransportSMTP }

// Send dials the server, upgrading to TLS when secure is set (implicit TLS)
// or when the server offers STARTTLS, then submits the message once.
func (s *smtpSender) Send(ctx context.Context, msg Message) error {
	to, err := resolveRecipients(s.cfg, msg)
	if err != nil {
		return err
	}

	from := mail.Address{Name: s.cfg.FromName, Address: s.cfg.Sender()}

	var body bytes.Buffer
	if err := render(&body, from, to, msg, time.Now()); err != nil {
		return fmt.Errorf("%w: render: %v", ErrDelivery, err)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	conn, err := s.dial(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	defer client.Close()

	if err := s.submit(client, from, to, body.Bytes()); err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	s.logger.InfoContext(ctx, "email sent", "to", joinAddresses(to), "subject", msg.Subject)
	return nil
}

func (s *smtpSender) dial(ctx context.Context) (net.Conn, error) {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	if s.cfg.ImplicitTLS() {
		d := &tls.Dialer{Config: &tls.Config{ServerName: s.cfg.Host}}
		return d.DialContext(ctx, "tcp", addr)
	}
	var d net.Dialer
	return d.DialContext(ctx, "tcp", addr)
}

func (s *smtpSender) submit(client *smtp.Client, from mail.Address, to []mail.Address, body []byte) error {
	if !s.cfg.ImplicitTLS() {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: s.cfg.Host}); err != nil {
				return fmt.Errorf("starttls: %w", err)
			}
		}
	}

	if s.cfg.User != "" {
		if ok, _ := client.Extension("AUTH"); ok {
			auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)
			if err := client.Auth(auth); err != nil {
				return fmt.Errorf("auth: %w", err)
			}
		}
	}

	if err := client.Mail(from.Address); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	for _, addr := range to {
		if err := client.Rcpt(addr.Address); err != nil {
			return fmt.Errorf("rcpt %s: %w", addr.Address, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write(body); err != nil {
		w.Close()
		return fmt.Errorf("write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close body: %w", err)
	}

	return client.Quit()
}
