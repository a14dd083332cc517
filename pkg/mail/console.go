package mail

import (
	"context"
	"log/slog"
	"net/mail"
	"strings"
	"sync"
	"time"
)

// Console renders messages to the log instead of delivering them and keeps
// every message it accepted.
type Console struct {
	cfg    *Config
	logger *slog.Logger

	mu   sync.Mutex
	sent []Message
}

// NewConsole creates a console sender.
func NewConsole(cfg *Config, logger *slog.Logger) *Console {
	return &Console{
		cfg:    cfg,
		logger: logger,
	}
}

func (c *Console) Transport() string { return TransportConsole }

func (c *Console) Send(ctx context.Context, msg Message) error {
	to, err := resolveRecipients(c.cfg, msg)
	if err != nil {
		return err
	}

	var body strings.Builder
	from := mail.Address{Name: c.cfg.FromName, Address: c.cfg.Sender()}
	if err := render(&body, from, to, msg, time.Now()); err != nil {
		return err
	}

	c.logger.InfoContext(
		ctx, "simulated email",
		"to", joinAddresses(to),
		"subject", msg.Subject,
		"attachments", len(msg.Attachments),
		"size", body.Len(),
	)
	c.logger.DebugContext(ctx, "simulated email body", "text", msg.Text)

	msg.To = to
	c.mu.Lock()
	c.sent = append(c.sent, msg)
	c.mu.Unlock()

	return nil
}

// Sent returns a copy of the messages accepted so far.
func (c *Console) Sent() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.sent))
	copy(out, c.sent)
	return out
}
