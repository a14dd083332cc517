// Package notifications emails submitted documents to the school office.
package notifications

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/holywrit/ideas/pkg/datauri"
	"github.com/holywrit/ideas/pkg/mail"
)

// Subject is used for every submission email.
const Subject = "New Idea Submission"

// Delivery reports the outcome of one notification attempt.
type Delivery struct {
	Delivered bool   `json:"delivered"`
	Message   string `json:"message,omitempty"`
}

// System sends a document with a text body. Notify never returns an error;
// configuration and transport problems are reported in the Delivery.
type System interface {
	Notify(ctx context.Context, document, body, filename string) Delivery
}

type notifier struct {
	sender mail.Sender
	logger *slog.Logger
}

// New creates a notification System that delivers through sender.
func New(sender mail.Sender, logger *slog.Logger) System {
	return &notifier{
		sender: sender,
		logger: logger.With("system", "notifications", "transport", sender.Transport()),
	}
}

func (n *notifier) Notify(ctx context.Context, document, body, filename string) Delivery {
	doc, err := datauri.Parse(document)
	if err != nil {
		return Delivery{Message: "Invalid document: " + err.Error()}
	}

	msg := mail.Message{
		Subject: Subject,
		Text:    body,
		Attachments: []mail.Attachment{
			{Filename: filename, ContentType: doc.MediaType, Data: doc.Data},
		},
	}

	if err := n.sender.Send(ctx, msg); err != nil {
		if errors.Is(err, mail.ErrNotConfigured) {
			n.logger.WarnContext(ctx, "notification skipped", "error", err)
			return Delivery{Message: capitalize(err.Error())}
		}
		n.logger.ErrorContext(ctx, "notification failed", "error", err)
		return Delivery{Message: err.Error()}
	}

	n.logger.InfoContext(ctx, "notification delivered", "filename", filename, "size", len(doc.Data))
	return Delivery{Delivered: true, Message: "Email sent"}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
