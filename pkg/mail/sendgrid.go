package mail

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const sendGridEndpoint = "/v3/mail/send"

type sendGridSender struct {
	cfg    *Config
	from   *sgmail.Email
	client *rest.Client
	logger *slog.Logger
}

func newSendGrid(cfg *Config, logger *slog.Logger) *sendGridSender {
	return &sendGridSender{
		cfg:    cfg,
		from:   sgmail.NewEmail(cfg.FromName, cfg.Sender()),
		client: &rest.Client{HTTPClient: &http.Client{Timeout: cfg.TimeoutDuration()}},
		logger: logger,
	}
}

func (s *sendGridSender) Transport() string { return TransportSendGrid }

func (s *sendGridSender) Send(ctx context.Context, msg Message) error {
	m, err := s.prepare(msg)
	if err != nil {
		return err
	}

	req := sendgrid.GetRequest(s.cfg.SendGridAPIKey, sendGridEndpoint, s.cfg.SendGridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m)

	res, err := s.client.Send(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%w: sendgrid responded %d: %s", ErrDelivery, res.StatusCode, res.Body)
	}

	s.logger.InfoContext(ctx, "email sent", "subject", msg.Subject, "status", res.StatusCode)
	return nil
}

func (s *sendGridSender) prepare(msg Message) (*sgmail.SGMailV3, error) {
	to, err := resolveRecipients(s.cfg, msg)
	if err != nil {
		return nil, err
	}

	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	for _, addr := range to {
		p.AddTos(sgmail.NewEmail(addr.Name, addr.Address))
	}

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.Subject = msg.Subject
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/plain", msg.Text))

	for _, at := range msg.Attachments {
		m.AddAttachment(&sgmail.Attachment{
			Content:     base64.StdEncoding.EncodeToString(at.Data),
			Type:        at.ContentType,
			Filename:    at.Filename,
			Disposition: "attachment",
		})
	}

	return m, nil
}
