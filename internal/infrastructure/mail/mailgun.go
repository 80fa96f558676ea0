package mail

import (
	"context"
	"fmt"

	"github.com/ec5/ec5-api/internal/config"
	"github.com/mailgun/mailgun-go/v3"
)

type mailgunTransport struct {
	mg   *mailgun.MailgunImpl
	from string
}

func newMailgunTransport(cfg config.MailConfig) *mailgunTransport {
	mg := mailgun.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey)
	if cfg.MailgunAPIBase != "" {
		mg.SetAPIBase(cfg.MailgunAPIBase)
	}
	return &mailgunTransport{mg: mg, from: cfg.From}
}

func (t *mailgunTransport) Send(ctx context.Context, msg Message) error {
	m := t.mg.NewMessage(t.from, msg.Subject, msg.Text, msg.To...)
	if msg.HTML != "" {
		m.SetHtml(msg.HTML)
	}
	if _, _, err := t.mg.Send(ctx, m); err != nil {
		return fmt.Errorf("mailgun send: %w", err)
	}
	return nil
}
