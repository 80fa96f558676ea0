// Package mail sends application mail through a configurable transport.
package mail

import (
	"context"
	"fmt"

	"github.com/ec5/ec5-api/internal/config"
	"github.com/ec5/ec5-api/internal/pkg/logger"
)

// Message is a single outbound mail. HTML is optional.
type Message struct {
	To      []string
	Subject string
	Text    string
	HTML    string
}

// Transport delivers messages.
type Transport interface {
	Send(ctx context.Context, msg Message) error
}

// NewTransport selects the transport named by cfg.Mail.Driver.
func NewTransport(cfg config.MailConfig, log logger.Logger) (Transport, error) {
	switch cfg.Driver {
	case config.MailDriverSMTP:
		return newSMTPTransport(cfg), nil
	case config.MailDriverMailgun:
		return newMailgunTransport(cfg), nil
	case config.MailDriverLog:
		return &logTransport{from: cfg.From, log: log}, nil
	default:
		return nil, fmt.Errorf("unknown mail driver %q", cfg.Driver)
	}
}

type logTransport struct {
	from string
	log  logger.Logger
}

func (t *logTransport) Send(_ context.Context, msg Message) error {
	t.log.Info("mail", map[string]any{
		"from":    t.from,
		"to":      msg.To,
		"subject": msg.Subject,
		"text":    msg.Text,
	})
	return nil
}
