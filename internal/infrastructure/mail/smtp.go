package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/ec5/ec5-api/internal/config"
)

type smtpTransport struct {
	host     string
	port     string
	from     string
	username string
	password string
}

func newSMTPTransport(cfg config.MailConfig) *smtpTransport {
	return &smtpTransport{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		from:     cfg.From,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
	}
}

func (t *smtpTransport) Send(_ context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("smtp: no recipients")
	}
	addr := fmt.Sprintf("%s:%s", t.host, t.port)

	var auth smtp.Auth
	if t.username != "" {
		auth = smtp.PlainAuth("", t.username, t.password, t.host)
	}

	if err := smtp.SendMail(addr, auth, t.from, msg.To, buildMIME(t.from, msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// buildMIME renders msg as a single-part message; HTML wins over text.
func buildMIME(from string, msg Message) []byte {
	contentType, body := "text/plain", msg.Text
	if msg.HTML != "" {
		contentType, body = "text/html", msg.HTML
	}
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: %s; charset=UTF-8\r\n\r\n", contentType)
	b.WriteString(body)
	return []byte(b.String())
}
