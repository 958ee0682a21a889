// Package mailer delivers contact-form messages over SMTP.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer sends plain-text mail through a single SMTP account.
type Mailer struct {
	host     string
	port     string
	username string
	password string
	from     string
}

// New creates a Mailer. An empty host disables delivery; Send then fails
// with a descriptive error instead of dialing.
func New(host, port, username, password, from string) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// Send delivers one message. The context is checked before dialing; net/smtp
// itself does not support cancellation mid-send.
func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	if m.host == "" {
		return fmt.Errorf("smtp is not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var msg strings.Builder
	msg.WriteString("From: " + m.from + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	addr := m.host + ":" + m.port
	if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}
